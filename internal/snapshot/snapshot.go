// Package snapshot reads and writes the flat JSON files a pipeline run
// leaves behind: raw fetches under raw/ and ranked candidates under
// processed/.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pet-pulse/internal/model"
)

// RawReddit is the raw social fetch for one day.
type RawReddit struct {
	ScrapedAt  time.Time    `json:"scraped_at"`
	Source     string       `json:"source"`
	ItemCount  int          `json:"item_count"`
	Subreddits []string     `json:"subreddits"`
	Failed     []string     `json:"failed,omitempty"`
	Posts      []model.Item `json:"posts"`
}

// RawNews is the raw news fetch for one day.
type RawNews struct {
	ScrapedAt time.Time    `json:"scraped_at"`
	Source    string       `json:"source"`
	ItemCount int          `json:"item_count"`
	Sources   []string     `json:"sources"`
	Failed    []string     `json:"failed,omitempty"`
	Articles  []model.Item `json:"articles"`
}

// DayKey formats t as the YYYYMMDD key used in file names.
func DayKey(t time.Time) string {
	return t.Format("20060102")
}

func RedditPath(dataDir, day string) string {
	return filepath.Join(dataDir, "raw", fmt.Sprintf("reddit_%s.json", day))
}

func NewsPath(dataDir, day string) string {
	return filepath.Join(dataDir, "raw", fmt.Sprintf("news_%s.json", day))
}

func CandidatesPath(dataDir, day string) string {
	return filepath.Join(dataDir, "processed", fmt.Sprintf("trending_candidates_%s.json", day))
}

func SheetPath(dataDir, day string) string {
	return filepath.Join(dataDir, "review", fmt.Sprintf("review_%s.md", day))
}

func ApprovedPath(dataDir, day string) string {
	return filepath.Join(dataDir, "processed", fmt.Sprintf("approved_content_%s.json", day))
}

// Write stores v as indented JSON, creating parent directories. The file
// is written to a temp name and renamed into place.
func Write(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("snapshot: encode %s: %w", filepath.Base(path), err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(b, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Read decodes the JSON file at path into v.
func Read(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("snapshot: decode %s: %w", filepath.Base(path), err)
	}
	return nil
}
