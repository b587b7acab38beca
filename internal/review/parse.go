package review

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Frontmatter is the YAML header of a review sheet.
type Frontmatter struct {
	Title      string `yaml:"title"`
	Date       string `yaml:"date"`
	RunID      string `yaml:"run_id"`
	Candidates int    `yaml:"candidates"`
}

// Sheet is a parsed review sheet.
type Sheet struct {
	Frontmatter Frontmatter
	// Checked lists the keys of ticked items in sheet order.
	Checked []string
}

var checkedLine = regexp.MustCompile("^\\s*[-*] \\[[xX]\\] `([^`]+)`")

// ParseFile reads a review sheet. The frontmatter sits between the first
// two lines that contain only "---".
func ParseFile(path string) (Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return Sheet{}, err
	}
	defer f.Close()
	s, err := Parse(f)
	if err != nil {
		return Sheet{}, fmt.Errorf("review: %s: %w", path, err)
	}
	return s, nil
}

// Parse reads a review sheet from r.
func Parse(r io.Reader) (Sheet, error) {
	br := bufio.NewReader(r)
	var fm strings.Builder
	var s Sheet
	inFM := false
	seenFM := false
	first := true
	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return Sheet{}, err
		}
		trim := strings.TrimSpace(line)
		switch {
		case first && trim == "---":
			inFM = true
		case inFM && trim == "---":
			inFM, seenFM = false, true
		case inFM:
			fm.WriteString(line)
		default:
			if m := checkedLine.FindStringSubmatch(line); m != nil {
				s.Checked = append(s.Checked, m[1])
			}
		}
		first = false
		if errors.Is(err, io.EOF) {
			break
		}
	}
	if inFM {
		return Sheet{}, errors.New("unterminated frontmatter")
	}
	if seenFM {
		if err := yaml.Unmarshal([]byte(fm.String()), &s.Frontmatter); err != nil {
			return Sheet{}, fmt.Errorf("frontmatter: %w", err)
		}
	}
	return s, nil
}
