package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pet-pulse/internal/pipeline"
	"pet-pulse/internal/review"
	"pet-pulse/internal/snapshot"

	"github.com/spf13/cobra"
)

var reviewDate string

// reviewCmd writes the markdown review sheet for a day's candidates.
var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Write a review sheet for the day's candidates",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		day, err := dayArg(reviewDate)
		if err != nil {
			return err
		}
		var c pipeline.Candidates
		if err := snapshot.Read(snapshot.CandidatesPath(cfg.Pipeline.DataDir, day), &c); err != nil {
			return fmt.Errorf("load candidates for %s: %w", day, err)
		}
		sheet, err := review.Render(&c)
		if err != nil {
			return err
		}
		path := snapshot.SheetPath(cfg.Pipeline.DataDir, day)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(sheet), 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "review sheet: %s (%d candidates)\n", path, len(c.Content))
		return nil
	},
}

// dayArg validates a YYYYMMDD flag value, defaulting to today in UTC.
func dayArg(s string) (string, error) {
	if s == "" {
		return snapshot.DayKey(time.Now().UTC()), nil
	}
	if _, err := time.Parse("20060102", s); err != nil {
		return "", fmt.Errorf("invalid --date %q, want YYYYMMDD", s)
	}
	return s, nil
}

func init() {
	reviewCmd.Flags().StringVar(&reviewDate, "date", "", "day as YYYYMMDD (default: today UTC)")
	rootCmd.AddCommand(reviewCmd)
}
