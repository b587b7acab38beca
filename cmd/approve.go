package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"pet-pulse/internal/pipeline"
	"pet-pulse/internal/review"
	"pet-pulse/internal/snapshot"

	"github.com/spf13/cobra"
)

var approveDate string

// approveCmd reads a ticked review sheet and writes the approved content.
var approveCmd = &cobra.Command{
	Use:   "approve",
	Short: "Save the items ticked in the review sheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		day, err := dayArg(approveDate)
		if err != nil {
			return err
		}
		sheet, err := review.ParseFile(snapshot.SheetPath(cfg.Pipeline.DataDir, day))
		if err != nil {
			return err
		}
		var c pipeline.Candidates
		if err := snapshot.Read(snapshot.CandidatesPath(cfg.Pipeline.DataDir, day), &c); err != nil {
			return fmt.Errorf("load candidates for %s: %w", day, err)
		}
		if sheet.Frontmatter.RunID != "" && sheet.Frontmatter.RunID != c.RunID {
			return fmt.Errorf("review sheet is for run %s but candidates are from run %s", sheet.Frontmatter.RunID, c.RunID)
		}
		if len(sheet.Checked) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no items ticked, nothing saved")
			return nil
		}

		a := review.Approve(&c, sheet.Checked, time.Now())
		if len(a.Review.Unknown) > 0 {
			slog.Warn("approve: ticked keys not in candidates", "keys", a.Review.Unknown)
		}
		path := snapshot.ApprovedPath(cfg.Pipeline.DataDir, day)
		if err := snapshot.Write(path, a); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "approved %d of %d (%s): %s\n",
			a.Review.ApprovedCount, a.Review.TotalCandidates, a.Review.ApprovalRate, path)
		return nil
	},
}

func init() {
	approveCmd.Flags().StringVar(&approveDate, "date", "", "day as YYYYMMDD (default: today UTC)")
	rootCmd.AddCommand(approveCmd)
}
