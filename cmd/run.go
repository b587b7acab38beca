package cmd

import (
	"github.com/spf13/cobra"
)

var runNoSummary bool

// runCmd is the production pipeline: fetch, rank, summarize, publish.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch and rank in one pass",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		r, closeFn, err := buildRunner(cfg, runnerOptions{summary: !runNoSummary, publish: cfg.Redis.Enabled})
		if err != nil {
			return err
		}
		defer closeFn()

		c, err := r.Run(cmd.Context())
		if err != nil {
			return err
		}
		printCandidates(cmd.OutOrStdout(), c, cfg.Pipeline.TopN)
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVar(&runNoSummary, "no-summary", false, "skip the digest summary")
	rootCmd.AddCommand(runCmd)
}
