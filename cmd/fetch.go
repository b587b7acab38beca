package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// fetchCmd reads both sources and writes the raw snapshots.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch Reddit posts and news articles into raw snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, closeFn, err := buildRunner(GetConfig(), runnerOptions{})
		if err != nil {
			return err
		}
		defer closeFn()

		f, err := r.Fetch(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "reddit posts: %d\n", len(f.Social))
		fmt.Fprintf(out, "news articles: %d\n", len(f.News))
		fmt.Fprintf(out, "sources ok: %v failed: %v\n", f.Sources.Succeeded, f.Sources.Failed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
