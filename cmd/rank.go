package cmd

import (
	"fmt"
	"io"

	"pet-pulse/internal/pipeline"
	"pet-pulse/internal/ranking"

	"github.com/spf13/cobra"
)

var (
	rankDate    string
	rankSummary bool
	rankPublish bool
)

// rankCmd ranks a day's raw snapshots without fetching again.
var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Filter and rank the raw snapshots of a day",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		day, err := dayArg(rankDate)
		if err != nil {
			return err
		}

		r, closeFn, err := buildRunner(cfg, runnerOptions{summary: rankSummary, publish: rankPublish})
		if err != nil {
			return err
		}
		defer closeFn()

		f, err := pipeline.LoadFetched(cfg.Pipeline.DataDir, day)
		if err != nil {
			return err
		}
		c, err := r.Rank(cmd.Context(), f)
		if err != nil {
			return err
		}
		printCandidates(cmd.OutOrStdout(), c, cfg.Pipeline.TopN)
		return nil
	},
}

func printCandidates(w io.Writer, c *pipeline.Candidates, topN int) {
	fmt.Fprintf(w, "run %s (%s)\n", c.RunID, c.Date)
	fmt.Fprintf(w, "reddit: %d kept, avg relevance %.3f\n", c.Stats.RedditPosts, c.RedditRelevance.Avg)
	fmt.Fprintf(w, "news: %d kept, avg relevance %.3f\n", c.Stats.NewsArticles, c.NewsRelevance.Avg)
	fmt.Fprintf(w, "trending: max %.3f min %.3f avg %.3f\n", c.Ranking.Max, c.Ranking.Min, c.Ranking.Avg)
	for i, it := range ranking.Top(c.Content, topN) {
		fmt.Fprintf(w, "%3d. [%s] %.3f %s (%s)\n", i+1, it.Kind, it.TrendingScore, it.Title, it.Origin)
	}
	if c.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", c.Summary)
	}
}

func init() {
	rankCmd.Flags().StringVar(&rankDate, "date", "", "day to rank as YYYYMMDD (default: today UTC)")
	rankCmd.Flags().BoolVar(&rankSummary, "summary", false, "generate the digest summary")
	rankCmd.Flags().BoolVar(&rankPublish, "publish", false, "publish the ranked stream to Redis")
	rootCmd.AddCommand(rankCmd)
}
