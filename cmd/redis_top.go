package cmd

import (
	"context"
	"fmt"
	"time"

	"pet-pulse/internal/redisclient"
	"pet-pulse/internal/storage"

	"github.com/spf13/cobra"
)

var (
	topDate  string
	topLimit int
)

// topCmd reads back a published ranked stream.
var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Print the ranked stream published for a day",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		day, err := dayArg(topDate)
		if err != nil {
			return err
		}

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()
		store := storage.NewRedisStore(rdb, cfg.Redis.KeyScope)

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()

		out := cmd.OutOrStdout()
		runID, err := store.PublishedRun(ctx, day)
		if err != nil {
			return err
		}
		if runID == "" {
			fmt.Fprintf(out, "nothing published for %s\n", day)
			return nil
		}
		fmt.Fprintf(out, "run %s (%s)\n", runID, day)
		items, err := store.TopRanked(ctx, day, topLimit)
		if err != nil {
			return err
		}
		for i, it := range items {
			fmt.Fprintf(out, "%3d. [%s] %.3f %s (%s)\n", i+1, it.Kind, it.TrendingScore, it.Title, it.Origin)
		}
		return nil
	},
}

func init() {
	topCmd.Flags().StringVar(&topDate, "date", "", "day as YYYYMMDD (default: today UTC)")
	topCmd.Flags().IntVar(&topLimit, "n", 20, "number of items")
	redisCmd.AddCommand(topCmd)
}
