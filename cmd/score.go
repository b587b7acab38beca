package cmd

import (
	"fmt"
	"strings"

	"pet-pulse/internal/model"

	"github.com/spf13/cobra"
)

var scoreOrigin string

// scoreCmd prints the relevance score of a text blob.
var scoreCmd = &cobra.Command{
	Use:   "score <text>...",
	Short: "Print the Canadian relevance score of a text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scorer, err := newScorer(GetConfig())
		if err != nil {
			return err
		}
		text := strings.Join(args, " ")
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "score: %.3f\n", scorer.Score(text))
		if scoreOrigin == "" {
			return nil
		}
		res := scorer.FilterByOrigin([]model.Item{{Kind: model.KindSocial, Origin: scoreOrigin, Title: text}})
		fmt.Fprintf(out, "origin: %s (%s)\n", scoreOrigin, scorer.TierOf(scoreOrigin))
		fmt.Fprintf(out, "effective: %.3f accepted: %v\n", res.Scored[0].RelevanceScore, len(res.Accepted) == 1)
		return nil
	},
}

func init() {
	scoreCmd.Flags().StringVar(&scoreOrigin, "origin", "", "subreddit to apply the origin policy for")
	rootCmd.AddCommand(scoreCmd)
}
