package cli

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"review_analyzer/internal/shared"
)

func newScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score <text>",
		Short: "Print the sentiment of a piece of text",
		Long:  "Score text with the configured sentiment model and print {neg, neu, pos, compound} as JSON.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := shared.Load()
			scorer, closeScorer, err := buildScorer(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeScorer()

			s, err := scorer.Score(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(map[string]float64{
				"neg":      s.Neg,
				"neu":      s.Neu,
				"pos":      s.Pos,
				"compound": s.Compound,
			}, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
}
