package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/spendlens/spendlens/internal/analyzer"
	"github.com/spendlens/spendlens/internal/llm"
)

var flagInsightsPeriod string

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Generate a natural-language spending summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		gen, ok := newInferencer().(llm.InsightsGenerator)
		if !ok {
			return fmt.Errorf("insights need an OpenAI API key; set OPENAI_API_KEY")
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		entries, err := analyzer.ForPeriod(store.Entries(), analyzer.Period(flagInsightsPeriod), time.Now().UTC())
		if err != nil {
			return err
		}

		snapshot := analyzer.Snapshot(entries, analyzer.Period(flagInsightsPeriod))
		cmd.Println(gen.GenerateInsights(cmd.Context(), snapshot))
		return nil
	},
}

func init() {
	insightsCmd.Flags().StringVar(&flagInsightsPeriod, "period", "all",
		"one of all, this-month, last-month, this-year, last-year")
	rootCmd.AddCommand(insightsCmd)
}
