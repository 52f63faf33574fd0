package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/spendlens/spendlens/internal/analyzer"
	"github.com/spendlens/spendlens/internal/ledger"
	"github.com/spendlens/spendlens/internal/utils"
)

var (
	flagSummaryPeriod string
	flagSummaryFrom   string
	flagSummaryTo     string
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize spending for a period",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}

		var entries []ledger.Entry
		if flagSummaryFrom != "" || flagSummaryTo != "" {
			var opts ledger.FilterOptions
			if flagSummaryFrom != "" {
				from, err := utils.ParseYMD(flagSummaryFrom)
				if err != nil {
					return fmt.Errorf("from %q is not YYYY-MM-DD", flagSummaryFrom)
				}
				opts.Start = &from
			}
			if flagSummaryTo != "" {
				to, err := utils.ParseYMD(flagSummaryTo)
				if err != nil {
					return fmt.Errorf("to %q is not YYYY-MM-DD", flagSummaryTo)
				}
				opts.End = &to
			}
			entries = store.Filter(opts)
		} else {
			entries, err = analyzer.ForPeriod(store.Entries(), analyzer.Period(flagSummaryPeriod), time.Now().UTC())
			if err != nil {
				return err
			}
		}
		if len(entries) == 0 {
			cmd.Println("no expenses in this period")
			return nil
		}

		cmd.Printf("expenses: %d\n", len(entries))
		cmd.Printf("total:    %s\n", analyzer.TotalSpent(entries).StringFixed(2))
		cmd.Printf("average:  %s\n\n", analyzer.Average(entries).StringFixed(2))

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CATEGORY\tTOTAL")
		for _, ct := range analyzer.ByCategory(entries) {
			fmt.Fprintf(w, "%s\t%s\n", ct.Category, ct.Total.StringFixed(2))
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "TOP MERCHANTS\tTOTAL")
		for _, mt := range analyzer.ByMerchant(entries, 5) {
			fmt.Fprintf(w, "%s\t%s\n", mt.Merchant, mt.Total.StringFixed(2))
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "MONTH\tTOTAL")
		for _, mt := range analyzer.Monthly(entries) {
			fmt.Fprintf(w, "%s\t%s\n", mt.Month, mt.Total.StringFixed(2))
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "TOP EXPENSES\tDATE\tAMOUNT")
		for _, e := range analyzer.TopExpenses(entries, 5) {
			fmt.Fprintf(w, "%s\t%s\t%s\n", e.Merchant, utils.FormatYMD(e.Date), e.Amount.StringFixed(2))
		}
		return w.Flush()
	},
}

func init() {
	summaryCmd.Flags().StringVar(&flagSummaryPeriod, "period", "all",
		"one of all, this-month, last-month, this-year, last-year")
	summaryCmd.Flags().StringVar(&flagSummaryFrom, "from", "", "custom range start (YYYY-MM-DD, overrides --period)")
	summaryCmd.Flags().StringVar(&flagSummaryTo, "to", "", "custom range end (YYYY-MM-DD, overrides --period)")
	rootCmd.AddCommand(summaryCmd)
}
