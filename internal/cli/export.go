package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/spendlens/spendlens/internal/export"
)

var flagExportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the ledger as an XLSX workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		data, err := export.NewService(logger).WriteXLSX(store.Entries())
		if err != nil {
			return err
		}
		if err := os.WriteFile(flagExportOut, data, 0o644); err != nil {
			return err
		}
		cmd.Printf("wrote %d expenses to %s\n", store.Len(), flagExportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&flagExportOut, "out", "expenses.xlsx", "output file path")
	rootCmd.AddCommand(exportCmd)
}
