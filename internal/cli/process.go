package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/spendlens/spendlens/constants"
	"github.com/spendlens/spendlens/internal/ledger"
	"github.com/spendlens/spendlens/internal/pipeline"
	"github.com/spendlens/spendlens/internal/utils"
)

var (
	flagSave         bool
	flagShowText     bool
	flagOverMerchant string
	flagOverAmount   string
	flagOverDate     string
	flagOverCategory string
	flagOverNotes    string
)

var processCmd = &cobra.Command{
	Use:   "process <image>...",
	Short: "Extract expense fields from receipt images",
	Long: `Runs each image through text recognition and field extraction,
printing what was found. With --save the result is appended to the ledger;
use the override flags to correct fields before saving.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		proc := newProcessor()

		var store *ledger.Store
		if flagSave {
			var err error
			if store, err = openStore(); err != nil {
				return err
			}
		}

		for _, path := range args {
			ext := constants.NormalizeExt(filepath.Ext(path))
			if !constants.IsAllowedExt(ext) {
				return fmt.Errorf("%s: unsupported file type %q (want jpg, jpeg, or png)", path, ext)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			rec := proc.Process(cmd.Context(), data)
			printRecord(cmd, path, rec)

			if flagSave {
				entry, err := recordToEntry(rec)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				if err := store.Add(entry); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				cmd.Printf("saved as expense #%d\n", store.Len()-1)
			}
		}
		return nil
	},
}

func init() {
	processCmd.Flags().BoolVar(&flagSave, "save", false, "append the extracted expense to the ledger")
	processCmd.Flags().BoolVar(&flagShowText, "show-text", false, "also print the recognized receipt text")
	processCmd.Flags().StringVar(&flagOverMerchant, "merchant", "", "override the extracted merchant")
	processCmd.Flags().StringVar(&flagOverAmount, "amount", "", "override the extracted amount")
	processCmd.Flags().StringVar(&flagOverDate, "date", "", "override the extracted date (YYYY-MM-DD)")
	processCmd.Flags().StringVar(&flagOverCategory, "category", "", "override the extracted category")
	processCmd.Flags().StringVar(&flagOverNotes, "notes", "", "notes to store with the expense")
	rootCmd.AddCommand(processCmd)
}

func printRecord(cmd *cobra.Command, path string, rec pipeline.Record) {
	cmd.Printf("%s\n", path)
	if rec.RawText == pipeline.RawTextDecodeError {
		cmd.Printf("  error: could not decode image\n")
		return
	}
	date := "(not found)"
	if !rec.Date.IsZero() {
		date = utils.FormatYMD(rec.Date)
	}
	cmd.Printf("  date:     %s\n", date)
	cmd.Printf("  merchant: %s\n", orNotFound(rec.Merchant))
	cmd.Printf("  amount:   %s\n", orNotFound(rec.Amount))
	cmd.Printf("  category: %s\n", orNotFound(rec.Category))
	if cfg.LLM.Enabled {
		cmd.Printf("  ai:       enabled\n")
	} else {
		cmd.Printf("  ai:       disabled\n")
	}
	if flagShowText && rec.RawText != "" {
		cmd.Printf("  text:\n")
		for _, line := range strings.Split(rec.RawText, "\n") {
			cmd.Printf("    %s\n", line)
		}
	}
}

func orNotFound(s string) string {
	if s == "" {
		return "(not found)"
	}
	return s
}

// recordToEntry applies the override flags and fills required gaps. Merchant
// and a positive amount must be present, from extraction or override, before
// an expense may be saved.
func recordToEntry(rec pipeline.Record) (ledger.Entry, error) {
	merchant := rec.Merchant
	if flagOverMerchant != "" {
		merchant = flagOverMerchant
	}
	if strings.TrimSpace(merchant) == "" {
		return ledger.Entry{}, fmt.Errorf("no merchant found; pass --merchant to save")
	}

	amountStr := rec.Amount
	if flagOverAmount != "" {
		amountStr = flagOverAmount
	}
	if amountStr == "" {
		return ledger.Entry{}, fmt.Errorf("no amount found; pass --amount to save")
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return ledger.Entry{}, fmt.Errorf("amount %q is not a number", amountStr)
	}

	date := rec.Date
	if flagOverDate != "" {
		if date, err = utils.ParseYMD(flagOverDate); err != nil {
			return ledger.Entry{}, fmt.Errorf("date %q is not YYYY-MM-DD", flagOverDate)
		}
	}
	if date.IsZero() {
		date = utils.Date(time.Now().UTC())
	}

	catLabel := rec.Category
	if flagOverCategory != "" {
		catLabel = flagOverCategory
	}
	cat, ok := constants.Canonicalize(catLabel)
	if flagOverCategory != "" && !ok {
		return ledger.Entry{}, fmt.Errorf("unknown category %q (want one of %s)",
			flagOverCategory, strings.Join(constants.AsStringSlice(), ", "))
	}

	return ledger.Entry{
		Date:     date,
		Merchant: merchant,
		Amount:   amount,
		Category: cat,
		Notes:    flagOverNotes,
	}, nil
}
