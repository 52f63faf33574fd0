package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/spendlens/spendlens/constants"
	"github.com/spendlens/spendlens/internal/ledger"
	"github.com/spendlens/spendlens/internal/utils"
)

var (
	flagAddMerchant string
	flagAddAmount   string
	flagAddDate     string
	flagAddCategory string
	flagAddNotes    string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an expense by hand",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}

		amount, err := decimal.NewFromString(flagAddAmount)
		if err != nil {
			return fmt.Errorf("amount %q is not a number", flagAddAmount)
		}
		date := utils.Date(time.Now().UTC())
		if flagAddDate != "" {
			if date, err = utils.ParseYMD(flagAddDate); err != nil {
				return fmt.Errorf("date %q is not YYYY-MM-DD", flagAddDate)
			}
		}
		cat, err := categoryFlag(flagAddCategory)
		if err != nil {
			return err
		}

		entry := ledger.Entry{
			Date:     date,
			Merchant: flagAddMerchant,
			Amount:   amount,
			Category: cat,
			Notes:    flagAddNotes,
		}
		if err := store.Add(entry); err != nil {
			return err
		}
		cmd.Printf("saved as expense #%d\n", store.Len()-1)
		return nil
	},
}

var (
	flagListCategory string
	flagListMerchant string
	flagListFrom     string
	flagListTo       string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List expenses",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}

		var opts ledger.FilterOptions
		if flagListCategory != "" {
			cat, ok := constants.Canonicalize(flagListCategory)
			if !ok {
				return fmt.Errorf("unknown category %q", flagListCategory)
			}
			opts.Category = cat
		}
		opts.Merchant = flagListMerchant
		if flagListFrom != "" {
			from, err := utils.ParseYMD(flagListFrom)
			if err != nil {
				return fmt.Errorf("from %q is not YYYY-MM-DD", flagListFrom)
			}
			opts.Start = &from
		}
		if flagListTo != "" {
			to, err := utils.ParseYMD(flagListTo)
			if err != nil {
				return fmt.Errorf("to %q is not YYYY-MM-DD", flagListTo)
			}
			opts.End = &to
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "#\tDATE\tMERCHANT\tAMOUNT\tCATEGORY\tNOTES")
		shown := 0
		for i, e := range store.Entries() {
			if !opts.Matches(e) {
				continue
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				i, utils.FormatYMD(e.Date), e.Merchant, e.Amount.StringFixed(2), e.Category, e.Notes)
			shown++
		}
		if shown == 0 {
			cmd.Println("no expenses found")
			return nil
		}
		return w.Flush()
	},
}

var (
	flagEditMerchant string
	flagEditAmount   string
	flagEditDate     string
	flagEditCategory string
	flagEditNotes    string
)

var editCmd = &cobra.Command{
	Use:   "edit <index>",
	Short: "Edit an expense by its list index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		idx, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("index %q is not a number", args[0])
		}
		entry, err := store.Get(idx)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("merchant") {
			entry.Merchant = flagEditMerchant
		}
		if cmd.Flags().Changed("amount") {
			if entry.Amount, err = decimal.NewFromString(flagEditAmount); err != nil {
				return fmt.Errorf("amount %q is not a number", flagEditAmount)
			}
		}
		if cmd.Flags().Changed("date") {
			if entry.Date, err = utils.ParseYMD(flagEditDate); err != nil {
				return fmt.Errorf("date %q is not YYYY-MM-DD", flagEditDate)
			}
		}
		if cmd.Flags().Changed("category") {
			cat, ok := constants.Canonicalize(flagEditCategory)
			if !ok {
				return fmt.Errorf("unknown category %q", flagEditCategory)
			}
			entry.Category = cat
		}
		if cmd.Flags().Changed("notes") {
			entry.Notes = flagEditNotes
		}

		if err := store.Update(idx, entry); err != nil {
			return err
		}
		cmd.Printf("updated expense #%d\n", idx)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <index>",
	Short: "Delete an expense by its list index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		idx, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("index %q is not a number", args[0])
		}
		if err := store.Delete(idx); err != nil {
			return err
		}
		cmd.Printf("deleted expense #%d\n", idx)
		return nil
	},
}

// categoryFlag canonicalizes a category flag value, treating empty as Other.
func categoryFlag(label string) (constants.Category, error) {
	if label == "" {
		return constants.Other, nil
	}
	cat, ok := constants.Canonicalize(label)
	if !ok {
		return "", fmt.Errorf("unknown category %q (want one of %s)",
			label, strings.Join(constants.AsStringSlice(), ", "))
	}
	return cat, nil
}

func init() {
	addCmd.Flags().StringVar(&flagAddMerchant, "merchant", "", "merchant name")
	addCmd.Flags().StringVar(&flagAddAmount, "amount", "", "expense amount")
	addCmd.Flags().StringVar(&flagAddDate, "date", "", "expense date (YYYY-MM-DD, default today)")
	addCmd.Flags().StringVar(&flagAddCategory, "category", "", "expense category (default Other)")
	addCmd.Flags().StringVar(&flagAddNotes, "notes", "", "free-form notes")
	_ = addCmd.MarkFlagRequired("merchant")
	_ = addCmd.MarkFlagRequired("amount")

	listCmd.Flags().StringVar(&flagListCategory, "category", "", "only this category")
	listCmd.Flags().StringVar(&flagListMerchant, "merchant", "", "merchant substring match")
	listCmd.Flags().StringVar(&flagListFrom, "from", "", "earliest date (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&flagListTo, "to", "", "latest date (YYYY-MM-DD)")

	editCmd.Flags().StringVar(&flagEditMerchant, "merchant", "", "new merchant name")
	editCmd.Flags().StringVar(&flagEditAmount, "amount", "", "new amount")
	editCmd.Flags().StringVar(&flagEditDate, "date", "", "new date (YYYY-MM-DD)")
	editCmd.Flags().StringVar(&flagEditCategory, "category", "", "new category")
	editCmd.Flags().StringVar(&flagEditNotes, "notes", "", "new notes")

	rootCmd.AddCommand(addCmd, listCmd, editCmd, deleteCmd)
}
