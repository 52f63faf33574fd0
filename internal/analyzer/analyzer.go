package analyzer

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendlens/spendlens/constants"
	"github.com/spendlens/spendlens/internal/common"
	"github.com/spendlens/spendlens/internal/ledger"
)

// Period selects a reporting window relative to a reference time.
type Period string

const (
	PeriodAll       Period = "all"
	PeriodThisMonth Period = "this-month"
	PeriodLastMonth Period = "last-month"
	PeriodThisYear  Period = "this-year"
	PeriodLastYear  Period = "last-year"
)

// ForPeriod returns the entries whose dates fall inside the period.
func ForPeriod(entries []ledger.Entry, p Period, now time.Time) ([]ledger.Entry, error) {
	var start, end time.Time
	switch p {
	case PeriodAll, "":
		return entries, nil
	case PeriodThisMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, 0)
	case PeriodLastMonth:
		end = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		start = end.AddDate(0, -1, 0)
	case PeriodThisYear:
		start = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(1, 0, 0)
	case PeriodLastYear:
		end = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		start = end.AddDate(-1, 0, 0)
	default:
		return nil, common.NewAppError("INVALID_PERIOD", fmt.Sprintf("unknown period %q", p), common.ErrInvalidInput)
	}

	var out []ledger.Entry
	for _, e := range entries {
		if !e.Date.Before(start) && e.Date.Before(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

// TotalSpent sums all entry amounts.
func TotalSpent(entries []ledger.Entry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return total
}

// Average is the mean expense, zero for an empty slice.
func Average(entries []ledger.Entry) decimal.Decimal {
	if len(entries) == 0 {
		return decimal.Zero
	}
	return TotalSpent(entries).Div(decimal.NewFromInt(int64(len(entries)))).Round(2)
}

type CategoryTotal struct {
	Category constants.Category
	Total    decimal.Decimal
}

// ByCategory groups totals per category, largest first. Ties break on the
// category name so output is stable.
func ByCategory(entries []ledger.Entry) []CategoryTotal {
	sums := make(map[constants.Category]decimal.Decimal)
	for _, e := range entries {
		sums[e.Category] = sums[e.Category].Add(e.Amount)
	}
	out := make([]CategoryTotal, 0, len(sums))
	for cat, total := range sums {
		out = append(out, CategoryTotal{Category: cat, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Category < out[j].Category
	})
	return out
}

type MerchantTotal struct {
	Merchant string
	Total    decimal.Decimal
}

// ByMerchant returns the top n merchants by total spend.
func ByMerchant(entries []ledger.Entry, n int) []MerchantTotal {
	sums := make(map[string]decimal.Decimal)
	for _, e := range entries {
		sums[e.Merchant] = sums[e.Merchant].Add(e.Amount)
	}
	out := make([]MerchantTotal, 0, len(sums))
	for m, total := range sums {
		out = append(out, MerchantTotal{Merchant: m, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Merchant < out[j].Merchant
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

type MonthTotal struct {
	Month string // "2006-01"
	Total decimal.Decimal
}

// Monthly groups totals per calendar month in ascending order.
func Monthly(entries []ledger.Entry) []MonthTotal {
	sums := make(map[string]decimal.Decimal)
	for _, e := range entries {
		key := e.Date.Format("2006-01")
		sums[key] = sums[key].Add(e.Amount)
	}
	out := make([]MonthTotal, 0, len(sums))
	for month, total := range sums {
		out = append(out, MonthTotal{Month: month, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// TopExpenses returns the n largest individual expenses.
func TopExpenses(entries []ledger.Entry, n int) []ledger.Entry {
	out := make([]ledger.Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.GreaterThan(out[j].Amount)
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Snapshot condenses a period of spending into a plain map for the insights
// prompt. Empty input yields an empty map.
func Snapshot(entries []ledger.Entry, p Period) map[string]any {
	if len(entries) == 0 {
		return map[string]any{}
	}
	byCat := make(map[string]string)
	for _, ct := range ByCategory(entries) {
		byCat[string(ct.Category)] = ct.Total.StringFixed(2)
	}
	merchants := make([]map[string]string, 0, 5)
	for _, mt := range ByMerchant(entries, 5) {
		merchants = append(merchants, map[string]string{
			"merchant": mt.Merchant,
			"total":    mt.Total.StringFixed(2),
		})
	}
	months := make([]map[string]string, 0, 12)
	for _, mt := range Monthly(entries) {
		months = append(months, map[string]string{
			"month": mt.Month,
			"total": mt.Total.StringFixed(2),
		})
	}
	return map[string]any{
		"period":          string(p),
		"expense_count":   len(entries),
		"total_spent":     TotalSpent(entries).StringFixed(2),
		"average_expense": Average(entries).StringFixed(2),
		"by_category":     byCat,
		"top_merchants":   merchants,
		"monthly_totals":  months,
	}
}
