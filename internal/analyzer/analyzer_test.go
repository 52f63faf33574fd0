package analyzer

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendlens/spendlens/constants"
	"github.com/spendlens/spendlens/internal/ledger"
)

func entry(date time.Time, merchant, amount string, cat constants.Category) ledger.Entry {
	return ledger.Entry{
		Date:     date,
		Merchant: merchant,
		Amount:   decimal.RequireFromString(amount),
		Category: cat,
	}
}

func ymd(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var now = ymd(2024, time.March, 15)

func seed() []ledger.Entry {
	return []ledger.Entry{
		entry(ymd(2024, time.March, 1), "Acme Store", "20.00", constants.Groceries),
		entry(ymd(2024, time.March, 10), "Cafe Uno", "15.50", constants.Dining),
		entry(ymd(2024, time.February, 5), "Acme Store", "30.00", constants.Groceries),
		entry(ymd(2023, time.December, 20), "Gift Shop", "50.00", constants.Shopping),
	}
}

func TestForPeriod(t *testing.T) {
	tests := []struct {
		period Period
		want   int
	}{
		{PeriodAll, 4},
		{Period(""), 4},
		{PeriodThisMonth, 2},
		{PeriodLastMonth, 1},
		{PeriodThisYear, 3},
		{PeriodLastYear, 1},
	}
	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			got, err := ForPeriod(seed(), tt.period, now)
			if err != nil {
				t.Fatalf("ForPeriod: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("matched %d entries, want %d", len(got), tt.want)
			}
		})
	}

	if _, err := ForPeriod(seed(), Period("fortnight"), now); err == nil {
		t.Error("unknown period accepted, want error")
	}
}

func TestTotalsAndAverage(t *testing.T) {
	entries := seed()
	if got := TotalSpent(entries); !got.Equal(decimal.RequireFromString("115.50")) {
		t.Errorf("TotalSpent = %s, want 115.50", got)
	}
	if got := Average(entries); !got.Equal(decimal.RequireFromString("28.88")) {
		t.Errorf("Average = %s, want 28.88", got)
	}
	if got := Average(nil); !got.IsZero() {
		t.Errorf("Average(nil) = %s, want 0", got)
	}
}

func TestByCategory(t *testing.T) {
	got := ByCategory(seed())
	if len(got) != 3 {
		t.Fatalf("got %d categories, want 3", len(got))
	}
	if got[0].Category != constants.Groceries || !got[0].Total.Equal(decimal.RequireFromString("50.00")) {
		t.Errorf("top category = %+v, want Groceries 50.00", got[0])
	}
	if got[1].Category != constants.Shopping {
		t.Errorf("second category = %q, want Shopping", got[1].Category)
	}
}

func TestByMerchant(t *testing.T) {
	got := ByMerchant(seed(), 2)
	if len(got) != 2 {
		t.Fatalf("got %d merchants, want 2", len(got))
	}
	// Acme Store and Gift Shop both total 50.00; the tie breaks on name
	if got[0].Merchant != "Acme Store" || got[1].Merchant != "Gift Shop" {
		t.Errorf("order = [%s %s], want [Acme Store Gift Shop]", got[0].Merchant, got[1].Merchant)
	}
}

func TestMonthly(t *testing.T) {
	got := Monthly(seed())
	want := []string{"2023-12", "2024-02", "2024-03"}
	if len(got) != len(want) {
		t.Fatalf("got %d months, want %d", len(got), len(want))
	}
	for i, m := range want {
		if got[i].Month != m {
			t.Errorf("month[%d] = %q, want %q", i, got[i].Month, m)
		}
	}
	if !got[2].Total.Equal(decimal.RequireFromString("35.50")) {
		t.Errorf("2024-03 total = %s, want 35.50", got[2].Total)
	}
}

func TestTopExpenses(t *testing.T) {
	got := TopExpenses(seed(), 2)
	if len(got) != 2 {
		t.Fatalf("got %d expenses, want 2", len(got))
	}
	if got[0].Merchant != "Gift Shop" || !got[1].Amount.Equal(decimal.RequireFromString("30.00")) {
		t.Errorf("top expenses = %+v", got)
	}
}

func TestSnapshot(t *testing.T) {
	if got := Snapshot(nil, PeriodAll); len(got) != 0 {
		t.Errorf("Snapshot(nil) = %v, want empty map", got)
	}

	snap := Snapshot(seed(), PeriodAll)
	if snap["total_spent"] != "115.50" {
		t.Errorf("total_spent = %v, want 115.50", snap["total_spent"])
	}
	if snap["expense_count"] != 4 {
		t.Errorf("expense_count = %v, want 4", snap["expense_count"])
	}
	byCat, ok := snap["by_category"].(map[string]string)
	if !ok || byCat["Groceries"] != "50.00" {
		t.Errorf("by_category = %v", snap["by_category"])
	}
}
