package ledger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendlens/spendlens/constants"
)

func ymd(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func entry(date time.Time, merchant, amount string, cat constants.Category) Entry {
	return Entry{
		Date:     date,
		Merchant: merchant,
		Amount:   decimal.RequireFromString(amount),
		Category: cat,
	}
}

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "expenses.csv")
	s, err := NewStore(path, nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s, path
}

func TestStoreMissingFileIsEmpty(t *testing.T) {
	s, _ := newTestStore(t)
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0 for missing file", s.Len())
	}
}

func TestStoreRoundTrip(t *testing.T) {
	s, path := newTestStore(t)
	e := entry(ymd(2024, time.March, 1), "Acme Store", "20.00", constants.Groceries)
	e.Notes = "weekly shop"
	if err := s.Add(e); err != nil {
		t.Fatalf("Add: %v", err)
	}

	reloaded, err := NewStore(path, nil)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Len() != 1 {
		t.Fatalf("reloaded Len = %d, want 1", reloaded.Len())
	}
	got := reloaded.Entries()[0]
	if !got.Date.Equal(e.Date) || got.Merchant != e.Merchant || got.Notes != e.Notes {
		t.Errorf("reloaded entry = %+v, want %+v", got, e)
	}
	if !got.Amount.Equal(e.Amount) {
		t.Errorf("Amount = %s, want %s", got.Amount, e.Amount)
	}
	if got.Category != constants.Groceries {
		t.Errorf("Category = %q, want Groceries", got.Category)
	}
}

func TestStoreAmountKeepsTwoDecimals(t *testing.T) {
	s, path := newTestStore(t)
	if err := s.Add(entry(ymd(2024, time.March, 1), "Acme", "10.50", constants.Other)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "10.50") {
		t.Errorf("persisted file missing 10.50:\n%s", data)
	}
}

func TestStoreValidation(t *testing.T) {
	tests := []struct {
		name string
		e    Entry
	}{
		{"empty merchant", entry(ymd(2024, 1, 1), "  ", "5.00", constants.Other)},
		{"zero amount", entry(ymd(2024, 1, 1), "Acme", "0.00", constants.Other)},
		{"negative amount", entry(ymd(2024, 1, 1), "Acme", "-3.00", constants.Other)},
		{"unknown category", entry(ymd(2024, 1, 1), "Acme", "5.00", constants.Category("Gadgets"))},
	}
	s, _ := newTestStore(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Add(tt.e); err == nil {
				t.Errorf("Add(%+v) succeeded, want validation error", tt.e)
			}
		})
	}
	if s.Len() != 0 {
		t.Errorf("invalid entries were stored: Len = %d", s.Len())
	}
}

func TestStorePositionalOps(t *testing.T) {
	s, _ := newTestStore(t)
	for _, m := range []string{"First", "Second", "Third"} {
		if err := s.Add(entry(ymd(2024, 1, 1), m, "1.00", constants.Other)); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	if err := s.Update(1, entry(ymd(2024, 1, 2), "Second Edited", "2.00", constants.Dining)); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := s.Get(1)
	if err != nil || got.Merchant != "Second Edited" {
		t.Errorf("Get(1) = %+v, %v", got, err)
	}

	if err := s.Delete(0); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("Len = %d after delete, want 2", s.Len())
	}
	// later entries shift down
	if got, _ := s.Get(0); got.Merchant != "Second Edited" {
		t.Errorf("Get(0) after delete = %q, want Second Edited", got.Merchant)
	}

	if err := s.Delete(5); err == nil {
		t.Error("Delete(5) succeeded, want out-of-range error")
	}
	if err := s.Update(-1, entry(ymd(2024, 1, 1), "X", "1.00", constants.Other)); err == nil {
		t.Error("Update(-1) succeeded, want out-of-range error")
	}
}

func TestStoreSkipsMalformedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.csv")
	content := "Date,Merchant,Amount,Category,Notes\n" +
		"2024-03-01,Acme,20.00,Groceries,\n" +
		"not-a-date,Bad,1.00,Other,\n" +
		"2024-03-02,Beta,notanumber,Other,\n" +
		"2024-03-02,bro\"ken,1.00,Other,\n" +
		"2024-03-03,Gamma,3.00,Travel,trip\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := NewStore(path, nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2 valid rows", s.Len())
	}
	if got := s.Entries()[1].Merchant; got != "Gamma" {
		t.Errorf("second valid merchant = %q, want Gamma", got)
	}
}

func TestStoreFilter(t *testing.T) {
	s, _ := newTestStore(t)
	seed := []Entry{
		entry(ymd(2024, time.January, 5), "Acme Store", "10.00", constants.Groceries),
		entry(ymd(2024, time.February, 10), "Cafe Uno", "15.00", constants.Dining),
		entry(ymd(2024, time.March, 15), "Acme Fuel", "30.00", constants.Transportation),
	}
	for _, e := range seed {
		if err := s.Add(e); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	start := ymd(2024, time.February, 1)
	end := ymd(2024, time.February, 28)
	if got := s.Filter(FilterOptions{Start: &start, End: &end}); len(got) != 1 || got[0].Merchant != "Cafe Uno" {
		t.Errorf("date filter = %+v, want just Cafe Uno", got)
	}
	if got := s.Filter(FilterOptions{Category: constants.Groceries}); len(got) != 1 || got[0].Merchant != "Acme Store" {
		t.Errorf("category filter = %+v, want just Acme Store", got)
	}
	if got := s.Filter(FilterOptions{Merchant: "acme"}); len(got) != 2 {
		t.Errorf("merchant filter matched %d, want 2", len(got))
	}
	if got := s.Filter(FilterOptions{}); len(got) != 3 {
		t.Errorf("empty filter matched %d, want all 3", len(got))
	}
}
