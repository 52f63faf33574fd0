package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendlens/spendlens/constants"
	"github.com/spendlens/spendlens/internal/common"
	"github.com/spendlens/spendlens/internal/utils"
)

// Entry is one expense row. Entries have no identifier of their own; callers
// address them by position in the store.
type Entry struct {
	Date     time.Time
	Merchant string
	Amount   decimal.Decimal
	Category constants.Category
	Notes    string
}

var csvHeader = []string{"Date", "Merchant", "Amount", "Category", "Notes"}

// Store keeps expenses in memory and persists them to a flat CSV file.
// It is not safe for concurrent use; the CLI is single-threaded.
type Store struct {
	path    string
	entries []Entry
	logger  *slog.Logger
}

func NewStore(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		return nil, common.NewAppError("LEDGER_ERROR", "ledger path is required", common.ErrInvalidInput)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create ledger dir: %w", err)
		}
	}
	s := &Store{path: path, logger: logger}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// load reads the CSV file. A missing file is an empty ledger; malformed rows
// are skipped with a warning rather than failing the whole load.
func (s *Store) load() error {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Debug("ledger.load.empty", "path", s.path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	// one bad row must not take the whole ledger down, so rows are read one
	// at a time and syntax errors are skipped like parse errors
	for i := 0; ; i++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			s.logger.Warn("ledger.load.skip_row", "path", s.path, "row", i+1, "error", err)
			continue
		}
		if i == 0 && len(row) > 0 && strings.EqualFold(row[0], "Date") {
			continue
		}
		entry, err := parseRow(row)
		if err != nil {
			s.logger.Warn("ledger.load.skip_row", "path", s.path, "row", i+1, "error", err)
			continue
		}
		s.entries = append(s.entries, entry)
	}
	s.logger.Debug("ledger.load.ok", "path", s.path, "entries", len(s.entries))
	return nil
}

func parseRow(row []string) (Entry, error) {
	if len(row) < 4 {
		return Entry{}, fmt.Errorf("expected at least 4 columns, got %d", len(row))
	}
	date, err := utils.ParseYMD(row[0])
	if err != nil {
		return Entry{}, fmt.Errorf("date %q: %w", row[0], err)
	}
	amount, err := decimal.NewFromString(row[2])
	if err != nil {
		return Entry{}, fmt.Errorf("amount %q: %w", row[2], err)
	}
	cat, _ := constants.Canonicalize(row[3])
	entry := Entry{
		Date:     date,
		Merchant: row[1],
		Amount:   amount,
		Category: cat,
	}
	if len(row) > 4 {
		entry.Notes = row[4]
	}
	return entry, nil
}

// Persist writes the full ledger back to disk, header first.
func (s *Store) Persist() error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create ledger: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, e := range s.entries {
		row := []string{
			utils.FormatYMD(e.Date),
			e.Merchant,
			e.Amount.StringFixed(2),
			string(e.Category),
			e.Notes,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush ledger: %w", err)
	}
	s.logger.Info("ledger.persist.ok", "path", s.path, "entries", len(s.entries))
	return nil
}

// Validate checks an entry before it enters the ledger.
func Validate(e Entry) error {
	if strings.TrimSpace(e.Merchant) == "" {
		return common.NewAppError("VALIDATION_ERROR", "merchant is required", common.ErrValidation)
	}
	if !e.Amount.IsPositive() {
		return common.NewAppError("VALIDATION_ERROR", "amount must be greater than zero", common.ErrValidation)
	}
	if _, ok := constants.Canonicalize(string(e.Category)); !ok {
		return common.NewAppError("VALIDATION_ERROR", fmt.Sprintf("unknown category %q", e.Category), common.ErrValidation)
	}
	return nil
}

// Add appends a validated entry and persists.
func (s *Store) Add(e Entry) error {
	if err := Validate(e); err != nil {
		return err
	}
	s.entries = append(s.entries, e)
	return s.Persist()
}

// Update replaces the entry at index i and persists.
func (s *Store) Update(i int, e Entry) error {
	if i < 0 || i >= len(s.entries) {
		return common.NewAppError("NOT_FOUND", fmt.Sprintf("no expense at index %d", i), common.ErrNotFound)
	}
	if err := Validate(e); err != nil {
		return err
	}
	s.entries[i] = e
	return s.Persist()
}

// Delete removes the entry at index i and persists. Indices of later
// entries shift down by one.
func (s *Store) Delete(i int) error {
	if i < 0 || i >= len(s.entries) {
		return common.NewAppError("NOT_FOUND", fmt.Sprintf("no expense at index %d", i), common.ErrNotFound)
	}
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	return s.Persist()
}

// Get returns the entry at index i.
func (s *Store) Get(i int) (Entry, error) {
	if i < 0 || i >= len(s.entries) {
		return Entry{}, common.NewAppError("NOT_FOUND", fmt.Sprintf("no expense at index %d", i), common.ErrNotFound)
	}
	return s.entries[i], nil
}

// Entries returns a copy of the ledger in insertion order.
func (s *Store) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Store) Len() int { return len(s.entries) }

// FilterOptions narrows a listing. Nil or zero-valued fields match all.
type FilterOptions struct {
	Start    *time.Time
	End      *time.Time
	Category constants.Category
	Merchant string // case-insensitive substring
}

// Matches reports whether an entry passes every set option.
func (o FilterOptions) Matches(e Entry) bool {
	if o.Start != nil && e.Date.Before(*o.Start) {
		return false
	}
	if o.End != nil && e.Date.After(*o.End) {
		return false
	}
	if o.Category != "" && e.Category != o.Category {
		return false
	}
	if o.Merchant != "" && !strings.Contains(strings.ToLower(e.Merchant), strings.ToLower(o.Merchant)) {
		return false
	}
	return true
}

// Filter returns entries matching every set option, preserving order.
func (s *Store) Filter(opts FilterOptions) []Entry {
	var out []Entry
	for _, e := range s.entries {
		if opts.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}
