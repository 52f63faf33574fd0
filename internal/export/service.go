package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/spendlens/spendlens/internal/ledger"
)

// Service produces XLSX bytes from ledger entries.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// WriteXLSX returns an XLSX workbook with one row per expense, in ledger
// order.
func (s *Service) WriteXLSX(entries []ledger.Entry) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Expenses"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{"Date", "Merchant", "Amount", "Category", "Notes"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, e := range entries {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		if !e.Date.IsZero() {
			write(1, e.Date.Format("2006-01-02"))
		} else {
			write(1, "")
		}
		write(2, e.Merchant)
		write(3, e.Amount.StringFixed(2))
		write(4, string(e.Category))
		write(5, truncate(e.Notes, 140))
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 14) // date
	_ = f.SetColWidth(sheet, "B", "B", 28) // merchant
	_ = f.SetColWidth(sheet, "C", "C", 14) // amount
	_ = f.SetColWidth(sheet, "D", "D", 22) // category
	_ = f.SetColWidth(sheet, "E", "E", 48) // notes

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(entries),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
