// Package excel persists the expense collection as a single-sheet .xlsx
// workbook with a fixed header row. It is the canonical backend: the file is
// read and rewritten whole on every operation, which is an explicit
// simplicity-over-throughput tradeoff for personal-scale record volumes.
package excel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"expenselog/internal/core"
	"expenselog/internal/log"
	"expenselog/internal/store"
)

// sheetName matches the default sheet produced by common spreadsheet tools,
// so hand-made files load without renaming.
const sheetName = "Sheet1"

type Store struct {
	path   string
	logger *log.Logger
}

func New(path string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Store{path: path, logger: logger.WithComponent(log.ComponentStore)}
}

// Path returns the workbook location on disk.
func (s *Store) Path() string {
	return s.path
}

// EnsureInitialized creates the workbook with only the header row when
// absent, recreates it when unreadable, and returns a *HeaderMismatchError
// (file untouched) when an existing header differs from the canonical one.
func (s *Store) EnsureInitialized(ctx context.Context) error {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		if err := s.writeHeaderOnly(); err != nil {
			return err
		}
		s.logger.InfoContext(ctx, "Expense file created with headers", log.FieldPath, s.path)
		return nil
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		s.logger.WarnContext(ctx, "Expense file unreadable, recreating",
			log.FieldPath, s.path, log.FieldError, err)
		return s.writeHeaderOnly()
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		s.logger.WarnContext(ctx, "Expense sheet unreadable, recreating",
			log.FieldPath, s.path, log.FieldError, err)
		return s.writeHeaderOnly()
	}

	want := store.CanonicalHeader()
	var got []string
	if len(rows) > 0 {
		got = rows[0]
	}
	if !headerEqual(got, want) {
		return &store.HeaderMismatchError{Path: s.path, Want: want, Got: got}
	}
	return nil
}

// LoadAll re-reads every data row fresh from disk. Missing trailing cells
// default to empty strings; a non-numeric amount is coerced to zero with a
// warning rather than failing the whole load.
func (s *Store) LoadAll(ctx context.Context) ([]core.ExpenseRecord, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		s.logger.ErrorContext(ctx, "Failed to read expense file, treating as empty",
			log.FieldPath, s.path, log.FieldError, err)
		return nil, nil
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to read expense sheet, treating as empty",
			log.FieldPath, s.path, log.FieldError, err)
		return nil, nil
	}
	if len(rows) <= 1 {
		return nil, nil
	}

	records := make([]core.ExpenseRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		amount := decimal.Zero
		if raw := cell(row, 2); raw != "" {
			parsed, err := decimal.NewFromString(raw)
			if err != nil {
				// Row numbers are 1-based and include the header.
				s.logger.WarnContext(ctx, "Invalid amount in expense file, defaulting to 0",
					log.FieldRow, i+2, log.FieldAmount, raw)
			} else {
				amount = parsed
			}
		}
		records = append(records, core.ExpenseRecord{
			Date:          cell(row, 0),
			Category:      cell(row, 1),
			Amount:        amount,
			Description:   cell(row, 3),
			AccountNumber: cell(row, 4),
			BankName:      cell(row, 5),
			WalletType:    cell(row, 6),
			WalletAddress: cell(row, 7),
		})
	}
	return records, nil
}

// SaveAll rewrites the whole workbook in canonical column order. The amount
// lands in a numeric cell; everything else is text.
func (s *Store) SaveAll(ctx context.Context, records []core.ExpenseRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := s.setRow(f, 1, headerCells()); err != nil {
		return fmt.Errorf("%w: %v", store.ErrWriteFailed, err)
	}
	for i, r := range records {
		cells := []interface{}{
			r.Date, r.Category, r.Amount.InexactFloat64(), r.Description,
			r.AccountNumber, r.BankName, r.WalletType, r.WalletAddress,
		}
		if err := s.setRow(f, i+2, cells); err != nil {
			return fmt.Errorf("%w: %v", store.ErrWriteFailed, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("%w: %v", store.ErrWriteFailed, err)
	}
	if err := f.SaveAs(s.path); err != nil {
		return fmt.Errorf("%w: %v", store.ErrWriteFailed, err)
	}
	s.logger.InfoContext(ctx, "Expense file saved",
		log.FieldPath, s.path, log.FieldRows, len(records))
	return nil
}

func (s *Store) writeHeaderOnly() error {
	f := excelize.NewFile()
	defer f.Close()
	if err := s.setRow(f, 1, headerCells()); err != nil {
		return fmt.Errorf("%w: %v", store.ErrWriteFailed, err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("%w: %v", store.ErrWriteFailed, err)
	}
	if err := f.SaveAs(s.path); err != nil {
		return fmt.Errorf("%w: %v", store.ErrWriteFailed, err)
	}
	return nil
}

func (s *Store) setRow(f *excelize.File, row int, cells []interface{}) error {
	ref, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheetName, ref, &cells)
}

func headerCells() []interface{} {
	header := store.CanonicalHeader()
	cells := make([]interface{}, len(header))
	for i, h := range header {
		cells[i] = h
	}
	return cells
}

func headerEqual(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

// cell returns the i-th value of a row, defaulting to "" when the sheet
// trimmed trailing empty cells.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
