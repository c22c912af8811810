package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"expenselog/internal/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "expenses.db"), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.EnsureInitialized(ctx); err != nil {
		t.Fatalf("EnsureInitialized: %v", err)
	}

	in := []core.ExpenseRecord{
		{Date: "2024-01-10", Category: "Groceries", Amount: decimal.RequireFromString("50.25"), Description: "weekly"},
		{Date: "2024-02-05", Category: "Office Rent", Amount: decimal.RequireFromString("200.00")},
	}
	if err := s.SaveAll(ctx, in); err != nil {
		t.Fatalf("SaveAll: %v", err)
	}

	out, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(out) != 2 || !out[0].Equal(in[0]) || !out[1].Equal(in[1]) {
		t.Fatalf("round trip mismatch:\n in=%+v\nout=%+v", in, out)
	}
}

func TestSQLiteSaveAllReplacesWholesale(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := []core.ExpenseRecord{
		{Date: "2024-01-10", Category: "Groceries", Amount: decimal.NewFromInt(10)},
		{Date: "2024-01-11", Category: "Dining Out", Amount: decimal.NewFromInt(20)},
	}
	if err := s.SaveAll(ctx, first); err != nil {
		t.Fatalf("SaveAll: %v", err)
	}

	second := []core.ExpenseRecord{
		{Date: "2024-03-01", Category: "Clothing", Amount: decimal.NewFromInt(30)},
	}
	if err := s.SaveAll(ctx, second); err != nil {
		t.Fatalf("second SaveAll: %v", err)
	}

	out, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(out) != 1 || !out[0].Equal(second[0]) {
		t.Fatalf("expected wholesale replacement, got %+v", out)
	}
}
