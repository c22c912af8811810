package core

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"12.34", "12.34", true},
		{" 50 ", "50", true},
		{"0.01", "0.01", true},
		{"abc", "", false},
		{"-5", "", false},
		{"0", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("ParseAmount(%q): unexpected error %v", tc.in, err)
			}
			if got.String() != tc.want {
				t.Fatalf("ParseAmount(%q) = %s, want %s", tc.in, got, tc.want)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("ParseAmount(%q): expected ErrInvalidAmount, got %v", tc.in, err)
		}
	}
}

func TestRecordValidate(t *testing.T) {
	tax := DefaultTaxonomy()
	good := ExpenseRecord{Date: "2024-01-15", Category: "Groceries", Amount: decimal.NewFromInt(10)}
	if err := good.Validate(tax); err != nil {
		t.Fatalf("expected valid record, got %v", err)
	}

	cases := []struct {
		name string
		rec  ExpenseRecord
		want error
	}{
		{"malformed date", ExpenseRecord{Date: "15/01/2024", Category: "Groceries", Amount: decimal.NewFromInt(1)}, ErrInvalidDate},
		{"empty date", ExpenseRecord{Category: "Groceries", Amount: decimal.NewFromInt(1)}, ErrInvalidDate},
		{"empty category", ExpenseRecord{Date: "2024-01-15", Amount: decimal.NewFromInt(1)}, ErrMissingCategory},
		{"unknown category", ExpenseRecord{Date: "2024-01-15", Category: "Yacht Fuel", Amount: decimal.NewFromInt(1)}, ErrMissingCategory},
		{"zero amount", ExpenseRecord{Date: "2024-01-15", Category: "Groceries"}, ErrInvalidAmount},
		{"negative amount", ExpenseRecord{Date: "2024-01-15", Category: "Groceries", Amount: decimal.NewFromInt(-5)}, ErrInvalidAmount},
	}
	for _, tc := range cases {
		if err := tc.rec.Validate(tax); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestRecordEqualTolerance(t *testing.T) {
	base := ExpenseRecord{Date: "2024-01-15", Category: "Groceries", Amount: decimal.RequireFromString("12.50"), Description: "weekly"}

	near := base
	near.Amount = decimal.RequireFromString("12.5004")
	if !base.Equal(near) {
		t.Fatalf("amounts within 0.001 should compare equal")
	}

	far := base
	far.Amount = decimal.RequireFromString("12.51")
	if base.Equal(far) {
		t.Fatalf("amounts beyond tolerance should not compare equal")
	}

	other := base
	other.Description = "monthly"
	if base.Equal(other) {
		t.Fatalf("differing text fields should not compare equal")
	}
}

func TestMonthKey(t *testing.T) {
	cases := []struct {
		date string
		want string
	}{
		{"2024-01-15", "2024-01"},
		{"2024-12-01", "2024-12"},
		{"not-a-date", InvalidMonthKey},
		{"", InvalidMonthKey},
	}
	for _, tc := range cases {
		r := ExpenseRecord{Date: tc.date}
		if got := r.MonthKey(); got != tc.want {
			t.Fatalf("MonthKey(%q) = %q, want %q", tc.date, got, tc.want)
		}
	}
}
