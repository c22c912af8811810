package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the canonical date layout for persisted records.
const DateFormat = "2006-01-02"

// InvalidMonthKey is the bucket used by reports for records whose date
// no longer parses under DateFormat.
const InvalidMonthKey = "Invalid Date"

var (
	ErrInvalidDate     = errors.New("invalid date, expected YYYY-MM-DD")
	ErrMissingCategory = errors.New("missing or unknown category")
	ErrInvalidAmount   = errors.New("amount must be a positive number")
)

// amountTolerance absorbs the round-trip of amounts through display text.
var amountTolerance = decimal.New(1, -3) // 0.001

type ExpenseRecord struct {
	Date          string
	Category      string
	Amount        decimal.Decimal
	Description   string
	AccountNumber string
	BankName      string
	WalletType    string
	WalletAddress string
}

// ParseAmount converts user-entered amount text to a strictly positive decimal.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// Validate checks the record invariants against the given taxonomy.
func (r ExpenseRecord) Validate(tax Taxonomy) error {
	if _, err := time.Parse(DateFormat, r.Date); err != nil {
		return ErrInvalidDate
	}
	if strings.TrimSpace(r.Category) == "" || !tax.Contains(r.Category) {
		return ErrMissingCategory
	}
	if !r.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

// Equal reports structural identity: every text field matches exactly and the
// amounts differ by at most 0.001. Records carry no persisted identifier, so
// this is the identity used for deletion.
func (r ExpenseRecord) Equal(other ExpenseRecord) bool {
	return r.Date == other.Date &&
		r.Category == other.Category &&
		r.Description == other.Description &&
		r.AccountNumber == other.AccountNumber &&
		r.BankName == other.BankName &&
		r.WalletType == other.WalletType &&
		r.WalletAddress == other.WalletAddress &&
		r.Amount.Sub(other.Amount).Abs().LessThanOrEqual(amountTolerance)
}

// MonthKey derives the YYYY-MM report bucket for the record. Records whose
// date fails to parse land in InvalidMonthKey instead of being dropped.
func (r ExpenseRecord) MonthKey() string {
	t, err := time.Parse(DateFormat, r.Date)
	if err != nil {
		return InvalidMonthKey
	}
	return t.Format("2006-01")
}
