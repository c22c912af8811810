package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"expenselog/internal/core"
)

// CanonicalHeader is the fixed, ordered column set a valid expense file
// carries. Row values are persisted in this order.
func CanonicalHeader() []string {
	return []string{
		"Date", "Category", "Amount", "Description",
		"Account Number", "Bank Name", "Wallet Type", "Wallet Address",
	}
}

// ErrWriteFailed wraps persistence failures, e.g. the file being locked by
// another program. The in-memory collection is the caller's to preserve.
var ErrWriteFailed = errors.New("storage write failed")

// HeaderMismatchError is the non-fatal warning raised when an existing file
// has headers that differ from CanonicalHeader. The file is left untouched.
type HeaderMismatchError struct {
	Path string
	Want []string
	Got  []string
}

func (e *HeaderMismatchError) Error() string {
	return fmt.Sprintf("header mismatch in %s: want [%s], got [%s]",
		e.Path, strings.Join(e.Want, ", "), strings.Join(e.Got, ", "))
}

// Store is the port every storage adapter implements. The collection is
// always read and written whole; adapters never cache across calls.
type Store interface {
	// EnsureInitialized prepares the backing storage, creating it empty if
	// absent and recovering from unreadable state. A *HeaderMismatchError
	// return is a warning, not a failure.
	EnsureInitialized(ctx context.Context) error

	// LoadAll re-reads the entire collection fresh from storage.
	LoadAll(ctx context.Context) ([]core.ExpenseRecord, error)

	// SaveAll replaces the stored collection wholesale. Failures wrap
	// ErrWriteFailed and leave the previous on-disk state undefined.
	SaveAll(ctx context.Context, records []core.ExpenseRecord) error
}
