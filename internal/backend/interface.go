package backend

import (
	"context"

	"expenselog/internal/store"
)

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// Result contains the store instance and optional cleanup function.
type Result struct {
	Store   store.Store
	Cleanup CleanupFunc
}

// Factory creates stores based on configuration.
type Factory interface {
	Create(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for store creation.
type Config struct {
	Type Type

	// Excel specific
	ExpenseFile string

	// SQLite specific
	SQLiteDBPath string
}

// Type selects the storage backend.
type Type string

const (
	ExcelBackend  Type = "excel"
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case ExcelBackend, SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
