// Package memory is an in-process store used by tests and ephemeral
// sessions. It mirrors the whole-collection semantics of the file backends.
package memory

import (
	"context"
	"sync"

	"expenselog/internal/core"
)

type Store struct {
	mu      sync.Mutex
	records []core.ExpenseRecord
}

func New() *Store {
	return &Store{}
}

// Seed replaces the stored collection, bypassing context plumbing. Test helper.
func (s *Store) Seed(records []core.ExpenseRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]core.ExpenseRecord(nil), records...)
}

func (s *Store) EnsureInitialized(_ context.Context) error {
	return nil
}

func (s *Store) LoadAll(_ context.Context) ([]core.ExpenseRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.ExpenseRecord(nil), s.records...), nil
}

func (s *Store) SaveAll(_ context.Context, records []core.ExpenseRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]core.ExpenseRecord(nil), records...)
	return nil
}
