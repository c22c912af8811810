package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"expenselog/internal/core"
	"expenselog/internal/log"
	"expenselog/internal/store"
)

// Entry pairs a record with its session handle. Handles are assigned fresh on
// every load and never persisted: on-disk identity stays the full value tuple,
// the handle only lets the UI address a row within the current session.
type Entry struct {
	Handle string
	Record core.ExpenseRecord
}

// Fields is the raw user input for a new expense.
type Fields struct {
	Date          string
	Category      string
	Amount        string
	Description   string
	AccountNumber string
	BankName      string
	WalletType    string
	WalletAddress string
}

// ExpenseService owns the in-memory expense collection and orchestrates
// validation, persistence and reporting on top of a store.
type ExpenseService struct {
	mu       sync.Mutex
	store    store.Store
	taxonomy core.Taxonomy
	logger   *log.Logger
	entries  []Entry
}

func NewExpenseService(s store.Store, taxonomy core.Taxonomy, logger *log.Logger) *ExpenseService {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &ExpenseService{
		store:    s,
		taxonomy: taxonomy,
		logger:   logger.WithComponent(log.ComponentService),
	}
}

// Taxonomy returns the immutable category taxonomy.
func (s *ExpenseService) Taxonomy() core.Taxonomy {
	return s.taxonomy
}

// Init prepares the store and loads the collection. A header mismatch is
// logged as a warning and startup continues; the file is left untouched.
func (s *ExpenseService) Init(ctx context.Context) error {
	if err := s.store.EnsureInitialized(ctx); err != nil {
		var mismatch *store.HeaderMismatchError
		if !errors.As(err, &mismatch) {
			return fmt.Errorf("initialize storage: %w", err)
		}
		s.logger.WarnContext(ctx, "Expense file header does not match the expected format; "+
			"back it up and delete it to regenerate, or fix the headers manually",
			log.FieldError, mismatch.Error())
	}
	return s.Reload(ctx)
}

// Reload re-reads the collection fresh from storage, assigning new handles.
func (s *ExpenseService) Reload(ctx context.Context) error {
	records, err := s.store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load expenses: %w", err)
	}
	entries := make([]Entry, len(records))
	for i, r := range records {
		entries[i] = Entry{Handle: uuid.NewString(), Record: r}
	}
	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
	return nil
}

// List returns a snapshot of the current collection in file row order.
func (s *ExpenseService) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entry(nil), s.entries...)
}

// Add validates the input, appends the record and persists the collection.
// Validation order: date (blank defaults to today), category, amount.
// On persistence failure the pre-mutation collection is restored.
func (s *ExpenseService) Add(ctx context.Context, f Fields) (Entry, error) {
	date := strings.TrimSpace(f.Date)
	if date == "" {
		date = time.Now().Format(core.DateFormat)
	}
	if _, err := time.Parse(core.DateFormat, date); err != nil {
		return Entry{}, fmt.Errorf("%w: %q", core.ErrInvalidDate, f.Date)
	}

	category := strings.TrimSpace(f.Category)
	if category == "" || !s.taxonomy.Contains(category) {
		return Entry{}, fmt.Errorf("%w: %q", core.ErrMissingCategory, f.Category)
	}

	amount, err := core.ParseAmount(f.Amount)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %q", core.ErrInvalidAmount, f.Amount)
	}

	entry := Entry{
		Handle: uuid.NewString(),
		Record: core.ExpenseRecord{
			Date:          date,
			Category:      category,
			Amount:        amount,
			Description:   strings.TrimSpace(f.Description),
			AccountNumber: strings.TrimSpace(f.AccountNumber),
			BankName:      strings.TrimSpace(f.BankName),
			WalletType:    strings.TrimSpace(f.WalletType),
			WalletAddress: strings.TrimSpace(f.WalletAddress),
		},
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.entries
	s.entries = append(append([]Entry(nil), s.entries...), entry)
	if err := s.store.SaveAll(ctx, s.recordsLocked()); err != nil {
		s.entries = snapshot
		return Entry{}, fmt.Errorf("persist expense: %w", err)
	}

	s.logger.InfoContext(ctx, "Expense added",
		log.FieldOperation, log.OpAdd,
		log.FieldCategory, entry.Record.Category,
		log.FieldAmount, entry.Record.Amount.String())
	return entry, nil
}

// Delete removes the first record structurally equal to the candidate and
// persists. It reports whether a match was found; when none is, neither the
// collection nor the file is touched.
func (s *ExpenseService) Delete(ctx context.Context, candidate core.ExpenseRecord) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, e := range s.entries {
		if e.Record.Equal(candidate) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}
	return true, s.removeLocked(ctx, idx)
}

// DeleteByHandle resolves a session handle to its row and removes it.
// Stale handles (from before a reload) report not found.
func (s *ExpenseService) DeleteByHandle(ctx context.Context, handle string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, e := range s.entries {
		if e.Handle == handle {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}
	return true, s.removeLocked(ctx, idx)
}

func (s *ExpenseService) removeLocked(ctx context.Context, idx int) error {
	snapshot := s.entries
	removed := s.entries[idx].Record

	next := make([]Entry, 0, len(s.entries)-1)
	next = append(next, s.entries[:idx]...)
	next = append(next, s.entries[idx+1:]...)
	s.entries = next

	if err := s.store.SaveAll(ctx, s.recordsLocked()); err != nil {
		s.entries = snapshot
		return fmt.Errorf("persist deletion: %w", err)
	}

	s.logger.InfoContext(ctx, "Expense deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldCategory, removed.Category,
		log.FieldAmount, removed.Amount.String())
	return nil
}

// Report reloads the collection fresh from storage and aggregates it.
// An empty collection yields core.ErrNoData.
func (s *ExpenseService) Report(ctx context.Context) (core.Report, error) {
	if err := s.Reload(ctx); err != nil {
		return core.Report{}, err
	}
	s.mu.Lock()
	records := s.recordsLocked()
	s.mu.Unlock()
	return core.BuildReport(records, s.taxonomy)
}

func (s *ExpenseService) recordsLocked() []core.ExpenseRecord {
	records := make([]core.ExpenseRecord, len(s.entries))
	for i, e := range s.entries {
		records[i] = e.Record
	}
	return records
}
