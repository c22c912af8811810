// Package sqlite keeps the expense collection in a local SQLite database
// while preserving the whole-collection replacement semantics of the port:
// SaveAll clears and rewrites the table in one transaction.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"expenselog/internal/core"
	"expenselog/internal/log"
	"expenselog/internal/store"
)

type Store struct {
	db     *sql.DB
	logger *log.Logger
}

func New(dbPath string, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db, logger: logger.WithComponent(log.ComponentStore)}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// EnsureInitialized is satisfied by the schema migrations run in New.
func (s *Store) EnsureInitialized(_ context.Context) error {
	return nil
}

// LoadAll returns every record in insertion order. Amounts are stored as
// canonical decimal text, so they survive the round trip exactly.
func (s *Store) LoadAll(ctx context.Context) ([]core.ExpenseRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, category, amount, description,
		       account_number, bank_name, wallet_type, wallet_address
		FROM expenses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var records []core.ExpenseRecord
	for rows.Next() {
		var r core.ExpenseRecord
		var amount string
		if err := rows.Scan(&r.Date, &r.Category, &amount, &r.Description,
			&r.AccountNumber, &r.BankName, &r.WalletType, &r.WalletAddress); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			s.logger.WarnContext(ctx, "Invalid amount in database, defaulting to 0",
				log.FieldAmount, amount)
			d = decimal.Zero
		}
		r.Amount = d
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return records, nil
}

// SaveAll replaces the stored collection wholesale inside one transaction.
func (s *Store) SaveAll(ctx context.Context, records []core.ExpenseRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrWriteFailed, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return fmt.Errorf("%w: %v", store.ErrWriteFailed, err)
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO expenses (date, category, amount, description,
		                      account_number, bank_name, wallet_type, wallet_address)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrWriteFailed, err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, r.Date, r.Category, r.Amount.String(),
			r.Description, r.AccountNumber, r.BankName, r.WalletType, r.WalletAddress); err != nil {
			return fmt.Errorf("%w: %v", store.ErrWriteFailed, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrWriteFailed, err)
	}
	s.logger.InfoContext(ctx, "Expense table rewritten", log.FieldRows, len(records))
	return nil
}
