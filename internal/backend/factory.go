package backend

import (
	"context"
	"fmt"

	"expenselog/internal/log"
	"expenselog/internal/store/excel"
	"expenselog/internal/store/memory"
	"expenselog/internal/store/sqlite"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// Create implements Factory.Create
func (f *DefaultFactory) Create(ctx context.Context, config Config) (*Result, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case ExcelBackend:
		return f.createExcelBackend(config)
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	case MemoryBackend:
		return f.createMemoryBackend()
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createExcelBackend(config Config) (*Result, error) {
	if config.ExpenseFile == "" {
		return nil, fmt.Errorf("expense file path is required for the excel backend")
	}
	s := excel.New(config.ExpenseFile, f.logger)
	f.logger.Info("Initialized excel backend", log.FieldPath, config.ExpenseFile)
	return &Result{Store: s}, nil
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*Result, error) {
	s, err := sqlite.New(config.SQLiteDBPath, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sqlite store: %w", err)
	}
	f.logger.Info("Initialized sqlite backend", log.FieldPath, config.SQLiteDBPath)
	return &Result{Store: s, Cleanup: s.Close}, nil
}

func (f *DefaultFactory) createMemoryBackend() (*Result, error) {
	f.logger.Info("Initialized memory backend")
	return &Result{Store: memory.New()}, nil
}
