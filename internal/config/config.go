package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
)

type Config struct {
	// HTTP UI
	ListenAddr string

	// Storage
	StorageBackend string
	ExpenseFile    string
	SQLiteDBPath   string

	// Logging
	LogLevel string
}

func Load() *Config {
	return &Config{
		ListenAddr:     getEnv("LISTEN_ADDR", "127.0.0.1:8089"),
		StorageBackend: getEnv("STORAGE_BACKEND", "excel"),
		ExpenseFile:    getEnv("EXPENSE_FILE", "./data/expenses.xlsx"),
		SQLiteDBPath:   getEnv("SQLITE_DB_PATH", "./data/expenses.db"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if _, _, err := net.SplitHostPort(c.ListenAddr); err != nil {
		errors = append(errors, fmt.Sprintf("invalid listen address '%s': %v", c.ListenAddr, err))
	}

	validBackends := []string{"excel", "sqlite", "memory"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.StorageBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid storage backend '%s': must be one of %v", c.StorageBackend, validBackends))
	}

	if c.StorageBackend == "excel" {
		if c.ExpenseFile == "" {
			errors = append(errors, "expense file path cannot be empty when using excel backend")
		} else if ext := strings.ToLower(filepath.Ext(c.ExpenseFile)); ext != ".xlsx" {
			errors = append(errors, fmt.Sprintf("expense file '%s' must have an .xlsx extension", c.ExpenseFile))
		} else if err := ensureDir(c.ExpenseFile); err != nil {
			errors = append(errors, err.Error())
		}
	}

	if c.StorageBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else if err := ensureDir(c.SQLiteDBPath); err != nil {
			errors = append(errors, err.Error())
		}
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be debug, info, warn or error", c.LogLevel))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("cannot create directory '%s': %v", dir, err)
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
