// Package backend selects and wires a ledger store implementation for
// one account.
package backend

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"khata/internal/storage"
	"khata/internal/store"
)

// Type names a store implementation.
type Type string

const (
	// CSV is the canonical backend: one headered ledger.csv per
	// account namespace.
	CSV Type = "csv"
	// SQLite keeps every account's history in one database file.
	SQLite Type = "sqlite"
	// Memory holds history in-process; it exists for tests and dry
	// runs.
	Memory Type = "memory"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case CSV, SQLite, Memory:
		return true
	default:
		return false
	}
}

// Config holds what the factory needs to open a store.
type Config struct {
	Type Type

	// DataDir is the base directory holding account namespaces.
	DataDir string

	// Account is the normalized holder name.
	Account string

	// SQLiteDBPath locates the database for the sqlite backend.
	SQLiteDBPath string
}

// Result is an opened store plus where the account's rendered artifacts
// belong and how to release the store.
type Result struct {
	Store store.Store
	// Dir is the account namespace directory. Reports and exports are
	// written here for every backend, so the file surface of the
	// ledger stays the same regardless of where history lives.
	Dir     string
	Cleanup func() error
}

// Factory creates stores based on configuration.
type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// Open wires up the configured backend for one account.
func (f *Factory) Open(cfg Config) (*Result, error) {
	if !cfg.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.Type)
	}
	if cfg.Account == "" {
		return nil, fmt.Errorf("backend config missing account")
	}
	dir := filepath.Join(cfg.DataDir, cfg.Account)

	switch cfg.Type {
	case SQLite:
		db, err := storage.OpenSQLite(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite backend: %w", err)
		}
		f.logger.Info("Initialized sqlite backend",
			"db_path", cfg.SQLiteDBPath, "account", cfg.Account)
		return &Result{Store: db.Account(cfg.Account), Dir: dir, Cleanup: db.Close}, nil

	case Memory:
		f.logger.Info("Initialized memory backend", "account", cfg.Account)
		return &Result{Store: storage.NewMemoryStore(), Dir: dir}, nil

	default:
		f.logger.Info("Initialized csv backend", "dir", dir, "account", cfg.Account)
		return &Result{Store: storage.NewCSVStore(dir), Dir: dir}, nil
	}
}
