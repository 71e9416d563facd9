package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"khata/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteDB holds one connection shared by every account's SQLiteStore.
// Append order is preserved by the autoincrement row id.
type SQLiteDB struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at dbPath and
// applies pending migrations.
func OpenSQLite(dbPath string) (*SQLiteDB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", core.ErrStorageUnavailable)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", core.ErrStorageUnavailable)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

func (d *SQLiteDB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// Account returns the store view for one account's history.
func (d *SQLiteDB) Account(name string) *SQLiteStore {
	return &SQLiteStore{db: d.db, account: name}
}

// AppendFor appends a record into the named account's history. Used by
// the mirror worker, which handles records for many accounts over one
// connection.
func (d *SQLiteDB) AppendFor(ctx context.Context, account string, r core.Record) error {
	return d.Account(account).Append(ctx, r)
}

// SQLiteStore implements the ledger store contract over the records
// table, scoped to one account.
type SQLiteStore struct {
	db      *sql.DB
	account string
}

func (s *SQLiteStore) Append(ctx context.Context, r core.Record) error {
	if err := r.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO records (account, date, category, description, mode_of_payment, amount_cents)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.account, r.Date.String(), r.Category, r.Desc, r.ModeOfPayment, r.Amount.Cents)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

func (s *SQLiteStore) All(ctx context.Context) ([]core.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT date, category, description, mode_of_payment, amount_cents
		 FROM records WHERE account = ? ORDER BY id`,
		s.account)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []core.Record
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

func (s *SQLiteStore) Last(ctx context.Context) (core.Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT date, category, description, mode_of_payment, amount_cents
		 FROM records WHERE account = ? ORDER BY id DESC LIMIT 1`,
		s.account)
	rec, err := scanRecord(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Record{}, core.ErrEmptyHistory
	}
	if err != nil {
		return core.Record{}, err
	}
	return rec, nil
}

func scanRecord(scan func(dest ...any) error) (core.Record, error) {
	var (
		rawDate string
		rec     core.Record
	)
	if err := scan(&rawDate, &rec.Category, &rec.Desc, &rec.ModeOfPayment, &rec.Amount.Cents); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Record{}, err
		}
		return core.Record{}, fmt.Errorf("scan record: %w", core.ErrMalformedRecord)
	}
	date, err := core.ParseDate(rawDate)
	if err != nil {
		return core.Record{}, fmt.Errorf("date %q: %w", rawDate, core.ErrMalformedRecord)
	}
	rec.Date = date
	return rec, nil
}
