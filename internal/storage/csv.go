// Package storage provides the ledger store backends: the canonical
// per-account CSV file, a SQLite database, and an in-memory store for
// tests.
package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"khata/internal/core"
)

// LedgerFile is the name of the append-only history inside an account's
// namespace directory.
const LedgerFile = "ledger.csv"

// ledgerHeader fixes the column order of the durable record format.
// Readers resolve columns by name, never by position.
var ledgerHeader = []string{"date", "category", "desc", "mode_of_payment", "amount"}

// CSVStore keeps one account's history as an append-only headered CSV
// file. Every call opens, uses, and closes the file; no handle is held
// across calls.
type CSVStore struct {
	dir string
}

// NewCSVStore returns a store rooted at the account's namespace
// directory. The directory is created lazily on first append.
func NewCSVStore(dir string) *CSVStore {
	return &CSVStore{dir: dir}
}

// Dir returns the namespace directory; rendered reports and exports are
// written next to the ledger file.
func (s *CSVStore) Dir() string {
	return s.dir
}

// Append adds one record to the end of the ledger file, creating the
// namespace and writing the header exactly once on first use.
func (s *CSVStore) Append(_ context.Context, r core.Record) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create namespace %s: %w", s.dir, core.ErrStorageUnavailable)
	}

	f, err := os.OpenFile(s.path(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open ledger: %w", core.ErrStorageUnavailable)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat ledger: %w", core.ErrStorageUnavailable)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(ledgerHeader); err != nil {
			return fmt.Errorf("write ledger header: %w", err)
		}
	}
	row := []string{r.Date.String(), r.Category, r.Desc, r.ModeOfPayment, r.Amount.String()}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("write ledger row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush ledger: %w", err)
	}
	return f.Close()
}

// All returns the full history in append order. A missing ledger file
// reads as an empty history; a present but unreadable row is a hard
// failure.
func (s *CSVStore) All(_ context.Context) ([]core.Record, error) {
	f, err := os.Open(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open ledger: %w", core.ErrStorageUnavailable)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read ledger header: %w", core.ErrMalformedRecord)
	}

	cols, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var records []core.Record
	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ledger line %d: %w", line, core.ErrMalformedRecord)
		}
		rec, err := parseRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("ledger line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Last returns the most recently appended record.
func (s *CSVStore) Last(ctx context.Context) (core.Record, error) {
	records, err := s.All(ctx)
	if err != nil {
		return core.Record{}, err
	}
	if len(records) == 0 {
		return core.Record{}, core.ErrEmptyHistory
	}
	return records[len(records)-1], nil
}

func (s *CSVStore) path() string {
	return filepath.Join(s.dir, LedgerFile)
}

// columnIndex maps the ledger's field names to their positions in this
// file's header, so column order stays a compatibility concern of the
// writer only.
func columnIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, name := range ledgerHeader {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q: %w", name, core.ErrMalformedRecord)
		}
	}
	return cols, nil
}

func parseRow(row []string, cols map[string]int) (core.Record, error) {
	field := func(name string) (string, error) {
		i := cols[name]
		if i >= len(row) {
			return "", fmt.Errorf("missing field %q: %w", name, core.ErrMalformedRecord)
		}
		return row[i], nil
	}

	rawDate, err := field("date")
	if err != nil {
		return core.Record{}, err
	}
	date, err := core.ParseDate(rawDate)
	if err != nil {
		return core.Record{}, fmt.Errorf("date %q: %w", rawDate, core.ErrMalformedRecord)
	}

	rawAmount, err := field("amount")
	if err != nil {
		return core.Record{}, err
	}
	amount, err := core.ParseMoney(rawAmount)
	if err != nil {
		return core.Record{}, fmt.Errorf("amount %q: %w", rawAmount, core.ErrMalformedRecord)
	}

	category, err := field("category")
	if err != nil {
		return core.Record{}, err
	}
	desc, err := field("desc")
	if err != nil {
		return core.Record{}, err
	}
	mode, err := field("mode_of_payment")
	if err != nil {
		return core.Record{}, err
	}

	return core.Record{
		Date:          date,
		Category:      category,
		Desc:          desc,
		ModeOfPayment: mode,
		Amount:        amount,
	}, nil
}
