// Package export writes the derived tabular views of a ledger history:
// the category view and the payment view. Both are re-derived from the
// full record set on every call and preserve row order.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"khata/internal/core"
)

const (
	// CategoryFile lists date, category, desc, amount per record.
	CategoryFile = "category.csv"
	// PaymentFile lists date, mode_of_payment, desc, amount per record.
	PaymentFile = "payment.csv"
)

// WriteCategoryView writes category.csv into dir.
func WriteCategoryView(dir string, records []core.Record) error {
	return writeView(filepath.Join(dir, CategoryFile),
		[]string{"date", "category", "desc", "amount"},
		func(r core.Record) []string {
			return []string{r.Date.String(), r.Category, r.Desc, r.Amount.String()}
		},
		records)
}

// WritePaymentView writes payment.csv into dir.
func WritePaymentView(dir string, records []core.Record) error {
	return writeView(filepath.Join(dir, PaymentFile),
		[]string{"date", "mode_of_payment", "desc", "amount"},
		func(r core.Record) []string {
			return []string{r.Date.String(), r.ModeOfPayment, r.Desc, r.Amount.String()}
		},
		records)
}

// writeView rewrites the file from scratch: views are projections, not
// history, so overwriting them never violates the append-only ledger.
func writeView(path string, header []string, project func(core.Record) []string, records []core.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create export directory: %w", core.ErrStorageUnavailable)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), core.ErrStorageUnavailable)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		if err := w.Write(project(r)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}
