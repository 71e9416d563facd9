package account

import (
	"context"
	"fmt"
	"io"

	"khata/internal/export"
	"khata/internal/report"
)

// GenerateReports reads the history snapshot once, builds the matrix
// and its single table layout, echoes the table to console, and writes
// report.txt, report.html, category.csv, and payment.csv into dir.
// Every surface comes from the same snapshot, so concurrent external
// appends cannot make them disagree.
func (a *Account) GenerateReports(ctx context.Context, dir string, mode report.Mode, console io.Writer) error {
	records, err := a.store.All(ctx)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}

	table := report.Tabulate(report.BuildMatrix(records, a.now(), mode))

	if console != nil {
		if err := table.WriteConsole(console); err != nil {
			return fmt.Errorf("write console report: %w", err)
		}
	}
	if err := report.WriteFiles(dir, table); err != nil {
		return err
	}
	if err := export.WriteCategoryView(dir, records); err != nil {
		return err
	}
	if err := export.WritePaymentView(dir, records); err != nil {
		return err
	}

	a.logger.InfoContext(ctx, "Reports generated",
		"account", a.name,
		"dir", dir,
		"mode", string(mode),
		"records", len(records))
	return nil
}
