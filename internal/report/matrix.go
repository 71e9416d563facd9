// Package report builds the category × period aggregation matrix from a
// ledger history and renders it to console, plain text, and HTML.
package report

import (
	"sort"
	"strconv"

	"khata/internal/core"
)

// Mode selects what each record contributes to its cell.
type Mode string

const (
	// ModeBalance sums the stored amount field verbatim. Because the
	// ledger stores running balances rather than deltas, these totals
	// are sums of balances, not spend; kept as the default for
	// compatibility with existing ledgers.
	ModeBalance Mode = "balance"

	// ModeDelta sums per-row flows derived by differencing adjacent
	// rows in append order. The first row contributes its full amount.
	ModeDelta Mode = "delta"
)

// Valid reports whether the mode is one of the known values.
func (m Mode) Valid() bool {
	return m == ModeBalance || m == ModeDelta
}

// Period is one reporting column: a (month, year) pair.
type Period struct {
	Month int
	Year  int
}

// String renders the column header label, e.g. "1-2024".
func (p Period) String() string {
	return strconv.Itoa(p.Month) + "-" + strconv.Itoa(p.Year)
}

// Matrix is the derived category × period table of summed amounts.
// Ephemeral: rebuilt from the full record set on every report request,
// never persisted.
type Matrix struct {
	// Categories in first-seen order. The order records were appended
	// in is the one stable, reproducible ordering the history offers.
	Categories []string

	// Periods is the shared column axis: years ascending, months
	// ascending within each year, the current year truncated at the
	// current month.
	Periods []Period

	// Cells[i][j] is the total for Categories[i] in Periods[j].
	Cells [][]core.Money
}

type cellKey struct {
	category string
	year     int
	month    int
}

// BuildMatrix derives the aggregation matrix from the full record set.
// today fixes the truncation point of the current year's period axis.
// The records slice is read once; a single pre-aggregation pass keys
// totals by (category, year, month), then cells are filled by lookup.
func BuildMatrix(records []core.Record, today core.Date, mode Mode) Matrix {
	m := Matrix{
		Categories: distinctCategories(records),
		Periods:    periodAxis(records, today),
	}

	totals := make(map[cellKey]int64, len(records))
	prev := int64(0)
	for _, r := range records {
		value := r.Amount.Cents
		if mode == ModeDelta {
			value = r.Amount.Cents - prev
			prev = r.Amount.Cents
		}
		key := cellKey{category: r.Category, year: r.Date.Year(), month: r.Date.Month()}
		totals[key] += value
	}

	m.Cells = make([][]core.Money, len(m.Categories))
	for i, category := range m.Categories {
		row := make([]core.Money, len(m.Periods))
		for j, p := range m.Periods {
			row[j] = core.Money{Cents: totals[cellKey{category: category, year: p.Year, month: p.Month}]}
		}
		m.Cells[i] = row
	}
	return m
}

// Total returns the sum of every cell in the category's row.
func (m Matrix) Total(category string) core.Money {
	for i, c := range m.Categories {
		if c != category {
			continue
		}
		var sum int64
		for _, cell := range m.Cells[i] {
			sum += cell.Cents
		}
		return core.Money{Cents: sum}
	}
	return core.Money{}
}

func distinctCategories(records []core.Record) []string {
	seen := make(map[string]struct{}, len(records))
	var categories []string
	for _, r := range records {
		if _, ok := seen[r.Category]; ok {
			continue
		}
		seen[r.Category] = struct{}{}
		categories = append(categories, r.Category)
	}
	return categories
}

// periodAxis lists every (month, year) column: all distinct years
// ascending, months 1-12 within each, except the current year which
// stops at the current month. Months beyond today are not yet
// meaningful and must be omitted.
func periodAxis(records []core.Record, today core.Date) []Period {
	seen := make(map[int]struct{})
	var years []int
	for _, r := range records {
		y := r.Date.Year()
		if _, ok := seen[y]; ok {
			continue
		}
		seen[y] = struct{}{}
		years = append(years, y)
	}
	sort.Ints(years)

	var periods []Period
	for _, y := range years {
		monthEnd := 12
		if y == today.Year() {
			monthEnd = today.Month()
		}
		for month := 1; month <= monthEnd; month++ {
			periods = append(periods, Period{Month: month, Year: y})
		}
	}
	return periods
}
