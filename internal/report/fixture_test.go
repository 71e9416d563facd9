package report

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"khata/internal/core"
	"khata/internal/ledgertest"
)

// Two years of synthetic history, none of it in the current year: the
// axis spans both generated years in full, and every category's row sum
// matches a direct sum over its records.
func TestBuildMatrixOverGeneratedHistory(t *testing.T) {
	today := core.NewDate(2024, 6, 15)
	records := ledgertest.Generate(2, today, rand.New(rand.NewSource(11)))

	m := BuildMatrix(records, today, ModeBalance)

	require.Len(t, m.Periods, 24)
	assert.Equal(t, Period{Month: 1, Year: 2022}, m.Periods[0])
	assert.Equal(t, Period{Month: 12, Year: 2023}, m.Periods[23])
	assert.ElementsMatch(t, ledgertest.Categories, m.Categories)

	for _, category := range m.Categories {
		var want int64
		for _, r := range records {
			if r.Category == category {
				want += r.Amount.Cents
			}
		}
		assert.Equal(t, want, m.Total(category).Cents, category)
	}
}
