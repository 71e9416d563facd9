package ledgertest

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"khata/internal/core"
	"khata/internal/storage"
)

func TestGenerateShape(t *testing.T) {
	today := core.NewDate(2024, 6, 15)
	records := Generate(2, today, rand.New(rand.NewSource(1)))

	require.Len(t, records, 2*12*len(Categories))
	for _, r := range records {
		assert.GreaterOrEqual(t, r.Date.Year(), 2022)
		assert.Less(t, r.Date.Year(), 2024)
		assert.GreaterOrEqual(t, r.Date.Day(), 1)
		assert.LessOrEqual(t, r.Date.Day(), 28)
		assert.Contains(t, Categories, r.Category)
		assert.Contains(t, PaymentModes, r.ModeOfPayment)
		assert.GreaterOrEqual(t, r.Amount.Cents, int64(0))
		assert.Less(t, r.Amount.Cents, int64(1000000))
	}
}

func TestGenerateDeterministicUnderSeed(t *testing.T) {
	today := core.NewDate(2024, 6, 15)
	first := Generate(1, today, rand.New(rand.NewSource(42)))
	second := Generate(1, today, rand.New(rand.NewSource(42)))
	assert.Equal(t, first, second)
}

func TestSeed(t *testing.T) {
	st := storage.NewMemoryStore()
	today := core.NewDate(2024, 6, 15)
	records := Generate(1, today, rand.New(rand.NewSource(7)))

	require.NoError(t, Seed(context.Background(), st, records))

	stored, err := st.All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, records, stored)
}
