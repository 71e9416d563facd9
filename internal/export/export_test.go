package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"khata/internal/core"
)

func sampleRecords() []core.Record {
	return []core.Record{
		{
			Date:          core.NewDate(2024, 1, 1),
			Category:      "Credit",
			Desc:          "Initial amount credited",
			ModeOfPayment: "UPI",
			Amount:        core.Money{Cents: 200000},
		},
		{
			Date:          core.NewDate(2024, 1, 5),
			Category:      "Food",
			Desc:          "groceries",
			ModeOfPayment: "Card Payment",
			Amount:        core.Money{Cents: 150000},
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteCategoryView(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteCategoryView(dir, sampleRecords()))

	rows := readCSV(t, filepath.Join(dir, CategoryFile))
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"date", "category", "desc", "amount"}, rows[0])
	assert.Equal(t, []string{"2024-01-01", "Credit", "Initial amount credited", "2000.00"}, rows[1])
	assert.Equal(t, []string{"2024-01-05", "Food", "groceries", "1500.00"}, rows[2])
}

func TestWritePaymentView(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WritePaymentView(dir, sampleRecords()))

	rows := readCSV(t, filepath.Join(dir, PaymentFile))
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"date", "mode_of_payment", "desc", "amount"}, rows[0])
	assert.Equal(t, []string{"2024-01-01", "UPI", "Initial amount credited", "2000.00"}, rows[1])
	assert.Equal(t, []string{"2024-01-05", "Card Payment", "groceries", "1500.00"}, rows[2])
}

// Joining the two views on date+desc must reconstruct date, desc, and
// amount of the original records exactly.
func TestViewsRoundTripOnDateAndDesc(t *testing.T) {
	dir := t.TempDir()
	records := sampleRecords()
	require.NoError(t, WriteCategoryView(dir, records))
	require.NoError(t, WritePaymentView(dir, records))

	type half struct{ amount string }
	categoryRows := readCSV(t, filepath.Join(dir, CategoryFile))[1:]
	paymentRows := readCSV(t, filepath.Join(dir, PaymentFile))[1:]

	byKey := make(map[[2]string]half)
	for _, row := range categoryRows {
		byKey[[2]string{row[0], row[2]}] = half{amount: row[3]}
	}

	require.Len(t, paymentRows, len(records))
	for i, row := range paymentRows {
		key := [2]string{row[0], row[2]}
		cat, ok := byKey[key]
		require.True(t, ok, "payment row %v has no category twin", row)
		assert.Equal(t, cat.amount, row[3])

		assert.Equal(t, records[i].Date.String(), row[0])
		assert.Equal(t, records[i].Desc, row[2])
		assert.Equal(t, records[i].Amount.String(), row[3])
	}
}

func TestViewsOverwriteOnRegenerate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteCategoryView(dir, sampleRecords()))
	require.NoError(t, WriteCategoryView(dir, sampleRecords()[:1]))

	rows := readCSV(t, filepath.Join(dir, CategoryFile))
	assert.Len(t, rows, 2)
}
