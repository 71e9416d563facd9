package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"khata/internal/core"
)

func sampleTable(t *testing.T) Table {
	t.Helper()
	today := core.NewDate(2024, 2, 20)
	records := []core.Record{
		rec(core.NewDate(2024, 1, 1), "Credit", 250000),
		rec(core.NewDate(2024, 2, 5), "Food", 150000),
	}
	return Tabulate(BuildMatrix(records, today, ModeBalance))
}

func TestTabulate(t *testing.T) {
	table := sampleTable(t)
	assert.Equal(t, []string{"Category", "1-2024", "2-2024"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"Credit", "2500.00", "0.00"}, table.Rows[0])
	assert.Equal(t, []string{"Food", "0.00", "1500.00"}, table.Rows[1])
}

func TestTextLayout(t *testing.T) {
	table := sampleTable(t)
	lines := strings.Split(strings.TrimRight(table.Text(), "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "Category  "+"      1-2024"+"      2-2024", lines[0])
	assert.Equal(t, "Credit    "+"     2500.00"+"        0.00", lines[1])
	assert.Equal(t, "Food      "+"        0.00"+"     1500.00", lines[2])
}

func TestTextTruncatesLongCategories(t *testing.T) {
	table := Table{
		Header: []string{"Category", "1-2024"},
		Rows:   [][]string{{"Entertainment", "10.00"}},
	}
	lines := strings.Split(table.Text(), "\n")
	assert.True(t, strings.HasPrefix(lines[1], "Entertainm"))
	assert.False(t, strings.Contains(lines[1], "Entertainme"))
}

func TestConsoleMatchesTextFile(t *testing.T) {
	table := sampleTable(t)

	var console bytes.Buffer
	require.NoError(t, table.WriteConsole(&console))

	dir := t.TempDir()
	require.NoError(t, WriteFiles(dir, table))

	fromFile, err := os.ReadFile(filepath.Join(dir, TextFile))
	require.NoError(t, err)
	assert.Equal(t, console.Bytes(), fromFile)
}

func TestHTMLDocument(t *testing.T) {
	table := sampleTable(t)
	html, err := table.HTML()
	require.NoError(t, err)

	assert.Contains(t, html, "border-collapse: collapse")
	assert.Contains(t, html, "<th>Category</th>")
	assert.Contains(t, html, "<th>1-2024</th>")
	assert.Contains(t, html, "<th>2-2024</th>")
	assert.Contains(t, html, "<td>Credit</td>")
	assert.Contains(t, html, "<td>2500.00</td>")
	assert.Contains(t, html, "<td>1500.00</td>")
}

func TestHTMLEscapesCategoryText(t *testing.T) {
	table := Table{
		Header: []string{"Category", "1-2024"},
		Rows:   [][]string{{"<script>", "1.00"}},
	}
	html, err := table.HTML()
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "JohnMitchell")
	require.NoError(t, WriteFiles(dir, sampleTable(t)))

	for _, name := range []string{TextFile, HTMLFile} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.NotZero(t, info.Size())
	}
}
