package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"khata/internal/core"
	"khata/internal/storage"
)

func TestTypeIsValid(t *testing.T) {
	assert.True(t, CSV.IsValid())
	assert.True(t, SQLite.IsValid())
	assert.True(t, Memory.IsValid())
	assert.False(t, Type("postgres").IsValid())
}

func TestFactoryRejectsBadConfig(t *testing.T) {
	f := NewFactory(nil)

	_, err := f.Open(Config{Type: "postgres", Account: "A"})
	require.Error(t, err)

	_, err = f.Open(Config{Type: CSV})
	require.Error(t, err)
}

func TestFactoryOpensCSV(t *testing.T) {
	base := t.TempDir()
	f := NewFactory(nil)

	res, err := f.Open(Config{Type: CSV, DataDir: base, Account: "JohnMitchell"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "JohnMitchell"), res.Dir)
	assert.IsType(t, (*storage.CSVStore)(nil), res.Store)
}

func TestFactoryOpensMemory(t *testing.T) {
	f := NewFactory(nil)
	res, err := f.Open(Config{Type: Memory, DataDir: "/tmp", Account: "A"})
	require.NoError(t, err)
	assert.IsType(t, (*storage.MemoryStore)(nil), res.Store)
}

func TestFactoryOpensSQLite(t *testing.T) {
	base := t.TempDir()
	f := NewFactory(nil)

	res, err := f.Open(Config{
		Type:         SQLite,
		DataDir:      base,
		Account:      "JohnMitchell",
		SQLiteDBPath: filepath.Join(base, "khata.db"),
	})
	require.NoError(t, err)
	require.NotNil(t, res.Cleanup)
	defer res.Cleanup()

	err = res.Store.Append(context.Background(), core.Record{
		Date:   core.NewDate(2024, 1, 1),
		Amount: core.Money{Cents: 100},
	})
	require.NoError(t, err)
}
