package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/advocates/pkg/observability"
	"github.com/platinummonkey/advocates/pkg/storage"
)

func testLogger() *observability.Logger {
	return observability.NewLogger(observability.ErrorLevel, &bytes.Buffer{})
}

func TestOpenStore_Bleve(t *testing.T) {
	cfg := storage.DefaultConfig()
	cfg.Type = storage.TypeBleve

	backend, err := openStore(context.Background(), cfg, testLogger())
	require.NoError(t, err)
	defer backend.store.Close()

	assert.Nil(t, backend.db)
	require.Contains(t, backend.checks, "search_index")
	assert.NoError(t, backend.checks["search_index"](context.Background()))

	rows, err := backend.store.FindByPhone(context.Background(), 2125551234)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestOpenStore_BleveSeedFile(t *testing.T) {
	cfg := storage.DefaultConfig()
	cfg.Type = storage.TypeBleve
	cfg.SeedFile = filepath.Join("..", "..", "pkg", "seed", "testdata", "small.yaml")

	backend, err := openStore(context.Background(), cfg, testLogger())
	require.NoError(t, err)
	defer backend.store.Close()

	rows, err := backend.store.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Boston", rows[0].City)
}

func TestOpenStore_Errors(t *testing.T) {
	missing := storage.DefaultConfig()
	missing.Type = storage.TypeBleve
	missing.SeedFile = filepath.Join(t.TempDir(), "missing.yaml")

	unknown := storage.DefaultConfig()
	unknown.Type = "mongo"

	for name, cfg := range map[string]storage.Config{"missing seed file": missing, "unknown type": unknown} {
		t.Run(name, func(t *testing.T) {
			_, err := openStore(context.Background(), cfg, testLogger())
			assert.Error(t, err)
		})
	}
}
