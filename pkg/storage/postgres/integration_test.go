//go:build integration

package postgres

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/platinummonkey/advocates/pkg/advocates"
	"github.com/platinummonkey/advocates/pkg/seed"
)

// setupPostgresStore starts a PostgreSQL container with full-text search
// support, applies the schema and seeds the default fixtures
func setupPostgresStore(t *testing.T) (*Store, []advocates.Advocate) {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("advocates_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")

	t.Cleanup(func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := container.Terminate(cleanupCtx); err != nil {
			t.Logf("Warning: Failed to terminate container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	conn, err := NewConnectionManager(ConnectionConfig{
		PrimaryURL: connStr,
		MaxConns:   5,
		MinConns:   1,
		Timeout:    10 * time.Second,
	}, nil)
	require.NoError(t, err)

	store, err := Open(ctx, conn)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	records, err := seed.Default()
	require.NoError(t, err)

	_, err = seed.Apply(ctx, store, records)
	require.NoError(t, err)

	return store, records
}

func TestIntegration_FullTextSearch(t *testing.T) {
	store, records := setupPostgresStore(t)
	ctx := context.Background()

	t.Run("list returns every row up to the limit", func(t *testing.T) {
		results, err := store.List(ctx, 50)
		require.NoError(t, err)
		assert.Len(t, results, len(records))
		for _, r := range results {
			assert.NotNil(t, r.CreatedAt, "created_at defaults to CURRENT_TIMESTAMP")
		}
	})

	t.Run("list honors the limit", func(t *testing.T) {
		results, err := store.List(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("phone lookup matches the numeric value", func(t *testing.T) {
		results, err := store.FindByPhone(ctx, 2125551234)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, int64(2125551234), results[0].PhoneNumber)
	})

	t.Run("cardiology returns every cardiology specialist", func(t *testing.T) {
		results, err := store.FullText(ctx, "Cardiology", 50)
		require.NoError(t, err)

		want := 0
		for _, r := range records {
			for _, s := range r.Specialties {
				if strings.Contains(s, "Cardiology") {
					want++
					break
				}
			}
		}
		require.NotZero(t, want)
		assert.Len(t, results, want)
		for _, r := range results {
			assert.Contains(t, strings.Join(r.Specialties, " "), "Cardiology")
		}
	})

	t.Run("every listed record is findable by one of its tokens", func(t *testing.T) {
		all, err := store.List(ctx, 50)
		require.NoError(t, err)

		for _, rec := range all {
			tokens := append([]string{rec.FirstName, rec.LastName, rec.City, rec.Degree}, rec.Specialties...)
			for _, token := range tokens {
				results, err := store.FullText(ctx, token, 50)
				require.NoError(t, err)
				assert.True(t, containsID(results, rec.ID), "record %d not found by %q", rec.ID, token)
			}
		}
	})

	t.Run("websearch negation excludes matches", func(t *testing.T) {
		results, err := store.FullText(ctx, "Cardiology -Pediatrics", 50)
		require.NoError(t, err)
		for _, r := range results {
			assert.NotContains(t, strings.Join(r.Specialties, " "), "Pediatrics")
		}
	})
}

func containsID(results []advocates.Advocate, id int64) bool {
	for _, r := range results {
		if r.ID == id {
			return true
		}
	}
	return false
}
