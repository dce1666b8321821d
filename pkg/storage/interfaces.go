package storage

import (
	"context"
	"time"

	"github.com/platinummonkey/advocates/pkg/advocates"
)

// Backend types
const (
	TypePostgres = "postgres"
	TypeBleve    = "bleve"
)

// AdvocateReader is the read side used by the search service
type AdvocateReader interface {
	// List returns up to limit records in store-default order
	List(ctx context.Context, limit int) ([]advocates.Advocate, error)

	// FindByPhone returns every record whose phone number equals phone
	FindByPhone(ctx context.Context, phone int64) ([]advocates.Advocate, error)

	// FullText returns up to limit records matching a websearch-style
	// query, most relevant first
	FullText(ctx context.Context, query string, limit int) ([]advocates.Advocate, error)
}

// AdvocateWriter inserts externally managed records. Implementations
// derive the search vector themselves; callers never supply it.
type AdvocateWriter interface {
	Insert(ctx context.Context, records []advocates.Advocate) ([]int64, error)
}

// AdvocateStore combines read, write and lifecycle capabilities
type AdvocateStore interface {
	AdvocateReader
	AdvocateWriter
	Close() error
}

// Config for storage backend
type Config struct {
	Type string // "postgres" or "bleve"

	// PostgreSQL config
	PostgresURL         string
	PostgresReplicaURLs string // Comma-separated read replicas
	PostgresMaxConns    int
	PostgresMinConns    int
	PostgresTimeout     time.Duration
	PostgresMaxLifetime time.Duration
	PostgresMaxIdleTime time.Duration

	// Optional YAML fixture file used to seed the bleve backend.
	// Empty means the embedded default fixtures.
	SeedFile string
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		Type:                TypePostgres,
		PostgresURL:         "postgres://localhost:5432/advocates?sslmode=disable",
		PostgresMaxConns:    10,
		PostgresMinConns:    2,
		PostgresTimeout:     5 * time.Second,
		PostgresMaxLifetime: 30 * time.Minute,
		PostgresMaxIdleTime: 5 * time.Minute,
	}
}
