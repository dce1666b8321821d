package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/platinummonkey/advocates/pkg/observability"
	"github.com/platinummonkey/advocates/pkg/seed"
	"github.com/platinummonkey/advocates/pkg/storage"
	"github.com/platinummonkey/advocates/pkg/storage/bleve"
	"github.com/platinummonkey/advocates/pkg/storage/postgres"
)

// storeBackend is the opened store plus what the health checker needs
type storeBackend struct {
	store  storage.AdvocateStore
	db     *sql.DB
	checks map[string]observability.CheckFunc
}

func openStore(ctx context.Context, cfg storage.Config, logger *observability.Logger) (*storeBackend, error) {
	switch cfg.Type {
	case storage.TypePostgres:
		conn, err := postgres.NewConnectionManager(postgres.ConnectionConfigFromStorage(cfg), logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		store, err := postgres.Open(ctx, conn)
		if err != nil {
			conn.Close()
			return nil, err
		}
		return &storeBackend{
			store: store,
			db:    conn.Primary(),
			checks: map[string]observability.CheckFunc{
				"replicas": conn.HealthCheck,
			},
		}, nil

	case storage.TypeBleve:
		store, err := bleve.New()
		if err != nil {
			return nil, err
		}
		records, err := seed.FromFileOrDefault(cfg.SeedFile)
		if err != nil {
			store.Close()
			return nil, err
		}
		if _, err := seed.Apply(ctx, store, records); err != nil {
			store.Close()
			return nil, err
		}
		logger.WithField("records", store.Len()).Info("Search index seeded")

		return &storeBackend{
			store: store,
			checks: map[string]observability.CheckFunc{
				"search_index": func(context.Context) error {
					if store.Len() == 0 {
						return errors.New("search index is empty")
					}
					return nil
				},
			},
		}, nil
	}

	return nil, fmt.Errorf("unknown store type: %s", cfg.Type)
}
