package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/financeflow/internal/adapters/database/pgsql"
	"github.com/SscSPs/financeflow/internal/adapters/storage/file"
	"github.com/SscSPs/financeflow/internal/adapters/storage/memory"
	"github.com/SscSPs/financeflow/internal/adapters/storage/redis"
	portsrepo "github.com/SscSPs/financeflow/internal/core/ports/repositories"
	"github.com/SscSPs/financeflow/pkg/config"
	"github.com/SscSPs/financeflow/pkg/database"
)

// Open builds the blob store selected by cfg.StoreDriver. The returned close function
// releases any connection the store holds and is never nil.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.BlobStore, func(), error) {
	noop := func() {}

	switch cfg.StoreDriver {
	case config.StoreMemory:
		logger.Warn("Using in-memory journal store, data is lost on restart")
		return memory.NewStore(), noop, nil

	case config.StoreFile:
		store, err := file.NewStore(cfg.StorePath)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("Using file journal store", slog.String("path", cfg.StorePath))
		return store, noop, nil

	case config.StoreRedis:
		client, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("Using redis journal store")
		closeFn := func() {
			if err := client.Close(); err != nil {
				logger.Error("Error closing redis client", slog.String("error", err.Error()))
			}
		}
		return redis.NewStore(client, redis.WithKeyPrefix("financeflow:")), closeFn, nil

	case config.StorePostgres:
		db, err := database.NewSQLXDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		if err := database.RunMigrations(db, logger); err != nil {
			database.Close(db, logger)
			return nil, noop, err
		}
		logger.Info("Using postgres journal store")
		return pgsql.NewBlobRepository(db), func() { database.Close(db, logger) }, nil
	}

	return nil, noop, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
