package repository

import (
	"context"
	"fmt"

	"go-farm-store/pkg/cache"
	"go-farm-store/pkg/config"
	"go-farm-store/pkg/database"

	"go.uber.org/zap"
)

// OpenKV builds the KVStore selected by cfg.StoreBackend. The returned
// closer releases the underlying connection.
func OpenKV(ctx context.Context, cfg *config.Config) (KVStore, func() error, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		zap.S().Warn("memory store backend selected, state is lost on exit")
		return NewMemoryKV(), func() error { return nil }, nil

	case config.BackendRedis:
		client, err := cache.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisKV(client, cfg.RedisKeyPrefix), client.Close, nil

	case config.BackendPostgres:
		db, err := database.ConnectDB(cfg.PostgresDSN(), !cfg.IsProduction())
		if err != nil {
			return nil, nil, err
		}
		if err := Migrate(db); err != nil {
			_ = database.Close(db)
			return nil, nil, fmt.Errorf("migrate store_entries: %w", err)
		}
		zap.S().Info("database connection established")
		return NewGormKV(db), func() error { return database.Close(db) }, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
