package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/ecowallet-client/internal/adapter/credstore"
	"github.com/heartmarshall/ecowallet-client/internal/adapter/credstore/file"
	"github.com/heartmarshall/ecowallet-client/internal/adapter/credstore/memory"
	"github.com/heartmarshall/ecowallet-client/internal/adapter/credstore/postgres"
	"github.com/heartmarshall/ecowallet-client/internal/adapter/credstore/redisstore"
	"github.com/heartmarshall/ecowallet-client/internal/adapter/credstore/sqlite"
	"github.com/heartmarshall/ecowallet-client/internal/config"
)

// OpenCredentials opens the credential store selected by cfg.Backend.
func OpenCredentials(ctx context.Context, cfg config.CredentialsConfig, logger *slog.Logger) (credstore.Store, error) {
	var (
		store credstore.Store
		err   error
	)

	switch cfg.Backend {
	case config.BackendMemory:
		store = memory.New()
	case config.BackendFile:
		store, err = file.New(cfg.FilePath, cfg.Secret, logger)
	case config.BackendSQLite:
		store, err = sqlite.Open(ctx, cfg.SQLitePath)
	case config.BackendRedis:
		store, err = redisstore.Open(ctx, redisstore.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
			TTL:      cfg.RedisTTL,
		})
	case config.BackendPostgres:
		store, err = postgres.Open(ctx, cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("app.OpenCredentials: unsupported backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("app.OpenCredentials %s: %w", cfg.Backend, err)
	}

	logger.Debug("credential store opened", slog.String("backend", cfg.Backend))
	return store, nil
}
