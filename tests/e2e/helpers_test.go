//go:build e2e

package e2e_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/ecowallet-client/internal/adapter/api/apitest"
	"github.com/heartmarshall/ecowallet-client/internal/adapter/credstore"
	"github.com/heartmarshall/ecowallet-client/internal/adapter/credstore/testhelper"
	"github.com/heartmarshall/ecowallet-client/internal/app"
	"github.com/heartmarshall/ecowallet-client/internal/config"
	"github.com/heartmarshall/ecowallet-client/internal/domain"
)

// backends lists the persistent credential stores every scenario runs against.
func backends(t *testing.T) map[string]config.CredentialsConfig {
	t.Helper()
	dir := t.TempDir()
	return map[string]config.CredentialsConfig{
		"file": {
			Backend:  config.BackendFile,
			FilePath: dir + "/creds.json",
			Secret:   "e2e-secret",
		},
		"sqlite": {
			Backend:    config.BackendSQLite,
			SQLitePath: dir + "/creds.db",
		},
		"redis": {
			Backend:     config.BackendRedis,
			RedisAddr:   testhelper.RedisAddr(t),
			RedisPrefix: "e2e:" + t.Name() + ":",
		},
		"postgres": {
			Backend:     config.BackendPostgres,
			PostgresDSN: testhelper.PostgresDSN(t),
		},
	}
}

// forEachBackend runs fn once per credential backend with a fresh backend
// double and store.
func forEachBackend(t *testing.T, fn func(t *testing.T, b *apitest.Backend, creds credstore.Store, newApp func() *app.App)) {
	for name, credCfg := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))

			creds, err := app.OpenCredentials(ctx, credCfg, logger)
			require.NoError(t, err)
			t.Cleanup(func() { creds.Close() })
			require.NoError(t, creds.Delete(ctx, domain.TokenKeys()...))

			b := apitest.NewBackend(t)
			cfg := &config.Config{
				API:         b.Config(),
				Credentials: credCfg,
				State:       config.StateConfig{ErrorLogSize: 10},
			}

			fn(t, b, creds, func() *app.App {
				return app.NewWithCredentials(cfg, logger, creds)
			})
		})
	}
}
