package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/ecowallet-client/internal/adapter/api/apitest"
)

// setupEnv points the CLI at b with a sqlite credential store that outlives
// each invocation.
func setupEnv(t *testing.T, b *apitest.Backend) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("API_BASE_URL", b.URL)
	t.Setenv("API_VERSION_PREFIX", apitest.Prefix)
	t.Setenv("CREDENTIALS_BACKEND", "sqlite")
	t.Setenv("CREDENTIALS_SQLITE_PATH", filepath.Join(t.TempDir(), "creds.db"))
	t.Setenv("LOG_LEVEL", "error")
	t.Chdir(t.TempDir())
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root, c := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	err := execute(context.Background(), root, c)
	return out.String(), err
}

func TestVersion_NeedsNoConfig(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Chdir(t.TempDir())

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestMissingBaseURL(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("CONFIG_PATH", "")
	t.Chdir(t.TempDir())

	_, err := run(t, "status")
	require.Error(t, err)
}

func TestLoginConvertLogout(t *testing.T) {
	b := apitest.NewBackend(t)
	b.Reply(http.MethodPost, "/user/login", http.StatusOK, apitest.Success(map[string]any{
		"authToken": "tok-1",
		"user":      map[string]any{"id": "u1", "firstName": "Ada", "email": "ada@example.com"},
	}))
	b.Reply(http.MethodPost, "/user/wallet/convert", http.StatusOK, apitest.Success(map[string]any{
		"wallet": map[string]any{"balance": 120.5},
	}))
	b.Reply(http.MethodPost, "/user/logout", http.StatusOK, apitest.Success(nil))
	setupEnv(t, b)

	out, err := run(t, "login", "--email", "ada@example.com", "--password", "pw")
	require.NoError(t, err)
	assert.Contains(t, out, "logged in as ada@example.com (user)")

	out, err = run(t, "wallet", "convert", "--material", "plastic", "--weight", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "status: success")
	assert.Contains(t, out, "balance: 120.5")

	last := b.Last()
	assert.Equal(t, "/user/wallet/convert", last.Path)
	assert.Equal(t, "tok-1", last.Token)
	assert.Equal(t, "plastic", last.Body["material"])

	_, err = run(t, "logout")
	require.NoError(t, err)

	before := b.Count()
	_, err = run(t, "wallet", "convert", "--material", "plastic", "--weight", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Not logged in")
	assert.Equal(t, before, b.Count(), "no request after logout")
}

func TestStatus_LoggedOut(t *testing.T) {
	b := apitest.NewBackend(t)
	setupEnv(t, b)

	out, err := run(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "phase: logged_out")
	assert.Contains(t, out, "logged_in: false")
	assert.Zero(t, b.Count())
}

func TestForcedLogoutClearsStoredSession(t *testing.T) {
	b := apitest.NewBackend(t)
	b.Reply(http.MethodPost, "/agent/login", http.StatusOK, apitest.Success(map[string]any{
		"authToken": "agent-tok",
		"agent":     map[string]any{"id": "a1"},
	}))
	b.Reply(http.MethodGet, "/agent/wallet", http.StatusUnauthorized, map[string]any{
		"status": "error", "code": "SESSION_EXPIRED", "message": "session expired",
	})
	setupEnv(t, b)

	_, err := run(t, "--role", "agent", "login", "--email", "a@example.com", "--password", "pw")
	require.NoError(t, err)

	_, err = run(t, "wallet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logged out")

	before := b.Count()
	_, err = run(t, "inbox", "count")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Not logged in")
	assert.Equal(t, before, b.Count())
}
