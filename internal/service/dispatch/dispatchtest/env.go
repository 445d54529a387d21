// Package dispatchtest wires a Runner against a fake backend for service tests.
package dispatchtest

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/heartmarshall/ecowallet-client/internal/adapter/api"
	"github.com/heartmarshall/ecowallet-client/internal/adapter/api/apitest"
	"github.com/heartmarshall/ecowallet-client/internal/domain"
	"github.com/heartmarshall/ecowallet-client/internal/service/dispatch"
	"github.com/heartmarshall/ecowallet-client/internal/state"
)

// Tokens is an in-memory token source keyed by role.
type Tokens struct {
	mu     sync.Mutex
	tokens map[domain.Role]string
}

func (t *Tokens) Set(role domain.Role, token string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.tokens == nil {
		t.tokens = make(map[domain.Role]string)
	}
	t.tokens[role] = token
}

func (t *Tokens) Token(_ context.Context, role domain.Role) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if tok := t.tokens[role]; tok != "" {
		return tok, nil
	}
	return "", domain.ErrNotLoggedIn
}

// Env bundles the collaborators of a service under test.
type Env struct {
	Backend *apitest.Backend
	Client  *api.Client
	Metrics *api.Metrics
	Store   *state.Store
	Tokens  *Tokens
	Runner  *dispatch.Runner
	Logger  *slog.Logger
}

// New returns an Env with no tokens set.
func New(t testing.TB) *Env {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	backend := apitest.NewBackend(t)
	metrics := api.NewMetrics(prometheus.NewRegistry())
	client := api.NewClient(backend.Config(), metrics, logger)
	store := state.NewStore(20)
	tokens := &Tokens{}

	return &Env{
		Backend: backend,
		Client:  client,
		Metrics: metrics,
		Store:   store,
		Tokens:  tokens,
		Runner:  dispatch.NewRunner(logger, client, tokens, store),
		Logger:  logger,
	}
}

// LoggedIn sets a token for role and returns e.
func (e *Env) LoggedIn(role domain.Role, token string) *Env {
	e.Tokens.Set(role, token)
	return e
}
