// Package session owns the authentication lifecycle: the in-memory session
// held in the state store and the role-scoped tokens persisted across restarts.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/ecowallet-client/internal/auth"
	"github.com/heartmarshall/ecowallet-client/internal/domain"
	"github.com/heartmarshall/ecowallet-client/internal/state"
)

// credentialStore is the persisted key-value store holding role tokens.
type credentialStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// stateStore is the shared client state.
type stateStore interface {
	Dispatch(a state.Action)
	State() state.State
}

// Manager implements the session operations.
type Manager struct {
	log   *slog.Logger
	creds credentialStore
	store stateStore
}

func NewManager(logger *slog.Logger, creds credentialStore, store stateStore) *Manager {
	return &Manager{
		log:   logger.With("service", "session"),
		creds: creds,
		store: store,
	}
}

// Current returns the current session.
func (m *Manager) Current() domain.Session {
	return m.store.State().Session
}

// Login activates role and, when token is non-empty, makes it the session
// token. Loading and signup are cleared.
func (m *Manager) Login(token string, role domain.Role) {
	m.store.Dispatch(state.SessionLogin{
		Token:     token,
		Role:      role,
		ExpiresAt: auth.ExpiresAt(token),
	})
}

// Signup marks a registration flow for role. The token is untouched.
func (m *Manager) Signup(role domain.Role) {
	m.store.Dispatch(state.SessionSignup{Role: role})
}

// SetLoading sets the session loading flag.
func (m *Manager) SetLoading(loading bool) {
	m.store.Dispatch(state.SetLoading{Loading: loading})
}

// Logout deletes the persisted tokens of both roles and resets the session
// and every profile-bound slice. The in-memory reset happens even when the
// credential store fails; that failure is returned.
func (m *Manager) Logout(ctx context.Context) error {
	err := m.creds.Delete(ctx, domain.TokenKeys()...)

	for _, a := range state.LogoutActions() {
		m.store.Dispatch(a)
	}

	if err != nil {
		m.log.ErrorContext(ctx, "clear persisted tokens", slog.String("error", err.Error()))
		return fmt.Errorf("session.Logout: %w", err)
	}

	m.log.InfoContext(ctx, "logged out")
	return nil
}

// Persist stores token under role's credential key.
func (m *Manager) Persist(ctx context.Context, role domain.Role, token string) error {
	if err := m.creds.Set(ctx, role.TokenKey(), token); err != nil {
		return fmt.Errorf("session.Persist %s: %w", role, err)
	}
	m.log.DebugContext(ctx, "token persisted",
		slog.String("role", role.String()),
		slog.String("token", auth.Fingerprint(token)),
	)
	return nil
}

// Persisted returns the token stored for role. An absent or empty token
// returns domain.ErrNotFound.
func (m *Manager) Persisted(ctx context.Context, role domain.Role) (string, error) {
	tok, err := m.creds.Get(ctx, role.TokenKey())
	if err != nil {
		return "", fmt.Errorf("session.Persisted %s: %w", role, err)
	}
	if tok == "" {
		return "", fmt.Errorf("session.Persisted %s: %w", role, domain.ErrNotFound)
	}
	return tok, nil
}

// Token resolves the bearer token for role: the persisted token first, then
// the in-memory session token when role is the active role. Returns
// domain.ErrNotLoggedIn when neither exists.
func (m *Manager) Token(ctx context.Context, role domain.Role) (string, error) {
	tok, err := m.Persisted(ctx, role)
	if err == nil {
		return tok, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		m.log.WarnContext(ctx, "read persisted token", slog.String("error", err.Error()))
	}

	if s := m.Current(); s.Role == role && s.AuthToken != "" {
		return s.AuthToken, nil
	}
	return "", domain.ErrNotLoggedIn
}
