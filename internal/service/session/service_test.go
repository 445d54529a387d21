package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/ecowallet-client/internal/adapter/credstore/memory"
	"github.com/heartmarshall/ecowallet-client/internal/domain"
	"github.com/heartmarshall/ecowallet-client/internal/state"
)

func newTestManager() (*Manager, *memory.Store, *state.Store) {
	creds := memory.New()
	store := state.NewStore(10)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewManager(logger, creds, store), creds, store
}

func TestManager_NewSessionIsLoading(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestManager()
	s := m.Current()
	assert.True(t, s.Loading)
	assert.False(t, s.LoggedIn())
}

func TestManager_LoginRoleRoundTrip(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestManager()

	m.Login("tok-a", domain.RoleAgent)
	assert.Equal(t, domain.RoleAgent, m.Current().Role)

	m.Login("tok-u", domain.RoleUser)
	assert.Equal(t, domain.RoleUser, m.Current().Role)

	m.Login("tok-x", domain.ParseRole("consumer"))
	assert.Equal(t, domain.RoleAgent, m.Current().Role)
}

func TestManager_Login(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestManager()
	m.Signup(domain.RoleUser)
	m.SetLoading(true)

	m.Login("xyz", domain.RoleUser)

	s := m.Current()
	assert.Equal(t, "xyz", s.AuthToken)
	assert.False(t, s.Loading)
	assert.False(t, s.Signup)
	assert.Nil(t, s.ExpiresAt, "opaque token carries no expiry")

	m.Login("", domain.RoleUser)
	assert.Equal(t, "xyz", m.Current().AuthToken, "empty token keeps the previous one")
}

func TestManager_LoginReadsJWTExpiry(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("server-side-secret-the-client-never-sees"))
	require.NoError(t, err)

	m, _, _ := newTestManager()
	m.Login(tok, domain.RoleAgent)

	s := m.Current()
	require.NotNil(t, s.ExpiresAt)
	assert.True(t, exp.Equal(*s.ExpiresAt))
	assert.False(t, s.Expired(time.Now()))
	assert.True(t, s.Expired(exp.Add(time.Second)))
}

func TestManager_Signup(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestManager()
	m.Login("tok", domain.RoleUser)
	m.Signup(domain.RoleAgent)

	s := m.Current()
	assert.True(t, s.Signup)
	assert.Equal(t, domain.RoleAgent, s.Role)
	assert.Equal(t, "tok", s.AuthToken)
	assert.False(t, s.Loading)
}

func TestManager_Logout(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m, creds, store := newTestManager()

	require.NoError(t, m.Persist(ctx, domain.RoleUser, "u"))
	require.NoError(t, m.Persist(ctx, domain.RoleAgent, "a"))
	m.Login("a", domain.RoleAgent)
	store.Dispatch(state.AgentLogin{Profile: domain.AgentProfile{ID: "a1"}})
	store.Dispatch(state.LoadWallet{Wallet: domain.Wallet{Balance: 9}})
	m.SetLoading(true)

	require.NoError(t, m.Logout(ctx))

	for _, k := range domain.TokenKeys() {
		_, err := creds.Get(ctx, k)
		assert.ErrorIs(t, err, domain.ErrNotFound, k)
	}

	st := store.State()
	assert.Empty(t, st.Session.AuthToken)
	assert.False(t, st.Session.Loading)
	assert.Equal(t, state.AgentState{}, st.Agent)
	assert.Equal(t, state.WalletState{}, st.Wallet)
}

type failingCreds struct{ *memory.Store }

func (failingCreds) Delete(context.Context, ...string) error { return errors.New("read-only") }

func TestManager_LogoutResetsStateEvenWhenStoreFails(t *testing.T) {
	t.Parallel()

	store := state.NewStore(10)
	m := NewManager(slog.New(slog.NewTextHandler(io.Discard, nil)), failingCreds{memory.New()}, store)
	m.Login("tok", domain.RoleUser)

	err := m.Logout(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read-only")
	assert.Empty(t, m.Current().AuthToken)
}

func TestManager_Token(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("persisted wins", func(t *testing.T) {
		t.Parallel()
		m, _, _ := newTestManager()
		require.NoError(t, m.Persist(ctx, domain.RoleUser, "persisted"))
		m.Login("memory", domain.RoleUser)

		tok, err := m.Token(ctx, domain.RoleUser)
		require.NoError(t, err)
		assert.Equal(t, "persisted", tok)
	})

	t.Run("memory token for active role", func(t *testing.T) {
		t.Parallel()
		m, _, _ := newTestManager()
		m.Login("memory", domain.RoleAgent)

		tok, err := m.Token(ctx, domain.RoleAgent)
		require.NoError(t, err)
		assert.Equal(t, "memory", tok)
	})

	t.Run("memory token of other role is not used", func(t *testing.T) {
		t.Parallel()
		m, _, _ := newTestManager()
		m.Login("memory", domain.RoleAgent)

		_, err := m.Token(ctx, domain.RoleUser)
		assert.ErrorIs(t, err, domain.ErrNotLoggedIn)
	})

	t.Run("nothing", func(t *testing.T) {
		t.Parallel()
		m, _, _ := newTestManager()

		_, err := m.Token(ctx, domain.RoleUser)
		require.ErrorIs(t, err, domain.ErrNotLoggedIn)
		assert.Equal(t, "Not logged in", err.Error())
	})

	t.Run("empty persisted value counts as absent", func(t *testing.T) {
		t.Parallel()
		m, _, _ := newTestManager()
		require.NoError(t, m.Persist(ctx, domain.RoleUser, ""))

		_, err := m.Persisted(ctx, domain.RoleUser)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
