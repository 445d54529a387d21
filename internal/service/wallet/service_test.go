package wallet

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/ecowallet-client/internal/adapter/api/apitest"
	"github.com/heartmarshall/ecowallet-client/internal/domain"
	"github.com/heartmarshall/ecowallet-client/internal/service/dispatch/dispatchtest"
	"github.com/heartmarshall/ecowallet-client/internal/state"
)

func newTestService(t *testing.T) (*Service, *dispatchtest.Env) {
	t.Helper()
	env := dispatchtest.New(t)
	return NewService(env.Logger, env.Runner), env
}

var walletBody = map[string]any{
	"wallet": map[string]any{
		"balance": 1500.25, "totalWeight": 32.5, "totalUnit": "kg",
		"bankDetails": map[string]any{"bankName": "First Bank", "accountNumber": "0123456789"},
	},
	"wasteLogs": []map[string]any{
		{"material": "plastic", "available": 10, "converted": 4},
		{"material": "aluminium", "available": 2.5, "agentWeight": 1},
	},
}

func TestService_LoadWallet(t *testing.T) {
	t.Parallel()

	for _, role := range domain.Roles() {
		t.Run(role.String(), func(t *testing.T) {
			t.Parallel()
			svc, env := newTestService(t)
			env.LoggedIn(role, "tok")
			env.Backend.Reply(http.MethodGet, "/"+role.String()+"/wallet", http.StatusOK, apitest.Success(walletBody))

			status, err := svc.LoadWallet(context.Background(), role)
			require.NoError(t, err)
			assert.Equal(t, domain.StatusSuccess, status)

			w := env.Store.State().Wallet
			assert.Equal(t, 1500.25, w.Wallet.Balance)
			assert.Equal(t, "First Bank", w.Wallet.Bank.BankName)
			require.Len(t, w.WasteLogs, 2)
			assert.Equal(t, 1.0, w.WasteLogs[1].AgentWeight)
		})
	}
}

func TestService_LoadWallet_ErrorTouchesOnlyWallet(t *testing.T) {
	t.Parallel()

	svc, env := newTestService(t)
	env.LoggedIn(domain.RoleUser, "tok")
	env.Store.Dispatch(state.UserLogin{Profile: domain.UserProfile{ID: "u1"}})
	env.Backend.Reply(http.MethodGet, "/user/wallet", http.StatusOK, apitest.Error("wallet unavailable"))
	before := env.Store.State()

	_, err := svc.LoadWallet(context.Background(), domain.RoleUser)
	require.EqualError(t, err, "wallet unavailable")

	after := env.Store.State()
	assert.Equal(t, []string{"wallet unavailable"}, after.Wallet.Errors)
	assert.Equal(t, before.Wallet.Wallet, after.Wallet.Wallet)
	assert.Equal(t, before.User, after.User)
	assert.Equal(t, before.Agent, after.Agent)
	assert.Equal(t, before.Insurance, after.Insurance)
}

func TestService_ConvertItem(t *testing.T) {
	t.Parallel()

	t.Run("user conversion refreshes wallet", func(t *testing.T) {
		t.Parallel()
		svc, env := newTestService(t)
		env.LoggedIn(domain.RoleUser, "tok")
		env.Backend.Reply(http.MethodPost, "/user/wallet/convert", http.StatusOK, apitest.Success(walletBody))

		status, err := svc.ConvertItem(context.Background(), domain.RoleUser, ConvertInput{Material: "plastic", Weight: 4})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusSuccess, status)

		rec := env.Backend.Last()
		assert.Equal(t, "plastic", rec.Body["material"])
		assert.NotContains(t, rec.Body, "clientId")
		assert.Equal(t, 1500.25, env.Store.State().Wallet.Wallet.Balance)
	})

	t.Run("agent conversion sends client id", func(t *testing.T) {
		t.Parallel()
		svc, env := newTestService(t)
		env.LoggedIn(domain.RoleAgent, "tok")
		env.Backend.Reply(http.MethodPost, "/agent/wallet/convert", http.StatusOK, apitest.Success(nil))

		_, err := svc.ConvertItem(context.Background(), domain.RoleAgent, ConvertInput{Material: "glass", Weight: 1, ClientID: "c-7"})
		require.NoError(t, err)
		assert.Equal(t, "c-7", env.Backend.Last().Body["clientId"])
		assert.Equal(t, state.WalletState{}, env.Store.State().Wallet, "no wallet in response, slice untouched")
	})

	t.Run("agent without client id", func(t *testing.T) {
		t.Parallel()
		svc, env := newTestService(t)
		env.LoggedIn(domain.RoleAgent, "tok")

		_, err := svc.ConvertItem(context.Background(), domain.RoleAgent, ConvertInput{Material: "glass", Weight: 1})
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.Zero(t, env.Backend.Count())
	})

	t.Run("no persisted token sends nothing", func(t *testing.T) {
		t.Parallel()
		svc, env := newTestService(t)
		env.LoggedIn(domain.RoleAgent, "agent-only")

		_, err := svc.ConvertItem(context.Background(), domain.RoleUser, ConvertInput{Material: "plastic", Weight: 1})
		require.ErrorIs(t, err, domain.ErrNotLoggedIn)
		assert.Zero(t, env.Backend.Count())
	})
}

func TestService_ConvertAll(t *testing.T) {
	t.Parallel()

	svc, env := newTestService(t)
	env.LoggedIn(domain.RoleAgent, "tok")
	env.Backend.Reply(http.MethodPost, "/agent/wallet/convert-all", http.StatusOK, apitest.Success(walletBody))

	_, err := svc.ConvertAll(context.Background(), domain.RoleAgent, "")
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.ConvertAll(context.Background(), domain.RoleAgent, "c-1")
	require.NoError(t, err)
	assert.Equal(t, 1, env.Backend.Count())
	assert.Equal(t, "c-1", env.Backend.Last().Body["clientId"])
	assert.Len(t, env.Store.State().Wallet.WasteLogs, 2)
}

func TestService_Withdraw(t *testing.T) {
	t.Parallel()

	svc, env := newTestService(t)
	env.LoggedIn(domain.RoleUser, "tok")
	env.Backend.Reply(http.MethodPost, "/user/wallet/withdraw", http.StatusOK, map[string]any{"status": "pending"})

	status, err := svc.Withdraw(context.Background(), domain.RoleUser, WithdrawInput{
		Amount: 500, BankCode: "011", AccountNumber: "0123456789",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, status)
	assert.Equal(t, 500.0, env.Backend.Last().Body["amount"])

	_, err = svc.Withdraw(context.Background(), domain.RoleUser, WithdrawInput{})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Errors, 3)
}

func TestService_Fund(t *testing.T) {
	t.Parallel()

	svc, env := newTestService(t)
	env.LoggedIn(domain.RoleUser, "tok")
	env.Backend.Reply(http.MethodPost, "/user/wallet/fund", http.StatusOK, apitest.Success(map[string]any{
		"payment": map[string]any{"reference": "ref-1", "authorizationUrl": "https://pay/ref-1"},
	}))

	p, err := svc.Fund(context.Background(), domain.RoleUser, 1000)
	require.NoError(t, err)
	assert.Equal(t, &domain.Payment{Reference: "ref-1", AuthorizationURL: "https://pay/ref-1", Status: domain.StatusSuccess}, p)

	_, err = svc.Fund(context.Background(), domain.RoleUser, 0)
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 1, env.Backend.Count())
}

func TestService_VerifyTransaction(t *testing.T) {
	t.Parallel()

	t.Run("pending", func(t *testing.T) {
		t.Parallel()
		svc, env := newTestService(t)
		env.LoggedIn(domain.RoleUser, "tok")
		env.Backend.Reply(http.MethodGet, "/user/wallet/verify/{ref}", http.StatusOK, map[string]any{
			"status": "pending", "message": "awaiting confirmation",
		})

		status, err := svc.VerifyTransaction(context.Background(), domain.RoleUser, "ref-1")
		require.NoError(t, err)
		assert.True(t, status.IsPending())
		assert.Equal(t, "/user/wallet/verify/ref-1", env.Backend.Last().Path)
		assert.Empty(t, env.Store.State().Wallet.Errors)
	})

	t.Run("settled refreshes wallet", func(t *testing.T) {
		t.Parallel()
		svc, env := newTestService(t)
		env.LoggedIn(domain.RoleUser, "tok")
		env.Backend.Reply(http.MethodGet, "/user/wallet/verify/{ref}", http.StatusOK, apitest.Success(walletBody))

		status, err := svc.VerifyTransaction(context.Background(), domain.RoleUser, "ref-2")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusSuccess, status)
		assert.Equal(t, 1500.25, env.Store.State().Wallet.Wallet.Balance)
	})

	t.Run("empty reference", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)
		_, err := svc.VerifyTransaction(context.Background(), domain.RoleUser, "")
		require.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestService_Banks(t *testing.T) {
	t.Parallel()

	svc, env := newTestService(t)
	env.LoggedIn(domain.RoleAgent, "tok")
	env.Backend.Reply(http.MethodGet, "/banks", http.StatusOK, apitest.Success(map[string]any{
		"banks": []map[string]any{{"code": "011", "name": "First Bank"}, {"code": "058", "name": "GTBank"}},
	}))

	banks, err := svc.Banks(context.Background(), domain.RoleAgent)
	require.NoError(t, err)
	assert.Equal(t, []domain.Bank{{Code: "011", Name: "First Bank"}, {Code: "058", Name: "GTBank"}}, banks)
	assert.Equal(t, "/banks", env.Backend.Last().Path)
	assert.Equal(t, "tok", env.Backend.Last().Token)
}

func TestService_LogWaste(t *testing.T) {
	t.Parallel()

	svc, env := newTestService(t)
	env.LoggedIn(domain.RoleAgent, "tok")
	env.Backend.Reply(http.MethodPost, "/agent/waste", http.StatusOK, apitest.Success(nil))

	status, err := svc.LogWaste(context.Background(), LogWasteInput{ClientID: "c-1", Material: "paper", Weight: 3.2})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, status)
	assert.Equal(t, "c-1", env.Backend.Last().Body["clientId"])

	_, err = svc.LogWaste(context.Background(), LogWasteInput{Material: "paper", Weight: 1})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 1, env.Backend.Count())
}

func TestService_ForcedLogoutLeavesStateAlone(t *testing.T) {
	t.Parallel()

	svc, env := newTestService(t)
	env.LoggedIn(domain.RoleUser, "tok")
	env.Backend.Reply(http.MethodGet, "/user/wallet", http.StatusUnauthorized, apitest.Error("Please authenticate"))
	before := env.Store.State()

	_, err := svc.LoadWallet(context.Background(), domain.RoleUser)
	require.ErrorIs(t, err, domain.ErrForcedLogout)
	assert.Equal(t, before, env.Store.State())
}

func TestService_NoTokenSendsNothing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ops := map[string]func(*Service) error{
		"load":     func(s *Service) error { _, err := s.LoadWallet(ctx, domain.RoleUser); return err },
		"convert":  func(s *Service) error { _, err := s.ConvertItem(ctx, domain.RoleUser, ConvertInput{Material: "m", Weight: 1}); return err },
		"all":      func(s *Service) error { _, err := s.ConvertAll(ctx, domain.RoleUser, ""); return err },
		"withdraw": func(s *Service) error { _, err := s.Withdraw(ctx, domain.RoleUser, WithdrawInput{Amount: 1, BankCode: "1", AccountNumber: "1"}); return err },
		"fund":     func(s *Service) error { _, err := s.Fund(ctx, domain.RoleUser, 1); return err },
		"verify":   func(s *Service) error { _, err := s.VerifyTransaction(ctx, domain.RoleUser, "r"); return err },
		"banks":    func(s *Service) error { _, err := s.Banks(ctx, domain.RoleUser); return err },
		"log":      func(s *Service) error { _, err := s.LogWaste(ctx, LogWasteInput{ClientID: "c", Material: "m", Weight: 1}); return err },
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			svc, env := newTestService(t)

			require.ErrorIs(t, op(svc), domain.ErrNotLoggedIn)
			assert.Zero(t, env.Backend.Count())
		})
	}
}
