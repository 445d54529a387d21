package insurance

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

var activeInsurance = map[string]any{
	"id":         "ins-1",
	"status":     "active",
	"expiry":     "2027-01-31T00:00:00Z",
	"plan":       map[string]any{"id": "basic", "name": "Basic Care", "price": 1500, "benefits": []string{"outpatient"}},
	"careCentre": map[string]any{"id": "cc-1", "name": "Lagos Island Clinic"},
}

func TestService_LoadInsurance(t *testing.T) {
	t.Parallel()

	svc, env := newTestService(t)
	env.LoggedIn(domain.RoleUser, "tok")
	env.Backend.Reply(http.MethodGet, "/user/insurance", http.StatusOK, apitest.Success(map[string]any{
		"insurance": activeInsurance,
		"plans":     []map[string]any{{"id": "basic"}, {"id": "plus"}},
	}))

	status, err := svc.LoadInsurance(context.Background(), domain.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, status)

	ins := env.Store.State().Insurance
	require.NotNil(t, ins.Insurance)
	assert.Equal(t, "Basic Care", ins.Insurance.Plan.Name)
	require.NotNil(t, ins.Insurance.CareCentre)
	assert.Equal(t, "cc-1", ins.Insurance.CareCentre.ID)
	require.NotNil(t, ins.Insurance.Expiry)
	assert.Equal(t, 2027, ins.Insurance.Expiry.Year())
	assert.Len(t, ins.Plans, 2)
}

func TestService_LoadInsurance_NoSubscription(t *testing.T) {
	t.Parallel()

	svc, env := newTestService(t)
	env.LoggedIn(domain.RoleUser, "tok")
	env.Store.Dispatch(state.LoadInsurance{Insurance: &domain.Insurance{ID: "old"}})
	env.Backend.Reply(http.MethodGet, "/user/insurance", http.StatusOK, apitest.Success(map[string]any{
		"insurance": nil,
	}))

	_, err := svc.LoadInsurance(context.Background(), domain.RoleUser)
	require.NoError(t, err)
	assert.Nil(t, env.Store.State().Insurance.Insurance)
}

func TestService_Plans(t *testing.T) {
	t.Parallel()

	svc, env := newTestService(t)
	env.LoggedIn(domain.RoleAgent, "tok")
	env.Backend.Reply(http.MethodGet, "/agent/insurance/plans", http.StatusOK, apitest.Success(map[string]any{
		"plans": []map[string]any{{"id": "basic", "price": 1500}, {"id": "plus", "price": 3000}},
	}))

	plans, err := svc.Plans(context.Background(), domain.RoleAgent)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, 3000.0, plans[1].Price)
	assert.Equal(t, plans, env.Store.State().Insurance.Plans)
}

func TestService_BuyInsurance(t *testing.T) {
	t.Parallel()

	t.Run("user", func(t *testing.T) {
		t.Parallel()
		svc, env := newTestService(t)
		env.LoggedIn(domain.RoleUser, "tok")
		env.Store.Dispatch(state.LoadPlans{Plans: []domain.Plan{{ID: "basic"}}})
		env.Backend.Reply(http.MethodPost, "/user/insurance", http.StatusOK, apitest.Success(map[string]any{
			"insurance": activeInsurance,
		}))

		_, err := svc.BuyInsurance(context.Background(), domain.RoleUser, BuyInput{PlanID: "basic"})
		require.NoError(t, err)

		assert.Equal(t, "basic", env.Backend.Last().Body["planId"])
		st := env.Store.State().Insurance
		require.NotNil(t, st.Insurance)
		assert.Equal(t, "ins-1", st.Insurance.ID)
		assert.Equal(t, []domain.Plan{{ID: "basic"}}, st.Plans, "plan list kept")
	})

	t.Run("agent requires client", func(t *testing.T) {
		t.Parallel()
		svc, env := newTestService(t)
		env.LoggedIn(domain.RoleAgent, "tok")

		_, err := svc.BuyInsurance(context.Background(), domain.RoleAgent, BuyInput{PlanID: "basic"})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "clientId", verr.Errors[0].Field)
		assert.Zero(t, env.Backend.Count())
	})

	t.Run("business error", func(t *testing.T) {
		t.Parallel()
		svc, env := newTestService(t)
		env.LoggedIn(domain.RoleUser, "tok")
		env.Backend.Reply(http.MethodPost, "/user/insurance", http.StatusOK, apitest.Error("insufficient balance"))

		_, err := svc.BuyInsurance(context.Background(), domain.RoleUser, BuyInput{PlanID: "basic"})
		require.EqualError(t, err, "insufficient balance")

		st := env.Store.State()
		assert.Equal(t, []string{"insufficient balance"}, st.Insurance.Errors)
		assert.Empty(t, st.Wallet.Errors)
		assert.Empty(t, st.User.Errors)
	})
}

func TestService_CancelInsurance(t *testing.T) {
	t.Parallel()

	svc, env := newTestService(t)
	env.LoggedIn(domain.RoleAgent, "tok")
	env.Store.Dispatch(state.UpdateInsurance{Insurance: &domain.Insurance{ID: "ins-1"}})
	env.Backend.Reply(http.MethodDelete, "/agent/insurance", http.StatusOK, apitest.Success(nil))

	_, err := svc.CancelInsurance(context.Background(), domain.RoleAgent, "c-9")
	require.NoError(t, err)
	assert.Equal(t, "c-9", env.Backend.Last().Body["clientId"])
	assert.Nil(t, env.Store.State().Insurance.Insurance)
}

func TestService_SetCareCentre(t *testing.T) {
	t.Parallel()

	svc, env := newTestService(t)
	env.LoggedIn(domain.RoleUser, "tok")
	env.Backend.Reply(http.MethodPut, "/user/insurance/centre", http.StatusOK, apitest.Success(map[string]any{
		"insurance": activeInsurance,
	}))

	_, err := svc.SetCareCentre(context.Background(), domain.RoleUser, CareCentreInput{CentreID: "cc-1"})
	require.NoError(t, err)
	assert.Equal(t, "cc-1", env.Backend.Last().Body["centreId"])
	assert.Equal(t, "Lagos Island Clinic", env.Store.State().Insurance.Insurance.CareCentre.Name)

	_, err = svc.SetCareCentre(context.Background(), domain.RoleUser, CareCentreInput{})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_NoTokenSendsNothing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ops := map[string]func(*Service) error{
		"load":   func(s *Service) error { _, err := s.LoadInsurance(ctx, domain.RoleUser); return err },
		"plans":  func(s *Service) error { _, err := s.Plans(ctx, domain.RoleUser); return err },
		"buy":    func(s *Service) error { _, err := s.BuyInsurance(ctx, domain.RoleUser, BuyInput{PlanID: "p"}); return err },
		"cancel": func(s *Service) error { _, err := s.CancelInsurance(ctx, domain.RoleUser, ""); return err },
		"centre": func(s *Service) error { _, err := s.SetCareCentre(ctx, domain.RoleUser, CareCentreInput{CentreID: "c"}); return err },
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
