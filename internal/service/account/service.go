// Package account implements the authentication and profile dispatchers for
// both roles.
package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/ecowallet-client/internal/adapter/api"
	"github.com/heartmarshall/ecowallet-client/internal/domain"
	"github.com/heartmarshall/ecowallet-client/internal/service/dispatch"
	"github.com/heartmarshall/ecowallet-client/internal/state"
)

// runner executes remote calls under the shared dispatcher contract.
type runner interface {
	Do(ctx context.Context, c dispatch.Call) (*api.Response, error)
	Decode(ctx context.Context, c dispatch.Call, path string, v any) (domain.Status, error)
	Apply(actions ...state.Action)
}

// sessionManager is the session lifecycle needed by account operations.
type sessionManager interface {
	Login(token string, role domain.Role)
	Signup(role domain.Role)
	Logout(ctx context.Context) error
	Persist(ctx context.Context, role domain.Role, token string) error
}

// Service implements account operations.
type Service struct {
	log     *slog.Logger
	run     runner
	session sessionManager
}

func NewService(logger *slog.Logger, run runner, session sessionManager) *Service {
	return &Service{
		log:     logger.With("service", "account"),
		run:     run,
		session: session,
	}
}

// profileResult is what login, refresh and update responses carry.
type profileResult struct {
	user     domain.UserProfile
	agent    domain.AgentProfile
	token    string
	location *domain.Location
}

// decodeProfile reads the role's profile from resp. The profile is taken from
// the key named after the role when present, otherwise from the top level.
// The token is the top-level authToken, falling back to the profile's.
func decodeProfile(resp *api.Response, role domain.Role) (profileResult, error) {
	var res profileResult

	path := ""
	if resp.Has(role.String()) {
		path = role.String()
	}

	var profileToken string
	switch role {
	case domain.RoleUser:
		if err := resp.Decode(path, &res.user); err != nil {
			return res, err
		}
		profileToken = res.user.AuthToken
	default:
		if err := resp.Decode(path, &res.agent); err != nil {
			return res, err
		}
		profileToken = res.agent.AuthToken
	}

	res.token = resp.String("authToken")
	if res.token == "" {
		res.token = profileToken
	}

	if resp.Has("location") {
		var loc domain.Location
		if err := resp.Decode("location", &loc); err != nil {
			return res, err
		}
		res.location = &loc
	}
	return res, nil
}

// applyLogin dispatches the LOGIN action of role plus any location.
func (s *Service) applyLogin(role domain.Role, res profileResult) {
	if role == domain.RoleUser {
		s.run.Apply(state.UserLogin{Profile: res.user})
	} else {
		s.run.Apply(state.AgentLogin{Profile: res.agent})
	}
	if res.location != nil {
		s.run.Apply(state.UpdateLocation{Role: role, Location: *res.location})
	}
}

// establish makes token the active session token and persists it.
func (s *Service) establish(ctx context.Context, op string, role domain.Role, token string) error {
	s.session.Login(token, role)
	if token == "" {
		return nil
	}
	if err := s.session.Persist(ctx, role, token); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
