package account

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/ecowallet-client/internal/domain"
	"github.com/heartmarshall/ecowallet-client/internal/service/dispatch"
)

// Login authenticates with email and password. On success the profile is
// stored, the returned token becomes the session token and is persisted
// under the role's credential key.
func (s *Service) Login(ctx context.Context, input LoginInput) (domain.Status, error) {
	if err := input.Validate(); err != nil {
		return "", err
	}

	resp, err := s.run.Do(ctx, dispatch.Call{
		Operation: "account.login",
		Role:      input.Role,
		Method:    http.MethodPost,
		Path:      "/login",
		Public:    true,
		Body: map[string]string{
			"email":    input.Email,
			"password": input.Password,
		},
	})
	if err != nil {
		return "", err
	}
	if resp.IsPending() {
		return domain.StatusPending, nil
	}

	res, err := decodeProfile(resp, input.Role)
	if err != nil {
		return "", fmt.Errorf("account.Login: %w", err)
	}
	if res.token == "" {
		return "", fmt.Errorf("account.Login: response carries no token")
	}

	s.applyLogin(input.Role, res)
	if err := s.establish(ctx, "account.Login", input.Role, res.token); err != nil {
		return "", err
	}

	s.log.InfoContext(ctx, "logged in", slog.String("role", input.Role.String()))
	return resp.Status, nil
}

// Register creates an account and marks a signup flow for the role. When the
// backend logs the new account in directly, the returned session is applied
// as for Login.
func (s *Service) Register(ctx context.Context, input RegisterInput) (domain.Status, error) {
	if err := input.Validate(); err != nil {
		return "", err
	}

	resp, err := s.run.Do(ctx, dispatch.Call{
		Operation: "account.register",
		Role:      input.Role,
		Method:    http.MethodPost,
		Path:      "/register",
		Public:    true,
		Body: map[string]string{
			"firstName": input.FirstName,
			"lastName":  input.LastName,
			"email":     input.Email,
			"phone":     input.Phone,
			"password":  input.Password,
		},
	})
	if err != nil {
		return "", err
	}

	s.session.Signup(input.Role)
	if resp.IsPending() {
		return domain.StatusPending, nil
	}

	if resp.Has("authToken") {
		res, err := decodeProfile(resp, input.Role)
		if err != nil {
			return "", fmt.Errorf("account.Register: %w", err)
		}
		s.applyLogin(input.Role, res)
		if err := s.establish(ctx, "account.Register", input.Role, res.token); err != nil {
			return "", err
		}
	}

	s.log.InfoContext(ctx, "registered", slog.String("role", input.Role.String()))
	return resp.Status, nil
}
