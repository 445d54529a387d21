package account

import (
	"context"
	"fmt"
	"net/http"

	"github.com/heartmarshall/ecowallet-client/internal/domain"
	"github.com/heartmarshall/ecowallet-client/internal/service/dispatch"
)

// Refresh re-reads the role's session from the backend using the persisted
// or current token. A forced-logout response is returned as
// domain.ErrForcedLogout; the caller decides whether to log out.
func (s *Service) Refresh(ctx context.Context, role domain.Role) (domain.Status, error) {
	resp, err := s.run.Do(ctx, dispatch.Call{
		Operation: "account.refresh",
		Role:      role,
		Method:    http.MethodGet,
		Path:      "/refresh",
	})
	if err != nil {
		return "", err
	}
	if resp.IsPending() {
		return domain.StatusPending, nil
	}

	res, err := decodeProfile(resp, role)
	if err != nil {
		return "", fmt.Errorf("account.Refresh: %w", err)
	}

	s.applyLogin(role, res)
	if err := s.establish(ctx, "account.Refresh", role, res.token); err != nil {
		return "", err
	}
	return resp.Status, nil
}
