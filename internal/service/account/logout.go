package account

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/ecowallet-client/internal/domain"
	"github.com/heartmarshall/ecowallet-client/internal/service/dispatch"
)

// Logout notifies the backend and then logs out locally. The local logout
// always happens; a backend failure is only logged.
func (s *Service) Logout(ctx context.Context, role domain.Role) error {
	_, err := s.run.Do(ctx, dispatch.Call{
		Operation: "account.logout",
		Role:      role,
		Method:    http.MethodPost,
		Path:      "/logout",
	})
	if err != nil && !errors.Is(err, domain.ErrNotLoggedIn) && !errors.Is(err, domain.ErrForcedLogout) {
		s.log.WarnContext(ctx, "backend logout failed",
			slog.String("role", role.String()),
			slog.String("error", err.Error()),
		)
	}

	return s.session.Logout(ctx)
}
