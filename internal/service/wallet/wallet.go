package wallet

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/ecowallet-client/internal/domain"
	"github.com/heartmarshall/ecowallet-client/internal/service/dispatch"
)

// LoadWallet replaces the wallet slice with the role's wallet and waste logs.
func (s *Service) LoadWallet(ctx context.Context, role domain.Role) (domain.Status, error) {
	resp, err := s.run.Do(ctx, call("wallet.load", role, http.MethodGet, "/wallet", nil))
	if err != nil {
		return "", err
	}
	if resp.IsPending() {
		return domain.StatusPending, nil
	}
	if err := s.applyWallet("wallet.LoadWallet", resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

// ConvertItem converts one material into credit. The wallet slice is
// refreshed from the response when it carries the updated wallet.
func (s *Service) ConvertItem(ctx context.Context, role domain.Role, input ConvertInput) (domain.Status, error) {
	if err := input.Validate(role); err != nil {
		return "", err
	}
	return s.mutate(ctx, call("wallet.convert", role, http.MethodPost, "/wallet/convert", input))
}

// ConvertAll converts every available material. clientID is required for agents.
func (s *Service) ConvertAll(ctx context.Context, role domain.Role, clientID string) (domain.Status, error) {
	if errs := appendClientID(nil, role, clientID); len(errs) > 0 {
		return "", domain.NewValidationErrors(errs)
	}

	var body any
	if clientID != "" {
		body = map[string]string{"clientId": clientID}
	}
	return s.mutate(ctx, call("wallet.convert_all", role, http.MethodPost, "/wallet/convert-all", body))
}

// Withdraw sends balance to a bank account.
func (s *Service) Withdraw(ctx context.Context, role domain.Role, input WithdrawInput) (domain.Status, error) {
	if err := input.Validate(); err != nil {
		return "", err
	}

	status, err := s.mutate(ctx, call("wallet.withdraw", role, http.MethodPost, "/wallet/withdraw", input))
	if err == nil {
		s.log.InfoContext(ctx, "withdrawal requested",
			slog.String("role", role.String()),
			slog.Float64("amount", input.Amount),
			slog.String("status", status.String()),
		)
	}
	return status, err
}

// LogWaste records waste collected by an agent for a consumer.
func (s *Service) LogWaste(ctx context.Context, input LogWasteInput) (domain.Status, error) {
	if err := input.Validate(); err != nil {
		return "", err
	}
	return s.mutate(ctx, call("wallet.log_waste", domain.RoleAgent, http.MethodPost, "/waste", input))
}

// Banks lists the payout banks.
func (s *Service) Banks(ctx context.Context, role domain.Role) ([]domain.Bank, error) {
	c := call("wallet.banks", role, http.MethodGet, "/banks", nil)
	c.Global = true

	var banks []domain.Bank
	if _, err := s.run.Decode(ctx, c, "banks", &banks); err != nil {
		return nil, err
	}
	return banks, nil
}

func (s *Service) mutate(ctx context.Context, c dispatch.Call) (domain.Status, error) {
	resp, err := s.run.Do(ctx, c)
	if err != nil {
		return "", err
	}
	if resp.IsPending() {
		return domain.StatusPending, nil
	}
	if err := s.applyWallet(c.Operation, resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}
