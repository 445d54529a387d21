package wallet

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/heartmarshall/ecowallet-client/internal/domain"
)

// Fund starts a funding transaction. The returned Payment carries the
// reference to verify and the URL the payment widget opens.
func (s *Service) Fund(ctx context.Context, role domain.Role, amount float64) (*domain.Payment, error) {
	if amount <= 0 {
		return nil, domain.NewValidationError("amount", "required")
	}

	resp, err := s.run.Do(ctx, call("wallet.fund", role, http.MethodPost, "/wallet/fund",
		map[string]float64{"amount": amount}))
	if err != nil {
		return nil, err
	}

	p := &domain.Payment{Status: resp.Status}
	path := ""
	if resp.Has("payment") {
		path = "payment"
	}
	if err := resp.Decode(path, p); err != nil {
		return nil, fmt.Errorf("wallet.Fund: %w", err)
	}
	if resp.IsPending() {
		p.Status = domain.StatusPending
	}
	return p, nil
}

// VerifyTransaction checks a funding reference. domain.StatusPending means
// the payment provider has not settled yet and the caller should poll later.
func (s *Service) VerifyTransaction(ctx context.Context, role domain.Role, reference string) (domain.Status, error) {
	if reference == "" {
		return "", domain.NewValidationError("reference", "required")
	}

	status, err := s.mutate(ctx, call("wallet.verify", role, http.MethodGet,
		"/wallet/verify/"+url.PathEscape(reference), nil))
	if err != nil {
		return "", err
	}

	s.log.DebugContext(ctx, "transaction verified",
		slog.String("reference", reference),
		slog.String("status", status.String()),
	)
	return status, nil
}
