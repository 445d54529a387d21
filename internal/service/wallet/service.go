// Package wallet implements the wallet dispatchers: balance loading, waste
// conversion, withdrawals, funding and payment verification.
package wallet

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/ecowallet-client/internal/adapter/api"
	"github.com/heartmarshall/ecowallet-client/internal/domain"
	"github.com/heartmarshall/ecowallet-client/internal/service/dispatch"
	"github.com/heartmarshall/ecowallet-client/internal/state"
)

type runner interface {
	Do(ctx context.Context, c dispatch.Call) (*api.Response, error)
	Decode(ctx context.Context, c dispatch.Call, path string, v any) (domain.Status, error)
	Apply(actions ...state.Action)
}

// Service implements wallet operations.
type Service struct {
	log *slog.Logger
	run runner
}

func NewService(logger *slog.Logger, run runner) *Service {
	return &Service{
		log: logger.With("service", "wallet"),
		run: run,
	}
}

// call builds a wallet-slice Call.
func call(op string, role domain.Role, method, path string, body any) dispatch.Call {
	return dispatch.Call{
		Operation: op,
		Role:      role,
		Method:    method,
		Path:      path,
		Body:      body,
		Slice:     domain.SliceWallet,
	}
}

// applyWallet replaces the wallet slice when resp carries a wallet.
func (s *Service) applyWallet(op string, resp *api.Response) error {
	if !resp.Has("wallet") {
		return nil
	}

	var act state.LoadWallet
	if err := resp.Decode("wallet", &act.Wallet); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := resp.Decode("wasteLogs", &act.WasteLogs); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.run.Apply(act)
	return nil
}
