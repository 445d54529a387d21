// Package bootstrap resolves the authentication state at process start from
// the persisted role tokens.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/ecowallet-client/internal/domain"
	"github.com/heartmarshall/ecowallet-client/internal/state"
	"github.com/heartmarshall/ecowallet-client/pkg/ctxutil"
)

// Phase is a state of the bootstrap sequence.
type Phase string

const (
	PhaseInit          Phase = "init"
	PhaseChecking      Phase = "checking"
	PhaseLoggedInUser  Phase = "logged_in_user"
	PhaseLoggedInAgent Phase = "logged_in_agent"
	PhaseLoggedOut     Phase = "logged_out"
)

func (p Phase) String() string { return string(p) }

// Terminal reports whether p ends the sequence.
func (p Phase) Terminal() bool {
	switch p {
	case PhaseLoggedInUser, PhaseLoggedInAgent, PhaseLoggedOut:
		return true
	}
	return false
}

func loggedIn(role domain.Role) Phase {
	if role == domain.RoleUser {
		return PhaseLoggedInUser
	}
	return PhaseLoggedInAgent
}

type sessionManager interface {
	Current() domain.Session
	Login(token string, role domain.Role)
	SetLoading(loading bool)
	Persisted(ctx context.Context, role domain.Role) (string, error)
	Logout(ctx context.Context) error
}

type accountService interface {
	Refresh(ctx context.Context, role domain.Role) (domain.Status, error)
}

type walletService interface {
	LoadWallet(ctx context.Context, role domain.Role) (domain.Status, error)
}

type insuranceService interface {
	LoadInsurance(ctx context.Context, role domain.Role) (domain.Status, error)
}

type dispatcher interface {
	Dispatch(a state.Action)
}

// Sequencer runs the bootstrap sequence.
type Sequencer struct {
	log       *slog.Logger
	session   sessionManager
	account   accountService
	wallet    walletService
	insurance insuranceService
	store     dispatcher
	onPhase   func(Phase)
}

func NewSequencer(
	logger *slog.Logger,
	session sessionManager,
	account accountService,
	wallet walletService,
	insurance insuranceService,
	store dispatcher,
) *Sequencer {
	return &Sequencer{
		log:       logger.With("service", "bootstrap"),
		session:   session,
		account:   account,
		wallet:    wallet,
		insurance: insurance,
		store:     store,
		onPhase:   func(Phase) {},
	}
}

// OnPhase registers fn to observe every phase transition.
func (s *Sequencer) OnPhase(fn func(Phase)) {
	s.onPhase = fn
}

// Run executes the sequence and returns its terminal phase. Loading is set
// on entry and always cleared on return.
//
// The agent token takes precedence over the user token. A forced logout
// during refresh logs out and ends in PhaseLoggedOut with a nil error. Any
// other refresh failure also ends in PhaseLoggedOut, keeps the persisted
// tokens and returns the error. Failures of the follow-up loads are logged
// and recorded but do not change the outcome.
func (s *Sequencer) Run(ctx context.Context) (Phase, error) {
	ctx = ctxutil.WithBootstrap(ctx)

	s.enter(ctx, PhaseInit)
	s.session.SetLoading(true)
	defer s.session.SetLoading(false)

	s.enter(ctx, PhaseChecking)
	for _, role := range domain.Roles() {
		token, err := s.session.Persisted(ctx, role)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				s.log.WarnContext(ctx, "read persisted token",
					slog.String("role", role.String()),
					slog.String("error", err.Error()),
				)
			}
			continue
		}
		return s.resume(ctx, role, token)
	}

	s.enter(ctx, PhaseLoggedOut)
	return PhaseLoggedOut, nil
}

func (s *Sequencer) resume(ctx context.Context, role domain.Role, token string) (Phase, error) {
	status, err := s.account.Refresh(ctx, role)
	if err != nil {
		if errors.Is(err, domain.ErrForcedLogout) {
			return s.forceLogout(ctx, role)
		}
		s.enter(ctx, PhaseLoggedOut)
		return PhaseLoggedOut, fmt.Errorf("bootstrap.Run refresh %s: %w", role, err)
	}
	if status.IsPending() || s.session.Current().AuthToken == "" {
		// No fresh token was issued; the persisted one stays active.
		s.session.Login(token, role)
	}

	if err := s.load(ctx, role); errors.Is(err, domain.ErrForcedLogout) {
		return s.forceLogout(ctx, role)
	}

	phase := loggedIn(role)
	s.enter(ctx, phase)
	return phase, nil
}

// load fetches the role's data after a successful refresh. Only a forced
// logout is returned; other failures are logged and recorded.
func (s *Sequencer) load(ctx context.Context, role domain.Role) error {
	if role == domain.RoleAgent {
		_, err := s.wallet.LoadWallet(ctx, role)
		return s.loadFailed(ctx, domain.SliceWallet, err)
	}

	var walletErr, insuranceErr error
	var g errgroup.Group
	g.Go(func() error {
		_, walletErr = s.wallet.LoadWallet(ctx, role)
		return nil
	})
	g.Go(func() error {
		_, insuranceErr = s.insurance.LoadInsurance(ctx, role)
		return nil
	})
	_ = g.Wait()

	return errors.Join(
		s.loadFailed(ctx, domain.SliceWallet, walletErr),
		s.loadFailed(ctx, domain.SliceInsurance, insuranceErr),
	)
}

func (s *Sequencer) loadFailed(ctx context.Context, slice domain.Slice, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrForcedLogout) {
		return err
	}

	s.log.WarnContext(ctx, "bootstrap load failed",
		slog.String("slice", slice.String()),
		slog.String("error", err.Error()),
	)
	// Business errors were already recorded by the dispatcher.
	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) {
		s.store.Dispatch(state.RecordError{Slice: slice, Message: err.Error()})
	}
	return nil
}

func (s *Sequencer) forceLogout(ctx context.Context, role domain.Role) (Phase, error) {
	s.log.InfoContext(ctx, "session rejected by backend, logging out", slog.String("role", role.String()))

	err := s.session.Logout(ctx)
	s.enter(ctx, PhaseLoggedOut)
	if err != nil {
		return PhaseLoggedOut, fmt.Errorf("bootstrap.Run logout: %w", err)
	}
	return PhaseLoggedOut, nil
}

func (s *Sequencer) enter(ctx context.Context, p Phase) {
	s.log.DebugContext(ctx, "bootstrap phase", slog.String("phase", p.String()))
	s.onPhase(p)
}
