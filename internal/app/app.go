package app

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/heartmarshall/ecowallet-client/internal/adapter/api"
	"github.com/heartmarshall/ecowallet-client/internal/adapter/credstore"
	"github.com/heartmarshall/ecowallet-client/internal/config"
	"github.com/heartmarshall/ecowallet-client/internal/service/account"
	"github.com/heartmarshall/ecowallet-client/internal/service/bootstrap"
	"github.com/heartmarshall/ecowallet-client/internal/service/dispatch"
	"github.com/heartmarshall/ecowallet-client/internal/service/inbox"
	"github.com/heartmarshall/ecowallet-client/internal/service/insurance"
	"github.com/heartmarshall/ecowallet-client/internal/service/session"
	"github.com/heartmarshall/ecowallet-client/internal/service/wallet"
	"github.com/heartmarshall/ecowallet-client/internal/state"
)

// App is the wired client: one state store, one session and every dispatcher
// sharing them.
type App struct {
	Config   *config.Config
	Log      *slog.Logger
	Registry *prometheus.Registry

	Credentials credstore.Store
	Store       *state.Store
	Session     *session.Manager
	Runner      *dispatch.Runner

	Account   *account.Service
	Wallet    *wallet.Service
	Insurance *insurance.Service
	Inbox     *inbox.Service
	Bootstrap *bootstrap.Sequencer
}

// New opens the credential store and wires every component.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	creds, err := OpenCredentials(ctx, cfg.Credentials, logger)
	if err != nil {
		return nil, err
	}
	return NewWithCredentials(cfg, logger, creds), nil
}

// NewWithCredentials wires every component around an already open store.
func NewWithCredentials(cfg *config.Config, logger *slog.Logger, creds credstore.Store) *App {
	registry := prometheus.NewRegistry()

	apiCfg := cfg.API
	apiCfg.UserAgent = UserAgent(apiCfg.UserAgent)
	client := api.NewClient(apiCfg, api.NewMetrics(registry), logger)

	store := state.NewStore(cfg.State.ErrorLogSize)
	sess := session.NewManager(logger, creds, store)
	runner := dispatch.NewRunner(logger, client, sess, store)

	accountSvc := account.NewService(logger, runner, sess)
	walletSvc := wallet.NewService(logger, runner)
	insuranceSvc := insurance.NewService(logger, runner)

	return &App{
		Config:      cfg,
		Log:         logger,
		Registry:    registry,
		Credentials: creds,
		Store:       store,
		Session:     sess,
		Runner:      runner,
		Account:     accountSvc,
		Wallet:      walletSvc,
		Insurance:   insuranceSvc,
		Inbox:       inbox.NewService(logger, runner),
		Bootstrap:   bootstrap.NewSequencer(logger, sess, accountSvc, walletSvc, insuranceSvc, store),
	}
}

// Start runs the bootstrap sequence and logs its outcome.
func (a *App) Start(ctx context.Context) (bootstrap.Phase, error) {
	a.Log.InfoContext(ctx, "starting client",
		slog.String("version", BuildVersion()),
		slog.String("backend", a.Config.API.BaseURL),
		slog.String("credentials", a.Config.Credentials.Backend),
	)

	phase, err := a.Bootstrap.Run(ctx)
	if err != nil {
		a.Log.WarnContext(ctx, "bootstrap finished with error",
			slog.String("phase", phase.String()),
			slog.String("error", err.Error()),
		)
		return phase, err
	}

	a.Log.InfoContext(ctx, "bootstrap finished", slog.String("phase", phase.String()))
	return phase, nil
}

// Close releases the credential store.
func (a *App) Close() error {
	if a.Credentials == nil {
		return nil
	}
	return a.Credentials.Close()
}
