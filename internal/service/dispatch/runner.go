// Package dispatch implements the contract shared by every remote operation:
// token lookup, one bearer-authenticated request, and translation of the
// response envelope into an error, a pending outcome or a payload.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/heartmarshall/ecowallet-client/internal/adapter/api"
	"github.com/heartmarshall/ecowallet-client/internal/domain"
	"github.com/heartmarshall/ecowallet-client/internal/state"
	"github.com/heartmarshall/ecowallet-client/pkg/ctxutil"
)

type apiClient interface {
	Do(ctx context.Context, req api.Request) (*api.Response, error)
}

type tokenSource interface {
	Token(ctx context.Context, role domain.Role) (string, error)
}

type dispatcher interface {
	Dispatch(a state.Action)
}

// Call describes one remote operation.
type Call struct {
	// Operation names the dispatcher for logs and metrics, e.g. "wallet.convert".
	Operation string
	Role      domain.Role
	Method    string
	// Path is appended to "/{role}". When Global is set it is used as is.
	Path   string
	Global bool
	Query  url.Values
	Body   any
	// Public calls are sent without a token.
	Public bool
	// Slice receives the error message of a business error. Defaults to the
	// role's profile slice.
	Slice domain.Slice
}

// Runner executes Calls.
type Runner struct {
	log    *slog.Logger
	api    apiClient
	tokens tokenSource
	store  dispatcher
}

func NewRunner(logger *slog.Logger, client apiClient, tokens tokenSource, store dispatcher) *Runner {
	return &Runner{
		log:    logger.With("service", "dispatch"),
		api:    client,
		tokens: tokens,
		store:  store,
	}
}

// Do runs c and returns the successful or pending response.
//
// Errors:
//   - domain.ErrNotLoggedIn when no token is available; nothing is sent.
//   - *domain.ForcedLogoutError when the backend demands re-authentication.
//   - *domain.APIError for any other business error, after recording its
//     message in c.Slice.
//   - a wrapped transport error otherwise.
func (r *Runner) Do(ctx context.Context, c Call) (*api.Response, error) {
	var token string
	if !c.Public {
		t, err := r.tokens.Token(ctx, c.Role)
		if err != nil {
			if !errors.Is(err, domain.ErrNotLoggedIn) {
				r.log.WarnContext(ctx, "token lookup failed",
					slog.String("operation", c.Operation),
					slog.String("error", err.Error()),
				)
			}
			return nil, domain.ErrNotLoggedIn
		}
		token = t
	}

	resp, err := r.api.Do(ctx, api.Request{
		Operation: c.Operation,
		Method:    c.Method,
		Path:      c.path(),
		Query:     c.Query,
		Token:     token,
		Body:      c.Body,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.Operation, err)
	}
	// A cancelled caller no longer wants the effects of a late response.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", c.Operation, err)
	}

	if apiErr := resp.APIError(); apiErr != nil {
		if apiErr.ForcesLogout() {
			r.log.InfoContext(ctx, "backend requested logout",
				slog.String("operation", c.Operation),
				slog.String("role", c.Role.String()),
				slog.Bool("bootstrap", ctxutil.IsBootstrap(ctx)),
			)
			return nil, &domain.ForcedLogoutError{Cause: apiErr}
		}
		r.store.Dispatch(state.RecordError{Slice: c.slice(), Message: apiErr.Message})
		return nil, apiErr
	}

	return resp, nil
}

// Decode runs c and decodes the value at path into v on success. The
// returned status is domain.StatusPending when the backend is still settling,
// in which case v is left untouched.
func (r *Runner) Decode(ctx context.Context, c Call, path string, v any) (domain.Status, error) {
	resp, err := r.Do(ctx, c)
	if err != nil {
		return "", err
	}
	if resp.IsPending() {
		return domain.StatusPending, nil
	}
	if v != nil {
		if err := resp.Decode(path, v); err != nil {
			return "", fmt.Errorf("%s: %w", c.Operation, err)
		}
	}
	return resp.Status, nil
}

// Apply dispatches actions to the store.
func (r *Runner) Apply(actions ...state.Action) {
	for _, a := range actions {
		r.store.Dispatch(a)
	}
}

func (c Call) path() string {
	if c.Global {
		return c.Path
	}
	return "/" + c.Role.String() + c.Path
}

func (c Call) slice() domain.Slice {
	if c.Slice != "" {
		return c.Slice
	}
	return domain.ProfileSlice(c.Role)
}
