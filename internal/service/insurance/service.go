// Package insurance implements the micro-insurance dispatchers.
package insurance

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

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

// Service implements insurance operations.
type Service struct {
	log *slog.Logger
	run runner
}

func NewService(logger *slog.Logger, run runner) *Service {
	return &Service{
		log: logger.With("service", "insurance"),
		run: run,
	}
}

// BuyInput purchases a plan. ClientID names the consumer when an agent buys
// on their behalf.
type BuyInput struct {
	PlanID   string `json:"planId"`
	ClientID string `json:"clientId,omitempty"`
}

// CareCentreInput selects the care centre of the active plan.
type CareCentreInput struct {
	CentreID string `json:"centreId"`
	ClientID string `json:"clientId,omitempty"`
}

func call(op string, role domain.Role, method, path string, body any) dispatch.Call {
	return dispatch.Call{
		Operation: op,
		Role:      role,
		Method:    method,
		Path:      path,
		Body:      body,
		Slice:     domain.SliceInsurance,
	}
}

func requireClient(role domain.Role, clientID string, errs []domain.FieldError) []domain.FieldError {
	if role == domain.RoleAgent && clientID == "" {
		errs = append(errs, domain.FieldError{Field: "clientId", Message: "required"})
	}
	return errs
}

// LoadInsurance replaces the insurance slice with the current subscription and
// the plans the response lists.
func (s *Service) LoadInsurance(ctx context.Context, role domain.Role) (domain.Status, error) {
	resp, err := s.run.Do(ctx, call("insurance.load", role, http.MethodGet, "/insurance", nil))
	if err != nil {
		return "", err
	}
	if resp.IsPending() {
		return domain.StatusPending, nil
	}

	var act state.LoadInsurance
	ins, err := decodeInsurance(resp)
	if err != nil {
		return "", fmt.Errorf("insurance.LoadInsurance: %w", err)
	}
	act.Insurance = ins
	if err := resp.Decode("plans", &act.Plans); err != nil {
		return "", fmt.Errorf("insurance.LoadInsurance: %w", err)
	}

	s.run.Apply(act)
	return resp.Status, nil
}

// Plans lists the purchasable plans and stores them in the insurance slice.
func (s *Service) Plans(ctx context.Context, role domain.Role) ([]domain.Plan, error) {
	var plans []domain.Plan
	status, err := s.run.Decode(ctx, call("insurance.plans", role, http.MethodGet, "/insurance/plans", nil), "plans", &plans)
	if err != nil {
		return nil, err
	}
	if !status.IsPending() {
		s.run.Apply(state.LoadPlans{Plans: plans})
	}
	return plans, nil
}

// BuyInsurance purchases a plan.
func (s *Service) BuyInsurance(ctx context.Context, role domain.Role, input BuyInput) (domain.Status, error) {
	var errs []domain.FieldError
	if input.PlanID == "" {
		errs = append(errs, domain.FieldError{Field: "planId", Message: "required"})
	}
	if errs = requireClient(role, input.ClientID, errs); len(errs) > 0 {
		return "", domain.NewValidationErrors(errs)
	}

	status, err := s.mutate(ctx, call("insurance.buy", role, http.MethodPost, "/insurance", input))
	if err == nil {
		s.log.InfoContext(ctx, "insurance purchased",
			slog.String("role", role.String()),
			slog.String("plan_id", input.PlanID),
			slog.String("status", status.String()),
		)
	}
	return status, err
}

// CancelInsurance cancels the current subscription. clientID is required for agents.
func (s *Service) CancelInsurance(ctx context.Context, role domain.Role, clientID string) (domain.Status, error) {
	if errs := requireClient(role, clientID, nil); len(errs) > 0 {
		return "", domain.NewValidationErrors(errs)
	}

	var body any
	if clientID != "" {
		body = map[string]string{"clientId": clientID}
	}
	return s.mutate(ctx, call("insurance.cancel", role, http.MethodDelete, "/insurance", body))
}

// SetCareCentre selects the care centre for the current plan.
func (s *Service) SetCareCentre(ctx context.Context, role domain.Role, input CareCentreInput) (domain.Status, error) {
	var errs []domain.FieldError
	if input.CentreID == "" {
		errs = append(errs, domain.FieldError{Field: "centreId", Message: "required"})
	}
	if errs = requireClient(role, input.ClientID, errs); len(errs) > 0 {
		return "", domain.NewValidationErrors(errs)
	}

	return s.mutate(ctx, call("insurance.set_centre", role, http.MethodPut, "/insurance/centre", input))
}

// mutate runs c and replaces the insurance record with the one the response
// returns. A cancellation without a returned record clears it.
func (s *Service) mutate(ctx context.Context, c dispatch.Call) (domain.Status, error) {
	resp, err := s.run.Do(ctx, c)
	if err != nil {
		return "", err
	}
	if resp.IsPending() {
		return domain.StatusPending, nil
	}

	ins, err := decodeInsurance(resp)
	if err != nil {
		return "", fmt.Errorf("%s: %w", c.Operation, err)
	}
	if ins != nil || c.Method == http.MethodDelete {
		s.run.Apply(state.UpdateInsurance{Insurance: ins})
	}
	return resp.Status, nil
}

// decodeInsurance reads the "insurance" key. Absent or null yields nil.
func decodeInsurance(resp *api.Response) (*domain.Insurance, error) {
	if !resp.Has("insurance") {
		return nil, nil
	}
	var ins *domain.Insurance
	if err := resp.Decode("insurance", &ins); err != nil {
		return nil, err
	}
	return ins, nil
}
