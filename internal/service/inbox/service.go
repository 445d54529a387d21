// Package inbox implements the messaging and support dispatchers. Results are
// returned to the caller; no slice stores them.
package inbox

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/heartmarshall/ecowallet-client/internal/domain"
	"github.com/heartmarshall/ecowallet-client/internal/service/dispatch"
)

type runner interface {
	Decode(ctx context.Context, c dispatch.Call, path string, v any) (domain.Status, error)
}

// Service implements inbox operations.
type Service struct {
	log *slog.Logger
	run runner
}

func NewService(logger *slog.Logger, run runner) *Service {
	return &Service{
		log: logger.With("service", "inbox"),
		run: run,
	}
}

// QuestionInput is a question sent to the platform's help desk.
type QuestionInput struct {
	Subject  string `json:"subject,omitempty"`
	Question string `json:"question"`
}

// SupportInput is a support request.
type SupportInput struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// LoadMessages returns the role's inbox.
func (s *Service) LoadMessages(ctx context.Context, role domain.Role) ([]domain.Message, error) {
	var msgs []domain.Message
	_, err := s.run.Decode(ctx, dispatch.Call{
		Operation: "inbox.messages",
		Role:      role,
		Method:    http.MethodGet,
		Path:      "/messages",
	}, "messages", &msgs)
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// ReadMessage marks a message read.
func (s *Service) ReadMessage(ctx context.Context, role domain.Role, id string) (domain.Status, error) {
	if id == "" {
		return "", domain.NewValidationError("id", "required")
	}
	return s.run.Decode(ctx, dispatch.Call{
		Operation: "inbox.read",
		Role:      role,
		Method:    http.MethodPut,
		Path:      "/messages/" + url.PathEscape(id) + "/read",
	}, "", nil)
}

// NotificationsCount returns the number of unread notifications.
func (s *Service) NotificationsCount(ctx context.Context, role domain.Role) (int, error) {
	var count int
	_, err := s.run.Decode(ctx, dispatch.Call{
		Operation: "inbox.count",
		Role:      role,
		Method:    http.MethodGet,
		Path:      "/notifications/count",
	}, "count", &count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// AskQuestion sends a question to the help desk.
func (s *Service) AskQuestion(ctx context.Context, role domain.Role, input QuestionInput) (domain.Status, error) {
	if input.Question == "" {
		return "", domain.NewValidationError("question", "required")
	}
	return s.run.Decode(ctx, dispatch.Call{
		Operation: "inbox.question",
		Role:      role,
		Method:    http.MethodPost,
		Path:      "/questions",
		Body:      input,
	}, "", nil)
}

// ContactSupport opens a support request.
func (s *Service) ContactSupport(ctx context.Context, role domain.Role, input SupportInput) (domain.Status, error) {
	var errs []domain.FieldError
	if input.Subject == "" {
		errs = append(errs, domain.FieldError{Field: "subject", Message: "required"})
	}
	if input.Message == "" {
		errs = append(errs, domain.FieldError{Field: "message", Message: "required"})
	}
	if len(errs) > 0 {
		return "", domain.NewValidationErrors(errs)
	}

	status, err := s.run.Decode(ctx, dispatch.Call{
		Operation: "inbox.support",
		Role:      role,
		Method:    http.MethodPost,
		Path:      "/support",
		Body:      input,
	}, "", nil)
	if err == nil {
		s.log.InfoContext(ctx, "support request sent", slog.String("role", role.String()))
	}
	return status, err
}
