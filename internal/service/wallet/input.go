package wallet

import (
	"github.com/heartmarshall/ecowallet-client/internal/domain"
)

// ConvertInput converts collected waste of one material into wallet credit.
// ClientID names the consumer when an agent converts on their behalf.
type ConvertInput struct {
	Material string  `json:"material"`
	Weight   float64 `json:"weight"`
	ClientID string  `json:"clientId,omitempty"`
}

func (i ConvertInput) Validate(role domain.Role) error {
	var errs []domain.FieldError

	if i.Material == "" {
		errs = append(errs, domain.FieldError{Field: "material", Message: "required"})
	}
	if i.Weight <= 0 {
		errs = append(errs, domain.FieldError{Field: "weight", Message: "required"})
	}
	errs = appendClientID(errs, role, i.ClientID)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// WithdrawInput moves wallet balance to a bank account.
type WithdrawInput struct {
	Amount        float64 `json:"amount"`
	BankCode      string  `json:"bankCode"`
	AccountNumber string  `json:"accountNumber"`
	AccountName   string  `json:"accountName,omitempty"`
}

func (i WithdrawInput) Validate() error {
	var errs []domain.FieldError

	if i.Amount <= 0 {
		errs = append(errs, domain.FieldError{Field: "amount", Message: "required"})
	}
	if i.BankCode == "" {
		errs = append(errs, domain.FieldError{Field: "bankCode", Message: "required"})
	}
	if i.AccountNumber == "" {
		errs = append(errs, domain.FieldError{Field: "accountNumber", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// LogWasteInput records waste an agent collected from a consumer.
type LogWasteInput struct {
	ClientID string  `json:"clientId"`
	Material string  `json:"material"`
	Weight   float64 `json:"weight"`
}

func (i LogWasteInput) Validate() error {
	var errs []domain.FieldError

	if i.ClientID == "" {
		errs = append(errs, domain.FieldError{Field: "clientId", Message: "required"})
	}
	if i.Material == "" {
		errs = append(errs, domain.FieldError{Field: "material", Message: "required"})
	}
	if i.Weight <= 0 {
		errs = append(errs, domain.FieldError{Field: "weight", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// appendClientID requires a client ID for operations an agent performs on a
// consumer's behalf.
func appendClientID(errs []domain.FieldError, role domain.Role, clientID string) []domain.FieldError {
	if role == domain.RoleAgent && clientID == "" {
		errs = append(errs, domain.FieldError{Field: "clientId", Message: "required"})
	}
	return errs
}
