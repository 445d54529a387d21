package account

import (
	"github.com/heartmarshall/ecowallet-client/internal/domain"
)

// LoginInput holds credentials for Login.
type LoginInput struct {
	Role     domain.Role
	Email    string
	Password string
}

func (i LoginInput) Validate() error {
	var errs []domain.FieldError

	if i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	}
	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RegisterInput holds the signup form.
type RegisterInput struct {
	Role      domain.Role
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
}

func (i RegisterInput) Validate() error {
	var errs []domain.FieldError

	if i.FirstName == "" {
		errs = append(errs, domain.FieldError{Field: "firstName", Message: "required"})
	}
	if i.LastName == "" {
		errs = append(errs, domain.FieldError{Field: "lastName", Message: "required"})
	}
	if i.Email == "" && i.Phone == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "email or phone required"})
	}
	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ProfileInput holds the editable profile fields. Empty fields are sent as is;
// the backend replaces the profile wholesale.
type ProfileInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Gender    string `json:"gender,omitempty"`
}

func (i ProfileInput) Validate() error {
	var errs []domain.FieldError

	if i.FirstName == "" {
		errs = append(errs, domain.FieldError{Field: "firstName", Message: "required"})
	}
	if i.LastName == "" {
		errs = append(errs, domain.FieldError{Field: "lastName", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// PasswordInput holds a password change.
type PasswordInput struct {
	Current string `json:"currentPassword"`
	New     string `json:"newPassword"`
}

func (i PasswordInput) Validate() error {
	var errs []domain.FieldError

	if i.Current == "" {
		errs = append(errs, domain.FieldError{Field: "currentPassword", Message: "required"})
	}
	if i.New == "" {
		errs = append(errs, domain.FieldError{Field: "newPassword", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateLocation(loc domain.Location) error {
	var errs []domain.FieldError

	if loc.Country == "" {
		errs = append(errs, domain.FieldError{Field: "country", Message: "required"})
	}
	if loc.City == "" {
		errs = append(errs, domain.FieldError{Field: "city", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
