package utils

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/jvorcak/este/internal/domain"
)

// Minimum accepted password length, matching the remote service's policy.
const minPasswordLength = 6

// CredentialValidator validates sign-in fields before any remote call is
// issued.
type CredentialValidator struct {
	validate *validator.Validate
}

// NewCredentialValidator creates a new validator instance
func NewCredentialValidator() *CredentialValidator {
	return &CredentialValidator{
		validate: validator.New(),
	}
}

// ValidateCredentials validates an email/password pair. Failures are
// reported as field-attributed validation errors.
func (v *CredentialValidator) ValidateCredentials(email, password string) error {
	if err := v.ValidateEmail(email); err != nil {
		return err
	}
	if err := v.validate.Var(password, fmt.Sprintf("required,min=%d", minPasswordLength)); err != nil {
		return &domain.ValidationError{
			Message: fmt.Sprintf("password must be at least %d characters", minPasswordLength),
			Field:   "password",
		}
	}
	return nil
}

// ValidateEmail validates an email string
func (v *CredentialValidator) ValidateEmail(email string) error {
	if err := v.validate.Var(email, "required,email"); err != nil {
		return &domain.ValidationError{Message: "a valid email is required", Field: "email"}
	}
	return nil
}
