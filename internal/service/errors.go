package service

import (
	"github.com/jvorcak/este/internal/domain"
	"github.com/jvorcak/este/internal/remote"
)

// errorFields maps remote failure codes to the input field they are
// attributable to. Codes absent from the map translate without field
// attribution.
var errorFields = map[string]string{
	remote.CodeEmailTaken:    "email",
	remote.CodeInvalidEmail:  "email",
	remote.CodeUserNotFound:  "email",
	remote.CodeWrongPassword: "password",
}

// ErrorTranslator maps remote auth failure codes to domain validation
// errors. It is total: every code resolves to a ValidationError, possibly
// unattributed. Callers must first check catalog membership; codes outside
// the catalog are opaque and must be passed through unchanged.
type ErrorTranslator struct {
	catalog remote.Catalog
}

// NewErrorTranslator creates a translator backed by the given message catalog.
func NewErrorTranslator(catalog remote.Catalog) *ErrorTranslator {
	return &ErrorTranslator{catalog: catalog}
}

// Translate resolves a remote failure code to a validation error.
func (t *ErrorTranslator) Translate(code string) *domain.ValidationError {
	return &domain.ValidationError{
		Message: t.catalog.MessageFor(code),
		Field:   errorFields[code],
	}
}
