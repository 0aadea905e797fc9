package domain

import (
	"errors"
	"strings"
)

// Failure taxonomy. Every public engine operation reports errors wrapping
// exactly one of these sentinels; raw driver or storage errors never escape.
var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrCatalogNotFound  = errors.New("catalog entity not found")
	ErrAgentNotFound    = errors.New("agent not found")
	ErrDuplicateCode    = errors.New("listing code already in use")
	ErrStorage          = errors.New("media storage failure")
	ErrUnexpected       = errors.New("unexpected failure")
)

// ValidationError carries one message per violated boundary rule.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// NewValidationError builds a ValidationError from the collected messages.
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

// IsNotFound reports whether err is one of the not-found failure kinds.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPropertyNotFound) ||
		errors.Is(err, ErrCatalogNotFound) ||
		errors.Is(err, ErrAgentNotFound)
}

// IsValidation reports whether err is a boundary validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
