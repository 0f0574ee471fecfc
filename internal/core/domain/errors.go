package domain

import (
	"errors"
	"sort"
	"strings"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidToken = errors.New("token is invalid or expired")
var ErrUserNotFound = errors.New("user not found")
var ErrClientNotFound = errors.New("client not found")
var ErrProposalNotFound = errors.New("proposal not found")
var ErrForbidden = errors.New("access forbidden")

// Field keys used for errors that are not tied to a single input field.
const NonFieldErrors = "non_field_errors"

// ValidationError carries per-field messages. It is rendered as a 400.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError returns a ValidationError with a single field message.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// Add records msg for field, keeping the first message seen for that field.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// OrNil returns nil when no field was recorded, so callers can write
// `return verr.OrNil()` without tripping over typed-nil interfaces.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsValidationError reports whether err wraps a *ValidationError and returns it.
func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
