package domain

import (
	"errors"
	"sort"
	"strings"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation. Field-level detail travels in a *ValidationError that
// unwraps to this sentinel.
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a write would break a uniqueness rule,
// e.g. renaming a tag to a name another tag already owns.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrBlocked is returned when a delete is refused because other rows still
// reference the target (a location used by a facility, a tag attached to one).
var ErrBlocked = errors.New("blocked by existing references")

// ErrWriteFailed wraps an unexpected storage error raised inside a
// multi-statement write. The transaction has already been rolled back
// when a caller sees it.
var ErrWriteFailed = errors.New("write failed")

// Validation error codes reported per field.
const (
	CodeRequired                = "required"
	CodeCannotBeEmpty           = "cannot_be_empty"
	CodeInvalid                 = "invalid"
	CodeAtLeastOneFieldRequired = "at_least_one_field_required"
	CodeInvalidEmail            = "invalid_email"
	CodeInvalidPhone            = "invalid_phone"
	CodeInvalidZipCode          = "invalid_zip_code"
	CodeInvalidCountryCode      = "invalid_country_code"
	CodeMustBeArrayOfStrings    = "must_be_array_of_strings"
	PayloadField                = "payload"
)

// ValidationError carries the field → error code map produced by input
// validation. errors.Is(err, ErrValidation) holds for any *ValidationError.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError returns a *ValidationError for the given field codes.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "validation error: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
