package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an AppError independently of the HTTP status it maps to.
type Kind string

const (
	KindValidation Kind = "validation"
	KindDomain     Kind = "domain"
	KindNotFound   Kind = "not_found"
	KindUnexpected Kind = "unexpected"
)

// FieldError describes a single violated validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type AppError struct {
	Code    int          `json:"code"`
	Kind    Kind         `json:"kind"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"errors,omitempty"`
	Err     error        `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil && e.Kind != KindValidation {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kindFor(code),
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

func NotFound(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Kind: KindNotFound, Message: message}
}

func Internal(err error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindUnexpected,
		Message: "An unexpected error occurred",
		Err:     err,
	}
}

// Validation reports every violated rule at once.
func Validation(fields []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindValidation,
		Message: "Validation failed",
		Fields:  fields,
	}
}

// Domain wraps a data-access or orchestration failure with context.
// The code is chosen by the caller since the same failure surfaces as 400
// on writes and 500 on reads.
func Domain(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    KindDomain,
		Message: message,
		Err:     err,
	}
}

// IsKind reports whether err wraps an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

func kindFor(code int) Kind {
	switch {
	case code == http.StatusNotFound:
		return KindNotFound
	case code >= http.StatusInternalServerError:
		return KindUnexpected
	default:
		return KindDomain
	}
}
