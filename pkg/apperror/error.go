package apperror

import "net/http"

// Kind is a stable machine-readable error category. The HTTP layer maps
// kinds to status codes; callers should branch on Kind, not on Code.
type Kind string

const (
	KindValidation   Kind = "VALIDATION"
	KindNotFound     Kind = "NOT_FOUND"
	KindConflict     Kind = "CONFLICT"
	KindInvalidState Kind = "INVALID_STATE"
	KindUnauthorized Kind = "UNAUTHORIZED"
	KindForbidden    Kind = "FORBIDDEN"
	KindStorage      Kind = "STORAGE"
)

type AppError struct {
	Kind    Kind   `json:"kind"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind Kind, code int, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation signals missing or malformed input.
func Validation(message string) *AppError {
	return New(KindValidation, http.StatusBadRequest, message, nil)
}

// NotFound signals that a referenced resource does not resolve.
func NotFound(message string) *AppError {
	return New(KindNotFound, http.StatusNotFound, message, nil)
}

// Conflict signals a uniqueness violation (e.g. duplicate application).
func Conflict(message string) *AppError {
	return New(KindConflict, http.StatusConflict, message, nil)
}

// InvalidState signals an operation on a resource in the wrong state.
func InvalidState(message string) *AppError {
	return New(KindInvalidState, http.StatusConflict, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(KindUnauthorized, http.StatusUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return New(KindForbidden, http.StatusForbidden, message, nil)
}

// Storage wraps an unclassified persistence failure.
func Storage(err error) *AppError {
	return New(KindStorage, http.StatusInternalServerError, "Internal Server Error", err)
}
