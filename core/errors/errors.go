package errors

import "fmt"

// ErrorCode identifies an application error category
type ErrorCode string

const (
	// Generic codes
	ErrInvalidInput       ErrorCode = "INVALID_INPUT"
	ErrInvalidRequestData ErrorCode = "INVALID_REQUEST_DATA"
	ErrNotFound           ErrorCode = "NOT_FOUND"
	ErrAlreadyExists      ErrorCode = "ALREADY_EXISTS"
	ErrInternalServer     ErrorCode = "INTERNAL_SERVER_ERROR"

	// Scheduling engine validation codes
	ErrInvalidInterval           ErrorCode = "INVALID_INTERVAL"
	ErrMalformedRecurrenceRule   ErrorCode = "MALFORMED_RECURRENCE_RULE"
	ErrUnboundedExpansionWindow  ErrorCode = "UNBOUNDED_EXPANSION_WINDOW"
	ErrInsufficientData          ErrorCode = "INSUFFICIENT_DATA"
)

// AppError is the application error carried through service boundaries
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether the error is a local input-validation failure
// (surfaced to callers as a form-validation-style message, never fatal).
func (e *AppError) IsValidation() bool {
	switch e.Code {
	case ErrInvalidInput, ErrInvalidRequestData, ErrInvalidInterval,
		ErrMalformedRecurrenceRule, ErrUnboundedExpansionWindow, ErrInsufficientData:
		return true
	}
	return false
}
