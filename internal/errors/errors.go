package errors

import "fmt"

// ErrorCode represents a termcard error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrUpstream       ErrorCode = "UPSTREAM"        // provider's own status
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// CardError represents a structured error with code, status, and details.
type CardError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *CardError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *CardError {
	return &CardError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for an unknown GitHub user.
func NewNotFound(username string) *CardError {
	return &CardError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("user not found: %s", username),
		Details: map[string]any{"username": username},
	}
}

// NewUpstream creates an error that carries the provider's own HTTP status.
// Used for non-2xx, non-404 responses from the primary profile fetch.
func NewUpstream(status int, msg string) *CardError {
	return &CardError{
		Code:    ErrUpstream,
		Status:  status,
		Message: msg,
		Details: map[string]any{"upstream_status": status},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
// The message is the wrapped error's text, never a raw provider payload
// or a stack trace.
func NewInternal(err error) *CardError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &CardError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a CardError with the given code.
func Is(err error, code ErrorCode) bool {
	if cErr, ok := err.(*CardError); ok {
		return cErr.Code == code
	}
	return false
}
