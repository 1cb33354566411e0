package errors

import (
	"fmt"
	"net/http"
)

// Code represents a stable error code for programmatic handling.
type Code string

const (
	CodeInvalid          Code = "invalid"
	CodeNotFound         Code = "not_found"
	CodeMethodNotAllowed Code = "method_not_allowed"
	CodeUnauthorized     Code = "unauthorized"
	CodeTooLarge         Code = "too_large"
	CodeInternal         Code = "internal"
)

// AppError is a structured error type that carries a code, message, and optional metadata.
// Meta entries are rendered next to the message in error bodies.
type AppError struct {
	Code    Code
	Message string
	Err     error
	Meta    map[string]any
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *AppError) Unwrap() error { return e.Err }

// WithMeta attaches metadata to the error.
func (e *AppError) WithMeta(k string, v any) *AppError {
	if e.Meta == nil {
		e.Meta = map[string]any{}
	}
	e.Meta[k] = v
	return e
}

// Status returns the HTTP status for the error's code.
func (e *AppError) Status() int { return HTTPStatus(e.Code) }

// New creates a new AppError with code and message.
func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap wraps an existing error with code and message.
func Wrap(err error, code Code, message string) *AppError {
	if err == nil {
		return New(code, message)
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// HTTPStatus maps a code to the status written on the wire.
func HTTPStatus(code Code) int {
	switch code {
	case CodeInvalid:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case CodeTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}
