package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an error for HTTP translation.
type Code string

const (
	CodeInternal           Code = "INTERNAL_ERROR"
	CodeValidationFailed   Code = "VALIDATION_FAILED"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeForbidden          Code = "FORBIDDEN"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeTokenExpired       Code = "TOKEN_EXPIRED"
	CodeTokenInvalid       Code = "TOKEN_INVALID"
)

// Error is a structured error carrying a code, a client-safe message and
// optional field-level details. Wrapped causes stay server-side.
type Error struct {
	Code    Code
	Message string
	Details map[string]interface{}
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WithDetail attaches a field-level detail to the error.
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// HTTPStatusCode maps the error code to an HTTP status.
func (e *Error) HTTPStatusCode() int {
	return StatusFor(e.Code)
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and client-safe message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Err: err}
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the code from err, defaulting to CodeInternal.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// StatusFor maps an error code to an HTTP status code.
func StatusFor(code Code) int {
	switch code {
	case CodeValidationFailed:
		return http.StatusBadRequest
	case CodeUnauthorized, CodeInvalidCredentials, CodeTokenExpired, CodeTokenInvalid:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Common constructors.

func NotFound(resource, identifier string) *Error {
	return Newf(CodeNotFound, "%s not found: %s", resource, identifier)
}

func AlreadyExists(resource, identifier string) *Error {
	return Newf(CodeAlreadyExists, "%s already exists: %s", resource, identifier)
}

func InvalidCredentials() *Error {
	return New(CodeInvalidCredentials, "invalid username or password")
}

func Forbidden(message string) *Error {
	return New(CodeForbidden, message)
}

func Unauthorized(message string) *Error {
	return New(CodeUnauthorized, message)
}

func ValidationFailed(details map[string]interface{}) *Error {
	return &Error{Code: CodeValidationFailed, Message: "input validation failed", Details: details}
}

func Internal(err error) *Error {
	return Wrap(err, CodeInternal, "internal server error")
}
