// Package errors provides typed errors for the report pipeline.
//
// The propagation policy is deliberate: date parsing and malformed
// top-level input fail loudly, while per-field and per-asset lookups
// degrade so one bad record never aborts a multi-asset report.
package errors

import (
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeInput indicates an input validation error
	TypeInput Type = "INPUT_ERROR"

	// TypeParse indicates a malformed date or numeric string
	TypeParse Type = "PARSE_ERROR"

	// TypeMissingData indicates an absent nested field or parameter
	TypeMissingData Type = "MISSING_DATA"

	// TypeFinancial indicates a failure while building per-asset financials
	TypeFinancial Type = "FINANCIAL_ERROR"

	// TypeExternalService indicates an external service failure
	TypeExternalService Type = "EXTERNAL_SERVICE_ERROR"

	// TypeNetwork indicates a network error
	TypeNetwork Type = "NETWORK_ERROR"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error is of a specific type
func (e *Error) Is(t Type) bool {
	return e.Type == t
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(errType Type, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// IsType checks if an error is of a specific type
func IsType(err error, t Type) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == t
	}
	return false
}

// Input creates an input error
func Input(message string) *Error {
	return New(TypeInput, message)
}

// Parse creates a parse error
func Parse(message string, cause error) *Error {
	return Wrap(TypeParse, message, cause)
}

// MissingData creates a missing data error
func MissingData(what, where string) *Error {
	return Newf(TypeMissingData, "%s not present in %s", what, where)
}

// Financial creates a financial computation error
func Financial(message string, cause error) *Error {
	return Wrap(TypeFinancial, message, cause)
}

// ExternalService creates an external service error
func ExternalService(service string, cause error) *Error {
	return Wrapf(TypeExternalService, cause, "%s request failed", service)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
