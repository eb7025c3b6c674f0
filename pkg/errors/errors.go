package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Source directory errors (run-fatal, raised before any mutation)
	ErrSourceNotFound ErrorCode = "SOURCE_NOT_FOUND"
	ErrSourceNotDir   ErrorCode = "SOURCE_NOT_DIR"
	ErrSourceLocked   ErrorCode = "SOURCE_LOCKED"

	// Configuration errors
	ErrConfigLoad      ErrorCode = "CONFIG_LOAD"
	ErrConfigParse     ErrorCode = "CONFIG_PARSE"
	ErrConfigValid     ErrorCode = "CONFIG_INVALID"
	ErrTaxonomyOverlap ErrorCode = "TAXONOMY_OVERLAP"

	// FileSystem errors
	ErrDirCreate           ErrorCode = "DIR_CREATE"
	ErrFileMove            ErrorCode = "FILE_MOVE"
	ErrFileAccess          ErrorCode = "FILE_ACCESS"
	ErrCollisionUnresolved ErrorCode = "COLLISION_UNRESOLVED"

	// Reporting errors
	ErrReportWrite ErrorCode = "REPORT_WRITE"
	ErrHistory     ErrorCode = "HISTORY"
)

// OrdenaError represents a structured error with code and details
type OrdenaError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *OrdenaError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *OrdenaError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *OrdenaError) Is(target error) bool {
	var targetErr *OrdenaError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new OrdenaError with the given code and message
func New(code ErrorCode, message string) *OrdenaError {
	return &OrdenaError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new OrdenaError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *OrdenaError {
	return &OrdenaError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an OrdenaError
func Wrap(err error, code ErrorCode, message string) *OrdenaError {
	if err == nil {
		return nil
	}
	return &OrdenaError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *OrdenaError {
	if err == nil {
		return nil
	}
	return &OrdenaError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *OrdenaError) WithDetail(key string, value interface{}) *OrdenaError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *OrdenaError) WithDetails(details map[string]interface{}) *OrdenaError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var ordenaErr *OrdenaError
	if errors.As(err, &ordenaErr) {
		return ordenaErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an OrdenaError
func GetErrorCode(err error) ErrorCode {
	var ordenaErr *OrdenaError
	if errors.As(err, &ordenaErr) {
		return ordenaErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an OrdenaError
func GetErrorDetails(err error) map[string]interface{} {
	var ordenaErr *OrdenaError
	if errors.As(err, &ordenaErr) {
		return ordenaErr.Details
	}
	return nil
}
