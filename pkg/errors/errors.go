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
	ErrUnknown  ErrorCode = "UNKNOWN"
	ErrInternal ErrorCode = "INTERNAL"

	// Install pipeline errors
	ErrInput      ErrorCode = "INPUT"      // unreadable file, malformed URL, bad identity
	ErrExtraction ErrorCode = "EXTRACTION" // AppImage self-extraction failed
	ErrNetwork    ErrorCode = "NETWORK"    // page fetch failed
	ErrFilesystem ErrorCode = "FILESYSTEM" // permission denied, disk full, dangling link

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
)

// DeskitError represents a structured error with code and details
type DeskitError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DeskitError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DeskitError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *DeskitError) Is(target error) bool {
	var targetErr *DeskitError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DeskitError with the given code and message
func New(code ErrorCode, message string) *DeskitError {
	return &DeskitError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DeskitError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DeskitError {
	return &DeskitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DeskitError
func Wrap(err error, code ErrorCode, message string) *DeskitError {
	if err == nil {
		return nil
	}
	return &DeskitError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DeskitError {
	if err == nil {
		return nil
	}
	return &DeskitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DeskitError) WithDetail(key string, value interface{}) *DeskitError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code.
// The outermost DeskitError in the chain decides.
func IsErrorCode(err error, code ErrorCode) bool {
	var deskitErr *DeskitError
	if errors.As(err, &deskitErr) {
		return deskitErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DeskitError
func GetErrorCode(err error) ErrorCode {
	var deskitErr *DeskitError
	if errors.As(err, &deskitErr) {
		return deskitErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a DeskitError
func GetErrorDetails(err error) map[string]interface{} {
	var deskitErr *DeskitError
	if errors.As(err, &deskitErr) {
		return deskitErr.Details
	}
	return nil
}
