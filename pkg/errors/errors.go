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
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrPermission   ErrorCode = "PERMISSION"

	// Traversal errors
	ErrDirectoryUnreadable ErrorCode = "DIRECTORY_UNREADABLE"

	// Criteria errors, always raised before any traversal starts
	ErrPatternCompile  ErrorCode = "PATTERN_COMPILE"
	ErrConstraintParse ErrorCode = "CONSTRAINT_PARSE"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Synchronization errors
	ErrFileCopy   ErrorCode = "FILE_COPY"
	ErrFileDelete ErrorCode = "FILE_DELETE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
	ErrLocked     ErrorCode = "LOCKED"
)

// ClseekError represents a structured error with code and details
type ClseekError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ClseekError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ClseekError) Unwrap() error {
	return e.Wrapped
}

// Is matches any ClseekError carrying the same code
func (e *ClseekError) Is(target error) bool {
	var targetErr *ClseekError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

func build(code ErrorCode, message string, wrapped error) *ClseekError {
	return &ClseekError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: wrapped,
	}
}

// New creates a new ClseekError with the given code and message
func New(code ErrorCode, message string) *ClseekError {
	return build(code, message, nil)
}

// Newf creates a new ClseekError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ClseekError {
	return build(code, fmt.Sprintf(format, args...), nil)
}

// Wrap wraps err with a code and message. A nil err gives nil.
func Wrap(err error, code ErrorCode, message string) *ClseekError {
	if err == nil {
		return nil
	}
	return build(code, message, err)
}

// Wrapf wraps err with a code and formatted message. A nil err gives nil.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ClseekError {
	if err == nil {
		return nil
	}
	return build(code, fmt.Sprintf(format, args...), err)
}

// WithDetail adds a detail to the error
func (e *ClseekError) WithDetail(key string, value interface{}) *ClseekError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var clErr *ClseekError
	if errors.As(err, &clErr) {
		return clErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ClseekError
func GetErrorCode(err error) ErrorCode {
	var clErr *ClseekError
	if errors.As(err, &clErr) {
		return clErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ClseekError
func GetErrorDetails(err error) map[string]interface{} {
	var clErr *ClseekError
	if errors.As(err, &clErr) {
		return clErr.Details
	}
	return nil
}

// Message renders err for people: the message chain without the code tag
func Message(err error) string {
	clErr, ok := err.(*ClseekError)
	if !ok {
		return err.Error()
	}
	if clErr.Wrapped == nil {
		return clErr.Message
	}
	return clErr.Message + ": " + Message(clErr.Wrapped)
}
