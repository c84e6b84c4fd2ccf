// Package errors provides explicit, human-readable error types for dbsetup.
// Every error carries a Reason and a Suggestion so the operator knows what
// to fix before pasting anything into the database console.
package errors

import (
	"fmt"
)

// SetupError is the base error type for all dbsetup errors.
type SetupError struct {
	Code       ErrorCode
	Message    string
	Reason     string
	Suggestion string
	Cause      error
}

// ErrorCode represents the category of error for exit code mapping.
type ErrorCode int

const (
	CodeValidation ErrorCode = 1
	CodeInternal   ErrorCode = 4
)

func (e *SetupError) Error() string {
	msg := e.Message
	if e.Reason != "" {
		msg = fmt.Sprintf("%s\nReason: %s", msg, e.Reason)
	}
	if e.Suggestion != "" {
		msg = fmt.Sprintf("%s\nSuggestion: %s", msg, e.Suggestion)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s\nCaused by: %v", msg, e.Cause)
	}
	return msg
}

func (e *SetupError) Unwrap() error {
	return e.Cause
}

// ErrScriptNotFound is returned when a listed script does not exist.
type ErrScriptNotFound struct {
	SetupError
	Path string
}

// NewScriptNotFound creates a new ErrScriptNotFound.
func NewScriptNotFound(path string) *ErrScriptNotFound {
	return &ErrScriptNotFound{
		SetupError: SetupError{
			Code:       CodeValidation,
			Message:    fmt.Sprintf("SQL script not found: %s", path),
			Reason:     "no file exists at this path relative to the script root",
			Suggestion: "run 'dbsetup check' or pass --root to point at the project directory",
		},
		Path: path,
	}
}

// ErrScriptUnreadable is returned when a script exists but cannot be read
// as UTF-8 text.
type ErrScriptUnreadable struct {
	SetupError
	Path string
}

// NewScriptUnreadable creates a new ErrScriptUnreadable wrapping the
// underlying open or read failure.
func NewScriptUnreadable(path string, cause error) *ErrScriptUnreadable {
	reason := "unknown read failure"
	if cause != nil {
		reason = cause.Error()
	}
	return &ErrScriptUnreadable{
		SetupError: SetupError{
			Code:       CodeValidation,
			Message:    fmt.Sprintf("cannot read SQL script %s", path),
			Reason:     reason,
			Suggestion: "check file permissions and that the path is a regular file",
			Cause:      cause,
		},
		Path: path,
	}
}

// NewInvalidEncoding creates an ErrScriptUnreadable for content that is
// not valid UTF-8.
func NewInvalidEncoding(path string) *ErrScriptUnreadable {
	return &ErrScriptUnreadable{
		SetupError: SetupError{
			Code:       CodeValidation,
			Message:    fmt.Sprintf("cannot read SQL script %s", path),
			Reason:     "content is not valid UTF-8",
			Suggestion: "re-save the script with UTF-8 encoding",
		},
		Path: path,
	}
}

// ErrInvalidConfig is returned when configuration fails validation.
type ErrInvalidConfig struct {
	SetupError
	Field string
}

// NewInvalidConfig creates a new ErrInvalidConfig.
func NewInvalidConfig(field, reason string) *ErrInvalidConfig {
	return &ErrInvalidConfig{
		SetupError: SetupError{
			Code:       CodeInternal,
			Message:    "invalid configuration",
			Reason:     fmt.Sprintf("field '%s': %s", field, reason),
			Suggestion: "run 'dbsetup config show' to inspect the effective configuration",
		},
		Field: field,
	}
}
