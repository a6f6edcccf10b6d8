// Package errors provides standardized error handling for rulesync.
// It defines the two error families the application reports (configuration
// and operation errors), helpers for consistent creation and wrapping, and
// the single normalization boundary that converts any underlying failure
// into a wire-level error record.
package errors

import (
	"errors"
	"fmt"

	"rulesync/pkg/types"
)

// Standard errors package functions re-exported for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Config error kinds
	ConfigNotFound
	ConfigMalformed
	ConfigMissingField
	ConfigBadSourceDir
	// Operation error kinds
	SourceMissing
	TargetCreateFailed
	ListFailed
	CopyFailed
	InvalidRequest
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// ConfigError represents errors related to the persisted configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// OperationError represents filesystem-level failures during a
// synchronization batch
type OperationError struct {
	ApplicationError
	path string
}

// NewOperationError creates a new operation error
func NewOperationError(msg string, path string, kind ErrorKind, err error) *OperationError {
	return &OperationError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the operation error message
func (e *OperationError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the filesystem path associated with the error
func (e *OperationError) Path() string {
	return e.path
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// IsConfigError checks if the error is a configuration error
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}

// IsOperationError checks if the error is an operation error
func IsOperationError(err error) bool {
	var opErr *OperationError
	return errors.As(err, &opErr)
}

// Normalize converts any error into its wire-level record. Configuration
// errors map to CONFIG_PARSING_ERROR; everything else, including errors
// from outside this package, maps to OPERATION_ERROR. An error with no
// message gets the generic "Unknown error" description.
func Normalize(err error) types.SyncError {
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return types.SyncError{Type: types.ConfigParsingError, Message: cfgErr.Error()}
	}

	msg := "Unknown error"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return types.SyncError{Type: types.OperationError, Message: msg}
}
