package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrCode represents an error code
type ErrCode string

const (
	ErrCodeCredential ErrCode = "CREDENTIAL_ERROR"
	ErrCodeFetch      ErrCode = "FETCH_FAILED"
	ErrCodeDataShape  ErrCode = "DATA_SHAPE"
	ErrCodeWrite      ErrCode = "WRITE_FAILED"
	ErrCodeUsage      ErrCode = "USAGE"
	ErrCodeConfig     ErrCode = "CONFIG"
)

// AppError represents an application error
type AppError struct {
	Code    ErrCode
	Message string
	// StatusCode is the HTTP status for fetch errors, 0 when no response arrived.
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewCredentialError creates a new credential error
func NewCredentialError(path string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeCredential,
		Message: fmt.Sprintf("cannot read token file %s", path),
		Err:     err,
	}
}

// NewFetchError creates an error for a request that never got a response
func NewFetchError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeFetch,
		Message: message,
		Err:     err,
	}
}

// NewStatusError creates an error for a non-200 response
func NewStatusError(statusCode int) *AppError {
	return &AppError{
		Code:       ErrCodeFetch,
		Message:    fmt.Sprintf("unexpected status code %d", statusCode),
		StatusCode: statusCode,
	}
}

// NewDataShapeError creates a new data shape error
func NewDataShapeError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeDataShape,
		Message: message,
		Err:     err,
	}
}

// NewWriteError creates a new write error
func NewWriteError(path string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeWrite,
		Message: fmt.Sprintf("failed to write %s", path),
		Err:     err,
	}
}

// NewUsageError creates a new usage error
func NewUsageError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeUsage,
		Message: message,
	}
}

// NewConfigError wraps a configuration validation failure
func NewConfigError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeConfig,
		Message: "invalid configuration",
		Err:     err,
	}
}

// CodeOf returns the code of the first AppError in err's chain, or "".
func CodeOf(err error) ErrCode {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// IsFetch checks if the error is a fetch error
func IsFetch(err error) bool {
	return CodeOf(err) == ErrCodeFetch
}

// IsDataShape checks if the error is a data shape error
func IsDataShape(err error) bool {
	return CodeOf(err) == ErrCodeDataShape
}

// IsUsage checks if the error is a usage error
func IsUsage(err error) bool {
	return CodeOf(err) == ErrCodeUsage
}

// StatusCode returns the HTTP status carried by a fetch error, or 0.
func StatusCode(err error) int {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return 0
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case IsUsage(err):
		return 2
	default:
		return 1
	}
}
