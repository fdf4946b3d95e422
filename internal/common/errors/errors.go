// Package errors provides standardized error handling for upstream calls and views.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeUpstreamUnavailable     ErrorCode = "UPSTREAM_UNAVAILABLE"
	ErrCodeUpstreamStatus          ErrorCode = "UPSTREAM_STATUS"
	ErrCodeUpstreamDecodeFailed    ErrorCode = "UPSTREAM_DECODE_FAILED"
	ErrCodeUpstreamResponseInvalid ErrorCode = "UPSTREAM_RESPONSE_INVALID"

	ErrCodeSessionStoreFailed ErrorCode = "SESSION_STORE_FAILED"
	ErrCodeRequestPending     ErrorCode = "REQUEST_PENDING"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	Details    string                 `json:"details,omitempty"`
	Retryable  bool                   `json:"retryable"`
	StatusCode int                    `json:"statusCode,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`
	cause      error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// NewUpstreamUnavailableError creates a retryable transport error.
func NewUpstreamUnavailableError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeUpstreamUnavailable,
		Message:   "Recommendation service unreachable",
		Details:   fmt.Sprintf("operation: %s, error: %s", operation, err.Error()),
		Retryable: true,
		Metadata:  map[string]interface{}{"operation": operation},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewUpstreamStatusError creates an error for a non-2xx response.
func NewUpstreamStatusError(operation string, status int, body string) *StandardError {
	return &StandardError{
		Code:       ErrCodeUpstreamStatus,
		Message:    "Recommendation service returned an error",
		Details:    fmt.Sprintf("operation: %s, status: %d, body: %s", operation, status, body),
		Retryable:  status >= 500,
		StatusCode: status,
		Metadata:   map[string]interface{}{"operation": operation},
		Timestamp:  time.Now().UTC(),
	}
}

// NewUpstreamDecodeError creates a non-retryable decoding error.
func NewUpstreamDecodeError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeUpstreamDecodeFailed,
		Message:   "Recommendation service response could not be decoded",
		Details:   fmt.Sprintf("operation: %s, error: %s", operation, err.Error()),
		Retryable: false,
		Metadata:  map[string]interface{}{"operation": operation},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewUpstreamResponseInvalidError creates an error for a response that decoded but broke its contract.
func NewUpstreamResponseInvalidError(operation string, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUpstreamResponseInvalid,
		Message:   "Recommendation service response is invalid",
		Details:   fmt.Sprintf("operation: %s, %s", operation, details),
		Retryable: false,
		Metadata:  map[string]interface{}{"operation": operation},
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionStoreError creates a retryable session persistence error.
func NewSessionStoreError(op string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionStoreFailed,
		Message:   "Session store error",
		Details:   fmt.Sprintf("op: %s, error: %s", op, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewRequestPendingError reports a mutation that is already in flight for the session.
func NewRequestPendingError(action string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequestPending,
		Message:   "Request already in progress",
		Details:   fmt.Sprintf("action: %s", action),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// HasCode reports whether err is a StandardError with the given code.
func HasCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	return stderrors.As(err, &stdErr) && stdErr.Code == code
}

// IsRetryable reports whether the user may usefully retry the action.
func IsRetryable(err error) bool {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Retryable
	}
	return false
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "UPSTREAM"):
		return "UPSTREAM"
	case strings.HasPrefix(codeStr, "SESSION"):
		return "SESSION"
	case code == ErrCodeRequestPending:
		return "CONCURRENCY"
	default:
		return "OTHER"
	}
}
