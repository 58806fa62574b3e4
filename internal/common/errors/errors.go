// Package errors provides standardized error handling for the intake API.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeMethodNotAllowed  ErrorCode = "METHOD_NOT_ALLOWED"
	ErrCodeValidationFailed  ErrorCode = "VALIDATION_FAILED"
	ErrCodeHoneypotTriggered ErrorCode = "HONEYPOT_TRIGGERED"
	ErrCodeReceiptNotFound   ErrorCode = "RECEIPT_NOT_FOUND"
	ErrCodeChallengeMismatch ErrorCode = "CHALLENGE_MISMATCH"
	ErrCodeUpstreamFailure   ErrorCode = "UPSTREAM_FAILURE"
	ErrCodeInternal          ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error. Message is what the
// caller sees; Details stays in the logs.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// HTTPStatus maps an error code to the response status.
func (e *StandardError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case ErrCodeValidationFailed, ErrCodeHoneypotTriggered:
		return http.StatusBadRequest
	case ErrCodeReceiptNotFound:
		return http.StatusNotFound
	case ErrCodeChallengeMismatch:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// ==========================
// 2. Error Constructors
// ==========================

// NewMethodNotAllowedError rejects any HTTP method the endpoint does not serve.
func NewMethodNotAllowedError(method string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMethodNotAllowed,
		Message:   "Method not allowed",
		Details:   fmt.Sprintf("method: %s", method),
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationError reports a missing or malformed input field. The message
// is shown to the caller verbatim.
func NewValidationError(message, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewHoneypotError is the deliberately generic rejection for bot submissions.
func NewHoneypotError() *StandardError {
	return &StandardError{
		Code:      ErrCodeHoneypotTriggered,
		Message:   "Invalid request",
		Details:   "honeypot field was non-empty",
		Timestamp: time.Now().UTC(),
	}
}

// NewReceiptNotFoundError reports that no record matched the receipt identifier.
func NewReceiptNotFoundError(receiptTitle string) *StandardError {
	return &StandardError{
		Code:      ErrCodeReceiptNotFound,
		Message:   "Not found",
		Details:   fmt.Sprintf("receiptTitle: %s", receiptTitle),
		Timestamp: time.Now().UTC(),
	}
}

// NewChallengeMismatchError reports a failed last-4 phone check without
// revealing which digits were stored.
func NewChallengeMismatchError(receiptTitle string) *StandardError {
	return &StandardError{
		Code:      ErrCodeChallengeMismatch,
		Message:   "전화번호 뒷자리가 일치하지 않습니다",
		Details:   fmt.Sprintf("receiptTitle: %s", receiptTitle),
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamError wraps any external API failure behind a fixed user-facing
// message; the underlying cause goes to Details for operators only.
func NewUpstreamError(message string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeUpstreamFailure,
		Message:   message,
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
}
