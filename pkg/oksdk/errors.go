package oksdk

import (
	"errors"
	"fmt"
	"net/http"
)

// ============================================================================
// Sentinel Errors
// ============================================================================

var (
	// ErrAuthRequired is returned when a call demands session scope but the
	// session only holds application credentials. No request is sent.
	ErrAuthRequired = errors.New("oksdk: session scope required")

	// ErrInvalidArgument is returned for preconditions the caller controls,
	// such as refreshing a session that has no refresh token.
	ErrInvalidArgument = errors.New("oksdk: invalid argument")
)

// ============================================================================
// APIError - error envelope of a regular API call
// ============================================================================

// APIError is returned when an API method answers with the
// {"error_code": ..., "error_msg": ...} envelope.
type APIError struct {
	// StatusCode is the HTTP status of the response (usually 200)
	StatusCode int `json:"-"`

	// Code is the numeric API error code (e.g. 100 for a missing parameter)
	Code int `json:"error_code"`

	// Message is the human readable error_msg
	Message string `json:"error_msg"`

	// Body is the raw response body
	Body []byte `json:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Code, e.Message)
}

// Known API error codes.
const (
	APIErrorUnknown          = 1
	APIErrorService          = 2
	APIErrorPermissionDenied = 10
	APIErrorParam            = 100
	APIErrorParamAPIKey      = 101
	APIErrorParamSessionExp  = 102
	APIErrorParamSignature   = 104
	APIErrorNotFound         = 300
)

// ============================================================================
// AuthError - OAuth token endpoint error
// ============================================================================

// AuthError represents an OAuth error response from /oauth/token.do.
type AuthError struct {
	// StatusCode is the HTTP status code of the token response
	StatusCode int `json:"-"`

	// Code is the OAuth error code (e.g. "invalid_token", "invalid_grant")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`

	// Body is the raw response body
	Body []byte `json:"-"`
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// ============================================================================
// TransportError - anything that broke before a JSON answer was classified
// ============================================================================

// TransportError covers network failures, non-2xx statuses without a known
// error envelope and bodies that are not valid JSON.
type TransportError struct {
	// StatusCode is 0 when no response was received
	StatusCode int

	// Body is the raw response body, if any
	Body []byte

	// Cause is the underlying error, if any
	Cause error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Cause != nil:
		return fmt.Sprintf("transport error (HTTP %d): %v", e.StatusCode, e.Cause)
	case e.StatusCode != 0:
		return fmt.Sprintf("transport error: HTTP %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	case e.Cause != nil:
		return fmt.Sprintf("transport error: %v", e.Cause)
	default:
		return "transport error"
	}
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// IsRetryable reports whether err is worth retrying without changing the
// request: network failures, 429 and 5xx responses. The SDK itself never
// retries; this is for callers building their own retry loops.
func IsRetryable(err error) bool {
	var te *TransportError
	if !errors.As(err, &te) {
		return false
	}

	switch {
	case te.StatusCode == 0:
		return te.Cause != nil && !isContextError(te.Cause)
	case te.StatusCode == http.StatusTooManyRequests:
		return true
	default:
		return te.StatusCode >= 500
	}
}
