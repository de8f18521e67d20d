package microsoft

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Error types for Microsoft Graph API responses.
var (
	// ErrUnauthorised indicates the access token is invalid or expired.
	ErrUnauthorised = errors.New("microsoft: unauthorised")

	// ErrForbidden indicates the user lacks permission for the requested resource.
	ErrForbidden = errors.New("microsoft: forbidden")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("microsoft: not found")

	// ErrRateLimited indicates the request was throttled by Microsoft Graph.
	ErrRateLimited = errors.New("microsoft: rate limited")

	// ErrBadRequest indicates the request was malformed.
	ErrBadRequest = errors.New("microsoft: bad request")

	// ErrServerError indicates a server-side error from Microsoft Graph.
	ErrServerError = errors.New("microsoft: server error")
)

// WrapError converts an HTTP status code to an appropriate error.
func WrapError(statusCode int) error {
	switch statusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorised
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusBadRequest:
		return ErrBadRequest
	default:
		if statusCode >= 500 {
			return ErrServerError
		}
		return nil
	}
}

// HTTPError is returned for any non-2xx response from Graph or the token endpoint.
// It unwraps to the sentinel for its status code, so errors.Is(err, ErrNotFound) works.
type HTTPError struct {
	StatusCode int
	// Code is the Graph error code or the OAuth "error" field.
	Code string
	// Description is the Graph error message or the OAuth "error_description" field.
	Description string
	// Body is the raw response body.
	Body string
	// RetryAfter is parsed from the Retry-After header of throttled responses.
	RetryAfter time.Duration
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("microsoft: request failed with status %d", e.StatusCode)
	if e.Code != "" {
		msg += ": " + e.Code
	}
	if e.Description != "" {
		msg += " - " + e.Description
	}
	return msg
}

// Unwrap returns the status sentinel, or nil for statuses without one.
func (e *HTTPError) Unwrap() error {
	return WrapError(e.StatusCode)
}

// newHTTPError builds an HTTPError, extracting error details from either the
// Graph shape {"error":{"code","message"}} or the OAuth shape {"error","error_description"}.
func newHTTPError(statusCode int, header http.Header, body []byte) *HTTPError {
	e := &HTTPError{
		StatusCode: statusCode,
		Body:       string(body),
		RetryAfter: parseRetryAfter(header.Get("Retry-After")),
	}

	var envelope struct {
		Error       json.RawMessage `json:"error"`
		Description string          `json:"error_description"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Error) == 0 {
		return e
	}

	if strings.HasPrefix(strings.TrimSpace(string(envelope.Error)), "{") {
		var graphErr struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(envelope.Error, &graphErr); err == nil {
			e.Code = graphErr.Code
			e.Description = graphErr.Message
		}
		return e
	}

	var code string
	if err := json.Unmarshal(envelope.Error, &code); err == nil {
		e.Code = code
		e.Description = envelope.Description
	}
	return e
}

// parseRetryAfter reads a Retry-After header given in seconds.
func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// ParseError is returned when a response body does not match the expected schema.
type ParseError struct {
	// Target names what was being decoded, e.g. "presence".
	Target string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("microsoft: parse %s: %v", e.Target, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// AuthError is returned when an authorization code exchange or token refresh fails.
// It wraps the underlying HTTPError or ParseError.
type AuthError struct {
	// Op is the failed operation, e.g. "request token".
	Op  string
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("microsoft: %s: %v", e.Op, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status carried by err, or 0 if it carries none.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}

// IsUnauthorised checks if the status code indicates an authentication failure.
func IsUnauthorised(statusCode int) bool {
	return statusCode == http.StatusUnauthorized
}

// IsRateLimited checks if the status code indicates rate limiting.
func IsRateLimited(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests
}

// IsNotFound checks if the status code indicates a missing resource.
func IsNotFound(statusCode int) bool {
	return statusCode == http.StatusNotFound
}

// IsRetryable checks if the error is potentially transient. Nothing in this
// package retries; callers can use it to drive their own retry policy.
func IsRetryable(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests ||
		statusCode == http.StatusServiceUnavailable ||
		statusCode == http.StatusGatewayTimeout
}
