package steamapi

import (
	"errors"
	"fmt"
	"time"
)

// Kind classifies a failure at the Steam boundary. Every error this library
// returns for a remote-related problem is an *Error carrying one of these.
type Kind string

const (
	// KindRateLimited means no local rate token was available; the request
	// was refused before any network traffic. Never retried automatically.
	KindRateLimited Kind = "rate_limited"
	// KindNotFound means the requested resource does not exist upstream.
	KindNotFound Kind = "not_found"
	// KindAuthFailure means upstream rejected the API key, so retrying
	// without a configuration change is pointless.
	KindAuthFailure Kind = "auth_failure"
	// KindUpstreamFailure covers every other transport or protocol failure.
	KindUpstreamFailure Kind = "upstream_failure"
)

// Error is the typed failure returned by the Steam boundary.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int       // HTTP status, when a response was received
	RetryAfter time.Time // earliest useful retry, for KindRateLimited
	Err        error     // underlying cause, when one exists
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// RateLimited builds the refusal returned when the token bucket is empty.
func RateLimited(retryAfter time.Time) *Error {
	return &Error{
		Kind:       KindRateLimited,
		Message:    "steam api rate limit reached",
		RetryAfter: retryAfter,
	}
}

// NotFound builds the failure for a resource that does not exist upstream.
func NotFound(resource string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// AuthFailure builds the failure for rejected credentials.
func AuthFailure(statusCode int) *Error {
	return &Error{
		Kind:       KindAuthFailure,
		Message:    "steam api rejected credentials",
		StatusCode: statusCode,
	}
}

// Upstream builds the failure for any other transport or protocol problem.
func Upstream(statusCode int, cause error) *Error {
	return &Error{
		Kind:       KindUpstreamFailure,
		Message:    "steam api request failed",
		StatusCode: statusCode,
		Err:        cause,
	}
}

// IsKind reports whether err, anywhere in its chain, is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == k
}

func IsRateLimited(err error) bool     { return IsKind(err, KindRateLimited) }
func IsNotFound(err error) bool        { return IsKind(err, KindNotFound) }
func IsAuthFailure(err error) bool     { return IsKind(err, KindAuthFailure) }
func IsUpstreamFailure(err error) bool { return IsKind(err, KindUpstreamFailure) }

// RetryAfterHint extracts the retry-after timestamp from a rate-limited error.
func RetryAfterHint(err error) (time.Time, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Kind == KindRateLimited {
		return apiErr.RetryAfter, true
	}
	return time.Time{}, false
}
