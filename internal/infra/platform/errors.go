// Package platform is the boundary to the social platform's private API.
// It exposes a cookie-authenticated client, a factory that binds one client
// per account, and a closed set of error kinds the interaction layer
// classifies on.
package platform

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrNoCredentials is returned by the factory when an account carries no
// session cookies. Construction is local; this never reaches the classifier.
var ErrNoCredentials = errors.New("platform: account has no session cookies")

// ErrorKind is the closed set of failure kinds a platform call can produce.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindRateLimited
	KindAccountSuspended
	KindAccountLocked
	KindUnauthorized
	KindForbidden
	KindNetwork
)

func (k ErrorKind) String() string {
	switch k {
	case KindRateLimited:
		return "rate_limited"
	case KindAccountSuspended:
		return "account_suspended"
	case KindAccountLocked:
		return "account_locked"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// Error is a typed platform failure. Headers carries rate-limit metadata for
// KindRateLimited; APICode is the platform's numeric error code when present.
type Error struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
	APICode    int
	Headers    map[string]string
	cause      error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("platform: %s (http %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("platform: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// NetworkError wraps a transport-level failure (dial, TLS, timeout, bad body).
func NetworkError(err error) *Error {
	return &Error{Kind: KindNetwork, Message: err.Error(), cause: err}
}

// headerRateLimitReset is the platform's reset header: a future Unix timestamp.
const headerRateLimitReset = "x-rate-limit-reset"

// ResetAfter returns the time until the rate limit resets, read from the
// error's reset header relative to now. ok is false when the header is
// absent, unparseable, or not in the future.
func (e *Error) ResetAfter(now time.Time) (time.Duration, bool) {
	raw, found := e.Headers[headerRateLimitReset]
	if !found {
		return 0, false
	}
	ts, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	d := time.Unix(ts, 0).Sub(now)
	if d <= 0 {
		return 0, false
	}
	return d, true
}

// KindOf extracts the error kind from err, or KindUnknown when err is not a
// platform error.
func KindOf(err error) ErrorKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindUnknown
}
