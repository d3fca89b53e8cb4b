package domain

import "errors"

var (
	// ErrUnknownAccount is returned when an explicitly named account does not exist.
	ErrUnknownAccount = errors.New("account not found")

	// ErrAccountUnavailable is returned when an explicitly named account exists
	// but the store refuses to hand it out (banned or deactivated).
	ErrAccountUnavailable = errors.New("account unavailable")

	// ErrNoEligibleAccount is returned when no active account with the requested
	// role is free for the operation.
	ErrNoEligibleAccount = errors.New("no eligible account")

	// ErrMissingCredentials is returned when a resolved account has no session cookies.
	ErrMissingCredentials = errors.New("account has no credentials")
)
