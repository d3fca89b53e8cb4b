// Package interaction is the selection → execution → classification core.
// It resolves an account from the pool, performs one platform call through a
// freshly bound client, and on failure maps the error onto the corrective
// account mutation before surfacing the error unchanged.
package interaction

import (
	"errors"
	"time"

	"github.com/vietddude/interact/internal/core/domain"
	"github.com/vietddude/interact/internal/infra/platform"
)

const (
	// DefaultRateLimitSuspension is used when a rate-limit error carries no
	// usable reset header.
	DefaultRateLimitSuspension = 15 * time.Minute

	// ForbiddenSuspension locks the permission queue after the platform
	// refused the operation for this account.
	ForbiddenSuspension = 24 * time.Hour
)

// Classifier maps a failed platform call onto an account store mutation.
// Classification is a pure function of the error's kind (and, for rate
// limits, its reset header); it performs no I/O.
type Classifier struct {
	now func() time.Time
}

// NewClassifier creates a classifier using the wall clock.
func NewClassifier() *Classifier {
	return &Classifier{now: time.Now}
}

// NewClassifierWithClock creates a classifier with a fixed clock. Tests only.
func NewClassifierWithClock(now func() time.Time) *Classifier {
	return &Classifier{now: now}
}

// Classify returns the decision for err raised while username ran op.
//
// Rate limits and permission denials are operation-scoped, so they lock a
// queue rather than the account. Suspension, locking and credential failures
// are account-wide and permanent. Transport failures indicate a bad egress
// path, not a bad account, so they rotate the proxy. Anything unrecognized
// mutates nothing.
func (c *Classifier) Classify(err error, username string, op domain.Operation) domain.Decision {
	d := domain.Decision{Username: username, Action: domain.ActionNone}

	var pe *platform.Error
	if !errors.As(err, &pe) {
		return d
	}

	switch pe.Kind {
	case platform.KindRateLimited:
		d.Action = domain.ActionSuspendQueue
		d.Queue = domain.RateLimitQueue(op)
		d.Duration = DefaultRateLimitSuspension
		if reset, ok := pe.ResetAfter(c.now()); ok {
			d.Duration = reset
		}
		d.Reason = "rate limited"

	case platform.KindAccountSuspended:
		d.Action = domain.ActionBan
		d.Reason = "account suspended"

	case platform.KindAccountLocked:
		d.Action = domain.ActionBan
		d.Reason = "account locked"

	case platform.KindUnauthorized:
		d.Action = domain.ActionBan
		d.Reason = "invalid or expired credentials"

	case platform.KindForbidden:
		d.Action = domain.ActionSuspendQueue
		d.Queue = domain.PermissionQueue(op)
		d.Duration = ForbiddenSuspension
		d.Reason = "operation forbidden"

	case platform.KindNetwork:
		d.Action = domain.ActionRotateProxy
		d.Reason = "network failure"
	}

	return d
}
