package storage

import (
	"context"
	"errors"
	"time"

	"github.com/vietddude/interact/internal/core/domain"
)

var (
	// ErrNoProxyAvailable is returned by RotateProxy when the proxy pool is empty.
	ErrNoProxyAvailable = errors.New("no proxy available")
)

// AccountRepository is the account pool's storage contract. All three
// mutations are atomic from the store's perspective; a concurrent reader
// never observes a half-applied lock or ban.
type AccountRepository interface {
	// GetByUsername retrieves an account by name. Returns (nil, nil) when the
	// account does not exist, and domain.ErrAccountUnavailable when it exists
	// but is banned/deactivated.
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)

	// GetNextEligible returns the first active account with the given role
	// that carries no unexpired lock for the operation (neither the rate-limit
	// nor the permission variant), ordered by username ascending. Returns
	// (nil, nil) when none qualifies.
	GetNextEligible(ctx context.Context, role domain.Role, op domain.Operation) (*domain.Account, error)

	// SuspendQueue places a temporary lock on (username, queue). An existing
	// lock for the same pair is replaced.
	SuspendQueue(ctx context.Context, username string, queue domain.QueueKey, d time.Duration, reason string) error

	// Ban permanently deactivates the account and records the reason.
	Ban(ctx context.Context, username, reason string) error

	// RotateProxy assigns the next proxy from the pool to the account.
	RotateProxy(ctx context.Context, username string) error
}

// QueueLockStore holds expiring (account, queue) locks. The store owns the
// expiry; callers only ever set and test locks.
type QueueLockStore interface {
	Lock(ctx context.Context, username string, queue domain.QueueKey, d time.Duration, reason string) error
	IsLocked(ctx context.Context, username string, queue domain.QueueKey) (bool, error)
}
