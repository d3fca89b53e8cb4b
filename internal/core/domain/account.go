package domain

import (
	"time"
)

// Account represents a credentialed platform account managed by the pool.
type Account struct {
	Username  string
	Cookies   map[string]string
	Proxy     string // empty = direct egress
	Active    bool
	Role      Role
	LastError string // set when the account is banned
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Role string

const (
	// RoleDefault is the role used when a caller does not name an account.
	RoleDefault Role = "default"
)

// HasCredentials reports whether the account carries a usable session.
func (a *Account) HasCredentials() bool {
	return len(a.Cookies) > 0
}

// QueueLock is a temporary per-(account, queue) suspension. The store owns
// the expiry; an expired lock is treated as absent.
type QueueLock struct {
	ID        string
	Username  string
	Queue     QueueKey
	Reason    string
	ExpiresAt time.Time
}

// Expired reports whether the lock no longer suppresses selection at now.
func (l QueueLock) Expired(now time.Time) bool {
	return !l.ExpiresAt.After(now)
}
