package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vietddude/interact/internal/core/domain"
	"github.com/vietddude/interact/internal/infra/storage"
)

// Store is an in-memory storage.AccountRepository. Selection order is
// username ascending, matching the PostgreSQL implementation.
type Store struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
	locks    map[lockKey]domain.QueueLock
	proxies  []string

	now func() time.Time
}

type lockKey struct {
	username string
	queue    string
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		accounts: make(map[string]*domain.Account),
		locks:    make(map[lockKey]domain.QueueLock),
		now:      time.Now,
	}
}

// SetClock overrides the store's clock. Tests only.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Add inserts or replaces an account.
func (s *Store) Add(account *domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *account
	s.accounts[account.Username] = &cp
}

// AddProxy appends a proxy URL to the rotation pool.
func (s *Store) AddProxy(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.proxies = append(s.proxies, url)
	sort.Strings(s.proxies)
}

func (s *Store) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[username]
	if !ok {
		return nil, nil
	}
	if !a.Active {
		return nil, domain.ErrAccountUnavailable
	}
	cp := *a
	return &cp, nil
}

func (s *Store) GetNextEligible(ctx context.Context, role domain.Role, op domain.Operation) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.accounts))
	for name := range s.accounts {
		names = append(names, name)
	}
	sort.Strings(names)

	now := s.now()
	queues := []domain.QueueKey{domain.RateLimitQueue(op), domain.PermissionQueue(op)}
	for _, name := range names {
		a := s.accounts[name]
		if !a.Active || a.Role != role {
			continue
		}
		locked := false
		for _, q := range queues {
			if l, ok := s.locks[lockKey{name, q.String()}]; ok && !l.Expired(now) {
				locked = true
				break
			}
		}
		if locked {
			continue
		}
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (s *Store) SuspendQueue(ctx context.Context, username string, queue domain.QueueKey, d time.Duration, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locks[lockKey{username, queue.String()}] = domain.QueueLock{
		ID:        uuid.NewString(),
		Username:  username,
		Queue:     queue,
		Reason:    reason,
		ExpiresAt: s.now().Add(d),
	}
	return nil
}

func (s *Store) Ban(ctx context.Context, username, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.accounts[username]; ok {
		a.Active = false
		a.LastError = reason
		a.UpdatedAt = s.now()
	}
	return nil
}

func (s *Store) RotateProxy(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.proxies) == 0 {
		return storage.ErrNoProxyAvailable
	}
	a, ok := s.accounts[username]
	if !ok {
		return nil
	}
	next := s.proxies[0]
	for _, p := range s.proxies {
		if p > a.Proxy {
			next = p
			break
		}
	}
	a.Proxy = next
	a.UpdatedAt = s.now()
	return nil
}

// LockFor returns the current lock on (username, queue), expired or not.
// Tests only.
func (s *Store) LockFor(username string, queue domain.QueueKey) (domain.QueueLock, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.locks[lockKey{username, queue.String()}]
	return l, ok
}
