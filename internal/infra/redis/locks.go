package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vietddude/interact/internal/core/domain"
)

// Config holds Redis connection configuration.
type Config struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
}

// LockStore keeps queue locks as Redis keys with TTLs. The key's expiry is
// the lock's expiry, so expired locks vanish without a sweeper.
type LockStore struct {
	rdb *redis.Client
}

// NewLockStore creates a Redis-backed queue lock store.
func NewLockStore(cfg Config) (*LockStore, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &LockStore{rdb: rdb}, nil
}

// Close closes the Redis connection.
func (s *LockStore) Close() error {
	return s.rdb.Close()
}

func lockName(username string, queue domain.QueueKey) string {
	return fmt.Sprintf("queue_lock:%s:%s", username, queue)
}

// Lock suspends (username, queue) for d, storing the reason as the value.
// Re-locking an already locked pair replaces the TTL.
func (s *LockStore) Lock(ctx context.Context, username string, queue domain.QueueKey, d time.Duration, reason string) error {
	if err := s.rdb.Set(ctx, lockName(username, queue), reason, d).Err(); err != nil {
		return fmt.Errorf("failed to lock %s for %s: %w", queue, username, err)
	}
	return nil
}

// IsLocked reports whether (username, queue) carries an unexpired lock.
func (s *LockStore) IsLocked(ctx context.Context, username string, queue domain.QueueKey) (bool, error) {
	n, err := s.rdb.Exists(ctx, lockName(username, queue)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check lock: %w", err)
	}
	return n > 0, nil
}
