package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vietddude/interact/internal/core/domain"
	"github.com/vietddude/interact/internal/infra/storage"
)

func active(username string) *domain.Account {
	return &domain.Account{
		Username: username,
		Cookies:  map[string]string{"auth_token": "t"},
		Active:   true,
		Role:     domain.RoleDefault,
	}
}

func TestGetNextEligibleNeverReturnsInactive(t *testing.T) {
	s := NewStore()
	s.Add(&domain.Account{Username: "aaa", Active: false, Role: domain.RoleDefault})
	s.Add(active("bbb"))

	a, err := s.GetNextEligible(context.Background(), domain.RoleDefault, domain.OpCreatePost)
	if err != nil {
		t.Fatal(err)
	}
	if a == nil || a.Username != "bbb" {
		t.Errorf("got %+v, want bbb (inactive aaa skipped)", a)
	}
}

func TestGetNextEligibleOrderIsUsernameAscending(t *testing.T) {
	s := NewStore()
	s.Add(active("zoe"))
	s.Add(active("amy"))
	s.Add(active("mia"))

	for range 3 {
		a, err := s.GetNextEligible(context.Background(), domain.RoleDefault, domain.OpCreatePost)
		if err != nil {
			t.Fatal(err)
		}
		if a.Username != "amy" {
			t.Fatalf("got %q, want amy every time for an unchanged pool", a.Username)
		}
	}
}

func TestSuspendQueueExpiry(t *testing.T) {
	s := NewStore()
	s.Add(active("amy"))

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return now })

	ctx := context.Background()
	queue := domain.RateLimitQueue(domain.OpCreatePost)
	if err := s.SuspendQueue(ctx, "amy", queue, 10*time.Minute, "rate limited"); err != nil {
		t.Fatal(err)
	}

	a, _ := s.GetNextEligible(ctx, domain.RoleDefault, domain.OpCreatePost)
	if a != nil {
		t.Errorf("got %q, want none while locked", a.Username)
	}

	// Permission lock on the same operation is a distinct slot.
	if l, ok := s.LockFor("amy", domain.PermissionQueue(domain.OpCreatePost)); ok {
		t.Errorf("unexpected permission lock %+v", l)
	}

	now = now.Add(11 * time.Minute)
	a, _ = s.GetNextEligible(ctx, domain.RoleDefault, domain.OpCreatePost)
	if a == nil || a.Username != "amy" {
		t.Errorf("got %+v, want amy after lock expiry", a)
	}
}

func TestBan(t *testing.T) {
	s := NewStore()
	s.Add(active("amy"))
	ctx := context.Background()

	if err := s.Ban(ctx, "amy", "account suspended"); err != nil {
		t.Fatal(err)
	}

	if _, err := s.GetByUsername(ctx, "amy"); !errors.Is(err, domain.ErrAccountUnavailable) {
		t.Errorf("GetByUsername err = %v, want ErrAccountUnavailable", err)
	}
	a, _ := s.GetNextEligible(ctx, domain.RoleDefault, domain.OpCreatePost)
	if a != nil {
		t.Errorf("banned account still eligible: %+v", a)
	}
}

func TestRotateProxy(t *testing.T) {
	s := NewStore()
	s.Add(active("amy"))
	s.AddProxy("http://proxy-a:8080")
	s.AddProxy("http://proxy-b:8080")
	ctx := context.Background()

	if err := s.RotateProxy(ctx, "amy"); err != nil {
		t.Fatal(err)
	}
	a, _ := s.GetByUsername(ctx, "amy")
	if a.Proxy != "http://proxy-a:8080" {
		t.Errorf("proxy = %q, want proxy-a first", a.Proxy)
	}

	if err := s.RotateProxy(ctx, "amy"); err != nil {
		t.Fatal(err)
	}
	a, _ = s.GetByUsername(ctx, "amy")
	if a.Proxy != "http://proxy-b:8080" {
		t.Errorf("proxy = %q, want proxy-b next", a.Proxy)
	}

	// Wraps back to the first.
	if err := s.RotateProxy(ctx, "amy"); err != nil {
		t.Fatal(err)
	}
	a, _ = s.GetByUsername(ctx, "amy")
	if a.Proxy != "http://proxy-a:8080" {
		t.Errorf("proxy = %q, want wrap to proxy-a", a.Proxy)
	}
}

func TestRotateProxyEmptyPool(t *testing.T) {
	s := NewStore()
	s.Add(active("amy"))

	err := s.RotateProxy(context.Background(), "amy")
	if !errors.Is(err, storage.ErrNoProxyAvailable) {
		t.Errorf("err = %v, want ErrNoProxyAvailable", err)
	}
}
