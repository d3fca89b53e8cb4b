package interaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vietddude/interact/internal/core/domain"
	"github.com/vietddude/interact/internal/infra/storage/memory"
)

func seedStore() *memory.Store {
	store := memory.NewStore()
	store.Add(&domain.Account{
		Username: "alice",
		Cookies:  map[string]string{"auth_token": "t1"},
		Active:   true,
		Role:     domain.RoleDefault,
	})
	store.Add(&domain.Account{
		Username: "bob",
		Cookies:  map[string]string{"auth_token": "t2"},
		Active:   true,
		Role:     domain.RoleDefault,
	})
	store.Add(&domain.Account{
		Username: "carol",
		Cookies:  map[string]string{"auth_token": "t3"},
		Active:   false,
		Role:     domain.RoleDefault,
	})
	store.Add(&domain.Account{
		Username: "dave",
		Active:   true,
		Role:     domain.RoleDefault,
	})
	return store
}

func TestResolveExplicitUsername(t *testing.T) {
	r := NewResolver(seedStore())
	ctx := context.Background()

	account, err := r.Resolve(ctx, domain.OpCreatePost, "bob")
	if err != nil {
		t.Fatalf("Resolve(bob) error: %v", err)
	}
	if account.Username != "bob" {
		t.Errorf("resolved %q, want bob", account.Username)
	}
}

func TestResolveUnknownUsername(t *testing.T) {
	r := NewResolver(seedStore())

	_, err := r.Resolve(context.Background(), domain.OpCreatePost, "mallory")
	if !errors.Is(err, domain.ErrUnknownAccount) {
		t.Errorf("err = %v, want ErrUnknownAccount", err)
	}
}

func TestResolveBannedAccountRefused(t *testing.T) {
	r := NewResolver(seedStore())

	_, err := r.Resolve(context.Background(), domain.OpCreatePost, "carol")
	if !errors.Is(err, domain.ErrAccountUnavailable) {
		t.Errorf("err = %v, want ErrAccountUnavailable", err)
	}
}

func TestResolveMissingCredentials(t *testing.T) {
	r := NewResolver(seedStore())

	_, err := r.Resolve(context.Background(), domain.OpCreatePost, "dave")
	if !errors.Is(err, domain.ErrMissingCredentials) {
		t.Errorf("err = %v, want ErrMissingCredentials", err)
	}
}

func TestResolveDefaultRoleOrder(t *testing.T) {
	r := NewResolver(seedStore())

	// alice sorts first among active default accounts
	account, err := r.Resolve(context.Background(), domain.OpCreatePost, "")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if account.Username != "alice" {
		t.Errorf("resolved %q, want alice", account.Username)
	}
}

func TestResolveSkipsLockedAccount(t *testing.T) {
	store := seedStore()
	r := NewResolver(store)
	ctx := context.Background()

	if err := store.SuspendQueue(ctx, "alice", domain.RateLimitQueue(domain.OpCreatePost), 15*time.Minute, "rate limited"); err != nil {
		t.Fatal(err)
	}

	account, err := r.Resolve(ctx, domain.OpCreatePost, "")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if account.Username != "bob" {
		t.Errorf("resolved %q, want bob (alice locked)", account.Username)
	}

	// The lock is operation-scoped: other operations still see alice first.
	account, err = r.Resolve(ctx, domain.OpCreateFriendship, "")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if account.Username != "alice" {
		t.Errorf("resolved %q, want alice for unlocked operation", account.Username)
	}
}

func TestResolveNoEligibleAccount(t *testing.T) {
	store := memory.NewStore()
	store.Add(&domain.Account{
		Username: "inactive",
		Cookies:  map[string]string{"auth_token": "t"},
		Active:   false,
		Role:     domain.RoleDefault,
	})
	r := NewResolver(store)

	_, err := r.Resolve(context.Background(), domain.OpCreatePost, "")
	if !errors.Is(err, domain.ErrNoEligibleAccount) {
		t.Errorf("err = %v, want ErrNoEligibleAccount", err)
	}
}
