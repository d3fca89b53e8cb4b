package interaction

import (
	"context"
	"fmt"

	"github.com/vietddude/interact/internal/core/domain"
	"github.com/vietddude/interact/internal/infra/storage"
)

// Resolver picks the account an interaction runs as.
type Resolver struct {
	store storage.AccountRepository
}

// NewResolver creates a resolver over the given account store.
func NewResolver(store storage.AccountRepository) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the account for op. A non-empty username is a hard
// requirement: the named account must exist, be available, and carry
// credentials. Otherwise the next eligible default-role account is used.
//
// Resolve is a read; it does not reserve the account. Two concurrent calls
// may resolve the same account, matching the pool's reference behavior.
func (r *Resolver) Resolve(ctx context.Context, op domain.Operation, username string) (*domain.Account, error) {
	if username != "" {
		account, err := r.store.GetByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		if account == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownAccount, username)
		}
		if !account.HasCredentials() {
			return nil, fmt.Errorf("%w: %s", domain.ErrMissingCredentials, username)
		}
		return account, nil
	}

	account, err := r.store.GetNextEligible(ctx, domain.RoleDefault, op)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("%w: role %q, operation %s", domain.ErrNoEligibleAccount, domain.RoleDefault, op)
	}
	return account, nil
}
