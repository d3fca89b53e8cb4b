package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vietddude/interact/internal/core/domain"
	"github.com/vietddude/interact/internal/infra/storage"
)

// AccountRepo implements storage.AccountRepository using PostgreSQL. Queue
// locks live in the account_queue_locks table unless an external lock store
// (Redis) is supplied, in which case suspensions and eligibility checks go
// through it instead.
type AccountRepo struct {
	db    *DB
	locks storage.QueueLockStore // nil = SQL lock table
}

// NewAccountRepo creates a PostgreSQL account repository.
func NewAccountRepo(db *DB) *AccountRepo {
	return &AccountRepo{db: db}
}

// NewAccountRepoWithLocks creates a repository that keeps queue locks in the
// given external store.
func NewAccountRepoWithLocks(db *DB, locks storage.QueueLockStore) *AccountRepo {
	return &AccountRepo{db: db, locks: locks}
}

type accountRow struct {
	Username  string    `db:"username"`
	Cookies   []byte    `db:"cookies"`
	Proxy     string    `db:"proxy"`
	Active    bool      `db:"active"`
	Role      string    `db:"role"`
	LastError string    `db:"last_error"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r accountRow) toDomain() (*domain.Account, error) {
	cookies := map[string]string{}
	if len(r.Cookies) > 0 {
		if err := json.Unmarshal(r.Cookies, &cookies); err != nil {
			return nil, fmt.Errorf("decode cookies for %s: %w", r.Username, err)
		}
	}
	return &domain.Account{
		Username:  r.Username,
		Cookies:   cookies,
		Proxy:     r.Proxy,
		Active:    r.Active,
		Role:      domain.Role(r.Role),
		LastError: r.LastError,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

const accountColumns = `username, cookies, proxy, active, role, last_error, created_at, updated_at`

// GetByUsername retrieves an account by name. Banned/deactivated accounts
// are refused with domain.ErrAccountUnavailable.
func (r *AccountRepo) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	var row accountRow
	err := r.db.GetContext(ctx, &row,
		`SELECT `+accountColumns+` FROM accounts WHERE username = $1`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if !row.Active {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountUnavailable, username)
	}
	return row.toDomain()
}

// GetNextEligible returns the first active account for the role without an
// unexpired lock on either variant of the operation's queue, ordered by
// username.
func (r *AccountRepo) GetNextEligible(ctx context.Context, role domain.Role, op domain.Operation) (*domain.Account, error) {
	if r.locks != nil {
		return r.nextEligibleExternal(ctx, role, op)
	}

	var row accountRow
	err := r.db.GetContext(ctx, &row, `
		SELECT `+accountColumns+`
		FROM accounts a
		WHERE a.active AND a.role = $1
		  AND NOT EXISTS (
			SELECT 1 FROM account_queue_locks l
			WHERE l.username = a.username AND l.queue IN ($2, $3) AND l.expires_at > now()
		  )
		ORDER BY a.username
		LIMIT 1`,
		string(role), domain.RateLimitQueue(op).String(), domain.PermissionQueue(op).String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get eligible account: %w", err)
	}
	return row.toDomain()
}

func (r *AccountRepo) nextEligibleExternal(ctx context.Context, role domain.Role, op domain.Operation) (*domain.Account, error) {
	var rows []accountRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT `+accountColumns+` FROM accounts WHERE active AND role = $1 ORDER BY username`,
		string(role))
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	for _, row := range rows {
		locked, err := r.lockedForOp(ctx, row.Username, op)
		if err != nil {
			return nil, err
		}
		if locked {
			continue
		}
		return row.toDomain()
	}
	return nil, nil
}

func (r *AccountRepo) lockedForOp(ctx context.Context, username string, op domain.Operation) (bool, error) {
	for _, q := range []domain.QueueKey{domain.RateLimitQueue(op), domain.PermissionQueue(op)} {
		locked, err := r.locks.IsLocked(ctx, username, q)
		if err != nil {
			return false, fmt.Errorf("failed to check lock: %w", err)
		}
		if locked {
			return true, nil
		}
	}
	return false, nil
}

// SuspendQueue upserts a lock for (username, queue) expiring after d.
func (r *AccountRepo) SuspendQueue(ctx context.Context, username string, queue domain.QueueKey, d time.Duration, reason string) error {
	if r.locks != nil {
		return r.locks.Lock(ctx, username, queue, d, reason)
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO account_queue_locks (id, username, queue, reason, expires_at)
		VALUES ($1, $2, $3, $4, now() + make_interval(secs => $5))
		ON CONFLICT (username, queue)
		DO UPDATE SET id = EXCLUDED.id, reason = EXCLUDED.reason, expires_at = EXCLUDED.expires_at`,
		uuid.NewString(), username, queue.String(), reason, d.Seconds())
	if err != nil {
		return fmt.Errorf("failed to suspend queue %s for %s: %w", queue, username, err)
	}
	return nil
}

// Ban permanently deactivates the account.
func (r *AccountRepo) Ban(ctx context.Context, username, reason string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE accounts SET active = FALSE, last_error = $2, updated_at = now()
		WHERE username = $1`, username, reason)
	if err != nil {
		return fmt.Errorf("failed to ban %s: %w", username, err)
	}
	return nil
}

// RotateProxy assigns the next proxy after the account's current one,
// wrapping to the first when the current proxy is last (or unset).
func (r *AccountRepo) RotateProxy(ctx context.Context, username string) error {
	var next string
	err := r.db.GetContext(ctx, &next, `
		SELECT url FROM proxies
		WHERE url > (SELECT COALESCE(proxy, '') FROM accounts WHERE username = $1)
		ORDER BY url LIMIT 1`, username)
	if errors.Is(err, sql.ErrNoRows) {
		err = r.db.GetContext(ctx, &next, `SELECT url FROM proxies ORDER BY url LIMIT 1`)
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrNoProxyAvailable
		}
	}
	if err != nil {
		return fmt.Errorf("failed to pick proxy for %s: %w", username, err)
	}

	_, err = r.db.ExecContext(ctx, `
		UPDATE accounts SET proxy = $2, updated_at = now() WHERE username = $1`,
		username, next)
	if err != nil {
		return fmt.Errorf("failed to rotate proxy for %s: %w", username, err)
	}
	return nil
}

// Save inserts or updates an account record. Used by the CLI importer and tests.
func (r *AccountRepo) Save(ctx context.Context, account *domain.Account) error {
	cookies, err := json.Marshal(account.Cookies)
	if err != nil {
		return fmt.Errorf("encode cookies for %s: %w", account.Username, err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO accounts (username, cookies, proxy, active, role, last_error)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (username)
		DO UPDATE SET cookies = EXCLUDED.cookies, proxy = EXCLUDED.proxy,
		              active = EXCLUDED.active, role = EXCLUDED.role,
		              last_error = EXCLUDED.last_error, updated_at = now()`,
		account.Username, cookies, account.Proxy, account.Active,
		string(account.Role), account.LastError)
	if err != nil {
		return fmt.Errorf("failed to save account %s: %w", account.Username, err)
	}
	return nil
}

// List returns all accounts ordered by username. Used by the CLI status command.
func (r *AccountRepo) List(ctx context.Context) ([]*domain.Account, error) {
	var rows []accountRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT `+accountColumns+` FROM accounts ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	accounts := make([]*domain.Account, 0, len(rows))
	for _, row := range rows {
		a, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

// AddProxy registers a proxy URL in the rotation pool.
func (r *AccountRepo) AddProxy(ctx context.Context, url string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO proxies (url) VALUES ($1) ON CONFLICT (url) DO NOTHING`, url)
	if err != nil {
		return fmt.Errorf("failed to add proxy: %w", err)
	}
	return nil
}
