package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/laced/internal/laced/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface implemented by the sqlite and
// postgres drivers. Sub-repositories are reached through methods so a Tx can
// hand out the same repositories bound to the transaction.
type Store interface {
	Users() Users
	Accounts() Accounts
	Sessions() Sessions
	GuestSessions() GuestSessions
	Products() Products

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn inside a transaction, committing when fn returns nil
	// and rolling back otherwise. fn must only use the Store it is given.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. Nested transactions are not supported.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts u. A duplicate email yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail expects an already normalised address.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// DeleteUser cascades to accounts and sessions.
	DeleteUser(ctx context.Context, id string) error
}

type Accounts interface {
	// CreateAccount inserts a. A duplicate (provider_id, account_id) yields
	// ErrAlreadyExists.
	CreateAccount(ctx context.Context, a domain.Account) error

	GetAccountByProvider(ctx context.Context, providerID, accountID string) (domain.Account, error)

	GetUserAccount(ctx context.Context, userID, providerID string) (domain.Account, error)
}

type Sessions interface {
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSessionByTokenHash returns the session regardless of expiry; callers
	// decide validity.
	GetSessionByTokenHash(ctx context.Context, tokenHash string) (domain.Session, error)

	// DeleteSessionByTokenHash is a no-op for an unknown hash.
	DeleteSessionByTokenHash(ctx context.Context, tokenHash string) error

	// DeleteExpiredSessions removes sessions with expires_at < now and
	// returns how many were removed.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

type GuestSessions interface {
	CreateGuestSession(ctx context.Context, g domain.GuestSession) error

	GetGuestSessionByTokenHash(ctx context.Context, tokenHash string) (domain.GuestSession, error)

	// DeleteGuestSessionByTokenHash is a no-op for an unknown hash.
	DeleteGuestSessionByTokenHash(ctx context.Context, tokenHash string) error

	DeleteExpiredGuestSessions(ctx context.Context, now time.Time) (int64, error)
}

type Products interface {
	CreateProduct(ctx context.Context, p domain.Product) error

	GetProductByID(ctx context.Context, id string) (domain.Product, error)

	// ListProducts returns one page matching f and the total number of
	// matches ignoring Limit and Offset.
	ListProducts(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int, error)

	// IsEmpty returns true if the catalog has no products.
	IsEmpty(ctx context.Context) (bool, error)
}
