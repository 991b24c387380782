package sqldb

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/laced/internal/laced/store"
)

type txStore struct {
	tx *sql.Tx
	d  Dialect
}

func newTx(tx *sql.Tx, d Dialect) *txStore {
	return &txStore{tx: tx, d: d}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Close is a no-op; the caller commits or rolls back and the DB stays open.
func (t *txStore) Close() error { return nil }

// Ping is a no-op, the transaction already holds a live connection.
func (t *txStore) Ping(context.Context) error { return nil }

func (t *txStore) Tx(context.Context) (store.Tx, error) {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(context.Context, func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Users() store.Users                 { return &usersRepo{db: t.tx, d: t.d} }
func (t *txStore) Accounts() store.Accounts           { return &accountsRepo{db: t.tx, d: t.d} }
func (t *txStore) Sessions() store.Sessions           { return &sessionsRepo{db: t.tx, d: t.d} }
func (t *txStore) GuestSessions() store.GuestSessions { return &guestSessionsRepo{db: t.tx, d: t.d} }
func (t *txStore) Products() store.Products           { return &productsRepo{db: t.tx, d: t.d} }

func (t *txStore) ApplyMigrations() error { return nil } // migrations run before any tx
