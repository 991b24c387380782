// Package sqldb implements the store repositories on database/sql. The
// sqlite and postgres drivers share it and differ only in their Dialect and
// migrations.
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/laced/internal/laced/store"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Dialect captures what differs between database engines.
type Dialect interface {
	// Rebind rewrites '?' placeholders into the engine's syntax.
	Rebind(query string) string

	// Timestamp converts t into the value stored in a timestamp column.
	Timestamp(t time.Time) any

	// IsUniqueViolation reports whether err is a unique or primary key
	// constraint failure.
	IsUniqueViolation(err error) bool
}

// Migrator applies the driver's embedded migrations to db.
type Migrator func(db *sql.DB) error

// Store implements store.Store on a *sql.DB.
type Store struct {
	db      *sql.DB
	dialect Dialect
	migrate Migrator
}

func NewStore(db *sql.DB, dialect Dialect, migrate Migrator) *Store {
	return &Store{db: db, dialect: dialect, migrate: migrate}
}

// DB exposes the underlying handle for driver specific setup.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) ApplyMigrations() error {
	if s.migrate == nil {
		return nil
	}
	return s.migrate(s.db)
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx, s.dialect), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Users() store.Users                 { return &usersRepo{db: s.db, d: s.dialect} }
func (s *Store) Accounts() store.Accounts           { return &accountsRepo{db: s.db, d: s.dialect} }
func (s *Store) Sessions() store.Sessions           { return &sessionsRepo{db: s.db, d: s.dialect} }
func (s *Store) GuestSessions() store.GuestSessions { return &guestSessionsRepo{db: s.db, d: s.dialect} }
func (s *Store) Products() store.Products           { return &productsRepo{db: s.db, d: s.dialect} }

// RebindQuestion leaves '?' placeholders untouched.
func RebindQuestion(query string) string { return query }

// RebindDollar numbers '?' placeholders as $1, $2, ... Queries in this
// package never contain a literal '?'.
func RebindDollar(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func mapInsert(d Dialect, err error) error {
	if err != nil && d.IsUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}
