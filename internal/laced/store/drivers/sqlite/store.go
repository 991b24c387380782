package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/laced/internal/laced/store/drivers/sqldb"
	sqlitedriver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Store is the embedded SQLite backend.
type Store struct {
	*sqldb.Store
	dsn string
}

// NewStore opens dsn with the modernc driver. SQLite allows one writer, so
// the pool is pinned to a single connection; this also keeps ":memory:"
// databases alive for the life of the Store. Foreign keys are switched on
// through the DSN so every connection the pool opens enforces them.
func NewStore(dsn string) (*Store, error) {
	dsn = withForeignKeys(dsn)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		Store: sqldb.NewStore(db, dialect{}, applyMigrations),
		dsn:   dsn,
	}, nil
}

// withForeignKeys adds the foreign_keys pragma to dsn unless it already
// sets one.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_pragma=foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

type dialect struct{}

func (dialect) Rebind(query string) string { return sqldb.RebindQuestion(query) }

// Timestamp stores unix nanoseconds so comparisons are exact integer
// comparisons.
func (dialect) Timestamp(t time.Time) any { return t.UTC().UnixNano() }

func (dialect) IsUniqueViolation(err error) bool {
	var se *sqlitedriver.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	}
	return false
}
