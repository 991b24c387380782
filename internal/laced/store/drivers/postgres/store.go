package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aussiebroadwan/laced/internal/laced/store/drivers/sqldb"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
)

// uniqueViolation is the SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// Store is the PostgreSQL backend, reached through pgx's database/sql driver.
type Store struct {
	*sqldb.Store
}

// NewStore opens dsn (a postgres:// URL or key=value string) and verifies the
// connection.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{Store: sqldb.NewStore(db, dialect{}, applyMigrations)}, nil
}

type dialect struct{}

func (dialect) Rebind(query string) string { return sqldb.RebindDollar(query) }

func (dialect) Timestamp(t time.Time) any { return t.UTC() }

func (dialect) IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
