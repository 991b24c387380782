package sqldb

import (
	"context"
	"time"

	"github.com/aussiebroadwan/laced/internal/laced/domain"
)

type sessionsRepo struct {
	db DBTX
	d  Dialect
}

const sessionColumns = `id, user_id, token_hash, ip_address, user_agent, expires_at, created_at`

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	_, err := r.db.ExecContext(ctx, r.d.Rebind(
		`INSERT INTO sessions (`+sessionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`),
		s.ID, s.UserID, s.TokenHash, s.IPAddress, s.UserAgent,
		r.d.Timestamp(s.ExpiresAt), r.d.Timestamp(s.CreatedAt),
	)
	return mapInsert(r.d, err)
}

func (r *sessionsRepo) GetSessionByTokenHash(ctx context.Context, tokenHash string) (domain.Session, error) {
	var s domain.Session
	err := r.db.QueryRowContext(ctx, r.d.Rebind(
		`SELECT `+sessionColumns+` FROM sessions WHERE token_hash = ?`), tokenHash,
	).Scan(&s.ID, &s.UserID, &s.TokenHash, &s.IPAddress, &s.UserAgent,
		timestamp{&s.ExpiresAt}, timestamp{&s.CreatedAt})
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	return s, nil
}

func (r *sessionsRepo) DeleteSessionByTokenHash(ctx context.Context, tokenHash string) error {
	_, err := r.db.ExecContext(ctx, r.d.Rebind(`DELETE FROM sessions WHERE token_hash = ?`), tokenHash)
	return err
}

func (r *sessionsRepo) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.d.Rebind(`DELETE FROM sessions WHERE expires_at < ?`), r.d.Timestamp(now))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
