package sqldb

import (
	"context"
	"time"

	"github.com/aussiebroadwan/laced/internal/laced/domain"
)

type guestSessionsRepo struct {
	db DBTX
	d  Dialect
}

func (r *guestSessionsRepo) CreateGuestSession(ctx context.Context, g domain.GuestSession) error {
	_, err := r.db.ExecContext(ctx, r.d.Rebind(
		`INSERT INTO guest_sessions (id, token_hash, expires_at, created_at) VALUES (?, ?, ?, ?)`),
		g.ID, g.TokenHash, r.d.Timestamp(g.ExpiresAt), r.d.Timestamp(g.CreatedAt),
	)
	return mapInsert(r.d, err)
}

func (r *guestSessionsRepo) GetGuestSessionByTokenHash(ctx context.Context, tokenHash string) (domain.GuestSession, error) {
	var g domain.GuestSession
	err := r.db.QueryRowContext(ctx, r.d.Rebind(
		`SELECT id, token_hash, expires_at, created_at FROM guest_sessions WHERE token_hash = ?`), tokenHash,
	).Scan(&g.ID, &g.TokenHash, timestamp{&g.ExpiresAt}, timestamp{&g.CreatedAt})
	if err != nil {
		return domain.GuestSession{}, mapNotFound(err)
	}
	return g, nil
}

func (r *guestSessionsRepo) DeleteGuestSessionByTokenHash(ctx context.Context, tokenHash string) error {
	_, err := r.db.ExecContext(ctx, r.d.Rebind(`DELETE FROM guest_sessions WHERE token_hash = ?`), tokenHash)
	return err
}

func (r *guestSessionsRepo) DeleteExpiredGuestSessions(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.d.Rebind(`DELETE FROM guest_sessions WHERE expires_at < ?`), r.d.Timestamp(now))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
