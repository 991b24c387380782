package sqldb

import (
	"context"

	"github.com/aussiebroadwan/laced/internal/laced/domain"
)

type usersRepo struct {
	db DBTX
	d  Dialect
}

const userColumns = `id, name, email, email_verified, image, created_at, updated_at`

func scanUser(row rowScanner) (domain.User, error) {
	var u domain.User
	var name, image *string
	err := row.Scan(&u.ID, &name, &u.Email, &u.EmailVerified, &image,
		timestamp{&u.CreatedAt}, timestamp{&u.UpdatedAt})
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	if name != nil {
		u.Name = *name
	}
	if image != nil {
		u.Image = *image
	}
	return u, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, r.d.Rebind(
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`),
		u.ID, nullIfEmpty(u.Name), u.Email, u.EmailVerified, nullIfEmpty(u.Image),
		r.d.Timestamp(u.CreatedAt), r.d.Timestamp(u.UpdatedAt),
	)
	return mapInsert(r.d, err)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, r.d.Rebind(
		`SELECT `+userColumns+` FROM users WHERE id = ?`), id))
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, r.d.Rebind(
		`SELECT `+userColumns+` FROM users WHERE email = ?`), email))
}

func (r *usersRepo) DeleteUser(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, r.d.Rebind(`DELETE FROM users WHERE id = ?`), id)
	return err
}
