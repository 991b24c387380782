package sqldb

import (
	"context"

	"github.com/aussiebroadwan/laced/internal/laced/domain"
)

type accountsRepo struct {
	db DBTX
	d  Dialect
}

const accountColumns = `id, user_id, provider_id, account_id, password_hash,
	access_token, refresh_token, access_token_expires_at, refresh_token_expires_at,
	scope, id_token, created_at, updated_at`

func scanAccount(row rowScanner) (domain.Account, error) {
	var a domain.Account
	var passwordHash *string
	err := row.Scan(
		&a.ID, &a.UserID, &a.ProviderID, &a.AccountID, &passwordHash,
		&a.AccessToken, &a.RefreshToken,
		nullTimestamp{&a.AccessTokenExpiresAt}, nullTimestamp{&a.RefreshTokenExpiresAt},
		&a.Scope, &a.IDToken,
		timestamp{&a.CreatedAt}, timestamp{&a.UpdatedAt},
	)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	if passwordHash != nil {
		a.PasswordHash = *passwordHash
	}
	return a, nil
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	_, err := r.db.ExecContext(ctx, r.d.Rebind(
		`INSERT INTO accounts (`+accountColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		a.ID, a.UserID, a.ProviderID, a.AccountID, nullIfEmpty(a.PasswordHash),
		a.AccessToken, a.RefreshToken,
		optionalTimestamp(r.d, a.AccessTokenExpiresAt), optionalTimestamp(r.d, a.RefreshTokenExpiresAt),
		a.Scope, a.IDToken,
		r.d.Timestamp(a.CreatedAt), r.d.Timestamp(a.UpdatedAt),
	)
	return mapInsert(r.d, err)
}

func (r *accountsRepo) GetAccountByProvider(ctx context.Context, providerID, accountID string) (domain.Account, error) {
	return scanAccount(r.db.QueryRowContext(ctx, r.d.Rebind(
		`SELECT `+accountColumns+` FROM accounts WHERE provider_id = ? AND account_id = ?`),
		providerID, accountID))
}

func (r *accountsRepo) GetUserAccount(ctx context.Context, userID, providerID string) (domain.Account, error) {
	return scanAccount(r.db.QueryRowContext(ctx, r.d.Rebind(
		`SELECT `+accountColumns+` FROM accounts WHERE user_id = ? AND provider_id = ?
		 ORDER BY created_at LIMIT 1`),
		userID, providerID))
}
