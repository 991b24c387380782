package domain

import (
	"strings"
	"time"
)

// CredentialsProvider is the account provider id for email + password sign-in.
const CredentialsProvider = "credentials"

// User is a registered customer. Email is unique and stored normalised.
type User struct {
	ID            string
	Name          string
	Email         string
	EmailVerified bool
	Image         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Account links a user to an authentication provider. Only credentials
// accounts carry a PasswordHash; the token fields exist for OAuth providers.
type Account struct {
	ID           string
	UserID       string
	ProviderID   string
	AccountID    string
	PasswordHash string

	AccessToken           *string
	RefreshToken          *string
	AccessTokenExpiresAt  *time.Time
	RefreshTokenExpiresAt *time.Time
	Scope                 *string
	IDToken               *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeEmail trims surrounding space and lower-cases the address so
// lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserSummary is the public view of a user handed back to clients.
type UserSummary struct {
	ID    string
	Name  string
	Email string
}

func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}
