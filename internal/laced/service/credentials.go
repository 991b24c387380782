package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/aussiebroadwan/laced/internal/laced/domain"
	"github.com/aussiebroadwan/laced/internal/laced/store"
	"github.com/aussiebroadwan/laced/pkg/cryptox"
	"github.com/aussiebroadwan/laced/pkg/idx"
	"github.com/aussiebroadwan/laced/pkg/slogx"
)

// CredentialService owns users and their email + password accounts.
type CredentialService struct {
	Store  store.Store
	Hasher cryptox.PasswordHasher
	Now    func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func (s *CredentialService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// CreateUser registers a user with a credentials account. The email is
// normalised first; an address already on file yields ErrDuplicateEmail.
func (s *CredentialService) CreateUser(ctx context.Context, name, email, password string) (domain.User, error) {
	email = domain.NormalizeEmail(email)

	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		return domain.User{}, ErrDuplicateEmail
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, unavailable(err)
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return domain.User{}, err
	}

	now := s.now()
	user := domain.User{
		ID:        idx.NewAt(now).String(),
		Name:      name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	account := domain.Account{
		ID:           idx.NewAt(now).String(),
		UserID:       user.ID,
		ProviderID:   domain.CredentialsProvider,
		AccountID:    email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			return err
		}
		return tx.Accounts().CreateAccount(ctx, account)
	})
	switch {
	case errors.Is(err, store.ErrAlreadyExists):
		// Lost a race with a concurrent sign-up for the same address.
		return domain.User{}, ErrDuplicateEmail
	case err != nil:
		return domain.User{}, unavailable(err)
	}

	slogx.FromContext(ctx).Info("user created", "user_id", user.ID)
	return user, nil
}

// VerifyCredentials checks email and password. Every failure, whatever its
// cause, is reported as ErrInvalidCredentials.
func (s *CredentialService) VerifyCredentials(ctx context.Context, email, password string) (domain.User, error) {
	email = domain.NormalizeEmail(email)
	logger := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		s.burnVerify(password)
		return domain.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.User{}, unavailable(err)
	}

	account, err := s.Store.Accounts().GetUserAccount(ctx, user.ID, domain.CredentialsProvider)
	if errors.Is(err, store.ErrNotFound) || (err == nil && account.PasswordHash == "") {
		s.burnVerify(password)
		return domain.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.User{}, unavailable(err)
	}

	switch err := s.Hasher.Verify(password, account.PasswordHash); {
	case err == nil:
		return user, nil
	case errors.Is(err, cryptox.ErrPasswordMismatch):
		return domain.User{}, ErrInvalidCredentials
	default:
		logger.Error("stored password hash unusable", "user_id", user.ID, "error", err)
		return domain.User{}, ErrInvalidCredentials
	}
}

// burnVerify spends the same work as a real verification so response time
// does not reveal whether an email is registered.
func (s *CredentialService) burnVerify(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.Hasher.Hash("laced-dummy-password")
	})
	if s.dummyHash != "" {
		_ = s.Hasher.Verify(password, s.dummyHash)
	}
}
