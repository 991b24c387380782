package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aussiebroadwan/laced/internal/laced/domain"
	"github.com/aussiebroadwan/laced/pkg/cryptox"
	"github.com/aussiebroadwan/laced/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := t.Context()

	user, err := f.credentials.CreateUser(ctx, "Ada", "  Ada@Example.com ", "correcthorse")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, "Ada", user.Name)
	require.Equal(t, "ada@example.com", user.Email)
	require.False(t, user.EmailVerified)

	account, err := f.store.Accounts().GetUserAccount(ctx, user.ID, domain.CredentialsProvider)
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", account.AccountID)
	require.NotEqual(t, "correcthorse", account.PasswordHash)
	require.NotContains(t, account.PasswordHash, "correcthorse")

	t.Run("duplicate email", func(t *testing.T) {
		_, err := f.credentials.CreateUser(ctx, "Ada Again", "ada@example.com", "anotherpass")
		require.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("duplicate differs only by case", func(t *testing.T) {
		_, err := f.credentials.CreateUser(ctx, "Ada", "ADA@EXAMPLE.COM", "anotherpass")
		require.ErrorIs(t, err, ErrDuplicateEmail)
	})
}

func TestCreateUserConcurrentDuplicate(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	const n = 4
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = f.credentials.CreateUser(context.Background(), "Racer", "race@example.com", "correcthorse")
		}()
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		require.ErrorIs(t, err, ErrDuplicateEmail)
	}
	require.Equal(t, 1, created)
}

func TestVerifyCredentials(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := t.Context()

	created, err := f.credentials.CreateUser(ctx, "Grace", "grace@example.com", "correcthorse")
	require.NoError(t, err)

	t.Run("right password", func(t *testing.T) {
		user, err := f.credentials.VerifyCredentials(ctx, "Grace@Example.com", "correcthorse")
		require.NoError(t, err)
		require.Equal(t, created.ID, user.ID)
	})

	wrongErr := func() error {
		_, err := f.credentials.VerifyCredentials(ctx, "grace@example.com", "wrongpassword")
		return err
	}()
	unknownErr := func() error {
		_, err := f.credentials.VerifyCredentials(ctx, "nobody@example.com", "correcthorse")
		return err
	}()

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		require.ErrorIs(t, wrongErr, ErrInvalidCredentials)
		require.ErrorIs(t, unknownErr, ErrInvalidCredentials)
		require.Equal(t, wrongErr.Error(), unknownErr.Error())
		require.True(t, errors.Is(wrongErr, ErrInvalidCredentials) == errors.Is(unknownErr, ErrInvalidCredentials))
	})

	t.Run("user without credentials account", func(t *testing.T) {
		u := domain.User{ID: idx.New().String(), Email: "oauth@example.com", CreatedAt: f.clock.Now(), UpdatedAt: f.clock.Now()}
		require.NoError(t, f.store.Users().CreateUser(ctx, u))

		_, err := f.credentials.VerifyCredentials(ctx, "oauth@example.com", "whatever1")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestVerifyCredentialsRejectsTamperedArgon2Hash(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := t.Context()

	hasher, err := cryptox.NewPasswordHasher(cryptox.AlgorithmArgon2id, 0, "pepper")
	require.NoError(t, err)
	f.credentials.Hasher = hasher

	now := f.clock.Now()
	u := domain.User{ID: idx.New().String(), Email: "tampered@example.com", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, f.store.Users().CreateUser(ctx, u))
	require.NoError(t, f.store.Accounts().CreateAccount(ctx, domain.Account{
		ID:           idx.New().String(),
		UserID:       u.ID,
		ProviderID:   domain.CredentialsProvider,
		AccountID:    u.Email,
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=0$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA",
		CreatedAt:    now,
		UpdatedAt:    now,
	}))

	require.NotPanics(t, func() {
		_, err = f.credentials.VerifyCredentials(ctx, u.Email, "whatever1")
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
