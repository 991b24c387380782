// Package storetest is a conformance suite run against every store driver.
package storetest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aussiebroadwan/laced/internal/laced/domain"
	"github.com/aussiebroadwan/laced/internal/laced/store"
	"github.com/aussiebroadwan/laced/pkg/idx"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Factory returns an empty, migrated store. It is called once per subtest.
type Factory func(t *testing.T) store.Store

// base is truncated to microseconds, the coarsest precision among drivers.
var base = time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

// Run exercises the store.Store contract.
func Run(t *testing.T, newStore Factory) {
	t.Run("Users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("Accounts", func(t *testing.T) { testAccounts(t, newStore(t)) })
	t.Run("Sessions", func(t *testing.T) { testSessions(t, newStore(t)) })
	t.Run("GuestSessions", func(t *testing.T) { testGuestSessions(t, newStore(t)) })
	t.Run("Products", func(t *testing.T) { testProducts(t, newStore(t)) })
	t.Run("Transactions", func(t *testing.T) { testTransactions(t, newStore(t)) })
	t.Run("Cascade", func(t *testing.T) { testCascade(t, newStore(t)) })
}

// NewUser builds a user with a fresh id.
func NewUser(email string) domain.User {
	return domain.User{
		ID:        idx.New().String(),
		Name:      "Test User",
		Email:     email,
		CreatedAt: base,
		UpdatedAt: base,
	}
}

func mustCreateUser(t *testing.T, st store.Store, email string) domain.User {
	t.Helper()
	u := NewUser(email)
	require.NoError(t, st.Users().CreateUser(t.Context(), u))
	return u
}

func testUsers(t *testing.T, st store.Store) {
	ctx := t.Context()
	u := mustCreateUser(t, st, "ada@example.com")

	got, err := st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, got.Email)
	require.Equal(t, u.Name, got.Name)
	require.False(t, got.EmailVerified)
	require.True(t, got.CreatedAt.Equal(base))

	got, err = st.Users().GetUserByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	dup := NewUser("ada@example.com")
	require.ErrorIs(t, st.Users().CreateUser(ctx, dup), store.ErrAlreadyExists)

	_, err = st.Users().GetUserByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.Users().GetUserByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	anon := NewUser("anon@example.com")
	anon.Name = ""
	require.NoError(t, st.Users().CreateUser(ctx, anon))
	got, err = st.Users().GetUserByID(ctx, anon.ID)
	require.NoError(t, err)
	require.Empty(t, got.Name)
}

func testAccounts(t *testing.T, st store.Store) {
	ctx := t.Context()
	u := mustCreateUser(t, st, "grace@example.com")

	acct := domain.Account{
		ID:           idx.New().String(),
		UserID:       u.ID,
		ProviderID:   domain.CredentialsProvider,
		AccountID:    u.Email,
		PasswordHash: "$2a$04$hash",
		CreatedAt:    base,
		UpdatedAt:    base,
	}
	require.NoError(t, st.Accounts().CreateAccount(ctx, acct))

	got, err := st.Accounts().GetAccountByProvider(ctx, domain.CredentialsProvider, u.Email)
	require.NoError(t, err)
	require.Equal(t, acct.ID, got.ID)
	require.Equal(t, acct.PasswordHash, got.PasswordHash)
	require.Nil(t, got.AccessToken)
	require.Nil(t, got.AccessTokenExpiresAt)

	got, err = st.Accounts().GetUserAccount(ctx, u.ID, domain.CredentialsProvider)
	require.NoError(t, err)
	require.Equal(t, acct.ID, got.ID)

	_, err = st.Accounts().GetUserAccount(ctx, u.ID, "github")
	require.ErrorIs(t, err, store.ErrNotFound)

	dup := acct
	dup.ID = idx.New().String()
	require.ErrorIs(t, st.Accounts().CreateAccount(ctx, dup), store.ErrAlreadyExists)

	token := "gho_abc"
	expires := base.Add(time.Hour)
	oauth := domain.Account{
		ID:                   idx.New().String(),
		UserID:               u.ID,
		ProviderID:           "github",
		AccountID:            "12345",
		AccessToken:          &token,
		AccessTokenExpiresAt: &expires,
		CreatedAt:            base,
		UpdatedAt:            base,
	}
	require.NoError(t, st.Accounts().CreateAccount(ctx, oauth))
	got, err = st.Accounts().GetAccountByProvider(ctx, "github", "12345")
	require.NoError(t, err)
	require.Empty(t, got.PasswordHash)
	require.NotNil(t, got.AccessToken)
	require.Equal(t, token, *got.AccessToken)
	require.NotNil(t, got.AccessTokenExpiresAt)
	require.True(t, got.AccessTokenExpiresAt.Equal(expires))
}

func newSession(userID, hash string, expires time.Time) domain.Session {
	return domain.Session{
		ID:        idx.New().String(),
		UserID:    userID,
		TokenHash: hash,
		IPAddress: "203.0.113.7",
		UserAgent: "storetest",
		ExpiresAt: expires,
		CreatedAt: base,
	}
}

func testSessions(t *testing.T, st store.Store) {
	ctx := t.Context()
	u := mustCreateUser(t, st, "linus@example.com")

	live := newSession(u.ID, "hash-live", base.Add(time.Hour))
	edge := newSession(u.ID, "hash-edge", base)
	dead := newSession(u.ID, "hash-dead", base.Add(-time.Second))
	for _, s := range []domain.Session{live, edge, dead} {
		require.NoError(t, st.Sessions().CreateSession(ctx, s))
	}

	got, err := st.Sessions().GetSessionByTokenHash(ctx, "hash-live")
	require.NoError(t, err)
	require.Equal(t, live.ID, got.ID)
	require.Equal(t, u.ID, got.UserID)
	require.Equal(t, "203.0.113.7", got.IPAddress)
	require.True(t, got.ExpiresAt.Equal(live.ExpiresAt))

	dup := newSession(u.ID, "hash-live", base.Add(time.Hour))
	require.ErrorIs(t, st.Sessions().CreateSession(ctx, dup), store.ErrAlreadyExists)

	// Strictly-before comparison: a session expiring exactly at now survives.
	n, err := st.Sessions().DeleteExpiredSessions(ctx, base)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	_, err = st.Sessions().GetSessionByTokenHash(ctx, "hash-dead")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.Sessions().GetSessionByTokenHash(ctx, "hash-edge")
	require.NoError(t, err)

	n, err = st.Sessions().DeleteExpiredSessions(ctx, base)
	require.NoError(t, err)
	require.Zero(t, n)

	require.NoError(t, st.Sessions().DeleteSessionByTokenHash(ctx, "hash-live"))
	_, err = st.Sessions().GetSessionByTokenHash(ctx, "hash-live")
	require.ErrorIs(t, err, store.ErrNotFound)
	require.NoError(t, st.Sessions().DeleteSessionByTokenHash(ctx, "hash-live"), "delete is idempotent")
}

func testGuestSessions(t *testing.T, st store.Store) {
	ctx := t.Context()
	live := domain.GuestSession{ID: idx.New().String(), TokenHash: "g-live", ExpiresAt: base.Add(time.Hour), CreatedAt: base}
	dead := domain.GuestSession{ID: idx.New().String(), TokenHash: "g-dead", ExpiresAt: base.Add(-time.Hour), CreatedAt: base}
	require.NoError(t, st.GuestSessions().CreateGuestSession(ctx, live))
	require.NoError(t, st.GuestSessions().CreateGuestSession(ctx, dead))

	got, err := st.GuestSessions().GetGuestSessionByTokenHash(ctx, "g-live")
	require.NoError(t, err)
	require.Equal(t, live.ID, got.ID)

	n, err := st.GuestSessions().DeleteExpiredGuestSessions(ctx, base)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	require.NoError(t, st.GuestSessions().DeleteGuestSessionByTokenHash(ctx, "g-live"))
	_, err = st.GuestSessions().GetGuestSessionByTokenHash(ctx, "g-live")
	require.ErrorIs(t, err, store.ErrNotFound)
	require.NoError(t, st.GuestSessions().DeleteGuestSessionByTokenHash(ctx, "g-live"))
}

func newProduct(i int, name, category string, cents int64, stock int) domain.Product {
	at := base.Add(time.Duration(i) * time.Millisecond)
	return domain.Product{
		ID:         uuid.NewString(),
		Name:       name,
		Brand:      "Nike",
		Category:   category,
		PriceCents: cents,
		ImageURL:   fmt.Sprintf("/shoes/shoe-%d.avif", i),
		InStock:    stock,
		CreatedAt:  at,
		UpdatedAt:  at,
	}
}

func testProducts(t *testing.T, st store.Store) {
	ctx := t.Context()

	empty, err := st.Products().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	seed := []domain.Product{
		newProduct(1, "Air Max 270", "Lifestyle", 15000, 35),
		newProduct(2, "Zoom Fly 5", "Running", 16000, 28),
		newProduct(3, "SB Dunk Low Pro", "Skateboarding", 9500, 0),
		newProduct(4, "Vaporfly", "Running", 25000, 15),
	}
	for _, p := range seed {
		require.NoError(t, st.Products().CreateProduct(ctx, p))
	}

	empty, err = st.Products().IsEmpty(ctx)
	require.NoError(t, err)
	require.False(t, empty)

	got, err := st.Products().GetProductByID(ctx, seed[0].ID)
	require.NoError(t, err)
	require.Equal(t, seed[0].Name, got.Name)
	require.EqualValues(t, 15000, got.PriceCents)

	_, err = st.Products().GetProductByID(ctx, uuid.NewString())
	require.ErrorIs(t, err, store.ErrNotFound)

	names := func(ps []domain.Product) []string {
		out := make([]string, len(ps))
		for i, p := range ps {
			out[i] = p.Name
		}
		return out
	}

	all, total, err := st.Products().ListProducts(ctx, domain.ProductFilter{})
	require.NoError(t, err)
	require.Equal(t, 4, total)
	require.Equal(t, []string{"Air Max 270", "Zoom Fly 5", "SB Dunk Low Pro", "Vaporfly"}, names(all))

	running, total, err := st.Products().ListProducts(ctx, domain.ProductFilter{Category: "running"})
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Equal(t, []string{"Zoom Fly 5", "Vaporfly"}, names(running))

	cheap, _, err := st.Products().ListProducts(ctx, domain.ProductFilter{Sort: domain.SortPriceAsc, MaxPriceCents: 16000})
	require.NoError(t, err)
	require.Equal(t, []string{"SB Dunk Low Pro", "Air Max 270", "Zoom Fly 5"}, names(cheap))

	stocked, total, err := st.Products().ListProducts(ctx, domain.ProductFilter{InStockOnly: true, Sort: domain.SortNewest})
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Equal(t, []string{"Vaporfly", "Zoom Fly 5", "Air Max 270"}, names(stocked))

	page, total, err := st.Products().ListProducts(ctx, domain.ProductFilter{Sort: domain.SortPriceDesc, Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Equal(t, 4, total, "total ignores paging")
	require.Equal(t, []string{"Zoom Fly 5", "Air Max 270"}, names(page))

	none, total, err := st.Products().ListProducts(ctx, domain.ProductFilter{Brand: "Adidas"})
	require.NoError(t, err)
	require.Zero(t, total)
	require.NotNil(t, none)
	require.Empty(t, none)
}

var errBoom = errors.New("boom")

func testTransactions(t *testing.T, st store.Store) {
	ctx := t.Context()

	rolledBack := NewUser("rollback@example.com")
	err := st.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Users().CreateUser(ctx, rolledBack))
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)
	_, err = st.Users().GetUserByID(ctx, rolledBack.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	committed := NewUser("commit@example.com")
	err = st.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, committed); err != nil {
			return err
		}
		return tx.Sessions().CreateSession(ctx, newSession(committed.ID, "tx-hash", base.Add(time.Hour)))
	})
	require.NoError(t, err)
	_, err = st.Sessions().GetSessionByTokenHash(ctx, "tx-hash")
	require.NoError(t, err)

	err = st.WithTx(ctx, func(tx store.Tx) error {
		return tx.WithTx(ctx, func(store.Tx) error { return nil })
	})
	require.ErrorIs(t, err, sql.ErrTxDone, "nested transactions are rejected")

	require.NoError(t, st.Ping(ctx))
}

func testCascade(t *testing.T, st store.Store) {
	ctx := context.Background()
	u := mustCreateUser(t, st, "cascade@example.com")
	require.NoError(t, st.Accounts().CreateAccount(ctx, domain.Account{
		ID: idx.New().String(), UserID: u.ID, ProviderID: domain.CredentialsProvider,
		AccountID: u.Email, PasswordHash: "x", CreatedAt: base, UpdatedAt: base,
	}))
	require.NoError(t, st.Sessions().CreateSession(ctx, newSession(u.ID, "cascade-hash", base.Add(time.Hour))))

	require.NoError(t, st.Users().DeleteUser(ctx, u.ID))

	_, err := st.Sessions().GetSessionByTokenHash(ctx, "cascade-hash")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.Accounts().GetUserAccount(ctx, u.ID, domain.CredentialsProvider)
	require.ErrorIs(t, err, store.ErrNotFound)
}
