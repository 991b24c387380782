package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/laced/internal/laced/domain"
	"github.com/aussiebroadwan/laced/internal/laced/store"
	"github.com/aussiebroadwan/laced/internal/laced/store/drivers/sqlite"
	"github.com/aussiebroadwan/laced/pkg/cryptox"
	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// clock is a settable time source.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())
	return st
}

func newTestHasher(t *testing.T) cryptox.PasswordHasher {
	t.Helper()
	h, err := cryptox.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

type fixture struct {
	store       store.Store
	clock       *clock
	credentials *CredentialService
	sessions    *SessionService
	merge       *MergeService
	auth        *AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithStore(t, newTestStore(t))
}

func newFixtureWithStore(t *testing.T, st store.Store) *fixture {
	t.Helper()
	c := newClock()
	f := &fixture{store: st, clock: c}
	f.credentials = &CredentialService{Store: st, Hasher: newTestHasher(t), Now: c.Now}
	f.sessions = &SessionService{Store: st, TTL: DefaultSessionTTL, GuestTTL: DefaultSessionTTL, Now: c.Now}
	f.merge = &MergeService{Store: st, Now: c.Now}
	f.auth = &AuthService{
		Store:       st,
		Credentials: f.credentials,
		Sessions:    f.sessions,
		Merge:       f.merge,
		Backoff:     func() backoff.BackOff { return &backoff.ZeroBackOff{} },
	}
	return f
}

func (f *fixture) signUp(t *testing.T, name, email, password string) AuthResult {
	t.Helper()
	res, err := f.auth.SignUp(t.Context(), SignUpInput{Name: name, Email: email, Password: password}, "", SessionMeta{})
	require.NoError(t, err)
	return res
}

var errInjected = errors.New("injected failure")

// flakyStore fails the first failSessions session inserts, including those
// made inside transactions.
type flakyStore struct {
	store.Store

	mu           sync.Mutex
	failSessions int
	attempts     int
}

func (f *flakyStore) takeFailure() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts++
	if f.failSessions > 0 {
		f.failSessions--
		return true
	}
	return false
}

func (f *flakyStore) Sessions() store.Sessions {
	return &flakySessions{Sessions: f.Store.Sessions(), owner: f}
}

func (f *flakyStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return f.Store.WithTx(ctx, func(tx store.Tx) error {
		return fn(&flakyTx{innerTx: tx, owner: f})
	})
}

// innerTx lets flakyTx embed store.Tx without a field named Tx hiding the
// promoted Tx method.
type innerTx = store.Tx

type flakyTx struct {
	innerTx
	owner *flakyStore
}

func (t *flakyTx) Sessions() store.Sessions {
	return &flakySessions{Sessions: t.innerTx.Sessions(), owner: t.owner}
}

type flakySessions struct {
	store.Sessions
	owner *flakyStore
}

func (s *flakySessions) CreateSession(ctx context.Context, sess domain.Session) error {
	if s.owner.takeFailure() {
		return errInjected
	}
	return s.Sessions.CreateSession(ctx, sess)
}

// failingMerger always refuses to merge.
type failingMerger struct{ calls int }

func (m *failingMerger) MergeCart(context.Context, store.Store, domain.GuestSession, string) error {
	m.calls++
	return errInjected
}

// recordingMerger remembers which guests were merged into whom.
type recordingMerger struct {
	merged map[string]string
}

func (m *recordingMerger) MergeCart(_ context.Context, _ store.Store, guest domain.GuestSession, userID string) error {
	if m.merged == nil {
		m.merged = map[string]string{}
	}
	m.merged[guest.ID] = userID
	return nil
}
