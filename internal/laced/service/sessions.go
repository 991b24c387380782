package service

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/laced/internal/laced/domain"
	"github.com/aussiebroadwan/laced/internal/laced/store"
	"github.com/aussiebroadwan/laced/pkg/cryptox"
	"github.com/aussiebroadwan/laced/pkg/idx"
)

// DefaultSessionTTL is the lifetime of both session kinds and of their cookies.
const DefaultSessionTTL = 7 * 24 * time.Hour

// SessionMeta is recorded alongside an authenticated session.
type SessionMeta struct {
	IPAddress string
	UserAgent string
}

// IssuedSession pairs the raw cookie token with its stored record. The token
// exists only here and in the client's cookie.
type IssuedSession struct {
	Token   string
	Session domain.Session
}

// IssuedGuest is the guest counterpart of IssuedSession.
type IssuedGuest struct {
	Token string
	Guest domain.GuestSession
}

// SweepResult counts the rows removed by one SweepExpired run.
type SweepResult struct {
	Sessions      int64
	GuestSessions int64
}

// SessionService issues and validates opaque session tokens. Authenticated
// and guest sessions live in separate tables so one can never stand in for
// the other.
type SessionService struct {
	Store    store.Store
	TTL      time.Duration
	GuestTTL time.Duration
	Now      func() time.Time
}

func (s *SessionService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *SessionService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultSessionTTL
}

func (s *SessionService) guestTTL() time.Duration {
	if s.GuestTTL > 0 {
		return s.GuestTTL
	}
	return DefaultSessionTTL
}

// Issue creates a session for userID.
func (s *SessionService) Issue(ctx context.Context, userID string, meta SessionMeta) (IssuedSession, error) {
	return s.issue(ctx, s.Store, userID, meta)
}

// issue writes through st so callers can run it inside their transaction.
func (s *SessionService) issue(ctx context.Context, st store.Store, userID string, meta SessionMeta) (IssuedSession, error) {
	token, fingerprint, err := cryptox.NewOpaqueToken()
	if err != nil {
		return IssuedSession{}, err
	}

	now := s.now()
	sess := domain.Session{
		ID:        idx.NewAt(now).String(),
		UserID:    userID,
		TokenHash: fingerprint,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		ExpiresAt: now.Add(s.ttl()),
		CreatedAt: now,
	}
	if err := st.Sessions().CreateSession(ctx, sess); err != nil {
		return IssuedSession{}, unavailable(err)
	}
	return IssuedSession{Token: token, Session: sess}, nil
}

// Validate resolves token to its user. Missing, unknown and expired tokens
// all yield ErrNoSession; expired sessions are not refreshed.
func (s *SessionService) Validate(ctx context.Context, token string) (domain.User, error) {
	if token == "" {
		return domain.User{}, ErrNoSession
	}

	sess, err := s.Store.Sessions().GetSessionByTokenHash(ctx, cryptox.FingerprintToken(token))
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrNoSession
	}
	if err != nil {
		return domain.User{}, unavailable(err)
	}
	if !sess.ValidAt(s.now()) {
		return domain.User{}, ErrNoSession
	}

	user, err := s.Store.Users().GetUserByID(ctx, sess.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrNoSession
	}
	if err != nil {
		return domain.User{}, unavailable(err)
	}
	return user, nil
}

// Revoke deletes the session behind token. Unknown tokens are not an error.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.Store.Sessions().DeleteSessionByTokenHash(ctx, cryptox.FingerprintToken(token)); err != nil {
		return unavailable(err)
	}
	return nil
}

// IssueGuest creates an anonymous shopper session.
func (s *SessionService) IssueGuest(ctx context.Context) (IssuedGuest, error) {
	token, fingerprint, err := cryptox.NewOpaqueToken()
	if err != nil {
		return IssuedGuest{}, err
	}

	now := s.now()
	guest := domain.GuestSession{
		ID:        idx.NewAt(now).String(),
		TokenHash: fingerprint,
		ExpiresAt: now.Add(s.guestTTL()),
		CreatedAt: now,
	}
	if err := s.Store.GuestSessions().CreateGuestSession(ctx, guest); err != nil {
		return IssuedGuest{}, unavailable(err)
	}
	return IssuedGuest{Token: token, Guest: guest}, nil
}

// ValidateGuest has the same semantics as Validate for guest tokens.
func (s *SessionService) ValidateGuest(ctx context.Context, token string) (domain.GuestSession, error) {
	if token == "" {
		return domain.GuestSession{}, ErrNoSession
	}

	guest, err := s.Store.GuestSessions().GetGuestSessionByTokenHash(ctx, cryptox.FingerprintToken(token))
	if errors.Is(err, store.ErrNotFound) {
		return domain.GuestSession{}, ErrNoSession
	}
	if err != nil {
		return domain.GuestSession{}, unavailable(err)
	}
	if !guest.ValidAt(s.now()) {
		return domain.GuestSession{}, ErrNoSession
	}
	return guest, nil
}

func (s *SessionService) RevokeGuest(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.Store.GuestSessions().DeleteGuestSessionByTokenHash(ctx, cryptox.FingerprintToken(token)); err != nil {
		return unavailable(err)
	}
	return nil
}

// SweepExpired deletes every session and guest session with expires_at
// before now. Both tables are attempted even if one fails.
func (s *SessionService) SweepExpired(ctx context.Context, now time.Time) (SweepResult, error) {
	var res SweepResult
	var errs []error

	n, err := s.Store.Sessions().DeleteExpiredSessions(ctx, now)
	if err != nil {
		errs = append(errs, unavailable(err))
	}
	res.Sessions = n

	n, err = s.Store.GuestSessions().DeleteExpiredGuestSessions(ctx, now)
	if err != nil {
		errs = append(errs, unavailable(err))
	}
	res.GuestSessions = n

	return res, errors.Join(errs...)
}
