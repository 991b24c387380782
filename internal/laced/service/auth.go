package service

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/laced/internal/laced/domain"
	"github.com/aussiebroadwan/laced/internal/laced/store"
	"github.com/aussiebroadwan/laced/pkg/slogx"
	"github.com/cenkalti/backoff/v4"
)

// DefaultIssueAttempts bounds how often session issuance is tried after the
// user has been created or verified.
const DefaultIssueAttempts = 3

// AuthResult is the outcome of a successful sign-up or sign-in.
type AuthResult struct {
	User    domain.User
	Token   string
	Session domain.Session

	// Merged reports whether a guest session was folded into the user.
	Merged bool
}

// AuthService composes credentials, sessions and guest merging into the
// sign-up, sign-in and sign-out flows.
type AuthService struct {
	Store       store.Store
	Credentials *CredentialService
	Sessions    *SessionService
	Merge       *MergeService

	IssueAttempts int

	// Backoff builds the retry schedule for session issuance. Nil means
	// exponential from 50ms capped at 500ms.
	Backoff func() backoff.BackOff
}

func (s *AuthService) newBackoff() backoff.BackOff {
	if s.Backoff != nil {
		return s.Backoff()
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 50 * time.Millisecond
	b.MaxInterval = 500 * time.Millisecond
	b.MaxElapsedTime = 5 * time.Second
	return b
}

// SignUp validates in, creates the user and establishes a session, merging
// the guest behind guestToken if any.
func (s *AuthService) SignUp(ctx context.Context, in SignUpInput, guestToken string, meta SessionMeta) (AuthResult, error) {
	in = in.normalize()
	if err := validateStruct(in); err != nil {
		return AuthResult{}, err
	}

	user, err := s.Credentials.CreateUser(ctx, in.Name, in.Email, in.Password)
	if err != nil {
		return AuthResult{}, err
	}
	return s.establish(ctx, user, guestToken, meta)
}

// SignIn validates in, verifies the credentials and establishes a session.
func (s *AuthService) SignIn(ctx context.Context, in SignInInput, guestToken string, meta SessionMeta) (AuthResult, error) {
	in = in.normalize()
	if err := validateStruct(in); err != nil {
		return AuthResult{}, err
	}

	user, err := s.Credentials.VerifyCredentials(ctx, in.Email, in.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			slogx.FromContext(ctx).Info("sign-in rejected")
		}
		return AuthResult{}, err
	}
	return s.establish(ctx, user, guestToken, meta)
}

// establish issues a session and merges the guest in one transaction. A
// failed attempt is retried rather than undoing the user, which already
// exists. A merge failure drops the merge from later attempts.
func (s *AuthService) establish(ctx context.Context, user domain.User, guestToken string, meta SessionMeta) (AuthResult, error) {
	logger := slogx.FromContext(ctx).With("user_id", user.ID)

	attempts := s.IssueAttempts
	if attempts <= 0 {
		attempts = DefaultIssueAttempts
	}

	var result AuthResult
	attempt := 0
	op := func() error {
		attempt++
		err := s.Store.WithTx(ctx, func(tx store.Tx) error {
			issued, err := s.Sessions.issue(ctx, tx, user.ID, meta)
			if err != nil {
				return err
			}
			merged, err := s.Merge.Merge(ctx, tx, guestToken, user.ID)
			if err != nil {
				return err
			}
			result = AuthResult{User: user, Token: issued.Token, Session: issued.Session, Merged: merged}
			return nil
		})
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrMergeFailed) {
			logger.Warn("guest merge failed, continuing without it", "error", err)
			guestToken = ""
		} else {
			logger.Warn("session issuance failed", "attempt", attempt, "error", err)
		}
		return err
	}

	b := backoff.WithContext(backoff.WithMaxRetries(s.newBackoff(), uint64(attempts-1)), ctx)
	if err := backoff.Retry(op, b); err != nil {
		logger.Error("session issuance gave up", "attempts", attempt, "error", err)
		if errors.Is(err, ErrStoreUnavailable) {
			return AuthResult{}, err
		}
		return AuthResult{}, unavailable(err)
	}

	logger.Info("session established", "session_id", result.Session.ID, "merged", result.Merged)
	return result, nil
}

// SignOut revokes the session behind token. It never fails; revocation
// errors are logged.
func (s *AuthService) SignOut(ctx context.Context, token string) {
	if err := s.Sessions.Revoke(ctx, token); err != nil {
		slogx.FromContext(ctx).Warn("session revoke failed", "error", err)
	}
}

// CurrentUser resolves token to its user. A missing or invalid session, or
// an unreachable store, reports false.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (domain.User, bool) {
	user, err := s.Sessions.Validate(ctx, token)
	if err != nil {
		if !errors.Is(err, ErrNoSession) {
			slogx.FromContext(ctx).Error("session lookup failed", "error", err)
		}
		return domain.User{}, false
	}
	return user, true
}
