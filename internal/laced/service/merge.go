package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/laced/internal/laced/domain"
	"github.com/aussiebroadwan/laced/internal/laced/store"
	"github.com/aussiebroadwan/laced/pkg/cryptox"
	"github.com/aussiebroadwan/laced/pkg/slogx"
)

// CartMerger moves guest-owned state to a user. It runs inside the sign-in
// transaction and must only touch st.
type CartMerger interface {
	MergeCart(ctx context.Context, st store.Store, guest domain.GuestSession, userID string) error
}

// NoopCartMerger is the default merger. There is no cart model yet, so the
// only effect of a merge is discarding the guest session.
type NoopCartMerger struct{}

func (NoopCartMerger) MergeCart(context.Context, store.Store, domain.GuestSession, string) error {
	return nil
}

// MergeService folds a guest session into a user on authentication.
type MergeService struct {
	Store  store.Store
	Merger CartMerger
	Now    func() time.Time
}

func (s *MergeService) merger() CartMerger {
	if s.Merger != nil {
		return s.Merger
	}
	return NoopCartMerger{}
}

func (s *MergeService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Merge transfers the guest behind guestToken to userID and deletes the guest
// record, writing through st. It reports whether a merge happened. A missing
// guest is a no-op, so repeating a merge is harmless. An expired guest is
// discarded without merging.
func (s *MergeService) Merge(ctx context.Context, st store.Store, guestToken, userID string) (bool, error) {
	if guestToken == "" {
		return false, nil
	}
	if st == nil {
		st = s.Store
	}

	fingerprint := cryptox.FingerprintToken(guestToken)
	guest, err := st.GuestSessions().GetGuestSessionByTokenHash(ctx, fingerprint)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, unavailable(err)
	}

	merged := false
	if guest.ValidAt(s.now()) {
		if err := s.merger().MergeCart(ctx, st, guest, userID); err != nil {
			return false, fmt.Errorf("%w: %w", ErrMergeFailed, err)
		}
		merged = true
	}

	if err := st.GuestSessions().DeleteGuestSessionByTokenHash(ctx, fingerprint); err != nil {
		return false, unavailable(err)
	}

	if merged {
		slogx.FromContext(ctx).Info("guest session merged", "user_id", userID, "guest_id", guest.ID)
	}
	return merged, nil
}

// MergeAtomically runs Merge in its own transaction.
func (s *MergeService) MergeAtomically(ctx context.Context, guestToken, userID string) (bool, error) {
	var merged bool
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		merged, err = s.Merge(ctx, tx, guestToken, userID)
		return err
	})
	return merged, err
}
