package service

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/laced/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestMergeIsIdempotent(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := t.Context()
	rec := &recordingMerger{}
	f.merge.Merger = rec

	user, err := f.credentials.CreateUser(ctx, "Ada", "ada@example.com", "correcthorse")
	require.NoError(t, err)
	guest, err := f.sessions.IssueGuest(ctx)
	require.NoError(t, err)

	merged, err := f.merge.MergeAtomically(ctx, guest.Token, user.ID)
	require.NoError(t, err)
	require.True(t, merged)
	require.Equal(t, map[string]string{guest.Guest.ID: user.ID}, rec.merged)

	_, err = f.store.GuestSessions().GetGuestSessionByTokenHash(ctx, cryptox.FingerprintToken(guest.Token))
	require.Error(t, err, "guest record is deleted")

	merged, err = f.merge.MergeAtomically(ctx, guest.Token, user.ID)
	require.NoError(t, err)
	require.False(t, merged, "second merge is a no-op")
	require.Len(t, rec.merged, 1)
}

func TestMergeWithoutGuest(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	merged, err := f.merge.Merge(t.Context(), nil, "", "user")
	require.NoError(t, err)
	require.False(t, merged)

	merged, err = f.merge.Merge(t.Context(), nil, "unknown-guest", "user")
	require.NoError(t, err)
	require.False(t, merged)
}

func TestMergeDiscardsExpiredGuest(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := t.Context()
	rec := &recordingMerger{}
	f.merge.Merger = rec
	f.sessions.GuestTTL = time.Minute

	guest, err := f.sessions.IssueGuest(ctx)
	require.NoError(t, err)
	f.clock.Advance(time.Hour)

	merged, err := f.merge.MergeAtomically(ctx, guest.Token, "user")
	require.NoError(t, err)
	require.False(t, merged)
	require.Empty(t, rec.merged)

	_, err = f.store.GuestSessions().GetGuestSessionByTokenHash(ctx, cryptox.FingerprintToken(guest.Token))
	require.Error(t, err)
}

func TestMergeFailureRollsBack(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := t.Context()
	f.merge.Merger = &failingMerger{}

	guest, err := f.sessions.IssueGuest(ctx)
	require.NoError(t, err)

	_, err = f.merge.MergeAtomically(ctx, guest.Token, "user")
	require.ErrorIs(t, err, ErrMergeFailed)
	require.ErrorIs(t, err, errInjected)

	_, err = f.sessions.ValidateGuest(ctx, guest.Token)
	require.NoError(t, err, "guest survives a failed merge")
}
