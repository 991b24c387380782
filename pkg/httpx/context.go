package httpx

import "context"

type ctxKey string

const (
	CtxKeyUserID  ctxKey = "user_id"
	CtxKeyGuestID ctxKey = "guest_id"
)

// WithUserID records the signed-in user for downstream middleware.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxKeyUserID, userID)
}

func UserIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(CtxKeyUserID).(string)
	return v
}

// WithGuestID records the anonymous guest session for downstream handlers.
func WithGuestID(ctx context.Context, guestID string) context.Context {
	return context.WithValue(ctx, CtxKeyGuestID, guestID)
}

func GuestIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(CtxKeyGuestID).(string)
	return v
}
