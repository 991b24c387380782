package http

import (
	"context"

	"github.com/aussiebroadwan/laced/internal/laced/domain"
	"github.com/aussiebroadwan/laced/pkg/lacedsdk"
)

// Viewer is who the gate resolved the request to. At most one of User and
// Guest is set.
type Viewer struct {
	User  *domain.User
	Guest *domain.GuestSession
}

type viewerKey struct{}

func withViewer(ctx context.Context, v Viewer) context.Context {
	return context.WithValue(ctx, viewerKey{}, v)
}

// ViewerFromContext returns the viewer attached by the gate, or the zero
// (anonymous) viewer.
func ViewerFromContext(ctx context.Context) Viewer {
	v, _ := ctx.Value(viewerKey{}).(Viewer)
	return v
}

func (v Viewer) wire() lacedsdk.Viewer {
	out := lacedsdk.Viewer{Guest: v.Guest != nil}
	if v.User != nil {
		out.Authenticated = true
		out.User = userSummary(*v.User)
	}
	return out
}

func userSummary(u domain.User) *lacedsdk.UserSummary {
	s := u.Summary()
	return &lacedsdk.UserSummary{ID: s.ID, Name: s.Name, Email: s.Email}
}
