package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/laced/internal/laced/gate"
	"github.com/aussiebroadwan/laced/internal/laced/service"
	"github.com/aussiebroadwan/laced/pkg/httpx"
	"github.com/aussiebroadwan/laced/pkg/slogx"
)

// Gate validates the session cookies of every request, applies the route
// policy and attaches the resulting Viewer to the request context.
type Gate struct {
	Policy   gate.Policy
	Sessions *service.SessionService
	Cookies  CookieConfig
}

func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := slogx.FromContext(ctx)

		req := gate.Request{Path: r.URL.Path, Target: r.URL.RequestURI()}
		var viewer Viewer

		if token := httpx.CookieValue(r, AuthCookie); token != "" {
			user, err := g.Sessions.Validate(ctx, token)
			switch {
			case err == nil:
				req.Auth = gate.Valid
				viewer.User = &user
			case errors.Is(err, service.ErrNoSession):
				req.Auth = gate.Invalid
			default:
				// Keep the cookie; the session may be fine once the store is back.
				log.Error("auth session lookup failed", "error", err)
			}
		}

		if req.Auth != gate.Valid {
			if token := httpx.CookieValue(r, GuestCookie); token != "" {
				guest, err := g.Sessions.ValidateGuest(ctx, token)
				switch {
				case err == nil:
					req.Guest = gate.Valid
					viewer.Guest = &guest
				case errors.Is(err, service.ErrNoSession):
					req.Guest = gate.Invalid
				default:
					log.Error("guest session lookup failed", "error", err)
				}
			}
		}

		d := g.Policy.Decide(req)

		if d.ClearAuthCookie {
			g.Cookies.clearAuth(w)
		}
		if d.Action == gate.Redirect {
			log.Debug("gate redirect", "class", d.Class.String(), "location", d.Location)
			http.Redirect(w, r, d.Location, http.StatusTemporaryRedirect)
			return
		}
		if d.IssueGuest {
			issued, err := g.Sessions.IssueGuest(ctx)
			if err != nil {
				log.Error("guest session issue failed", "error", err)
			} else {
				g.Cookies.setGuest(w, issued.Token)
				viewer.Guest = &issued.Guest
			}
		}

		if viewer.User != nil {
			ctx = httpx.WithUserID(ctx, viewer.User.ID)
			ctx = slogx.With(ctx, "user_id", viewer.User.ID)
		} else if viewer.Guest != nil {
			ctx = httpx.WithGuestID(ctx, viewer.Guest.ID)
			ctx = slogx.With(ctx, "guest_id", viewer.Guest.ID)
		}
		ctx = withViewer(ctx, viewer)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
