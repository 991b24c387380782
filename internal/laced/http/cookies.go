package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/laced/pkg/httpx"
	"github.com/aussiebroadwan/laced/pkg/lacedsdk"
)

const (
	AuthCookie  = lacedsdk.AuthCookieName
	GuestCookie = lacedsdk.GuestCookieName
)

// CookieConfig sets the attributes of both session cookies. Max-Age follows
// the matching session lifetime.
type CookieConfig struct {
	Secure   bool
	TTL      time.Duration
	GuestTTL time.Duration
}

func (c CookieConfig) auth() httpx.CookieOptions {
	return httpx.CookieOptions{Secure: c.Secure, MaxAge: c.TTL}
}

func (c CookieConfig) guest() httpx.CookieOptions {
	return httpx.CookieOptions{Secure: c.Secure, MaxAge: c.GuestTTL}
}

func (c CookieConfig) setAuth(w http.ResponseWriter, token string) {
	httpx.SetSessionCookie(w, AuthCookie, token, c.auth())
}

func (c CookieConfig) clearAuth(w http.ResponseWriter) {
	httpx.ClearSessionCookie(w, AuthCookie, c.auth())
}

func (c CookieConfig) setGuest(w http.ResponseWriter, token string) {
	httpx.SetSessionCookie(w, GuestCookie, token, c.guest())
}

func (c CookieConfig) clearGuest(w http.ResponseWriter) {
	httpx.ClearSessionCookie(w, GuestCookie, c.guest())
}
