package httpx

import (
	"net/http"
	"time"
)

// CookieOptions are the attributes shared by every session cookie.
type CookieOptions struct {
	Secure bool
	MaxAge time.Duration
}

// SetSessionCookie writes an HttpOnly, SameSite=Strict cookie scoped to the
// whole site.
func SetSessionCookie(w http.ResponseWriter, name, value string, opts CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(opts.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearSessionCookie expires the named cookie in the browser.
func ClearSessionCookie(w http.ResponseWriter, name string, opts CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// CookieValue returns the named cookie's value, or "" when absent.
func CookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
