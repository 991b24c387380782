package domain

import "time"

// Session is an authenticated browser session. Only the fingerprint of the
// opaque cookie token is kept.
type Session struct {
	ID        string
	UserID    string
	TokenHash string
	IPAddress string
	UserAgent string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// ValidAt reports whether the session is still usable at now. Expiry is
// exclusive: a session is dead from the instant ExpiresAt is reached.
func (s Session) ValidAt(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}

// GuestSession identifies an anonymous shopper. It never references a user.
type GuestSession struct {
	ID        string
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (g GuestSession) ValidAt(now time.Time) bool {
	return now.Before(g.ExpiresAt)
}
