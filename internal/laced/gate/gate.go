package gate

import (
	"net/url"
	"strings"
)

// SessionState is the outcome of validating one session cookie.
type SessionState int

const (
	// None means no cookie was sent.
	None SessionState = iota
	// Invalid means a cookie was sent but names no live session.
	Invalid
	Valid
)

// Request is what the gate knows about an inbound request.
type Request struct {
	Path string
	// Target is the path plus query to return to after signing in. Path is
	// used when empty.
	Target string
	Auth   SessionState
	Guest  SessionState
}

type Action int

const (
	Proceed Action = iota
	Redirect
)

// Decision tells the transport what to do. Cookie flags apply whether or not
// the request proceeds.
type Decision struct {
	Action   Action
	Location string
	Class    RouteClass

	ClearAuthCookie bool
	IssueGuest      bool
}

// Decide maps a request onto a decision. It is a pure function of its input.
func (p Policy) Decide(r Request) Decision {
	class := p.Classify(r.Path)
	d := Decision{Action: Proceed, Class: class}

	// An invalid auth cookie is cleared and the visitor treated as anonymous.
	authenticated := r.Auth == Valid
	if r.Auth == Invalid {
		d.ClearAuthCookie = true
	}

	switch class {
	case Protected:
		if !authenticated {
			target := r.Target
			if target == "" {
				target = r.Path
			}
			d.Action = Redirect
			d.Location = p.signInPath() + "?redirect=" + queryEscapePath(target)
			return d
		}
	case AuthPage:
		if authenticated {
			d.Action = Redirect
			d.Location = p.homePath()
			return d
		}
	}

	if (class == Public || class == AuthPage) && !authenticated && r.Guest != Valid {
		d.IssueGuest = true
	}
	return d
}

func (p Policy) signInPath() string {
	if p.SignInPath == "" {
		return "/sign-in"
	}
	return p.SignInPath
}

func (p Policy) homePath() string {
	if p.HomePath == "" {
		return "/"
	}
	return p.HomePath
}

// SafeRedirect returns target if it is a local absolute path, and "/"
// otherwise. Scheme-relative ("//host") and backslash ("/\host") forms are
// rejected because browsers treat them as off-site.
func SafeRedirect(target string) string {
	if target == "" || target[0] != '/' {
		return "/"
	}
	if len(target) > 1 && (target[1] == '/' || target[1] == '\\') {
		return "/"
	}
	if strings.ContainsAny(target, "\r\n") {
		return "/"
	}
	u, err := url.Parse(target)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return target
}

// queryEscapePath escapes s for a query value, leaving '/' readable since it
// is legal there.
func queryEscapePath(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "%2F", "/")
}
