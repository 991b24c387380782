// Package gate decides, per request, whether a visitor may proceed, must be
// redirected, or needs cookies issued or cleared. It performs no I/O; the
// HTTP middleware feeds it the cookie validation results.
package gate

import "strings"

// RouteClass is how a path is treated by the gate.
type RouteClass int

const (
	// Unclassified paths (API, health, docs) pass through untouched.
	Unclassified RouteClass = iota
	Public
	// AuthPage is public but bounces signed-in visitors home.
	AuthPage
	Protected
)

func (c RouteClass) String() string {
	switch c {
	case Public:
		return "public"
	case AuthPage:
		return "auth_page"
	case Protected:
		return "protected"
	default:
		return "unclassified"
	}
}

// Rule assigns a class to a path prefix.
type Rule struct {
	Prefix string
	Class  RouteClass
}

// Policy is an ordered rule table. The longest matching prefix wins.
type Policy struct {
	Rules []Rule

	// SignInPath is where unauthenticated visitors of protected routes go.
	SignInPath string
	// HomePath is where signed-in visitors of auth pages go.
	HomePath string
}

// DefaultPolicy is the storefront's route table.
func DefaultPolicy() Policy {
	return Policy{
		Rules: []Rule{
			{"/checkout", Protected},
			{"/account", Protected},
			{"/orders", Protected},
			{"/wishlist", Protected},

			{"/sign-in", AuthPage},
			{"/sign-up", AuthPage},

			{"/", Public},
			{"/products", Public},
			{"/collections", Public},
			{"/categories", Public},
			{"/cart", Public},
		},
		SignInPath: "/sign-in",
		HomePath:   "/",
	}
}

// Classify returns the class of the longest rule matching path.
func (p Policy) Classify(path string) RouteClass {
	class, best := Unclassified, -1
	for _, r := range p.Rules {
		if matchPrefix(r.Prefix, path) && len(r.Prefix) > best {
			class, best = r.Class, len(r.Prefix)
		}
	}
	return class
}

// matchPrefix matches whole path segments: "/account" matches "/account"
// and "/account/orders" but not "/accounting". "/" matches only the root.
func matchPrefix(prefix, path string) bool {
	if prefix == "/" {
		return path == "/"
	}
	prefix = strings.TrimSuffix(prefix, "/")
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	rest := path[len(prefix):]
	return rest == "" || rest[0] == '/'
}
