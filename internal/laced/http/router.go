package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/laced/internal/laced/gate"
	"github.com/aussiebroadwan/laced/internal/laced/service"
	"github.com/aussiebroadwan/laced/internal/laced/store"
	"github.com/aussiebroadwan/laced/pkg/httpx"
	"github.com/aussiebroadwan/laced/pkg/slogx"

	_ "github.com/aussiebroadwan/laced/api/laced" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	cookies      CookieConfig
	policy       gate.Policy

	store          store.Store
	AuthService    *service.AuthService
	SessionService *service.SessionService
	CatalogService *service.CatalogService
}

func NewRouter(
	buildVersion string,
	st store.Store,
	cookies CookieConfig,
	logger *slog.Logger,
) *Router {
	return &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		cookies:      cookies,
		policy:       gate.DefaultPolicy(),
		store:        st,
	}
}

// ApplyRoutes registers every route and builds the global middleware chain.
// Services must be set before it is called.
func (r *Router) ApplyRoutes() {
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		(&Gate{Policy: r.policy, Sessions: r.SessionService, Cookies: r.cookies}).Middleware,
	}

	r.registerAuth()
	r.registerCatalog()
	r.registerPages()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Laced Storefront API
//	@version		0.1.0
//	@description	Session based authentication, guest identity and the product catalog of the laced sneaker storefront.
//	@description
//	@description	Sessions are opaque tokens carried in the HttpOnly auth_session cookie. Anonymous shoppers receive a guest_session cookie.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/laced
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						auth_session
//	@description				Opaque session token set by sign-up and sign-in.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService, Cookies: r.cookies}

	// Credential endpoints - strict rate limit by IP + email to slow brute force
	r.Mux.Handle("POST /v1/auth/sign-up",
		httpx.Chain(http.HandlerFunc(h.HandleSignUp),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)
	r.Mux.Handle("POST /v1/auth/sign-in",
		httpx.Chain(http.HandlerFunc(h.HandleSignIn),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)

	// Session endpoints - moderate, keyed by user when signed in
	r.Mux.Handle("POST /v1/auth/sign-out",
		httpx.Chain(http.HandlerFunc(h.HandleSignOut),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/auth/session",
		httpx.Chain(http.HandlerFunc(h.HandleSession),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerCatalog() {
	h := &ProductsHandler{CatalogService: r.CatalogService}

	r.Mux.Handle("GET /v1/products",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /v1/products/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerPages() {
	h := &PagesHandler{CatalogService: r.CatalogService}

	pages := map[string]http.HandlerFunc{
		"GET /{$}":           h.catalogPage("home", homeFeatured),
		"GET /products":      h.HandleProducts,
		"GET /products/{id}": h.HandleProduct,
		"GET /collections":   h.catalogPage("collections", 0),
		"GET /cart":          h.simplePage("cart"),
		"GET /sign-in":       h.simplePage("sign-in"),
		"GET /sign-up":       h.simplePage("sign-up"),
		"GET /account":       h.HandleAccount,
		"GET /checkout":      h.simplePage("checkout"),
		"GET /orders":        h.simplePage("orders"),
		"GET /wishlist":      h.simplePage("wishlist"),
	}
	for pattern, handler := range pages {
		r.Mux.Handle(pattern,
			httpx.Chain(handler,
				httpx.RateLimitByIP(httpx.PublicLimit),
			),
		)
	}
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
