package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/laced/internal/laced/service"
	"github.com/aussiebroadwan/laced/internal/laced/store"
	"github.com/aussiebroadwan/laced/internal/laced/store/drivers/sqlite"
	"github.com/aussiebroadwan/laced/pkg/cryptox"
	"github.com/aussiebroadwan/laced/pkg/lacedsdk"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	store    store.Store
	router   *Router
	sessions *service.SessionService
	server   *httptest.Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	hasher, err := cryptox.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	sessions := &service.SessionService{Store: st, TTL: service.DefaultSessionTTL, GuestTTL: service.DefaultSessionTTL}
	auth := &service.AuthService{
		Store:       st,
		Credentials: &service.CredentialService{Store: st, Hasher: hasher},
		Sessions:    sessions,
		Merge:       &service.MergeService{Store: st},
	}
	catalog := &service.CatalogService{Store: st}
	_, err = catalog.Seed(t.Context())
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := NewRouter("test", st, CookieConfig{TTL: service.DefaultSessionTTL, GuestTTL: service.DefaultSessionTTL}, logger)
	r.AuthService = auth
	r.SessionService = sessions
	r.CatalogService = catalog
	r.ApplyRoutes()

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testEnv{store: st, router: r, sessions: sessions, server: srv}
}

func (e *testEnv) client() *lacedsdk.Client {
	return lacedsdk.NewClient(e.server.URL)
}

// do sends a request straight through the router.
func (e *testEnv) do(t *testing.T, method, target string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, target, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// responseCookie returns the named Set-Cookie of rec, or nil.
func responseCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func authCookie(token string) *http.Cookie {
	return &http.Cookie{Name: AuthCookie, Value: token}
}

func guestCookie(token string) *http.Cookie {
	return &http.Cookie{Name: GuestCookie, Value: token}
}

var ada = lacedsdk.SignUpRequest{Name: "Ada", Email: "ada@example.com", Password: "correcthorse"}

// signUp registers ada through the router and returns her auth token.
func (e *testEnv) signUp(t *testing.T) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/v1/auth/sign-up", ada)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	c := responseCookie(rec, AuthCookie)
	require.NotNil(t, c)
	return c.Value
}

const cookieMaxAge = int(7 * 24 * time.Hour / time.Second)
