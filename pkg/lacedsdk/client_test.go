package lacedsdk

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/laced/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestAPIErrorRoundTrip(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ErrValidation.WithFields(map[string]string{"email": "must be a valid email address"}).WriteError(w)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).SignUp(t.Context(), SignUpRequest{Email: "nope"})
	require.ErrorIs(t, err, ErrValidation)
	require.NotErrorIs(t, err, ErrDuplicateEmail)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, "must be a valid email address", apiErr.Fields["email"])
	require.Nil(t, ErrValidation.Fields, "WithFields copies")
}

func TestNonJSONErrorFallsBack(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Livez(t.Context())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Equal(t, ErrorCodeServerError, apiErr.Code)
}

func TestClientKeepsCookiesAndReportsRedirects(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/auth/sign-in", func(w http.ResponseWriter, r *http.Request) {
		httpx.SetSessionCookie(w, AuthCookieName, "tok", httpx.CookieOptions{MaxAge: time.Hour})
		httpx.WriteJSON(w, http.StatusOK, AuthResponse{Success: true, User: &UserSummary{ID: "u1"}})
	})
	mux.HandleFunc("GET /account", func(w http.ResponseWriter, r *http.Request) {
		if httpx.CookieValue(r, AuthCookieName) != "tok" {
			http.Redirect(w, r, "/sign-in?redirect=/account", http.StatusTemporaryRedirect)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, PageResponse{Page: "account"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(srv.URL)

	_, err := c.Page(t.Context(), "/account")
	var redirect *RedirectError
	require.True(t, errors.As(err, &redirect))
	require.Equal(t, http.StatusTemporaryRedirect, redirect.StatusCode)
	require.Equal(t, "/sign-in?redirect=/account", redirect.Location)

	res, err := c.SignIn(t.Context(), SignInRequest{Email: "a@example.com", Password: "x"})
	require.NoError(t, err)
	require.Equal(t, "u1", res.User.ID)
	require.Equal(t, "tok", c.Cookie(AuthCookieName))

	page, err := c.Page(t.Context(), "/account")
	require.NoError(t, err)
	require.Equal(t, "account", page.Page)
}

func TestProductQueryEncode(t *testing.T) {
	t.Parallel()

	require.Empty(t, ProductQuery{}.Encode())
	require.Equal(t, "?category=Running&limit=5&sort=price_asc", ProductQuery{Category: "Running", Sort: "price_asc", Limit: 5}.Encode())
	require.Equal(t, "?in_stock=true&max_price=20000&min_price=10000", ProductQuery{MinPriceCents: 10000, MaxPriceCents: 20000, InStockOnly: true}.Encode())
}
