package http

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/laced/pkg/cryptox"
	"github.com/aussiebroadwan/laced/pkg/lacedsdk"
	"github.com/stretchr/testify/require"
)

func TestProtectedRouteRedirectsToSignIn(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/account", nil)
	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	require.Equal(t, "/sign-in?redirect=/account", rec.Header().Get("Location"))
	require.Nil(t, responseCookie(rec, GuestCookie), "redirects do not provision guests")

	rec = env.do(t, http.MethodGet, "/orders?page=2", nil)
	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	require.Equal(t, "/sign-in?redirect=/orders%3Fpage%3D2", rec.Header().Get("Location"))
}

func TestProtectedRouteWithSession(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	token := env.signUp(t)

	rec := env.do(t, http.MethodGet, "/account", nil, authCookie(token))
	require.Equal(t, http.StatusOK, rec.Code)

	page := decode[lacedsdk.PageResponse](t, rec)
	require.Equal(t, "account", page.Page)
	require.True(t, page.Viewer.Authenticated)
	require.NotNil(t, page.User)
	require.Equal(t, "ada@example.com", page.User.Email)
}

func TestAuthPageWhileSignedInGoesHome(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	token := env.signUp(t)

	for _, path := range []string{"/sign-in", "/sign-up"} {
		rec := env.do(t, http.MethodGet, path, nil, authCookie(token))
		require.Equal(t, http.StatusTemporaryRedirect, rec.Code, path)
		require.Equal(t, "/", rec.Header().Get("Location"))
	}
}

func TestInvalidAuthCookieIsClearedAndRedirected(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/checkout", nil, authCookie("expired-or-forged"))
	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	require.Equal(t, "/sign-in?redirect=/checkout", rec.Header().Get("Location"))

	c := responseCookie(rec, AuthCookie)
	require.NotNil(t, c)
	require.Negative(t, c.MaxAge)
}

func TestPublicPageIssuesGuest(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	guest := responseCookie(rec, GuestCookie)
	require.NotNil(t, guest)
	require.True(t, guest.HttpOnly)
	require.Equal(t, cookieMaxAge, guest.MaxAge)

	page := decode[lacedsdk.PageResponse](t, rec)
	require.Equal(t, "home", page.Page)
	require.True(t, page.Viewer.Guest)
	require.False(t, page.Viewer.Authenticated)
	require.Len(t, page.Products, homeFeatured)

	// A valid guest cookie is reused, not replaced.
	rec = env.do(t, http.MethodGet, "/cart", nil, guestCookie(guest.Value))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, responseCookie(rec, GuestCookie))
	require.True(t, decode[lacedsdk.PageResponse](t, rec).Viewer.Guest)

	// An unknown guest cookie is replaced.
	rec = env.do(t, http.MethodGet, "/cart", nil, guestCookie("bogus"))
	replaced := responseCookie(rec, GuestCookie)
	require.NotNil(t, replaced)
	require.NotEqual(t, "bogus", replaced.Value)
}

func TestAPIRoutesAreNotGated(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	for _, path := range []string{"/v1/products", "/livez"} {
		rec := env.do(t, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, rec.Code, path)
		require.Nil(t, responseCookie(rec, GuestCookie), path)
	}
}

func TestGuestMergedOnSignUp(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	c := env.client()
	ctx := t.Context()

	page, err := c.Page(ctx, "/products")
	require.NoError(t, err)
	require.True(t, page.Viewer.Guest)
	guestToken := c.Cookie(lacedsdk.GuestCookieName)
	require.NotEmpty(t, guestToken)

	_, err = c.SignUp(ctx, ada)
	require.NoError(t, err)
	require.Empty(t, c.Cookie(lacedsdk.GuestCookieName), "merged guest cookie is cleared")

	_, err = env.store.GuestSessions().GetGuestSessionByTokenHash(ctx, cryptox.FingerprintToken(guestToken))
	require.Error(t, err, "guest record is deleted")

	page, err = c.Page(ctx, "/")
	require.NoError(t, err)
	require.True(t, page.Viewer.Authenticated)
	require.False(t, page.Viewer.Guest)
	require.Empty(t, c.Cookie(lacedsdk.GuestCookieName), "signed-in visitors get no guest")
}

func TestSignInClearsDeadGuestCookie(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.signUp(t)

	creds := lacedsdk.SignInRequest{Email: ada.Email, Password: ada.Password}
	for _, token := range []string{"never-issued", "never-issued"} {
		rec := env.do(t, http.MethodPost, "/v1/auth/sign-in", creds, guestCookie(token))
		require.Equal(t, http.StatusOK, rec.Code)

		c := responseCookie(rec, GuestCookie)
		require.NotNil(t, c, "guest cookie is cleared even without a merge")
		require.Negative(t, c.MaxAge)
	}

	rec := env.do(t, http.MethodPost, "/v1/auth/sign-in", creds)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, responseCookie(rec, GuestCookie), "nothing to clear without a guest cookie")
}
