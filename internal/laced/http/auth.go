package http

import (
	"net/http"

	"github.com/aussiebroadwan/laced/internal/laced/gate"
	"github.com/aussiebroadwan/laced/internal/laced/service"
	"github.com/aussiebroadwan/laced/pkg/httpx"
	"github.com/aussiebroadwan/laced/pkg/lacedsdk"
	"github.com/aussiebroadwan/laced/pkg/slogx"
)

type AuthHandler struct {
	AuthService *service.AuthService
	Cookies     CookieConfig
}

func sessionMeta(r *http.Request) service.SessionMeta {
	return service.SessionMeta{
		IPAddress: httpx.IPKeyExtractor(r),
		UserAgent: r.UserAgent(),
	}
}

// HandleSignUp registers a user and signs them in.
//
//	@Summary		Sign up
//	@Description	Creates a user with email and password, sets the auth_session cookie and merges any guest session.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		lacedsdk.SignUpRequest	true	"Sign-up details"
//	@Success		200		{object}	lacedsdk.AuthResponse	"Signed up"
//	@Failure		400		{object}	lacedsdk.ErrorResponse	"Validation failed"
//	@Failure		409		{object}	lacedsdk.ErrorResponse	"Email already registered"
//	@Failure		429		{object}	lacedsdk.ErrorResponse	"Too many attempts"
//	@Failure		503		{object}	lacedsdk.ErrorResponse	"Store unavailable"
//	@Router			/v1/auth/sign-up [post].
func (h *AuthHandler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	var body lacedsdk.SignUpRequest
	if err := httpx.DecodeJSON(r, &body); err != nil {
		lacedsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	in := service.SignUpInput{Name: body.Name, Email: body.Email, Password: body.Password}
	res, err := h.AuthService.SignUp(r.Context(), in, httpx.CookieValue(r, GuestCookie), sessionMeta(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.finish(w, r, res, "")
}

// HandleSignIn authenticates with email and password.
//
//	@Summary		Sign in
//	@Description	Verifies credentials, sets the auth_session cookie and merges any guest session.
//	@Description	The error is the same whether the email or the password was wrong. No cookie is set on failure.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		lacedsdk.SignInRequest	true	"Credentials"
//	@Success		200		{object}	lacedsdk.AuthResponse	"Signed in"
//	@Failure		400		{object}	lacedsdk.ErrorResponse	"Validation failed"
//	@Failure		401		{object}	lacedsdk.ErrorResponse	"Invalid credentials"
//	@Failure		429		{object}	lacedsdk.ErrorResponse	"Too many attempts"
//	@Failure		503		{object}	lacedsdk.ErrorResponse	"Store unavailable"
//	@Router			/v1/auth/sign-in [post].
func (h *AuthHandler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	var body lacedsdk.SignInRequest
	if err := httpx.DecodeJSON(r, &body); err != nil {
		lacedsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	in := service.SignInInput{Email: body.Email, Password: body.Password}
	res, err := h.AuthService.SignIn(r.Context(), in, httpx.CookieValue(r, GuestCookie), sessionMeta(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	redirectTo := ""
	if body.Redirect != "" {
		redirectTo = gate.SafeRedirect(body.Redirect)
	}
	h.finish(w, r, res, redirectTo)
}

// finish sets the auth cookie. A presented guest cookie is cleared whether
// or not it merged: signed-in visitors never use one.
func (h *AuthHandler) finish(w http.ResponseWriter, r *http.Request, res service.AuthResult, redirectTo string) {
	h.Cookies.setAuth(w, res.Token)
	if res.Merged || httpx.CookieValue(r, GuestCookie) != "" {
		h.Cookies.clearGuest(w)
	}
	httpx.WriteJSON(w, http.StatusOK, lacedsdk.AuthResponse{
		Success:    true,
		User:       userSummary(res.User),
		RedirectTo: redirectTo,
	})
}

// HandleSignOut ends the current session.
//
//	@Summary		Sign out
//	@Description	Revokes the session and clears the auth_session cookie. Always succeeds.
//	@Tags			Auth
//	@Produce		json
//	@Security		SessionCookie
//	@Success		200	{object}	lacedsdk.AuthResponse	"Signed out"
//	@Router			/v1/auth/sign-out [post].
func (h *AuthHandler) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	h.AuthService.SignOut(r.Context(), httpx.CookieValue(r, AuthCookie))
	h.Cookies.clearAuth(w)
	slogx.FromContext(r.Context()).Info("signed out")
	httpx.WriteJSON(w, http.StatusOK, lacedsdk.AuthResponse{Success: true})
}

// HandleSession reports the signed-in user.
//
//	@Summary		Current session
//	@Description	Returns the signed-in user, or null without a valid session. Never fails for a missing or stale cookie.
//	@Tags			Auth
//	@Produce		json
//	@Security		SessionCookie
//	@Success		200	{object}	lacedsdk.SessionResponse	"Current user or null"
//	@Router			/v1/auth/session [get].
func (h *AuthHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	var out lacedsdk.SessionResponse
	if user, ok := h.AuthService.CurrentUser(r.Context(), httpx.CookieValue(r, AuthCookie)); ok {
		out.User = userSummary(user)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
