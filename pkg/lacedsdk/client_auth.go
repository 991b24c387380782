package lacedsdk

import (
	"context"
	"net/http"
)

// SignUp registers a user. On success the client holds an auth_session
// cookie.
func (c *Client) SignUp(ctx context.Context, req SignUpRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/auth/sign-up", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// SignIn authenticates with email and password.
func (c *Client) SignIn(ctx context.Context, req SignInRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/auth/sign-in", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// SignOut ends the current session. It succeeds without a session too.
func (c *Client) SignOut(ctx context.Context) error {
	var out AuthResponse
	return c.doJSON(ctx, http.MethodPost, "/v1/auth/sign-out", nil, &out, http.StatusOK)
}

// Session reports the signed-in user, or a nil User when there is none.
func (c *Client) Session(ctx context.Context) (*SessionResponse, error) {
	var out SessionResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/auth/session", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
