package laced_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/laced/pkg/lacedsdk"
	"github.com/stretchr/testify/require"
)

// TestRateLimitSignIn verifies the strict limit (5 req/min per IP and email)
// on sign-in.
func TestRateLimitSignIn(t *testing.T) {
	baseURL := setupLacedContainerWithDefaultRateLimits(t)
	client := lacedsdk.NewClient(baseURL)
	ctx := t.Context()

	wrong := lacedsdk.SignInRequest{Email: "ada@example.com", Password: "wrongpassword"}
	for i := range 5 {
		_, err := client.SignIn(ctx, wrong)
		require.ErrorIs(t, err, lacedsdk.ErrInvalidCredentials, "request %d", i+1)
	}

	_, err := client.SignIn(ctx, wrong)
	var apiErr *lacedsdk.APIError
	require.True(t, errors.As(err, &apiErr), "got %v", err)
	require.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	require.Equal(t, lacedsdk.ErrorCodeRateLimited, apiErr.Code)

	// Another email from the same address has its own budget.
	_, err = client.SignIn(ctx, lacedsdk.SignInRequest{Email: "grace@example.com", Password: "wrongpassword"})
	require.ErrorIs(t, err, lacedsdk.ErrInvalidCredentials)
}
