package http

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/laced/pkg/lacedsdk"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	c := env.client()

	live, err := c.Livez(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := c.Readyz(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, "ok", ready.Checks.Database)
}

func TestReadyzReportsDatabaseDown(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	require.NoError(t, env.store.Close())

	rec := env.do(t, http.MethodGet, "/readyz", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	body := decode[lacedsdk.HealthResponse](t, rec)
	require.Equal(t, "degraded", body.Status)
	require.Equal(t, "error", body.Checks.Database)
}

func TestRequestIDIsEchoed(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/livez", nil)
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestSwaggerDocIsServed(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/swagger/doc.json", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"/v1/auth/sign-in"`)
}
