package laced_test

import (
	"testing"

	"github.com/aussiebroadwan/laced/pkg/lacedsdk"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoints(t *testing.T) {
	baseURL := setupLacedContainer(t)
	client := lacedsdk.NewClient(baseURL)

	live, err := client.Livez(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)

	ready, err := client.Readyz(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, "ok", ready.Checks.Database)
}
