package laced_test

import (
	"testing"

	"github.com/aussiebroadwan/laced/pkg/lacedsdk"
	"github.com/stretchr/testify/require"
)

func TestCatalogIsSeeded(t *testing.T) {
	baseURL := setupLacedContainer(t)
	client := lacedsdk.NewClient(baseURL)
	ctx := t.Context()

	list, err := client.ListProducts(ctx, lacedsdk.ProductQuery{})
	require.NoError(t, err)
	require.Equal(t, 15, list.Count)

	skate, err := client.ListProducts(ctx, lacedsdk.ProductQuery{Category: "skateboarding"})
	require.NoError(t, err)
	require.Equal(t, 1, skate.Count)
	require.Equal(t, "Nike SB Dunk Low Pro", skate.Data[0].Name)

	product, err := client.GetProduct(ctx, skate.Data[0].ID)
	require.NoError(t, err)
	require.Equal(t, "95.00", product.Price)

	_, err = client.GetProduct(ctx, "not-a-uuid")
	require.ErrorIs(t, err, lacedsdk.ErrNotFound)
}
