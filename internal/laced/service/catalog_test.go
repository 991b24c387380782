package service

import (
	"testing"

	"github.com/aussiebroadwan/laced/internal/laced/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newSeededCatalog(t *testing.T) *CatalogService {
	t.Helper()
	f := newFixture(t)
	c := &CatalogService{Store: f.store, Now: f.clock.Now}
	n, err := c.Seed(t.Context())
	require.NoError(t, err)
	require.Equal(t, len(starterLineup), n)
	return c
}

func TestSeedOnlyFillsEmptyCatalog(t *testing.T) {
	t.Parallel()
	c := newSeededCatalog(t)

	n, err := c.Seed(t.Context())
	require.NoError(t, err)
	require.Zero(t, n)

	page, err := c.ListProducts(t.Context(), domain.ProductFilter{Limit: domain.MaxPageSize})
	require.NoError(t, err)
	require.Equal(t, 15, page.Total)
}

func TestListProducts(t *testing.T) {
	t.Parallel()
	c := newSeededCatalog(t)
	ctx := t.Context()

	page, err := c.ListProducts(ctx, domain.ProductFilter{})
	require.NoError(t, err)
	require.Equal(t, 15, page.Total)
	require.Len(t, page.Products, 15)
	require.Equal(t, "Nike Air Max 270", page.Products[0].Name, "featured order follows the lineup")
	require.Equal(t, "150.00", page.Products[0].Price())

	page, err = c.ListProducts(ctx, domain.ProductFilter{Category: "Skateboarding"})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	require.Equal(t, "Nike SB Dunk Low Pro", page.Products[0].Name)

	page, err = c.ListProducts(ctx, domain.ProductFilter{Sort: domain.SortPriceDesc, Limit: 1})
	require.NoError(t, err)
	require.Equal(t, "Nike Vaporfly", page.Products[0].Name)

	page, err = c.ListProducts(ctx, domain.ProductFilter{Limit: 1000})
	require.NoError(t, err)
	require.Len(t, page.Products, 15, "limit is clamped, not rejected")

	for _, bad := range []domain.ProductFilter{
		{Sort: "random"},
		{Limit: -1},
		{Offset: -5},
		{MinPriceCents: 20000, MaxPriceCents: 10000},
	} {
		_, err := c.ListProducts(ctx, bad)
		require.ErrorIs(t, err, ErrInvalidFilter)
	}
}

func TestGetProduct(t *testing.T) {
	t.Parallel()
	c := newSeededCatalog(t)
	ctx := t.Context()

	page, err := c.ListProducts(ctx, domain.ProductFilter{Limit: 1})
	require.NoError(t, err)

	p, err := c.GetProduct(ctx, page.Products[0].ID)
	require.NoError(t, err)
	require.Equal(t, page.Products[0].Name, p.Name)

	_, err = c.GetProduct(ctx, uuid.NewString())
	require.ErrorIs(t, err, ErrProductNotFound)

	_, err = c.GetProduct(ctx, "not-a-uuid")
	require.ErrorIs(t, err, ErrProductNotFound)
}
