package http

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/laced/pkg/lacedsdk"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestListProducts(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	c := env.client()
	ctx := t.Context()

	all, err := c.ListProducts(ctx, lacedsdk.ProductQuery{})
	require.NoError(t, err)
	require.True(t, all.Success)
	require.Equal(t, 15, all.Count)
	require.Len(t, all.Data, 15)
	require.Equal(t, "Nike Air Max 270", all.Data[0].Name)
	require.Equal(t, "150.00", all.Data[0].Price)
	require.Equal(t, "/shoes/shoe-1.jpg", all.Data[0].ImageURL)

	running, err := c.ListProducts(ctx, lacedsdk.ProductQuery{Category: "running", Sort: "price_asc", Limit: 2})
	require.NoError(t, err)
	require.Len(t, running.Data, 2)
	require.Greater(t, running.Count, 2)
	require.Equal(t, "Nike React Miler 2", running.Data[0].Name)

	one, err := c.GetProduct(ctx, all.Data[3].ID)
	require.NoError(t, err)
	require.Equal(t, all.Data[3].Name, one.Name)

	_, err = c.GetProduct(ctx, uuid.NewString())
	require.ErrorIs(t, err, lacedsdk.ErrNotFound)
}

func TestListProductsByPriceAndStock(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	c := env.client()
	ctx := t.Context()

	premium, err := c.ListProducts(ctx, lacedsdk.ProductQuery{MinPriceCents: 20000, Sort: "price_asc"})
	require.NoError(t, err)
	require.Equal(t, 2, premium.Count)
	require.Equal(t, "Nike Air Zoom Tempo", premium.Data[0].Name)
	require.Equal(t, "Nike Vaporfly", premium.Data[1].Name)

	budget, err := c.ListProducts(ctx, lacedsdk.ProductQuery{MaxPriceCents: 9500, Sort: "price_asc"})
	require.NoError(t, err)
	require.Equal(t, 2, budget.Count)
	require.Equal(t, "Nike Blazer Mid '77", budget.Data[0].Name)

	band, err := c.ListProducts(ctx, lacedsdk.ProductQuery{MinPriceCents: 11000, MaxPriceCents: 12000})
	require.NoError(t, err)
	require.Equal(t, 3, band.Count)
	for _, p := range band.Data {
		require.GreaterOrEqual(t, p.Price, "110.00")
		require.LessOrEqual(t, p.Price, "120.00")
	}

	inStock, err := c.ListProducts(ctx, lacedsdk.ProductQuery{InStockOnly: true})
	require.NoError(t, err)
	require.Equal(t, 15, inStock.Count)
}

func TestListProductsRejectsBadQuery(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	for _, target := range []string{
		"/v1/products?limit=abc",
		"/v1/products?offset=-1",
		"/v1/products?sort=random",
		"/v1/products?min_price=cheap",
		"/v1/products?max_price=-5",
		"/v1/products?min_price=20000&max_price=10000",
		"/v1/products?in_stock=maybe",
	} {
		rec := env.do(t, http.MethodGet, target, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code, target)
		require.Equal(t, lacedsdk.ErrorCodeInvalidRequest, decode[lacedsdk.ErrorResponse](t, rec).Error)
	}
}

func TestProductPage(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	c := env.client()

	list, err := c.ListProducts(t.Context(), lacedsdk.ProductQuery{Limit: 1})
	require.NoError(t, err)

	page, err := c.Page(t.Context(), "/products/"+list.Data[0].ID)
	require.NoError(t, err)
	require.Equal(t, "product", page.Page)
	require.NotNil(t, page.Product)
	require.Equal(t, list.Data[0].ID, page.Product.ID)
}
