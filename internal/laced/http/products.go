package http

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/aussiebroadwan/laced/internal/laced/domain"
	"github.com/aussiebroadwan/laced/internal/laced/service"
	"github.com/aussiebroadwan/laced/pkg/httpx"
	"github.com/aussiebroadwan/laced/pkg/lacedsdk"
)

type ProductsHandler struct {
	CatalogService *service.CatalogService
}

// parseProductFilter reads brand, category, min_price, max_price, in_stock,
// sort, limit and offset. Prices are in cents.
func parseProductFilter(q url.Values) (domain.ProductFilter, bool) {
	f := domain.ProductFilter{
		Brand:    q.Get("brand"),
		Category: q.Get("category"),
		Sort:     domain.ProductSort(q.Get("sort")),
	}
	for key, dst := range map[string]*int{"limit": &f.Limit, "offset": &f.Offset} {
		raw := q.Get(key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return domain.ProductFilter{}, false
		}
		*dst = n
	}
	for key, dst := range map[string]*int64{"min_price": &f.MinPriceCents, "max_price": &f.MaxPriceCents} {
		raw := q.Get(key)
		if raw == "" {
			continue
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			return domain.ProductFilter{}, false
		}
		*dst = n
	}
	if raw := q.Get("in_stock"); raw != "" {
		inStock, err := strconv.ParseBool(raw)
		if err != nil {
			return domain.ProductFilter{}, false
		}
		f.InStockOnly = inStock
	}
	return f, true
}

func toProduct(p domain.Product) lacedsdk.Product {
	return lacedsdk.Product{
		ID:          p.ID,
		Name:        p.Name,
		Brand:       p.Brand,
		Category:    p.Category,
		Price:       p.Price(),
		Description: p.Description,
		ImageURL:    p.ImageURL,
		InStock:     p.InStock,
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toProducts(ps []domain.Product) []lacedsdk.Product {
	out := make([]lacedsdk.Product, len(ps))
	for i, p := range ps {
		out[i] = toProduct(p)
	}
	return out
}

// HandleList lists the catalog.
//
//	@Summary		List products
//	@Description	Returns one page of the catalog, featured order by default.
//	@Tags			Catalog
//	@Produce		json
//	@Param			brand		query		string	false	"Brand, case-insensitive"
//	@Param			category	query		string	false	"Category, case-insensitive"
//	@Param			min_price	query		int		false	"Lowest price in cents"
//	@Param			max_price	query		int		false	"Highest price in cents"
//	@Param			in_stock	query		bool	false	"Only products with stock"
//	@Param			sort		query		string	false	"featured, newest, price_asc, price_desc or name_asc"
//	@Param			limit		query		int		false	"Page size, at most 100"
//	@Param			offset		query		int		false	"Items to skip"
//	@Success		200			{object}	lacedsdk.ProductListResponse
//	@Failure		400			{object}	lacedsdk.ErrorResponse	"Invalid filter"
//	@Failure		503			{object}	lacedsdk.ErrorResponse	"Store unavailable"
//	@Router			/v1/products [get].
func (h *ProductsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	f, ok := parseProductFilter(r.URL.Query())
	if !ok {
		lacedsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	page, err := h.CatalogService.ListProducts(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, lacedsdk.ProductListResponse{
		Success: true,
		Data:    toProducts(page.Products),
		Count:   page.Total,
	})
}

// HandleGet fetches one product.
//
//	@Summary		Get product
//	@Tags			Catalog
//	@Produce		json
//	@Param			id	path		string	true	"Product id (UUID)"
//	@Success		200	{object}	lacedsdk.ProductResponse
//	@Failure		404	{object}	lacedsdk.ErrorResponse	"No such product"
//	@Failure		503	{object}	lacedsdk.ErrorResponse	"Store unavailable"
//	@Router			/v1/products/{id} [get].
func (h *ProductsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.CatalogService.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, lacedsdk.ProductResponse{Success: true, Data: toProduct(p)})
}
