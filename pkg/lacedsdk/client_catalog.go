package lacedsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Encode renders q as a query string, leading '?' included when non-empty.
func (q ProductQuery) Encode() string {
	v := url.Values{}
	if q.Brand != "" {
		v.Set("brand", q.Brand)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.MinPriceCents > 0 {
		v.Set("min_price", strconv.FormatInt(q.MinPriceCents, 10))
	}
	if q.MaxPriceCents > 0 {
		v.Set("max_price", strconv.FormatInt(q.MaxPriceCents, 10))
	}
	if q.InStockOnly {
		v.Set("in_stock", "true")
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		v.Set("offset", strconv.Itoa(q.Offset))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// ListProducts returns one page of the catalog.
func (c *Client) ListProducts(ctx context.Context, q ProductQuery) (*ProductListResponse, error) {
	var out ProductListResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/products"+q.Encode(), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProduct fetches one product by id.
func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	var out ProductResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/products/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Data, nil
}
