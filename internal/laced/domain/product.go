package domain

import (
	"fmt"
	"time"
)

// Product is a catalog entry. Prices are whole cents.
type Product struct {
	ID          string
	Name        string
	Brand       string
	Category    string
	PriceCents  int64
	Description string
	ImageURL    string
	InStock     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Price renders PriceCents as a decimal string, e.g. "150.00".
func (p Product) Price() string {
	return fmt.Sprintf("%d.%02d", p.PriceCents/100, p.PriceCents%100)
}

// ProductSort orders catalog listings.
type ProductSort string

const (
	SortFeatured  ProductSort = "featured" // insertion order
	SortNewest    ProductSort = "newest"
	SortPriceAsc  ProductSort = "price_asc"
	SortPriceDesc ProductSort = "price_desc"
	SortNameAsc   ProductSort = "name_asc"
)

// Valid reports whether s is a known sort order. The empty value is valid and
// means SortFeatured.
func (s ProductSort) Valid() bool {
	switch s {
	case "", SortFeatured, SortNewest, SortPriceAsc, SortPriceDesc, SortNameAsc:
		return true
	}
	return false
}

// ProductFilter narrows a catalog listing. Zero values mean "any".
type ProductFilter struct {
	Brand         string
	Category      string
	MinPriceCents int64
	MaxPriceCents int64
	InStockOnly   bool
	Sort          ProductSort
	Limit         int
	Offset        int
}

// MaxPageSize caps ProductFilter.Limit.
const MaxPageSize = 100
