package sqldb

import (
	"context"
	"strings"

	"github.com/aussiebroadwan/laced/internal/laced/domain"
)

type productsRepo struct {
	db DBTX
	d  Dialect
}

const productColumns = `id, name, brand, category, price_cents, description, image_url, in_stock, created_at, updated_at`

func scanProduct(row rowScanner) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Brand, &p.Category, &p.PriceCents,
		&p.Description, &p.ImageURL, &p.InStock,
		timestamp{&p.CreatedAt}, timestamp{&p.UpdatedAt})
	if err != nil {
		return domain.Product{}, mapNotFound(err)
	}
	return p, nil
}

func (r *productsRepo) CreateProduct(ctx context.Context, p domain.Product) error {
	_, err := r.db.ExecContext(ctx, r.d.Rebind(
		`INSERT INTO products (`+productColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		p.ID, p.Name, p.Brand, p.Category, p.PriceCents, p.Description, p.ImageURL, p.InStock,
		r.d.Timestamp(p.CreatedAt), r.d.Timestamp(p.UpdatedAt),
	)
	return mapInsert(r.d, err)
}

func (r *productsRepo) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	return scanProduct(r.db.QueryRowContext(ctx, r.d.Rebind(
		`SELECT `+productColumns+` FROM products WHERE id = ?`), id))
}

var productOrder = map[domain.ProductSort]string{
	"":                   "created_at ASC, id ASC",
	domain.SortFeatured:  "created_at ASC, id ASC",
	domain.SortNewest:    "created_at DESC, id DESC",
	domain.SortPriceAsc:  "price_cents ASC, created_at ASC, id ASC",
	domain.SortPriceDesc: "price_cents DESC, created_at ASC, id ASC",
	domain.SortNameAsc:   "name ASC, id ASC",
}

func (r *productsRepo) ListProducts(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int, error) {
	var where []string
	var args []any
	if f.Brand != "" {
		where = append(where, "LOWER(brand) = LOWER(?)")
		args = append(args, f.Brand)
	}
	if f.Category != "" {
		where = append(where, "LOWER(category) = LOWER(?)")
		args = append(args, f.Category)
	}
	if f.MinPriceCents > 0 {
		where = append(where, "price_cents >= ?")
		args = append(args, f.MinPriceCents)
	}
	if f.MaxPriceCents > 0 {
		where = append(where, "price_cents <= ?")
		args = append(args, f.MaxPriceCents)
	}
	if f.InStockOnly {
		where = append(where, "in_stock > 0")
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, r.d.Rebind(`SELECT COUNT(*) FROM products`+clause), args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order, ok := productOrder[f.Sort]
	if !ok {
		order = productOrder[domain.SortFeatured]
	}
	query := `SELECT ` + productColumns + ` FROM products` + clause + ` ORDER BY ` + order
	if f.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, f.Limit, max(f.Offset, 0))
	}

	rows, err := r.db.QueryContext(ctx, r.d.Rebind(query), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productsRepo) IsEmpty(ctx context.Context) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return false, err
	}
	return n == 0, nil
}
