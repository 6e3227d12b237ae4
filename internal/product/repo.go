// Package product provides the repository interface and PostgreSQL implementation for reading catalog products.
package product

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("product not found")
)

const (
	defaultLimit = 100
	maxLimit     = 500
)

type Repository interface {
	List(ctx context.Context, q Query) ([]Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const selectColumns = `
	SELECT p.id, p.name, COALESCE(p.description, ''), p.price::text, p.rating::text,
	       COALESCE(p.image_url, ''), p.stock, p.featured, p.is_active,
	       c.id, c.name, c.slug, p.created_at, p.updated_at
	FROM products p
	JOIN categories c ON c.id = p.category_id
`

func (r *PGRepo) List(ctx context.Context, q Query) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	limit := q.Limit
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	// A category id that does not exist is ignored rather than matching
	// nothing, so stale shared links still show the unfiltered catalog.
	rows, err := r.db.Query(ctx, selectColumns+`
		WHERE ($1 = '' OR p.name ILIKE '%'||$1||'%' OR p.description ILIKE '%'||$1||'%')
		  AND ($2::bigint IS NULL OR p.category_id = $2
		       OR NOT EXISTS (SELECT 1 FROM categories WHERE id = $2))
		  AND ($3::numeric IS NULL OR p.price >= $3::numeric)
		  AND ($4::numeric IS NULL OR p.price <= $4::numeric)
		  AND ($5::boolean IS NULL OR p.featured = $5)
		  AND (NOT $6::boolean OR p.is_active)
		ORDER BY p.created_at DESC
		LIMIT $7 OFFSET $8
	`, q.Search, q.CategoryID, numericArg(q.MinPrice), numericArg(q.MaxPrice), q.Featured, q.ActiveOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetByID(ctx context.Context, id int64) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.QueryRow(ctx, selectColumns+`WHERE p.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Rating,
		&p.ImageURL, &p.Stock, &p.Featured, &p.IsActive,
		&p.CategoryID, &p.CategoryName, &p.CategorySlug, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// numericArg sends decimals as text so PostgreSQL parses them as NUMERIC.
func numericArg(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}
