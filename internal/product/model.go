package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// NUMERIC columns travel as text so no precision is lost before the
	// catalog layer converts them.
	Price        string    `json:"price"`
	Rating       *string   `json:"rating,omitempty"`
	ImageURL     string    `json:"image_url"`
	Stock        int       `json:"stock"`
	Featured     bool      `json:"featured"`
	IsActive     bool      `json:"is_active"`
	CategoryID   int64     `json:"category_id"`
	CategoryName string    `json:"category_name"`
	CategorySlug string    `json:"category_slug"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Query is the typed product filter. Nil pointers mean "no filter on this
// column"; the zero Query lists every product.
type Query struct {
	Search     string
	CategoryID *int64
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Featured   *bool
	ActiveOnly bool
	Limit      int
	Offset     int
}

// HTTPError represents a standard error in JSON.
// swagger:model
type HTTPError struct {
	// Error message
	// example: not found
	Error string `json:"error"`
}
