// Package cart owns cart writes: the persistence behind them, the gRPC
// service and client that carry them, and the detail-page quantity stepper.
package cart

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidItem       = errors.New("invalid cart item")
)

// API adds a row to a user's cart.
type API interface {
	AddItem(ctx context.Context, userID string, productID int64, quantity int) error
}

// Clamp bounds q to [1, stock]. With no stock the result is 1.
func Clamp(q, stock int) int {
	if q > stock {
		q = stock
	}
	if q < 1 {
		q = 1
	}
	return q
}

// Total is price × quantity without float rounding.
func Total(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

func validate(userID string, productID int64, quantity int) error {
	if userID == "" || productID <= 0 || quantity < 1 {
		return ErrInvalidItem
	}
	return nil
}
