package catalog

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/storefront-catalog/internal/product"
)

// ParseQuery is the one place where URL strings become typed filters.
// Anything that does not parse is treated as "no filter"; nothing here
// returns an error.
func ParseQuery(f Filters) product.Query {
	q := product.Query{
		Search:     strings.TrimSpace(f.Search),
		CategoryID: parseID(f.CategoryID),
		MinPrice:   parsePrice(f.MinPrice),
		MaxPrice:   parsePrice(f.MaxPrice),
		Featured:   parseTriState(f.Featured),
		ActiveOnly: f.IsActive,
	}
	if q.MinPrice != nil && q.MaxPrice != nil && q.MinPrice.GreaterThan(*q.MaxPrice) {
		q.MinPrice, q.MaxPrice = q.MaxPrice, q.MinPrice
	}
	return q
}

func parseID(s string) *int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}

func parsePrice(s string) *decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return nil
	}
	return &d
}

func parseTriState(s string) *bool {
	var v bool
	switch s {
	case "true":
		v = true
	case "false":
		v = false
	default:
		return nil
	}
	return &v
}
