package catalog

import (
	"net/url"
	"strings"
)

// DefaultPath is the bare catalog path.
const DefaultPath = "/products"

// Encode serialises f in the fixed order search, category, minPrice,
// maxPrice, featured, isActive. Empty values are left out and isActive is
// written only when true. CategoryID travels under the "category" key;
// shared links depend on that name.
func Encode(f Filters) string {
	pairs := [...]struct{ key, value string }{
		{"search", f.Search},
		{"category", f.CategoryID},
		{"minPrice", f.MinPrice},
		{"maxPrice", f.MaxPrice},
		{"featured", f.Featured},
		{"isActive", boolParam(f.IsActive)},
	}

	var b strings.Builder
	for _, p := range pairs {
		if p.value == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p.key)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}
	return b.String()
}

// Location returns base with f's query attached, or base alone when there
// is nothing to encode.
func Location(base string, f Filters) string {
	if base == "" {
		base = DefaultPath
	}
	q := Encode(f)
	if q == "" {
		return base
	}
	return base + "?" + q
}

func boolParam(v bool) string {
	if v {
		return "true"
	}
	return ""
}
