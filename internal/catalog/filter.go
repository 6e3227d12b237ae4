// Package catalog holds the storefront catalog model: the filter record
// shared through URLs, its query-string encoding, the synchronizer that
// keeps the two in step, and the service that loads a filtered catalog page.
package catalog

import "net/url"

// Filters is the catalog search intent as it travels through URLs. Every
// field is always set; "no filter" is the empty string (or false). Numeric
// and boolean coercion happens later in ParseQuery, never here.
type Filters struct {
	Search     string `json:"search"`
	CategoryID string `json:"categoryId"`
	MinPrice   string `json:"minPrice"`
	MaxPrice   string `json:"maxPrice"`
	Featured   string `json:"featured"`
	IsActive   bool   `json:"isActive"`
}

// Field names a single filter for one-field edits.
type Field string

const (
	FieldSearch   Field = "search"
	FieldCategory Field = "categoryId"
	FieldMinPrice Field = "minPrice"
	FieldMaxPrice Field = "maxPrice"
	FieldFeatured Field = "featured"
	FieldIsActive Field = "isActive"
)

// Derive reads the recognised keys from params. A non-empty initialSearch
// wins over the URL's search key. Unknown keys are ignored and nothing here
// can fail.
func Derive(params url.Values, initialSearch string) Filters {
	search := initialSearch
	if search == "" {
		search = params.Get("search")
	}
	category := params.Get("category")
	if category == "" {
		category = params.Get("categoryId")
	}
	return Filters{
		Search:     search,
		CategoryID: category,
		MinPrice:   params.Get("minPrice"),
		MaxPrice:   params.Get("maxPrice"),
		Featured:   params.Get("featured"),
		IsActive:   params.Get("isActive") == "true",
	}
}

// With returns a copy of f with one field replaced. Edits replace the whole
// value; isActive is set only by the literal "true".
func (f Filters) With(field Field, value string) (Filters, bool) {
	switch field {
	case FieldSearch:
		f.Search = value
	case FieldCategory:
		f.CategoryID = value
	case FieldMinPrice:
		f.MinPrice = value
	case FieldMaxPrice:
		f.MaxPrice = value
	case FieldFeatured:
		f.Featured = value
	case FieldIsActive:
		f.IsActive = value == "true"
	default:
		return f, false
	}
	return f, true
}

func (f Filters) IsZero() bool { return f == Filters{} }
