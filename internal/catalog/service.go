package catalog

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/MikeMC777/storefront-catalog/internal/cart"
	"github.com/MikeMC777/storefront-catalog/internal/category"
	"github.com/MikeMC777/storefront-catalog/internal/logx"
	"github.com/MikeMC777/storefront-catalog/internal/product"
)

const (
	// FallbackImage is shown for products without an image.
	FallbackImage = "/images/img_not_found.jpg"
	// GallerySize is the number of slots in the detail gallery.
	GallerySize = 4
)

// Summary is the catalog card projection of a product. Prices are plain
// numbers here; the NUMERIC text from the store never reaches callers.
type Summary struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	Rating       *float64 `json:"rating"`
	ImageURL     string   `json:"imageUrl"`
	Stock        int      `json:"stock"`
	Featured     bool     `json:"featured"`
	CategoryName string   `json:"categoryName"`
}

type Detail struct {
	Summary
	Category category.Category `json:"category"`
	Images   []string          `json:"images"`
	InStock  bool              `json:"inStock"`
	Quantity int               `json:"quantity"`
	Total    float64           `json:"total"`
}

type Result struct {
	Products   []Summary
	Categories []category.Category
}

// Service loads catalog data for a Filters record.
type Service struct {
	products   product.Repository
	categories category.Repository
	log        zerolog.Logger
}

func NewService(products product.Repository, categories category.Repository) *Service {
	return &Service{products: products, categories: categories, log: logx.Component("catalog")}
}

// Fetch loads the filtered products and all categories concurrently. Either
// failure fails the whole call; there is no partial result and no retry.
func (s *Service) Fetch(ctx context.Context, f Filters) (Result, error) {
	q := ParseQuery(f)

	var (
		raw  []product.Product
		cats []category.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		raw, err = s.products.List(gctx, q)
		if err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		cats, err = s.categories.List(gctx)
		if err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	out := make([]Summary, 0, len(raw))
	for _, p := range raw {
		sum, _, err := summarize(p)
		if err != nil {
			return Result{}, err
		}
		out = append(out, sum)
	}
	s.log.Debug().Int("products", len(out)).Int("categories", len(cats)).Msg("catalog fetched")
	return Result{Products: out, Categories: cats}, nil
}

// Detail loads one product with its gallery and the total for quantity,
// clamped to [1, stock].
func (s *Service) Detail(ctx context.Context, id int64, quantity int) (Detail, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	sum, price, err := summarize(*p)
	if err != nil {
		return Detail{}, err
	}
	qty := cart.Clamp(quantity, p.Stock)
	return Detail{
		Summary:  sum,
		Category: category.Category{ID: p.CategoryID, Name: p.CategoryName, Slug: p.CategorySlug},
		Images:   Gallery(p.ImageURL),
		InStock:  p.Stock > 0,
		Quantity: qty,
		Total:    cart.Total(price, qty).InexactFloat64(),
	}, nil
}

// Gallery returns the detail image slots: the product image first, the
// fallback everywhere else.
func Gallery(imageURL string) []string {
	images := make([]string, GallerySize)
	for i := range images {
		images[i] = FallbackImage
	}
	if imageURL != "" {
		images[0] = imageURL
	}
	return images
}

// summarize also returns the exact price for callers that do arithmetic.
func summarize(p product.Product) (Summary, decimal.Decimal, error) {
	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		return Summary{}, decimal.Decimal{}, fmt.Errorf("product %d: bad price %q: %w", p.ID, p.Price, err)
	}
	var rating *float64
	if p.Rating != nil {
		r, err := decimal.NewFromString(*p.Rating)
		if err != nil {
			return Summary{}, decimal.Decimal{}, fmt.Errorf("product %d: bad rating %q: %w", p.ID, *p.Rating, err)
		}
		v := r.InexactFloat64()
		rating = &v
	}
	img := p.ImageURL
	if img == "" {
		img = FallbackImage
	}
	return Summary{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        price.InexactFloat64(),
		Rating:       rating,
		ImageURL:     img,
		Stock:        p.Stock,
		Featured:     p.Featured,
		CategoryName: p.CategoryName,
	}, price, nil
}
