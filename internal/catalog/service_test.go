package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/storefront-catalog/internal/category"
	"github.com/MikeMC777/storefront-catalog/internal/product"
)

type stubProducts struct {
	items     []product.Product
	err       error
	lastQuery product.Query
}

func (s *stubProducts) List(_ context.Context, q product.Query) ([]product.Product, error) {
	s.lastQuery = q
	return s.items, s.err
}

func (s *stubProducts) GetByID(_ context.Context, id int64) (*product.Product, error) {
	for _, p := range s.items {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, product.ErrNotFound
}

type stubCategories struct {
	cats []category.Category
	err  error
}

func (s *stubCategories) List(context.Context) ([]category.Category, error) {
	return s.cats, s.err
}

func strPtr(s string) *string { return &s }

func TestService_Fetch(t *testing.T) {
	products := &stubProducts{items: []product.Product{
		{ID: 1, Name: "Lamp", Price: "49.90", Rating: strPtr("4.50"), Stock: 3, Featured: true, CategoryName: "Home"},
		{ID: 2, Name: "Desk", Price: "120.00", ImageURL: "/img/desk.jpg", Stock: 0, CategoryName: "Office"},
	}}
	cats := &stubCategories{cats: []category.Category{{ID: 3, Name: "Home", Slug: "home"}}}
	svc := NewService(products, cats)

	res, err := svc.Fetch(context.Background(), Filters{CategoryID: "3", Featured: "true"})
	require.NoError(t, err)

	require.NotNil(t, products.lastQuery.CategoryID)
	assert.EqualValues(t, 3, *products.lastQuery.CategoryID)
	require.NotNil(t, products.lastQuery.Featured)
	assert.True(t, *products.lastQuery.Featured)

	require.Len(t, res.Products, 2)
	assert.InDelta(t, 49.90, res.Products[0].Price, 1e-9)
	require.NotNil(t, res.Products[0].Rating)
	assert.InDelta(t, 4.5, *res.Products[0].Rating, 1e-9)
	assert.Equal(t, FallbackImage, res.Products[0].ImageURL)
	assert.Equal(t, "/img/desk.jpg", res.Products[1].ImageURL)
	assert.Nil(t, res.Products[1].Rating)
	assert.Equal(t, cats.cats, res.Categories)
}

func TestService_FetchMalformedMinPrice(t *testing.T) {
	products := &stubProducts{}
	svc := NewService(products, &stubCategories{})

	_, err := svc.Fetch(context.Background(), Filters{MinPrice: "abc"})
	require.NoError(t, err)
	assert.Nil(t, products.lastQuery.MinPrice)
}

func TestService_FetchFailsWhole(t *testing.T) {
	okProducts := &stubProducts{items: []product.Product{{ID: 1, Price: "1.00"}}}
	okCats := &stubCategories{cats: []category.Category{{ID: 1}}}

	_, err := NewService(okProducts, &stubCategories{err: errors.New("categories down")}).
		Fetch(context.Background(), Filters{})
	assert.ErrorContains(t, err, "list categories")

	res, err := NewService(&stubProducts{err: errors.New("products down")}, okCats).
		Fetch(context.Background(), Filters{})
	assert.ErrorContains(t, err, "list products")
	assert.Empty(t, res.Products)
	assert.Empty(t, res.Categories)
}

func TestService_Detail(t *testing.T) {
	products := &stubProducts{items: []product.Product{
		{ID: 9, Name: "Chair", Price: "19.99", Stock: 4, CategoryID: 2, CategoryName: "Office", CategorySlug: "office"},
	}}
	svc := NewService(products, &stubCategories{})

	d, err := svc.Detail(context.Background(), 9, 10)
	require.NoError(t, err)

	assert.Equal(t, 4, d.Quantity)
	assert.InDelta(t, 79.96, d.Total, 1e-9)
	assert.True(t, d.InStock)
	assert.Equal(t, category.Category{ID: 2, Name: "Office", Slug: "office"}, d.Category)
	assert.Equal(t, []string{FallbackImage, FallbackImage, FallbackImage, FallbackImage}, d.Images)

	_, err = svc.Detail(context.Background(), 404, 1)
	assert.ErrorIs(t, err, product.ErrNotFound)
}

func TestService_DetailBadPrice(t *testing.T) {
	products := &stubProducts{items: []product.Product{{ID: 5, Name: "Broken", Price: "n/a", Stock: 2}}}
	svc := NewService(products, &stubCategories{})

	_, err := svc.Detail(context.Background(), 5, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad price")
}

func TestGallery(t *testing.T) {
	g := Gallery("/img/a.jpg")
	assert.Len(t, g, GallerySize)
	assert.Equal(t, "/img/a.jpg", g[0])
	assert.Equal(t, FallbackImage, g[3])
}
