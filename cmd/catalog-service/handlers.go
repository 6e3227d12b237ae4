package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/storefront-catalog/internal/cart"
	"github.com/MikeMC777/storefront-catalog/internal/catalog"
	"github.com/MikeMC777/storefront-catalog/internal/category"
	"github.com/MikeMC777/storefront-catalog/internal/errx"
	"github.com/MikeMC777/storefront-catalog/internal/httpx"
	"github.com/MikeMC777/storefront-catalog/internal/logx"
	"github.com/MikeMC777/storefront-catalog/internal/product"
)

// skeletonCards is the number of placeholder cards shown while a catalog
// page loads.
const skeletonCards = 8

type CatalogPage struct {
	Filters    catalog.Filters     `json:"filters"`
	Location   string              `json:"location"`
	Products   []catalog.Summary   `json:"products"`
	Categories []category.Category `json:"categories"`
	Count      int                 `json:"count"`
}

type FilterRequest struct {
	Filters catalog.Filters `json:"filters"`
	Field   catalog.Field   `json:"field,omitempty"`
	Value   string          `json:"value,omitempty"`
}

type FilterResponse struct {
	Filters  catalog.Filters `json:"filters"`
	Location string          `json:"location"`
	Refresh  bool            `json:"refresh"`
}

type AddItemRequest struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity"`
}

type AddItemResponse struct {
	Message  string `json:"message"`
	Quantity int    `json:"quantity"`
}

func abortWith(c *gin.Context, err error) {
	code, msg := errx.StatusOf(err)
	if code >= http.StatusInternalServerError {
		logx.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	c.AbortWithStatusJSON(code, product.HTTPError{Error: msg})
}

// catalogPageHandler godoc
// @Summary List catalog products
// @Tags    catalog
// @Produce json
// @Success 200 {object} CatalogPage
// @Failure 502 {object} product.HTTPError
// @Router  /products [get]
func catalogPageHandler(svc *catalog.Service, base string) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := catalog.Derive(c.Request.URL.Query(), "")
		res, err := svc.Fetch(c.Request.Context(), f)
		if err != nil {
			abortWith(c, errx.Upstream(err, "could not load the catalog"))
			return
		}
		c.JSON(http.StatusOK, CatalogPage{
			Filters:    f,
			Location:   catalog.Location(base, f),
			Products:   res.Products,
			Categories: res.Categories,
			Count:      len(res.Products),
		})
	}
}

// navRecorder is the Navigator and Refresher of one HTTP exchange: the
// browser performs the navigation, so the handler only reports it.
type navRecorder struct {
	location string
	opts     catalog.NavOptions
	refresh  bool
}

func (n *navRecorder) Navigate(_ context.Context, loc string, opts catalog.NavOptions) error {
	n.location, n.opts = loc, opts
	return nil
}

func (n *navRecorder) Refresh(context.Context) error {
	n.refresh = true
	return nil
}

// commitFiltersHandler godoc
// @Summary Commit filters and get the canonical catalog location
// @Tags    catalog
// @Accept  json
// @Produce json
// @Param   body body FilterRequest true "filters"
// @Success 200 {object} FilterResponse
// @Router  /products/filters [post]
func commitFiltersHandler(base string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req FilterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWith(c, errx.BadRequest("invalid json"))
			return
		}
		rec := &navRecorder{}
		s := catalog.NewSynchronizerFrom(base, rec, rec, req.Filters)
		var (
			loc string
			err error
		)
		if req.Field != "" {
			loc, err = s.Set(c.Request.Context(), req.Field, req.Value)
		} else {
			loc, err = s.Commit(c.Request.Context(), req.Filters)
		}
		var unknown *catalog.UnknownFieldError
		if errors.As(err, &unknown) {
			abortWith(c, errx.BadRequest(unknown.Error()))
			return
		}
		if err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(http.StatusOK, FilterResponse{Filters: s.Filters(), Location: loc, Refresh: rec.refresh})
	}
}

// clearFiltersHandler godoc
// @Summary Clear every filter
// @Tags    catalog
// @Produce json
// @Success 200 {object} FilterResponse
// @Router  /products/filters [delete]
func clearFiltersHandler(base string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec := &navRecorder{}
		s := catalog.NewSynchronizerFrom(base, rec, rec, catalog.Filters{})
		loc, err := s.Clear(c.Request.Context())
		if err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(http.StatusOK, FilterResponse{Filters: s.Filters(), Location: loc, Refresh: rec.refresh})
	}
}

// toggleSearchHandler answers the search box button: with text it clears the
// search, without text it only asks for a refresh.
func toggleSearchHandler(base string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req FilterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWith(c, errx.BadRequest("invalid json"))
			return
		}
		rec := &navRecorder{}
		s := catalog.NewSynchronizerFrom(base, rec, rec, req.Filters)
		loc, _, err := s.ToggleSearch(c.Request.Context())
		if err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(http.StatusOK, FilterResponse{Filters: s.Filters(), Location: loc, Refresh: rec.refresh})
	}
}

// productDetailHandler godoc
// @Summary Product detail with gallery and total
// @Tags    catalog
// @Produce json
// @Param   id       path  int true  "product id"
// @Param   quantity query int false "selected quantity"
// @Success 200 {object} catalog.Detail
// @Failure 404 {object} product.HTTPError
// @Router  /products/{id} [get]
func productDetailHandler(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id <= 0 {
			abortWith(c, errx.NotFound(err, "not found"))
			return
		}
		qty := 1
		if raw := c.Query("quantity"); raw != "" {
			if qty, err = strconv.Atoi(raw); err != nil {
				abortWith(c, errx.BadRequest("invalid quantity"))
				return
			}
		}
		d, err := svc.Detail(c.Request.Context(), id, qty)
		switch {
		case errors.Is(err, product.ErrNotFound):
			abortWith(c, errx.NotFound(err, "not found"))
			return
		case err != nil:
			abortWith(c, errx.Upstream(err, "could not load the product"))
			return
		}
		c.JSON(http.StatusOK, d)
	}
}

func skeletonHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cards": skeletonCards})
}

// exchange is the Notifier and Redirector of one add-to-cart request.
type exchange struct {
	message  string
	redirect string
}

func (e *exchange) Notify(msg string)     { e.message = msg }
func (e *exchange) Redirect(path string) { e.redirect = path }

// inflight tracks add-to-cart calls still waiting on the cart service, one
// per user and product, for the lifetime of the router.
type inflight struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func newInflight() *inflight {
	return &inflight{keys: make(map[string]struct{})}
}

func (f *inflight) begin(userID string, productID int64) (done func(), ok bool) {
	key := userID + ":" + strconv.FormatInt(productID, 10)
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, busy := f.keys[key]; busy {
		return nil, false
	}
	f.keys[key] = struct{}{}
	return func() {
		f.mu.Lock()
		delete(f.keys, key)
		f.mu.Unlock()
	}, true
}

// addToCartHandler godoc
// @Summary Add a product to the visitor's cart
// @Tags    cart
// @Accept  json
// @Produce json
// @Param   body body AddItemRequest true "item"
// @Success 201 {object} AddItemResponse
// @Failure 409 {object} product.HTTPError
// @Failure 502 {object} product.HTTPError
// @Router  /cart/items [post]
func addToCartHandler(products product.Repository, api cart.API, flights *inflight) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWith(c, errx.BadRequest("invalid json"))
			return
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}
		ctx := c.Request.Context()
		p, err := products.GetByID(ctx, req.ProductID)
		switch {
		case errors.Is(err, product.ErrNotFound):
			abortWith(c, errx.NotFound(err, "not found"))
			return
		case err != nil:
			abortWith(c, errx.Upstream(err, "could not load the product"))
			return
		}
		if p.Stock > 0 && (req.Quantity < 1 || req.Quantity > p.Stock) {
			abortWith(c, errx.BadRequest("quantity must be between 1 and "+strconv.Itoa(p.Stock)))
			return
		}

		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			abortWith(c, errx.Upstream(err, "could not load the product"))
			return
		}
		ex := &exchange{}
		st := cart.NewStepperAt(api, cart.Item{ID: p.ID, Name: p.Name, Price: price, Stock: p.Stock}, req.Quantity, ex, ex)
		defer st.Close()

		// Only calls that reach the cart service take an in-flight slot; an
		// overlapping one for the same user and product stays Ignored.
		userID := httpx.UserID(c)
		outcome := cart.Ignored
		if userID == "" || p.Stock <= 0 {
			outcome, err = st.AddToCart(ctx, userID)
		} else if done, ok := flights.begin(userID, p.ID); ok {
			func() {
				defer done()
				outcome, err = st.AddToCart(ctx, userID)
			}()
		}
		switch outcome {
		case cart.Added:
			c.JSON(http.StatusCreated, AddItemResponse{Message: ex.message, Quantity: st.Quantity()})
		case cart.Redirected:
			c.Header("Location", ex.redirect)
			c.JSON(http.StatusSeeOther, gin.H{"redirect": ex.redirect})
		case cart.Disabled:
			abortWith(c, errx.Conflict(nil, "out of stock"))
		case cart.Failed:
			abortWith(c, cartFailure(err, ex.message))
		default:
			abortWith(c, errx.Conflict(err, "request already in progress"))
		}
	}
}

func cartFailure(err error, message string) error {
	switch {
	case errors.Is(err, cart.ErrInsufficientStock):
		return errx.Conflict(err, message)
	case errors.Is(err, cart.ErrProductNotFound):
		return errx.NotFound(err, message)
	}
	return errx.Upstream(err, message)
}
