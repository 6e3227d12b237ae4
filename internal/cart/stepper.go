package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/storefront-catalog/internal/logx"
)

// LoginPath is where visitors without an identity are sent.
const LoginPath = "/login"

// Notifier shows a one-line, non-blocking message to the visitor.
type Notifier interface {
	Notify(msg string)
}

// Redirector sends the visitor elsewhere.
type Redirector interface {
	Redirect(path string)
}

// Item is what the stepper needs to know about the product on display.
type Item struct {
	ID    int64
	Name  string
	Price decimal.Decimal
	Stock int
}

// Outcome tells the caller what AddToCart did.
type Outcome int

const (
	Added Outcome = iota
	Failed
	Redirected
	// Ignored: another add was already in flight.
	Ignored
	// Disabled: nothing in stock.
	Disabled
	// Detached: the stepper was closed before or during the call.
	Detached
)

func (o Outcome) String() string {
	switch o {
	case Added:
		return "added"
	case Failed:
		return "failed"
	case Redirected:
		return "redirected"
	case Ignored:
		return "ignored"
	case Disabled:
		return "disabled"
	case Detached:
		return "detached"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Stepper is the quantity selector and add-to-cart button of one product
// view. Quantity stays in [1, stock] and at most one AddItem call is
// outstanding at a time.
type Stepper struct {
	mu         sync.Mutex
	api        API
	item       Item
	quantity   int
	submitting bool
	closed     bool
	notify     Notifier
	redirect   Redirector
	log        zerolog.Logger
}

func NewStepper(api API, item Item, notify Notifier, redirect Redirector) *Stepper {
	return NewStepperAt(api, item, 1, notify, redirect)
}

// NewStepperAt restores a stepper whose quantity was already chosen,
// clamped to [1, stock].
func NewStepperAt(api API, item Item, quantity int, notify Notifier, redirect Redirector) *Stepper {
	return &Stepper{
		api:      api,
		item:     item,
		quantity: Clamp(quantity, item.Stock),
		notify:   notify,
		redirect: redirect,
		log:      logx.Component("cart-stepper"),
	}
}

func (s *Stepper) Quantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quantity
}

func (s *Stepper) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// Enabled reports whether the add-to-cart button accepts clicks.
func (s *Stepper) Enabled() bool { return s.item.Stock > 0 }

func (s *Stepper) Increment() int { return s.step(1) }

func (s *Stepper) Decrement() int { return s.step(-1) }

// step is a no-op when the move would leave [1, stock].
func (s *Stepper) step(delta int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.quantity + delta
	if next >= 1 && next <= s.item.Stock {
		s.quantity = next
	}
	return s.quantity
}

func (s *Stepper) Total() decimal.Decimal {
	return Total(s.item.Price, s.Quantity())
}

// AddToCart adds the current quantity to userID's cart. Without a user it
// redirects to the login page and touches nothing. Quantity is kept after
// success; failures are logged, shown once and not retried.
func (s *Stepper) AddToCart(ctx context.Context, userID string) (Outcome, error) {
	s.mu.Lock()
	switch {
	case s.closed:
		s.mu.Unlock()
		return Detached, nil
	case s.item.Stock <= 0:
		s.mu.Unlock()
		return Disabled, nil
	case userID == "":
		s.mu.Unlock()
		s.redirect.Redirect(LoginPath)
		return Redirected, nil
	case s.submitting:
		s.mu.Unlock()
		return Ignored, nil
	}
	s.submitting = true
	qty := s.quantity
	s.mu.Unlock()

	err := s.api.AddItem(ctx, userID, s.item.ID, qty)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Detached, err
	}
	s.submitting = false
	s.mu.Unlock()

	if err != nil {
		s.log.Error().Err(err).Int64("product_id", s.item.ID).Int("quantity", qty).Msg("add to cart failed")
		s.notify.Notify("Could not add to cart. Please try again.")
		return Failed, err
	}
	s.notify.Notify(AddedMessage(qty, s.item.Name))
	return Added, nil
}

// Close detaches the stepper from its view. Results that arrive later do
// not change state or notify anyone.
func (s *Stepper) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func AddedMessage(quantity int, name string) string {
	return fmt.Sprintf("%d %s(s) added to cart", quantity, name)
}
