package cart

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	calls   atomic.Int32
	err     error
	release chan struct{}
	started chan struct{}
}

func (f *fakeAPI) AddItem(ctx context.Context, userID string, productID int64, quantity int) error {
	f.calls.Add(1)
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	return f.err
}

type recorder struct {
	mu        sync.Mutex
	messages  []string
	redirects []string
}

func (r *recorder) Notify(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

func (r *recorder) Redirect(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.redirects = append(r.redirects, path)
}

func keyboard(stock int) Item {
	return Item{ID: 7, Name: "Keyboard", Price: decimal.RequireFromString("199.90"), Stock: stock}
}

func TestStepper_Bounds(t *testing.T) {
	s := NewStepper(&fakeAPI{}, keyboard(5), &recorder{}, &recorder{})

	assert.Equal(t, 1, s.Decrement(), "decrement at 1 is a no-op")
	for i := 0; i < 5; i++ {
		s.Increment()
	}
	assert.Equal(t, 5, s.Quantity())
	assert.Equal(t, 5, s.Increment(), "increment at stock is a no-op")
	assert.Equal(t, 4, s.Decrement())
}

func TestStepper_Total(t *testing.T) {
	s := NewStepper(&fakeAPI{}, keyboard(5), &recorder{}, &recorder{})
	s.Increment()
	s.Increment()

	assert.True(t, decimal.RequireFromString("599.70").Equal(s.Total()), "got %s", s.Total())
}

func TestStepper_NoUserRedirects(t *testing.T) {
	api := &fakeAPI{}
	rec := &recorder{}
	s := NewStepper(api, keyboard(5), rec, rec)

	out, err := s.AddToCart(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, Redirected, out)
	assert.Equal(t, []string{LoginPath}, rec.redirects)
	assert.Zero(t, api.calls.Load())
	assert.False(t, s.Submitting())
}

func TestStepper_OutOfStockDisabled(t *testing.T) {
	api := &fakeAPI{}
	s := NewStepper(api, keyboard(0), &recorder{}, &recorder{})

	assert.False(t, s.Enabled())
	assert.Equal(t, 1, s.Increment())
	out, _ := s.AddToCart(context.Background(), "u-1")
	assert.Equal(t, Disabled, out)
	assert.Zero(t, api.calls.Load())
}

func TestStepper_SuccessKeepsQuantity(t *testing.T) {
	api := &fakeAPI{}
	rec := &recorder{}
	s := NewStepper(api, keyboard(5), rec, rec)
	s.Increment()

	out, err := s.AddToCart(context.Background(), "u-1")
	require.NoError(t, err)

	assert.Equal(t, Added, out)
	assert.Equal(t, 2, s.Quantity())
	assert.False(t, s.Submitting())
	assert.Equal(t, []string{"2 Keyboard(s) added to cart"}, rec.messages)
}

func TestStepper_FailureNotifiesOnce(t *testing.T) {
	api := &fakeAPI{err: errors.New("backend down")}
	rec := &recorder{}
	s := NewStepper(api, keyboard(5), rec, rec)

	out, err := s.AddToCart(context.Background(), "u-1")

	assert.Equal(t, Failed, out)
	assert.EqualError(t, err, "backend down")
	assert.False(t, s.Submitting())
	assert.Len(t, rec.messages, 1)
	assert.EqualValues(t, 1, api.calls.Load(), "no automatic retry")
}

func TestStepper_DoubleSubmitSingleCall(t *testing.T) {
	api := &fakeAPI{release: make(chan struct{}), started: make(chan struct{}, 1)}
	s := NewStepper(api, keyboard(5), &recorder{}, &recorder{})

	done := make(chan Outcome, 1)
	go func() {
		out, _ := s.AddToCart(context.Background(), "u-1")
		done <- out
	}()
	<-api.started
	assert.True(t, s.Submitting())

	out, err := s.AddToCart(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, Ignored, out)

	close(api.release)
	select {
	case first := <-done:
		assert.Equal(t, Added, first)
	case <-time.After(2 * time.Second):
		t.Fatal("first add never finished")
	}
	assert.EqualValues(t, 1, api.calls.Load())
}

func TestStepper_CloseDuringFlight(t *testing.T) {
	api := &fakeAPI{release: make(chan struct{}), started: make(chan struct{}, 1)}
	rec := &recorder{}
	s := NewStepper(api, keyboard(5), rec, rec)

	done := make(chan Outcome, 1)
	go func() {
		out, _ := s.AddToCart(context.Background(), "u-1")
		done <- out
	}()
	<-api.started
	s.Close()
	close(api.release)

	assert.Equal(t, Detached, <-done)
	assert.Empty(t, rec.messages)
}

func TestClamp(t *testing.T) {
	cases := []struct{ q, stock, want int }{
		{0, 5, 1},
		{3, 5, 3},
		{9, 5, 5},
		{2, 0, 1},
		{-4, 2, 1},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Clamp(c.q, c.stock), "Clamp(%d, %d)", c.q, c.stock)
	}
}

func TestNewStepperAt_ClampsRestoredQuantity(t *testing.T) {
	item := Item{ID: 1, Name: "Mug", Stock: 3}
	assert.Equal(t, 3, NewStepperAt(&fakeAPI{}, item, 10, &recorder{}, &recorder{}).Quantity())
	assert.Equal(t, 1, NewStepperAt(&fakeAPI{}, item, 0, &recorder{}, &recorder{}).Quantity())
	assert.Equal(t, 2, NewStepperAt(&fakeAPI{}, item, 2, &recorder{}, &recorder{}).Quantity())
}
