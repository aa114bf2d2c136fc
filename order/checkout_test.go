package order

import (
	"context"
	"errors"
	"testing"

	"github.com/wicaksana/kedai/models"
	"github.com/wicaksana/kedai/pricing"
)

type fakeGateway struct {
	orderID int64
	err     error
	calls   int
	last    models.OrderSubmission
}

func (g *fakeGateway) Submit(ctx context.Context, sub models.OrderSubmission) (int64, error) {
	g.calls++
	g.last = sub
	return g.orderID, g.err
}

func TestCheckoutSuccessClearsCart(t *testing.T) {
	gw := &fakeGateway{orderID: 42}
	svc := NewCheckoutService(NewComposer(pricing.DefaultConfig()), gw)
	c := filledCart(t)

	orderID, err := svc.Checkout(context.Background(), c, guestCheckout())
	if err != nil {
		t.Fatalf("Checkout() error: %v", err)
	}
	if orderID != 42 {
		t.Errorf("order id = %d, want 42", orderID)
	}
	if c.ItemCount() != 0 {
		t.Errorf("cart not cleared after confirmed order, count = %d", c.ItemCount())
	}
}

func TestCheckoutGatewayFailureKeepsCart(t *testing.T) {
	cause := errors.New("connection refused")
	gw := &fakeGateway{err: cause}
	svc := NewCheckoutService(NewComposer(pricing.DefaultConfig()), gw)
	c := filledCart(t)

	_, err := svc.Checkout(context.Background(), c, guestCheckout())
	if !errors.Is(err, cause) {
		t.Errorf("error = %v, want wrapped %v", err, cause)
	}
	if c.ItemCount() != 3 {
		t.Errorf("cart must stay intact for retry, count = %d", c.ItemCount())
	}
}

func TestCheckoutMissingOrderID(t *testing.T) {
	gw := &fakeGateway{orderID: 0}
	svc := NewCheckoutService(NewComposer(pricing.DefaultConfig()), gw)
	c := filledCart(t)

	_, err := svc.Checkout(context.Background(), c, guestCheckout())
	if !errors.Is(err, ErrOrderIDMissing) {
		t.Errorf("error = %v, want ErrOrderIDMissing", err)
	}
	if c.ItemCount() != 3 {
		t.Errorf("cart must stay intact, count = %d", c.ItemCount())
	}
}

func TestCheckoutValidationSkipsGateway(t *testing.T) {
	gw := &fakeGateway{orderID: 42}
	svc := NewCheckoutService(NewComposer(pricing.DefaultConfig()), gw)

	co := guestCheckout()
	co.GuestName = ""

	if _, err := svc.Checkout(context.Background(), filledCart(t), co); err == nil {
		t.Fatal("expected validation error")
	}
	if gw.calls != 0 {
		t.Errorf("gateway called %d times on validation failure, want 0", gw.calls)
	}
}

func TestCheckoutRetryAfterFailure(t *testing.T) {
	gw := &fakeGateway{err: errors.New("timeout")}
	svc := NewCheckoutService(NewComposer(pricing.DefaultConfig()), gw)
	c := filledCart(t)

	if _, err := svc.Checkout(context.Background(), c, guestCheckout()); err == nil {
		t.Fatal("expected gateway error")
	}

	gw.err = nil
	gw.orderID = 7

	orderID, err := svc.Checkout(context.Background(), c, guestCheckout())
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if orderID != 7 {
		t.Errorf("order id = %d, want 7", orderID)
	}
	if gw.calls != 2 {
		t.Errorf("gateway calls = %d, want 2", gw.calls)
	}
	if c.ItemCount() != 0 {
		t.Errorf("cart not cleared after successful retry, count = %d", c.ItemCount())
	}
}
