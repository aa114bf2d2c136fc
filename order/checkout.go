package order

import (
	"context"
	"fmt"

	"github.com/wicaksana/kedai/cart"
	"github.com/wicaksana/kedai/models"
)

// Gateway is the external order persistence boundary. Submit returns the
// created order id on success.
type Gateway interface {
	Submit(ctx context.Context, sub models.OrderSubmission) (int64, error)
}

// CheckoutService composes a submission and drives it through the gateway.
// The cart is cleared only once the gateway confirmed an order id; on any
// failure it stays intact so checkout can be retried without re-adding
// items. Retrying is the caller's decision, never done here.
type CheckoutService struct {
	composer *Composer
	gateway  Gateway
}

func NewCheckoutService(composer *Composer, gateway Gateway) *CheckoutService {
	return &CheckoutService{composer: composer, gateway: gateway}
}

// Checkout runs one checkout attempt and returns the created order id.
func (s *CheckoutService) Checkout(ctx context.Context, c *cart.Cart, co Checkout) (int64, error) {
	sub, err := s.composer.Compose(c, co)
	if err != nil {
		return 0, err
	}

	orderID, err := s.gateway.Submit(ctx, sub)
	if err != nil {
		return 0, fmt.Errorf("submit order: %w", err)
	}
	if orderID <= 0 {
		return 0, ErrOrderIDMissing
	}

	c.Clear()
	return orderID, nil
}
