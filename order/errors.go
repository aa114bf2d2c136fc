package order

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCart is returned when checkout starts with zero cart lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrNoValidItems is returned when every cart line was dropped for
	// lacking a resolvable product id.
	ErrNoValidItems = errors.New("no valid items in cart")

	// ErrOrderIDMissing is returned when the gateway reports success but
	// its response carries no created order id.
	ErrOrderIDMissing = errors.New("order id missing from gateway response")
)

// MissingGuestContactError reports a mandatory guest contact field left
// empty on an unauthenticated checkout.
type MissingGuestContactError struct {
	Field string
}

func (e *MissingGuestContactError) Error() string {
	return fmt.Sprintf("guest checkout requires %s", e.Field)
}

// MissingFulfillmentFieldError reports a field required by the chosen
// fulfillment type that was left empty.
type MissingFulfillmentFieldError struct {
	Field string
}

func (e *MissingFulfillmentFieldError) Error() string {
	return fmt.Sprintf("missing required field %s for this order type", e.Field)
}
