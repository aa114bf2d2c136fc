// Package pricing holds all price computation for the ordering core. It is
// pure: no I/O, no state beyond the Config passed in. Tax rate and delivery
// fee live here and nowhere else.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/wicaksana/kedai/models"
)

// Config carries the charge parameters applied on top of a cart subtotal.
type Config struct {
	// TaxRate is a fraction of the subtotal, e.g. 0.10 for 10%.
	TaxRate decimal.Decimal
	// DeliveryFee is a flat fee charged on delivery orders only.
	DeliveryFee decimal.Decimal
}

// DefaultConfig returns the standard 10% tax and flat 5000 delivery fee.
func DefaultConfig() Config {
	return Config{
		TaxRate:     decimal.New(10, -2),
		DeliveryFee: decimal.NewFromInt(5000),
	}
}

// Charges is the derived breakdown on top of a subtotal.
type Charges struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	Tax         decimal.Decimal `json:"tax"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
}

// UnitPrice returns the item's base price plus the price delta of every
// selected option. Group or option ids in selections that do not exist on
// the item are ignored, so stale selection data never fails a price lookup.
// The result is clamped to zero.
func UnitPrice(item models.MenuItem, selections models.Selections) decimal.Decimal {
	price := item.Price
	for groupID, optionIDs := range selections {
		group, ok := item.Group(groupID)
		if !ok {
			continue
		}
		for _, optionID := range optionIDs {
			option, ok := group.Option(optionID)
			if !ok {
				continue
			}
			price = price.Add(option.Price)
		}
	}
	if price.IsNegative() {
		return decimal.Zero
	}
	return price
}

// LineTotal is the unit price multiplied by quantity. Quantity must already
// be validated positive by the caller.
func LineTotal(item models.MenuItem, selections models.Selections, quantity int) decimal.Decimal {
	return UnitPrice(item, selections).Mul(decimal.NewFromInt(int64(quantity)))
}

// Subtotal sums already-computed line totals.
func Subtotal(lineTotals []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range lineTotals {
		sum = sum.Add(t)
	}
	return sum
}

// DeriveCharges computes tax, delivery fee and grand total for a subtotal.
// The delivery fee applies only to delivery orders. Rounding to two decimal
// places happens here, at the aggregate step, never per modifier.
func (c Config) DeriveCharges(subtotal decimal.Decimal, orderType models.OrderType) Charges {
	tax := subtotal.Mul(c.TaxRate).Round(2)
	fee := decimal.Zero
	if orderType == models.OrderDelivery {
		fee = c.DeliveryFee
	}
	return Charges{
		Subtotal:    subtotal,
		Tax:         tax,
		DeliveryFee: fee,
		GrandTotal:  subtotal.Add(tax).Add(fee),
	}
}
