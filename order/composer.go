// Package order turns a cart plus checkout context into a validated order
// submission and drives it through the gateway.
package order

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wicaksana/kedai/cart"
	"github.com/wicaksana/kedai/models"
	"github.com/wicaksana/kedai/pricing"
)

// Checkout is the order context collected at checkout time. User is the
// authenticated identity, nil for guests. When both User and guest fields
// are present the authenticated values win silently.
type Checkout struct {
	OrderType       models.OrderType
	TableNo         string
	DeliveryAddress string
	Notes           string
	PaymentMethod   models.PaymentMethod
	GuestName       string
	GuestPhone      string
	GuestEmail      string
	User            *models.Identity
}

// Composer builds order submissions. It is a pure transformation: all
// monetary fields on the result come from its own recomputation, never from
// anything the client sent.
type Composer struct {
	Pricing pricing.Config
}

func NewComposer(cfg pricing.Config) *Composer {
	return &Composer{Pricing: cfg}
}

// Compose validates the cart and checkout context and emits a submission.
//
// Steps: reject an empty cart, drop lines without a resolvable product id,
// resolve the customer identity, validate fulfillment-specific fields, then
// recompute authoritative charges from the surviving lines.
func (cp *Composer) Compose(c *cart.Cart, co Checkout) (models.OrderSubmission, error) {
	lines := c.Lines()
	if len(lines) == 0 {
		return models.OrderSubmission{}, ErrEmptyCart
	}

	items := make([]models.SubmissionItem, 0, len(lines))
	lineTotals := make([]decimal.Decimal, 0, len(lines))
	for _, line := range lines {
		if line.Item.ID <= 0 {
			continue
		}
		items = append(items, models.SubmissionItem{
			ProductID: line.Item.ID,
			Quantity:  line.Quantity,
			Price:     pricing.UnitPrice(line.Item, line.Selections),
			Modifiers: flattenSelections(line.Selections),
		})
		lineTotals = append(lineTotals, line.Total)
	}
	if len(items) == 0 {
		return models.OrderSubmission{}, ErrNoValidItems
	}

	sub := models.OrderSubmission{
		Items:         items,
		OrderType:     co.OrderType,
		CustomerNotes: co.Notes,
		PaymentMethod: co.PaymentMethod,
	}

	if co.User != nil {
		id := co.User.ID
		sub.UserID = &id
		sub.CustomerName = co.User.Name
		sub.CustomerPhone = co.User.Phone
		sub.CustomerEmail = co.User.Email
	} else {
		if strings.TrimSpace(co.GuestName) == "" {
			return models.OrderSubmission{}, &MissingGuestContactError{Field: "name"}
		}
		if strings.TrimSpace(co.GuestPhone) == "" {
			return models.OrderSubmission{}, &MissingGuestContactError{Field: "phone"}
		}
		sub.CustomerName = co.GuestName
		sub.CustomerPhone = co.GuestPhone
		sub.CustomerEmail = co.GuestEmail
	}

	switch co.OrderType {
	case models.OrderDineIn:
		if strings.TrimSpace(co.TableNo) == "" {
			return models.OrderSubmission{}, &MissingFulfillmentFieldError{Field: "table_no"}
		}
		sub.TableNo = co.TableNo
	case models.OrderDelivery:
		if strings.TrimSpace(co.DeliveryAddress) == "" {
			return models.OrderSubmission{}, &MissingFulfillmentFieldError{Field: "delivery_address"}
		}
		sub.DeliveryAddress = co.DeliveryAddress
	}

	charges := cp.Pricing.DeriveCharges(pricing.Subtotal(lineTotals), co.OrderType)
	sub.Subtotal = charges.Subtotal
	sub.Tax = charges.Tax
	sub.DeliveryFee = charges.DeliveryFee
	sub.TotalAmount = charges.GrandTotal

	return sub, nil
}

func flattenSelections(selections models.Selections) []models.ModifierRef {
	refs := make([]models.ModifierRef, 0, len(selections))
	for groupID, optionIDs := range selections {
		for _, optionID := range optionIDs {
			refs = append(refs, models.ModifierRef{ModifierID: groupID, OptionID: optionID})
		}
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].ModifierID != refs[j].ModifierID {
			return refs[i].ModifierID < refs[j].ModifierID
		}
		return refs[i].OptionID < refs[j].OptionID
	})
	return refs
}
