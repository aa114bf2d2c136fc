package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/wicaksana/kedai/models"
)

func latte() models.MenuItem {
	return models.MenuItem{
		ID:    1,
		Name:  "Latte",
		Price: decimal.NewFromInt(20000),
		Modifiers: []models.ModifierGroup{
			{
				ID:       10,
				Name:     "Size",
				Required: true,
				Options: []models.ModifierOption{
					{ID: 101, Name: "Regular", Price: decimal.Zero},
					{ID: 102, Name: "Large", Price: decimal.NewFromInt(5000)},
				},
			},
			{
				ID:       20,
				Name:     "Extras",
				Multiple: true,
				Options: []models.ModifierOption{
					{ID: 201, Name: "Extra shot", Price: decimal.NewFromInt(8000)},
					{ID: 202, Name: "Oat milk", Price: decimal.NewFromInt(6000)},
				},
			},
		},
	}
}

func TestUnitPrice(t *testing.T) {
	tests := []struct {
		name       string
		selections models.Selections
		want       int64
	}{
		{"no selections", nil, 20000},
		{"free option", models.Selections{10: {101}}, 20000},
		{"large", models.Selections{10: {102}}, 25000},
		{"large with both extras", models.Selections{10: {102}, 20: {201, 202}}, 39000},
		{"unknown group ignored", models.Selections{99: {1}}, 20000},
		{"unknown option ignored", models.Selections{10: {999}}, 20000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UnitPrice(latte(), tt.selections)
			if !got.Equal(decimal.NewFromInt(tt.want)) {
				t.Errorf("UnitPrice() = %s, want %d", got, tt.want)
			}
		})
	}
}

func TestUnitPriceNeverBelowBasePrice(t *testing.T) {
	item := latte()
	selections := models.Selections{10: {102}, 20: {201}}
	got := UnitPrice(item, selections)
	if got.LessThan(item.Price) {
		t.Errorf("unit price %s below base price %s", got, item.Price)
	}
}

func TestUnitPriceClampsNegative(t *testing.T) {
	item := models.MenuItem{ID: 2, Price: decimal.NewFromInt(-100)}
	got := UnitPrice(item, nil)
	if !got.Equal(decimal.Zero) {
		t.Errorf("expected zero for negative base price, got %s", got)
	}
}

func TestLineTotal(t *testing.T) {
	got := LineTotal(latte(), models.Selections{10: {102}}, 2)
	if !got.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("LineTotal() = %s, want 50000", got)
	}
}

func TestSubtotal(t *testing.T) {
	totals := []decimal.Decimal{
		decimal.NewFromInt(50000),
		decimal.NewFromInt(25000),
	}
	if got := Subtotal(totals); !got.Equal(decimal.NewFromInt(75000)) {
		t.Errorf("Subtotal() = %s, want 75000", got)
	}
	if got := Subtotal(nil); !got.Equal(decimal.Zero) {
		t.Errorf("Subtotal(nil) = %s, want 0", got)
	}
}

func TestDeriveCharges(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name      string
		subtotal  int64
		orderType models.OrderType
		tax       int64
		fee       int64
		total     int64
	}{
		{"delivery", 75000, models.OrderDelivery, 7500, 5000, 87500},
		{"takeaway", 75000, models.OrderTakeaway, 7500, 0, 82500},
		{"dine-in", 20000, models.OrderDineIn, 2000, 0, 22000},
		{"zero subtotal", 0, models.OrderTakeaway, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cfg.DeriveCharges(decimal.NewFromInt(tt.subtotal), tt.orderType)
			if !got.Tax.Equal(decimal.NewFromInt(tt.tax)) {
				t.Errorf("tax = %s, want %d", got.Tax, tt.tax)
			}
			if !got.DeliveryFee.Equal(decimal.NewFromInt(tt.fee)) {
				t.Errorf("delivery fee = %s, want %d", got.DeliveryFee, tt.fee)
			}
			if !got.GrandTotal.Equal(decimal.NewFromInt(tt.total)) {
				t.Errorf("grand total = %s, want %d", got.GrandTotal, tt.total)
			}
		})
	}
}

func TestDeriveChargesGrandTotalIdentity(t *testing.T) {
	cfg := DefaultConfig()
	for _, subtotal := range []int64{0, 1, 999, 12345, 75000, 1000001} {
		got := cfg.DeriveCharges(decimal.NewFromInt(subtotal), models.OrderDelivery)
		sum := got.Subtotal.Add(got.Tax).Add(got.DeliveryFee)
		if !got.GrandTotal.Equal(sum) {
			t.Errorf("subtotal %d: grand total %s != subtotal+tax+fee %s", subtotal, got.GrandTotal, sum)
		}
	}
}

func TestDeriveChargesRoundsTaxToTwoPlaces(t *testing.T) {
	cfg := DefaultConfig()
	// 10% of 125.55 is 12.555, which must round to 12.56 at the aggregate step.
	subtotal := decimal.RequireFromString("125.55")
	got := cfg.DeriveCharges(subtotal, models.OrderTakeaway)
	if want := decimal.RequireFromString("12.56"); !got.Tax.Equal(want) {
		t.Errorf("tax = %s, want %s", got.Tax, want)
	}
}
