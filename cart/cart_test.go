package cart

import (
	"errors"
	"testing"

	"github.com/google/uuid"
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

func croissant() models.MenuItem {
	return models.MenuItem{
		ID:    2,
		Name:  "Croissant",
		Price: decimal.NewFromInt(15000),
	}
}

func TestAddItem(t *testing.T) {
	c := New()

	line, err := c.AddItem(latte(), 2, models.Selections{10: {102}})
	if err != nil {
		t.Fatalf("AddItem() error: %v", err)
	}
	if line.Quantity != 2 {
		t.Errorf("quantity = %d, want 2", line.Quantity)
	}
	if !line.Total.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("total = %s, want 50000", line.Total)
	}
	if c.ItemCount() != 2 {
		t.Errorf("item count = %d, want 2", c.ItemCount())
	}
}

func TestAddItemInvalidQuantity(t *testing.T) {
	c := New()
	for _, qty := range []int{0, -1} {
		if _, err := c.AddItem(croissant(), qty, nil); !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("quantity %d: error = %v, want ErrInvalidQuantity", qty, err)
		}
	}
	if c.ItemCount() != 0 {
		t.Errorf("failed add must not mutate the cart, count = %d", c.ItemCount())
	}
}

func TestAddItemMissingRequiredModifier(t *testing.T) {
	c := New()

	_, err := c.AddItem(latte(), 1, nil)
	var missing *MissingRequiredModifierError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want MissingRequiredModifierError", err)
	}
	if missing.GroupID != 10 {
		t.Errorf("offending group = %d, want 10", missing.GroupID)
	}
	if c.ItemCount() != 0 {
		t.Errorf("failed add must not mutate the cart, count = %d", c.ItemCount())
	}
}

func TestAddItemMergesSameSelections(t *testing.T) {
	c := New()

	first, err := c.AddItem(latte(), 2, models.Selections{10: {102}, 20: {201, 202}})
	if err != nil {
		t.Fatalf("AddItem() error: %v", err)
	}
	// same selections, options clicked in the opposite order
	second, err := c.AddItem(latte(), 1, models.Selections{20: {202, 201}, 10: {102}})
	if err != nil {
		t.Fatalf("AddItem() error: %v", err)
	}

	if first.ID != second.ID {
		t.Fatal("expected merge into the existing line")
	}
	if len(c.Lines()) != 1 {
		t.Fatalf("lines = %d, want 1", len(c.Lines()))
	}
	if second.Quantity != 3 {
		t.Errorf("merged quantity = %d, want 3", second.Quantity)
	}
	// unit price 20000+5000+8000+6000 = 39000, times 3
	if !second.Total.Equal(decimal.NewFromInt(117000)) {
		t.Errorf("merged total = %s, want 117000", second.Total)
	}
}

func TestAddItemDifferentSelectionsStaySeparate(t *testing.T) {
	c := New()

	if _, err := c.AddItem(latte(), 1, models.Selections{10: {101}}); err != nil {
		t.Fatalf("AddItem() error: %v", err)
	}
	if _, err := c.AddItem(latte(), 1, models.Selections{10: {102}}); err != nil {
		t.Fatalf("AddItem() error: %v", err)
	}

	if len(c.Lines()) != 2 {
		t.Errorf("lines = %d, want 2", len(c.Lines()))
	}
}

func TestUpdateQuantity(t *testing.T) {
	c := New()
	line, err := c.AddItem(croissant(), 1, nil)
	if err != nil {
		t.Fatalf("AddItem() error: %v", err)
	}

	c.UpdateQuantity(line.ID, 4)
	got := c.Lines()[0]
	if got.Quantity != 4 {
		t.Errorf("quantity = %d, want 4", got.Quantity)
	}
	if !got.Total.Equal(decimal.NewFromInt(60000)) {
		t.Errorf("total = %s, want 60000", got.Total)
	}
}

func TestUpdateQuantityToZeroRemovesLine(t *testing.T) {
	c := New()
	line, err := c.AddItem(croissant(), 3, nil)
	if err != nil {
		t.Fatalf("AddItem() error: %v", err)
	}

	c.UpdateQuantity(line.ID, 0)
	if len(c.Lines()) != 0 {
		t.Errorf("lines = %d, want 0", len(c.Lines()))
	}
	if c.ItemCount() != 0 {
		t.Errorf("item count = %d, want 0", c.ItemCount())
	}
}

func TestUpdateQuantityUnknownLineIsNoop(t *testing.T) {
	c := New()
	if _, err := c.AddItem(croissant(), 1, nil); err != nil {
		t.Fatalf("AddItem() error: %v", err)
	}

	c.UpdateQuantity(uuid.New(), 5)
	if got := c.Lines()[0].Quantity; got != 1 {
		t.Errorf("quantity = %d, want 1", got)
	}
}

func TestRemoveItem(t *testing.T) {
	c := New()
	line, err := c.AddItem(croissant(), 1, nil)
	if err != nil {
		t.Fatalf("AddItem() error: %v", err)
	}

	c.RemoveItem(line.ID)
	if len(c.Lines()) != 0 {
		t.Errorf("lines = %d, want 0", len(c.Lines()))
	}

	// removing again is a no-op
	c.RemoveItem(line.ID)
}

func TestClear(t *testing.T) {
	c := New()
	if _, err := c.AddItem(croissant(), 2, nil); err != nil {
		t.Fatalf("AddItem() error: %v", err)
	}

	c.Clear()
	if c.ItemCount() != 0 || !c.Subtotal().Equal(decimal.Zero) {
		t.Errorf("cart not empty after Clear: count=%d subtotal=%s", c.ItemCount(), c.Subtotal())
	}
}

func TestSubtotalSumsLineTotals(t *testing.T) {
	c := New()
	if _, err := c.AddItem(latte(), 2, models.Selections{10: {102}}); err != nil {
		t.Fatalf("AddItem() error: %v", err)
	}
	if _, err := c.AddItem(croissant(), 1, nil); err != nil {
		t.Fatalf("AddItem() error: %v", err)
	}

	if got := c.Subtotal(); !got.Equal(decimal.NewFromInt(65000)) {
		t.Errorf("subtotal = %s, want 65000", got)
	}
}

func TestLineTotalRecomputedAfterEveryMutation(t *testing.T) {
	c := New()
	line, err := c.AddItem(latte(), 1, models.Selections{10: {102}})
	if err != nil {
		t.Fatalf("AddItem() error: %v", err)
	}

	for _, qty := range []int{2, 7, 1} {
		c.UpdateQuantity(line.ID, qty)
		got := c.Lines()[0]
		want := decimal.NewFromInt(25000).Mul(decimal.NewFromInt(int64(qty)))
		if !got.Total.Equal(want) {
			t.Errorf("after qty=%d: total = %s, want %s", qty, got.Total, want)
		}
	}
}

func TestSnapshotIsolatedFromCatalogChanges(t *testing.T) {
	c := New()
	item := latte()
	line, err := c.AddItem(item, 1, models.Selections{10: {102}})
	if err != nil {
		t.Fatalf("AddItem() error: %v", err)
	}

	// a later catalog refresh must not reprice the stored line
	item.Price = decimal.NewFromInt(99999)
	c.UpdateQuantity(line.ID, 2)
	if got := c.Lines()[0].Total; !got.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("total = %s, want 50000", got)
	}
}
