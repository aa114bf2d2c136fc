// Package cart holds the session-scoped cart aggregate. A Cart is owned by
// exactly one session; it is not safe for concurrent use and relies on the
// store handing the same instance to one request at a time.
package cart

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wicaksana/kedai/models"
	"github.com/wicaksana/kedai/pricing"
)

// ErrInvalidQuantity is returned when an add is attempted with a quantity
// that is not a positive integer.
var ErrInvalidQuantity = fmt.Errorf("quantity must be a positive integer")

// MissingRequiredModifierError reports a required modifier group with no
// selected option at add time.
type MissingRequiredModifierError struct {
	GroupID   int64
	GroupName string
}

func (e *MissingRequiredModifierError) Error() string {
	return fmt.Sprintf("required modifier group %d (%s) has no selection", e.GroupID, e.GroupName)
}

// Line is one cart entry. Item is a value snapshot of the catalog entry at
// add time; a later catalog refresh does not reprice the line. Total is
// always recomputed from quantity and selections, never set directly.
type Line struct {
	ID         uuid.UUID         `json:"id"`
	Item       models.MenuItem   `json:"item"`
	Quantity   int               `json:"quantity"`
	Selections models.Selections `json:"selections,omitempty"`
	Total      decimal.Decimal   `json:"total"`
}

// Cart is an insertion-ordered collection of lines. Two adds of the same
// item with the same selection set merge into one line.
type Cart struct {
	lines []*Line
}

func New() *Cart {
	return &Cart{}
}

// AddItem validates the quantity and the item's required modifier groups,
// then merges into an existing line with the same item and selection set or
// appends a new one. The returned line is a copy of the resulting state.
func (c *Cart) AddItem(item models.MenuItem, quantity int, selections models.Selections) (Line, error) {
	if quantity <= 0 {
		return Line{}, ErrInvalidQuantity
	}
	for _, group := range item.Modifiers {
		if !group.Required {
			continue
		}
		if len(selections[group.ID]) == 0 {
			return Line{}, &MissingRequiredModifierError{GroupID: group.ID, GroupName: group.Name}
		}
	}

	selections = normalize(selections)
	key := selectionKey(selections)

	for _, line := range c.lines {
		if line.Item.ID == item.ID && selectionKey(line.Selections) == key {
			line.Quantity += quantity
			line.Total = pricing.LineTotal(line.Item, line.Selections, line.Quantity)
			return *line, nil
		}
	}

	line := &Line{
		ID:         uuid.New(),
		Item:       item,
		Quantity:   quantity,
		Selections: selections,
		Total:      pricing.LineTotal(item, selections, quantity),
	}
	c.lines = append(c.lines, line)
	return *line, nil
}

// UpdateQuantity sets a line's quantity and reprices it. A quantity of zero
// or less removes the line. An unknown line id is a no-op: the UI may race
// with a removal and must not see that as an error.
func (c *Cart) UpdateQuantity(lineID uuid.UUID, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(lineID)
		return
	}
	for _, line := range c.lines {
		if line.ID == lineID {
			line.Quantity = quantity
			line.Total = pricing.LineTotal(line.Item, line.Selections, line.Quantity)
			return
		}
	}
}

// RemoveItem removes the line if present, no-op otherwise.
func (c *Cart) RemoveItem(lineID uuid.UUID) {
	for i, line := range c.lines {
		if line.ID == lineID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart. Called after a confirmed order or an explicit
// reset, never on a failed submission.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns the cart content in insertion order as copies.
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.lines))
	for _, line := range c.lines {
		out = append(out, *line)
	}
	return out
}

// ItemCount is the total quantity across lines, recomputed on every read.
func (c *Cart) ItemCount() int {
	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// Subtotal sums the line totals, recomputed on every read.
func (c *Cart) Subtotal() decimal.Decimal {
	totals := make([]decimal.Decimal, 0, len(c.lines))
	for _, line := range c.lines {
		totals = append(totals, line.Total)
	}
	return pricing.Subtotal(totals)
}

// normalize deep-copies a selection set with option ids sorted and deduped
// per group, and empty groups dropped. Two selection sets that differ only
// in click order normalize to the same value.
func normalize(selections models.Selections) models.Selections {
	if len(selections) == 0 {
		return models.Selections{}
	}
	out := make(models.Selections, len(selections))
	for groupID, optionIDs := range selections {
		if len(optionIDs) == 0 {
			continue
		}
		ids := append([]int64(nil), optionIDs...)
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		deduped := ids[:1]
		for _, id := range ids[1:] {
			if id != deduped[len(deduped)-1] {
				deduped = append(deduped, id)
			}
		}
		out[groupID] = deduped
	}
	return out
}

// selectionKey renders a normalized selection set as a canonical string used
// as the merge key.
func selectionKey(selections models.Selections) string {
	groupIDs := make([]int64, 0, len(selections))
	for groupID := range selections {
		groupIDs = append(groupIDs, groupID)
	}
	sort.Slice(groupIDs, func(i, j int) bool { return groupIDs[i] < groupIDs[j] })

	var b strings.Builder
	for _, groupID := range groupIDs {
		fmt.Fprintf(&b, "%d:", groupID)
		for i, optionID := range selections[groupID] {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, "%d", optionID)
		}
		b.WriteByte(';')
	}
	return b.String()
}
