package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem is a catalog entry. Instances are read-only snapshots: the cart
// copies them by value so later catalog refreshes never change a priced line.
type MenuItem struct {
	ID          int64           `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description"`
	Price       decimal.Decimal `db:"price" json:"price"`
	CategoryID  int64           `db:"category_id" json:"category_id"`
	Category    string          `db:"category_name" json:"category_name"`
	IsAvailable bool            `db:"is_available" json:"is_available"`
	ImageURL    string          `db:"image_url" json:"image_url,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	Modifiers   []ModifierGroup `db:"-" json:"modifiers,omitempty"`
}

// ModifierGroup is a named set of selectable options attached to a MenuItem.
// Required+single means exactly one option, required+multiple at least one.
type ModifierGroup struct {
	ID       int64            `db:"id" json:"id"`
	Name     string           `db:"name" json:"name"`
	Multiple bool             `db:"multiple_selection" json:"multiple"`
	Required bool             `db:"required" json:"required"`
	Options  []ModifierOption `db:"-" json:"options"`
}

// ModifierOption carries a price delta that is always added to the base
// price, never subtracted.
type ModifierOption struct {
	ID    int64           `db:"id" json:"id"`
	Name  string          `db:"name" json:"name"`
	Price decimal.Decimal `db:"price" json:"price"`
}

// Selections maps a modifier group id to the chosen option ids for that
// group. Option order carries no meaning.
type Selections map[int64][]int64

// Group returns the modifier group with the given id, if the item has one.
func (m MenuItem) Group(groupID int64) (ModifierGroup, bool) {
	for _, g := range m.Modifiers {
		if g.ID == groupID {
			return g, true
		}
	}
	return ModifierGroup{}, false
}

// Option returns the option with the given id, if the group has one.
func (g ModifierGroup) Option(optionID int64) (ModifierOption, bool) {
	for _, o := range g.Options {
		if o.ID == optionID {
			return o, true
		}
	}
	return ModifierOption{}, false
}
