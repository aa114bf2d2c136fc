// Package catalog exposes the read-only menu snapshot consumed by the cart
// and checkout flows. Items and their modifier groups come from the store
// wholesale on each fetch; there is no partial refresh.
package catalog

import "github.com/wicaksana/kedai/models"

// Store is the persistence boundary the catalog reads from.
type Store interface {
	Menu() ([]models.MenuItem, error)
	Product(id int64) (models.MenuItem, error)
	ProductModifiers(productID int64) ([]models.ModifierGroup, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Snapshot returns all available items with their modifier groups attached.
func (s *Service) Snapshot() ([]models.MenuItem, error) {
	items, err := s.store.Menu()
	if err != nil {
		return nil, err
	}
	for i := range items {
		groups, err := s.store.ProductModifiers(items[i].ID)
		if err != nil {
			return nil, err
		}
		items[i].Modifiers = groups
	}
	return items, nil
}

// Item returns one item with modifiers attached. An item without modifiers
// is not an error; it simply has none.
func (s *Service) Item(id int64) (models.MenuItem, error) {
	item, err := s.store.Product(id)
	if err != nil {
		return models.MenuItem{}, err
	}
	groups, err := s.store.ProductModifiers(id)
	if err != nil {
		return models.MenuItem{}, err
	}
	item.Modifiers = groups
	return item, nil
}

// ItemModifiers returns the modifier groups for one item, possibly empty.
func (s *Service) ItemModifiers(productID int64) ([]models.ModifierGroup, error) {
	return s.store.ProductModifiers(productID)
}
