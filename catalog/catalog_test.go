package catalog

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/wicaksana/kedai/models"
)

type fakeStore struct {
	items     map[int64]models.MenuItem
	modifiers map[int64][]models.ModifierGroup
}

func (s *fakeStore) Menu() ([]models.MenuItem, error) {
	var out []models.MenuItem
	for _, item := range s.items {
		out = append(out, item)
	}
	return out, nil
}

func (s *fakeStore) Product(id int64) (models.MenuItem, error) {
	item, ok := s.items[id]
	if !ok {
		return models.MenuItem{}, sql.ErrNoRows
	}
	return item, nil
}

func (s *fakeStore) ProductModifiers(productID int64) ([]models.ModifierGroup, error) {
	return s.modifiers[productID], nil
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		items: map[int64]models.MenuItem{
			1: {ID: 1, Name: "Latte", Price: decimal.NewFromInt(20000), IsAvailable: true},
			2: {ID: 2, Name: "Croissant", Price: decimal.NewFromInt(15000), IsAvailable: true},
		},
		modifiers: map[int64][]models.ModifierGroup{
			1: {
				{
					ID:       10,
					Name:     "Size",
					Required: true,
					Options: []models.ModifierOption{
						{ID: 101, Name: "Regular", Price: decimal.Zero},
						{ID: 102, Name: "Large", Price: decimal.NewFromInt(5000)},
					},
				},
			},
		},
	}
}

func TestSnapshotAttachesModifiers(t *testing.T) {
	svc := NewService(newFakeStore())

	items, err := svc.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}

	for _, item := range items {
		switch item.ID {
		case 1:
			if len(item.Modifiers) != 1 || item.Modifiers[0].ID != 10 {
				t.Errorf("latte modifiers = %+v", item.Modifiers)
			}
		case 2:
			if len(item.Modifiers) != 0 {
				t.Errorf("croissant should have no modifiers, got %+v", item.Modifiers)
			}
		}
	}
}

func TestItemWithoutModifiers(t *testing.T) {
	svc := NewService(newFakeStore())

	item, err := svc.Item(2)
	if err != nil {
		t.Fatalf("Item() error: %v", err)
	}
	if len(item.Modifiers) != 0 {
		t.Errorf("modifiers = %+v, want none", item.Modifiers)
	}
}

func TestItemNotFound(t *testing.T) {
	svc := NewService(newFakeStore())

	_, err := svc.Item(99)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("error = %v, want sql.ErrNoRows", err)
	}
}

func TestItemModifiersEmptyResult(t *testing.T) {
	svc := NewService(newFakeStore())

	groups, err := svc.ItemModifiers(2)
	if err != nil {
		t.Fatalf("ItemModifiers() error: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("groups = %+v, want empty", groups)
	}
}
