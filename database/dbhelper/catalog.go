package dbhelper

import (
	"github.com/wicaksana/kedai/database"
	"github.com/wicaksana/kedai/models"
)

// CatalogStore reads the menu snapshot out of postgres. It implements
// catalog.Store.
type CatalogStore struct{}

func (CatalogStore) Menu() ([]models.MenuItem, error) {
	rows, err := database.Kedai.Query(`
		SELECT p.id, p.name, p.description, p.price, p.is_available, p.image_url,
		       c.id AS category_id, c.name AS category_name, p.created_at
		FROM products p
		JOIN categories c ON p.category_id = c.id
		WHERE p.is_available = TRUE
		ORDER BY c.name, p.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var m models.MenuItem
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.IsAvailable,
			&m.ImageURL, &m.CategoryID, &m.Category, &m.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (CatalogStore) Product(id int64) (models.MenuItem, error) {
	var m models.MenuItem
	err := database.Kedai.QueryRow(`
		SELECT p.id, p.name, p.description, p.price, p.is_available, p.image_url,
		       c.id AS category_id, c.name AS category_name, p.created_at
		FROM products p
		JOIN categories c ON p.category_id = c.id
		WHERE p.id = $1`, id).
		Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.IsAvailable,
			&m.ImageURL, &m.CategoryID, &m.Category, &m.CreatedAt)
	return m, err
}

// ProductModifiers folds the flat modifier/option join rows into groups.
// An item without modifiers yields an empty slice, not an error.
func (CatalogStore) ProductModifiers(productID int64) ([]models.ModifierGroup, error) {
	rows, err := database.Kedai.Query(`
		SELECT m.id, m.name, m.multiple_selection, m.required,
		       o.id AS option_id, o.name AS option_name, o.price
		FROM product_modifiers pm
		JOIN modifiers m ON pm.modifier_id = m.id
		JOIN modifier_options o ON o.modifier_id = m.id
		WHERE pm.product_id = $1
		ORDER BY m.id, o.id`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []models.ModifierGroup
	for rows.Next() {
		var (
			group  models.ModifierGroup
			option models.ModifierOption
		)
		if err := rows.Scan(&group.ID, &group.Name, &group.Multiple, &group.Required,
			&option.ID, &option.Name, &option.Price); err != nil {
			return nil, err
		}

		if n := len(groups); n > 0 && groups[n-1].ID == group.ID {
			groups[n-1].Options = append(groups[n-1].Options, option)
			continue
		}
		group.Options = []models.ModifierOption{option}
		groups = append(groups, group)
	}
	return groups, rows.Err()
}
