package dbhelper

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/wicaksana/kedai/database"
	"github.com/wicaksana/kedai/models"
)

// OrderGateway persists composed order submissions. It implements
// order.Gateway: the order row and its items commit together or not at all.
type OrderGateway struct{}

func (OrderGateway) Submit(ctx context.Context, sub models.OrderSubmission) (int64, error) {
	var orderID int64
	err := database.Tx(func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			INSERT INTO orders
			       (user_id, order_type, table_no, delivery_address,
			        customer_name, customer_phone, customer_email, customer_notes,
			        payment_method, subtotal, tax, delivery_fee, total_amount, status)
			VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''),
			        $5, $6, NULLIF($7, ''), NULLIF($8, ''),
			        $9, $10, $11, $12, $13, 'pending')
			RETURNING id`,
			sub.UserID, sub.OrderType, sub.TableNo, sub.DeliveryAddress,
			sub.CustomerName, sub.CustomerPhone, sub.CustomerEmail, sub.CustomerNotes,
			sub.PaymentMethod, sub.Subtotal, sub.Tax, sub.DeliveryFee, sub.TotalAmount).
			Scan(&orderID)
		if err != nil {
			return err
		}

		for _, item := range sub.Items {
			customizations, err := json.Marshal(item.Modifiers)
			if err != nil {
				return err
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO order_items (order_id, product_id, quantity, price, customizations)
				VALUES ($1, $2, $3, $4, $5)`,
				orderID, item.ProductID, item.Quantity, item.Price, customizations)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return orderID, nil
}

const orderColumns = `
	id, user_id, order_type, COALESCE(table_no, ''), COALESCE(delivery_address, ''),
	customer_name, customer_phone, COALESCE(customer_email, ''), COALESCE(customer_notes, ''),
	payment_method, status, subtotal, tax, delivery_fee, total_amount, created_at`

func scanOrder(row interface {
	Scan(dest ...interface{}) error
}) (models.Order, error) {
	var (
		o      models.Order
		userID uuid.NullUUID
	)
	err := row.Scan(&o.ID, &userID, &o.OrderType, &o.TableNo, &o.DeliveryAddress,
		&o.CustomerName, &o.CustomerPhone, &o.CustomerEmail, &o.CustomerNotes,
		&o.PaymentMethod, &o.Status, &o.Subtotal, &o.Tax, &o.DeliveryFee,
		&o.TotalAmount, &o.CreatedAt)
	if userID.Valid {
		o.UserID = &userID.UUID
	}
	return o, err
}

func ListOrdersByUser(userID uuid.UUID) ([]models.Order, error) {
	rows, err := database.Kedai.Query(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

// ListOrdersByContact serves guest order history looked up by the phone or
// email entered at checkout.
func ListOrdersByContact(phone, email string) ([]models.Order, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if phone != "" {
		rows, err = database.Kedai.Query(`
			SELECT `+orderColumns+`
			FROM orders
			WHERE customer_phone = $1
			ORDER BY created_at DESC`, phone)
	} else {
		rows, err = database.Kedai.Query(`
			SELECT `+orderColumns+`
			FROM orders
			WHERE customer_email = $1
			ORDER BY created_at DESC`, email)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func collectOrders(rows *sql.Rows) ([]models.Order, error) {
	var orders []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func GetOrder(id int64) (models.Order, error) {
	o, err := scanOrder(database.Kedai.QueryRow(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1`, id))
	if err != nil {
		return models.Order{}, err
	}

	items, err := getOrderItems(id)
	if err != nil {
		return models.Order{}, err
	}
	o.Items = items
	return o, nil
}

func getOrderItems(orderID int64) ([]models.OrderItem, error) {
	rows, err := database.Kedai.Query(`
		SELECT oi.id, oi.order_id, oi.product_id, p.name AS product_name,
		       oi.quantity, oi.price, oi.customizations
		FROM order_items oi
		JOIN products p ON oi.product_id = p.id
		WHERE oi.order_id = $1
		ORDER BY oi.id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var (
			item models.OrderItem
			raw  []byte
		)
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.Price, &raw); err != nil {
			return nil, err
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &item.Modifiers); err != nil {
				return nil, err
			}
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateOrderStatus moves an order to a new status and reports whether the
// order existed.
func UpdateOrderStatus(id int64, status models.OrderStatus) (bool, error) {
	result, err := database.Kedai.Exec(`
		UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
