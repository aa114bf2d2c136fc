package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderType string

const (
	OrderDineIn   OrderType = "dine-in"
	OrderTakeaway OrderType = "takeaway"
	OrderDelivery OrderType = "delivery"
)

func (t OrderType) IsValid() bool {
	return t == OrderDineIn || t == OrderTakeaway || t == OrderDelivery
}

type PaymentMethod string

const (
	PayCash    PaymentMethod = "cash"
	PayQRIS    PaymentMethod = "qris"
	PayEwallet PaymentMethod = "ewallet"
	PayBank    PaymentMethod = "bank"
)

func (p PaymentMethod) IsValid() bool {
	return p == PayCash || p == PayQRIS || p == PayEwallet || p == PayBank
}

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPaid      OrderStatus = "paid"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Identity is a resolved authenticated customer supplied by the auth layer.
// When present at checkout its fields take precedence over guest input.
type Identity struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Phone string    `json:"phone"`
	Email string    `json:"email,omitempty"`
}

// ModifierRef is a flat (group, option) pair as persisted with an order item.
type ModifierRef struct {
	ModifierID int64 `json:"modifier_id"`
	OptionID   int64 `json:"option_id"`
}

// SubmissionItem is one order line in the gateway payload. Price is the unit
// price at composition time, modifiers the flattened selection set.
type SubmissionItem struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Modifiers []ModifierRef   `json:"modifiers"`
}

// OrderSubmission is the composed checkout payload sent to the order gateway.
// All monetary fields are recomputed by the composer; client-side totals are
// never copied into it.
type OrderSubmission struct {
	Items           []SubmissionItem `json:"items"`
	OrderType       OrderType        `json:"order_type"`
	TableNo         string           `json:"table_no,omitempty"`
	DeliveryAddress string           `json:"delivery_address,omitempty"`
	CustomerName    string           `json:"customer_name"`
	CustomerPhone   string           `json:"customer_phone"`
	CustomerEmail   string           `json:"customer_email,omitempty"`
	CustomerNotes   string           `json:"customer_notes,omitempty"`
	PaymentMethod   PaymentMethod    `json:"payment_method"`
	UserID          *uuid.UUID       `json:"user_id,omitempty"`
	Subtotal        decimal.Decimal  `json:"subtotal"`
	Tax             decimal.Decimal  `json:"tax"`
	DeliveryFee     decimal.Decimal  `json:"delivery_fee"`
	TotalAmount     decimal.Decimal  `json:"total_amount"`
}

// Order is a persisted order record as read back from the store.
type Order struct {
	ID              int64           `db:"id" json:"id"`
	UserID          *uuid.UUID      `db:"user_id" json:"user_id,omitempty"`
	OrderType       OrderType       `db:"order_type" json:"order_type"`
	TableNo         string          `db:"table_no" json:"table_no,omitempty"`
	DeliveryAddress string          `db:"delivery_address" json:"delivery_address,omitempty"`
	CustomerName    string          `db:"customer_name" json:"customer_name"`
	CustomerPhone   string          `db:"customer_phone" json:"customer_phone"`
	CustomerEmail   string          `db:"customer_email" json:"customer_email,omitempty"`
	CustomerNotes   string          `db:"customer_notes" json:"customer_notes,omitempty"`
	PaymentMethod   PaymentMethod   `db:"payment_method" json:"payment_method"`
	Status          OrderStatus     `db:"status" json:"status"`
	Subtotal        decimal.Decimal `db:"subtotal" json:"subtotal"`
	Tax             decimal.Decimal `db:"tax" json:"tax"`
	DeliveryFee     decimal.Decimal `db:"delivery_fee" json:"delivery_fee"`
	TotalAmount     decimal.Decimal `db:"total_amount" json:"total_amount"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	Items           []OrderItem     `db:"-" json:"items,omitempty"`
}

// OrderItem is a persisted order line joined with its product name.
type OrderItem struct {
	ID          int64           `db:"id" json:"id"`
	OrderID     int64           `db:"order_id" json:"order_id"`
	ProductID   int64           `db:"product_id" json:"product_id"`
	ProductName string          `db:"product_name" json:"product_name"`
	Quantity    int             `db:"quantity" json:"quantity"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Modifiers   []ModifierRef   `db:"-" json:"modifiers,omitempty"`
}
