// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

// # Package orders
//
// Storefront purchases and their fulfillment lifecycle. The status model is
// deliberately permissive: staff may move an order between any two states,
// including reopening a cancelled one, because charge disputes and manual
// fixes happen in any direction.
package orders

import "time"

// Order is one storefront purchase by a player.
type Order struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Amount      float64   `json:"amount"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Status is the fulfillment state of an order.
type Status string

// Order lifecycle states. Any state may transition to any other.
const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// Statuses returns every valid order status.
func Statuses() []string {
	return []string{
		string(StatusPending),
		string(StatusPaid),
		string(StatusDelivered),
		string(StatusCancelled),
	}
}

// IsValid reports whether the status is a known lifecycle state.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Field name constants for validation error details.
const (
	FieldOrderID = "orderId"
	FieldStatus  = "status"
)

// FulfillmentQueue is the durable queue the game server consumes to deliver
// purchased perks in-game.
const FulfillmentQueue = "minevale.orders.fulfillment"

// StatusEvent is the payload published when an order becomes actionable for
// the game server.
type StatusEvent struct {
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	Status    Status    `json:"status"`
	At        time.Time `json:"at"`
}
