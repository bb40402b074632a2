// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package orders

import (
	"context"

	"github.com/minevale/api/pkg/pagination"
)

// Repository defines persistence operations for orders.
type Repository interface {
	// FindByID returns one order by id.
	FindByID(ctx context.Context, orderID string) (*Order, error)

	// List returns a page of all orders, newest first, plus the total count.
	List(ctx context.Context, params pagination.Params) ([]Order, int, error)

	// ListByUser returns a page of one player's orders, newest first.
	ListByUser(ctx context.Context, userID string, params pagination.Params) ([]Order, int, error)

	// Create persists a new order.
	Create(ctx context.Context, order *Order) error

	// UpdateStatus persists a new status for the given order.
	UpdateStatus(ctx context.Context, orderID string, status Status) error
}
