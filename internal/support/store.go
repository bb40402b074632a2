// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package support

import (
	"context"

	"github.com/minevale/api/pkg/pagination"
)

// Repository defines persistence operations for support tickets.
type Repository interface {
	// FindByID returns one ticket by id.
	FindByID(ctx context.Context, ticketID string) (*Ticket, error)

	// List returns a page of all tickets, oldest open first.
	List(ctx context.Context, params pagination.Params) ([]Ticket, int, error)

	// ListByUser returns a page of one player's tickets, newest first.
	ListByUser(ctx context.Context, userID string, params pagination.Params) ([]Ticket, int, error)

	// Create persists a new ticket.
	Create(ctx context.Context, ticket *Ticket) error

	// UpdateStatus persists a new handling state.
	UpdateStatus(ctx context.Context, ticketID string, status Status) error
}
