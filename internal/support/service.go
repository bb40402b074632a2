// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package support

import (
	"context"
	"strings"

	"github.com/minevale/api/internal/platform/gateway"
	"github.com/minevale/api/internal/platform/sec"
	"github.com/minevale/api/pkg/pagination"
	"github.com/minevale/api/pkg/uuidv7"
)

// Service implements support ticket use cases. The staff queue and status
// transitions are gated on the moderator role.
type Service struct {
	repository  Repository
	roles       gateway.RoleLookup
	staffPolicy gateway.Policy
}

// NewService constructs a support [Service].
func NewService(repository Repository, roles gateway.RoleLookup) *Service {
	return &Service{
		repository:  repository,
		roles:       roles,
		staffPolicy: gateway.RequireRole(sec.RoleMod),
	}
}

// TicketInput holds the validated fields of a new ticket.
type TicketInput struct {
	Subject string
	Body    string
}

// Open files a new ticket for the authenticated player.
func (service *Service) Open(ctx context.Context, actor *sec.AuthClaims, input TicketInput) (*Ticket, error) {
	if err := gateway.Authorize(ctx, gateway.AuthOnly(), actor, service.roles, gateway.MsgForbidden); err != nil {
		return nil, err
	}

	ticket := &Ticket{
		ID:      uuidv7.New(),
		UserID:  actor.UserID,
		Subject: strings.TrimSpace(input.Subject),
		Body:    strings.TrimSpace(input.Body),
		Status:  StatusOpen,
	}

	if err := service.repository.Create(ctx, ticket); err != nil {
		return nil, err
	}

	return ticket, nil
}

// ListOwn returns a page of the caller's own tickets.
func (service *Service) ListOwn(ctx context.Context, actor *sec.AuthClaims, params pagination.Params) ([]Ticket, int, error) {
	if err := gateway.Authorize(ctx, gateway.AuthOnly(), actor, service.roles, gateway.MsgForbidden); err != nil {
		return nil, 0, err
	}

	return service.repository.ListByUser(ctx, actor.UserID, params)
}

// ListQueue returns the staff handling queue.
func (service *Service) ListQueue(ctx context.Context, actor *sec.AuthClaims, params pagination.Params) ([]Ticket, int, error) {
	if err := gateway.Authorize(ctx, service.staffPolicy, actor, service.roles, gateway.MsgForbidden); err != nil {
		return nil, 0, err
	}

	return service.repository.List(ctx, params)
}

// UpdateStatus moves a ticket to a new handling state. Staff only.
func (service *Service) UpdateStatus(ctx context.Context, actor *sec.AuthClaims, ticketID string, status Status) (*Ticket, error) {
	if err := gateway.Authorize(ctx, service.staffPolicy, actor, service.roles, gateway.MsgForbidden); err != nil {
		return nil, err
	}

	if err := service.repository.UpdateStatus(ctx, ticketID, status); err != nil {
		return nil, err
	}

	return service.repository.FindByID(ctx, ticketID)
}
