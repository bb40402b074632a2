// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package orders

import (
	"context"
	"time"

	"github.com/minevale/api/internal/platform/ctxutil"
	"github.com/minevale/api/internal/platform/gateway"
	"github.com/minevale/api/internal/platform/sec"
	"github.com/minevale/api/internal/store/catalog"
	"github.com/minevale/api/pkg/pagination"
	"github.com/minevale/api/pkg/uuidv7"
)

// # Collaborator Contracts

// ProductFinder resolves the product being purchased.
type ProductFinder interface {
	Get(ctx context.Context, productID string) (*catalog.Product, error)
}

// EventPublisher mirrors fulfillment-relevant status changes onto the game
// server's queue. Implemented by queue.Publisher.
type EventPublisher interface {
	Publish(ctx context.Context, queueName string, payload any) error
}

// # Action Policies

// Policies is the per-action gating table for order operations, reads
// included. Every gate in this service routes through it.
type Policies struct {
	Place        gateway.Policy
	UpdateStatus gateway.Policy
	ListAll      gateway.Policy
	ListOwn      gateway.Policy
}

// DefaultPolicies gates status changes and the full listing on the admin
// role; any signed-in player may place orders and list their own.
func DefaultPolicies() Policies {
	return Policies{
		Place:        gateway.AuthOnly(),
		UpdateStatus: gateway.RequireRole(sec.RoleAdmin),
		ListAll:      gateway.RequireRole(sec.RoleAdmin),
		ListOwn:      gateway.AuthOnly(),
	}
}

// # Service

// Service implements order use cases.
type Service struct {
	repository Repository
	products   ProductFinder
	roles      gateway.RoleLookup
	views      gateway.ViewInvalidator
	events     EventPublisher
	policies   Policies
}

// NewService constructs an orders [Service]. events may be nil when the
// broker is not configured; fulfillment then relies on manual delivery.
func NewService(repository Repository, products ProductFinder, roles gateway.RoleLookup, views gateway.ViewInvalidator, events EventPublisher, policies Policies) *Service {
	return &Service{
		repository: repository,
		products:   products,
		roles:      roles,
		views:      views,
		events:     events,
		policies:   policies,
	}
}

// # Purchase

// Place creates a pending order for the authenticated player.
//
// The product's name and price are copied onto the order at purchase time;
// later catalog edits never rewrite purchase history.
func (service *Service) Place(ctx context.Context, actor *sec.AuthClaims, productID string) (*Order, error) {
	if err := gateway.Authorize(ctx, service.policies.Place, actor, service.roles, gateway.MsgForbidden); err != nil {
		return nil, err
	}

	product, err := service.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	order := &Order{
		ID:          uuidv7.New(),
		UserID:      actor.UserID,
		ProductID:   product.ID,
		ProductName: product.Name,
		Amount:      product.Price,
		Status:      StatusPending,
	}

	if err := service.repository.Create(ctx, order); err != nil {
		return nil, err
	}

	service.views.Invalidate(ctx, "/dashboard/orders")

	return order, nil
}

// # Listings

// ListAll returns a page of every order, for the admin order table.
func (service *Service) ListAll(ctx context.Context, actor *sec.AuthClaims, params pagination.Params) ([]Order, int, error) {
	if err := gateway.Authorize(ctx, service.policies.ListAll, actor, service.roles, gateway.MsgForbidden); err != nil {
		return nil, 0, err
	}

	return service.repository.List(ctx, params)
}

// ListOwn returns a page of the authenticated player's own orders.
func (service *Service) ListOwn(ctx context.Context, actor *sec.AuthClaims, params pagination.Params) ([]Order, int, error) {
	if err := gateway.Authorize(ctx, service.policies.ListOwn, actor, service.roles, gateway.MsgForbidden); err != nil {
		return nil, 0, err
	}

	return service.repository.ListByUser(ctx, actor.UserID, params)
}

// # Fulfillment

// UpdateStatus moves an order to a new lifecycle state.
//
// Any state may move to any other. On success both the admin and the
// owner's order views are marked stale, and paid/delivered transitions are
// mirrored onto the fulfillment queue so the game server can act. A publish
// failure is logged and does not fail the mutation: the store row is the
// source of truth and the queue can be replayed from it.
func (service *Service) UpdateStatus(ctx context.Context, actor *sec.AuthClaims, orderID string, status Status) (*Order, error) {
	if err := gateway.Authorize(ctx, service.policies.UpdateStatus, actor, service.roles, gateway.MsgForbidden); err != nil {
		return nil, err
	}

	if err := service.repository.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}

	service.views.Invalidate(ctx, "/admin/orders", "/dashboard/orders")

	order, err := service.repository.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	service.publishIfActionable(ctx, order)

	return order, nil
}

// publishIfActionable emits a fulfillment event for paid and delivered
// orders, best-effort.
func (service *Service) publishIfActionable(ctx context.Context, order *Order) {
	if service.events == nil {
		return
	}
	if order.Status != StatusPaid && order.Status != StatusDelivered {
		return
	}

	event := StatusEvent{
		OrderID:   order.ID,
		UserID:    order.UserID,
		ProductID: order.ProductID,
		Status:    order.Status,
		At:        time.Now().UTC(),
	}

	if err := service.events.Publish(ctx, FulfillmentQueue, event); err != nil {
		ctxutil.GetLogger(ctx).ErrorContext(ctx, "order_event_publish_failed",
			"order_id", order.ID,
			"status", string(order.Status),
			"error", err.Error(),
		)
	}
}
