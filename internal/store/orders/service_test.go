// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package orders_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minevale/api/internal/platform/apperr"
	"github.com/minevale/api/internal/platform/gateway"
	"github.com/minevale/api/internal/platform/sec"
	"github.com/minevale/api/internal/store/catalog"
	"github.com/minevale/api/internal/store/orders"
	"github.com/minevale/api/pkg/pagination"
)

// fakeRepository is an in-memory [orders.Repository].
type fakeRepository struct {
	orders map[string]*orders.Order
	writes int
}

func (f *fakeRepository) FindByID(_ context.Context, orderID string) (*orders.Order, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return nil, apperr.NotFound("Registro")
	}
	copied := *order
	return &copied, nil
}

func (f *fakeRepository) List(_ context.Context, _ pagination.Params) ([]orders.Order, int, error) {
	all := make([]orders.Order, 0, len(f.orders))
	for _, order := range f.orders {
		all = append(all, *order)
	}
	return all, len(all), nil
}

func (f *fakeRepository) ListByUser(_ context.Context, userID string, _ pagination.Params) ([]orders.Order, int, error) {
	own := make([]orders.Order, 0)
	for _, order := range f.orders {
		if order.UserID == userID {
			own = append(own, *order)
		}
	}
	return own, len(own), nil
}

func (f *fakeRepository) Create(_ context.Context, order *orders.Order) error {
	f.orders[order.ID] = order
	f.writes++
	return nil
}

func (f *fakeRepository) UpdateStatus(_ context.Context, orderID string, status orders.Status) error {
	order, ok := f.orders[orderID]
	if !ok {
		return apperr.NotFound("Registro")
	}
	order.Status = status
	f.writes++
	return nil
}

// fakeProducts resolves purchases against a fixed product set.
type fakeProducts map[string]*catalog.Product

func (f fakeProducts) Get(_ context.Context, productID string) (*catalog.Product, error) {
	product, ok := f[productID]
	if !ok {
		return nil, apperr.NotFound("Produto")
	}
	return product, nil
}

// fakeRoles maps user ids to roles.
type fakeRoles map[string]sec.Role

func (f fakeRoles) RoleOf(_ context.Context, userID string) (sec.Role, error) {
	role, ok := f[userID]
	if !ok {
		return "", apperr.NotFound("Registro")
	}
	return role, nil
}

// fakeInvalidator records invalidated view paths.
type fakeInvalidator struct {
	paths []string
}

func (f *fakeInvalidator) Invalidate(_ context.Context, paths ...string) {
	f.paths = append(f.paths, paths...)
}

// fakePublisher records published fulfillment events.
type fakePublisher struct {
	queue  string
	events []orders.StatusEvent
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, queueName string, payload any) error {
	if f.err != nil {
		return f.err
	}
	f.queue = queueName
	f.events = append(f.events, payload.(orders.StatusEvent))
	return nil
}

type fixture struct {
	service   *orders.Service
	repo      *fakeRepository
	views     *fakeInvalidator
	publisher *fakePublisher
}

func newFixture() fixture {
	repo := &fakeRepository{orders: map[string]*orders.Order{
		"order-1": {ID: "order-1", UserID: "player-1", ProductID: "prod-1", ProductName: "VIP Esmeralda", Amount: 29.9, Status: orders.StatusPending},
	}}
	products := fakeProducts{
		"prod-1": {ID: "prod-1", Name: "VIP Esmeralda", Price: 29.9, Category: catalog.CategoryVIPs},
	}
	roles := fakeRoles{"admin-1": sec.RoleAdmin, "player-1": sec.RoleUser}
	views := &fakeInvalidator{}
	publisher := &fakePublisher{}

	service := orders.NewService(repo, products, roles, views, publisher, orders.DefaultPolicies())
	return fixture{service: service, repo: repo, views: views, publisher: publisher}
}

func adminClaims() *sec.AuthClaims  { return &sec.AuthClaims{UserID: "admin-1", Nickname: "Root"} }
func playerClaims() *sec.AuthClaims { return &sec.AuthClaims{UserID: "player-1", Nickname: "Steve"} }

/*
TestService_Place_CopiesProductSnapshot verifies a purchase snapshots the
product's name and price onto the order.
*/
func TestService_Place_CopiesProductSnapshot(t *testing.T) {
	fx := newFixture()

	order, err := fx.service.Place(context.Background(), playerClaims(), "prod-1")

	require.NoError(t, err)
	assert.Equal(t, "player-1", order.UserID)
	assert.Equal(t, "VIP Esmeralda", order.ProductName)
	assert.Equal(t, 29.9, order.Amount)
	assert.Equal(t, orders.StatusPending, order.Status)
	assert.Equal(t, []string{"/dashboard/orders"}, fx.views.paths)
}

/*
TestService_Place_AnonymousDenied verifies anonymous purchases are rejected
before touching the catalog or the store.
*/
func TestService_Place_AnonymousDenied(t *testing.T) {
	fx := newFixture()

	_, err := fx.service.Place(context.Background(), nil, "prod-1")

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)
	assert.Zero(t, fx.repo.writes)
}

/*
TestService_UpdateStatus_PublishesFulfillmentEvent verifies a paid
transition invalidates both order views and emits exactly one event on the
fulfillment queue.
*/
func TestService_UpdateStatus_PublishesFulfillmentEvent(t *testing.T) {
	fx := newFixture()

	order, err := fx.service.UpdateStatus(context.Background(), adminClaims(), "order-1", orders.StatusPaid)

	require.NoError(t, err)
	assert.Equal(t, orders.StatusPaid, order.Status)
	assert.Equal(t, []string{"/admin/orders", "/dashboard/orders"}, fx.views.paths)

	assert.Equal(t, orders.FulfillmentQueue, fx.publisher.queue)
	require.Len(t, fx.publisher.events, 1)
	assert.Equal(t, "order-1", fx.publisher.events[0].OrderID)
	assert.Equal(t, orders.StatusPaid, fx.publisher.events[0].Status)
}

/*
TestService_UpdateStatus_SilentStatesDoNotPublish verifies pending and
cancelled transitions update the row without queueing anything for the game
server.
*/
func TestService_UpdateStatus_SilentStatesDoNotPublish(t *testing.T) {
	for _, status := range []orders.Status{orders.StatusPending, orders.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			fx := newFixture()

			order, err := fx.service.UpdateStatus(context.Background(), adminClaims(), "order-1", status)

			require.NoError(t, err)
			assert.Equal(t, status, order.Status)
			assert.Empty(t, fx.publisher.events)
		})
	}
}

/*
TestService_UpdateStatus_PublishFailureDoesNotFailMutation verifies a broker
outage never rolls back or fails a fulfillment update.
*/
func TestService_UpdateStatus_PublishFailureDoesNotFailMutation(t *testing.T) {
	fx := newFixture()
	fx.publisher.err = errors.New("broker unreachable")

	order, err := fx.service.UpdateStatus(context.Background(), adminClaims(), "order-1", orders.StatusDelivered)

	require.NoError(t, err)
	assert.Equal(t, orders.StatusDelivered, order.Status)
	assert.Equal(t, orders.StatusDelivered, fx.repo.orders["order-1"].Status)
}

/*
TestService_UpdateStatus_AnyTransitionAllowed verifies the permissive
lifecycle: a cancelled order can be reopened and a delivered one cancelled.
*/
func TestService_UpdateStatus_AnyTransitionAllowed(t *testing.T) {
	fx := newFixture()

	transitions := []orders.Status{
		orders.StatusCancelled,
		orders.StatusPaid,
		orders.StatusDelivered,
		orders.StatusPending,
	}

	for _, status := range transitions {
		order, err := fx.service.UpdateStatus(context.Background(), adminClaims(), "order-1", status)
		require.NoError(t, err)
		assert.Equal(t, status, order.Status)
	}
}

/*
TestService_UpdateStatus_NonAdminDenied verifies players cannot change
fulfillment state even for their own orders, and nothing is written or
published on denial.
*/
func TestService_UpdateStatus_NonAdminDenied(t *testing.T) {
	fx := newFixture()

	_, err := fx.service.UpdateStatus(context.Background(), playerClaims(), "order-1", orders.StatusDelivered)

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "FORBIDDEN", ae.Code)
	assert.Zero(t, fx.repo.writes)
	assert.Empty(t, fx.publisher.events)
	assert.Empty(t, fx.views.paths)
}

/*
TestService_Listings verifies the admin table is role-gated while players
see only their own history.
*/
func TestService_Listings(t *testing.T) {
	fx := newFixture()
	fx.repo.orders["order-2"] = &orders.Order{ID: "order-2", UserID: "admin-1", Status: orders.StatusPaid}

	all, total, err := fx.service.ListAll(context.Background(), adminClaims(), pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, all, 2)

	_, _, err = fx.service.ListAll(context.Background(), playerClaims(), pagination.Params{Page: 1, Limit: 20})
	require.Error(t, err)

	own, ownTotal, err := fx.service.ListOwn(context.Background(), playerClaims(), pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, ownTotal)
	require.Len(t, own, 1)
	assert.Equal(t, "player-1", own[0].UserID)
}

/*
TestService_PolicyTableGatesReads verifies the listings are gated by the
same policy table as the mutations: relaxing ListAll opens exactly that
read, leaving status changes admin-only.
*/
func TestService_PolicyTableGatesReads(t *testing.T) {
	repo := &fakeRepository{orders: map[string]*orders.Order{
		"order-1": {ID: "order-1", UserID: "player-1", Status: orders.StatusPending},
	}}
	roles := fakeRoles{"player-1": sec.RoleUser}

	policies := orders.DefaultPolicies()
	policies.ListAll = gateway.AuthOnly()

	service := orders.NewService(repo, fakeProducts{}, roles, &fakeInvalidator{}, nil, policies)

	_, total, err := service.ListAll(context.Background(), playerClaims(), pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	_, err = service.UpdateStatus(context.Background(), playerClaims(), "order-1", orders.StatusPaid)
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "FORBIDDEN", ae.Code)
	assert.Zero(t, repo.writes)
}
