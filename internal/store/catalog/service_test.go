// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minevale/api/internal/platform/apperr"
	"github.com/minevale/api/internal/platform/gateway"
	"github.com/minevale/api/internal/platform/sec"
	"github.com/minevale/api/internal/store/catalog"
	"github.com/minevale/api/pkg/pagination"
)

// fakeRepository is an in-memory [catalog.Repository] for service tests.
type fakeRepository struct {
	products map[string]*catalog.Product
	writes   int
}

func (f *fakeRepository) FindByID(_ context.Context, productID string) (*catalog.Product, error) {
	product, ok := f.products[productID]
	if !ok {
		return nil, apperr.NotFound("Registro")
	}
	copied := *product
	return &copied, nil
}

func (f *fakeRepository) List(_ context.Context, category string, _ pagination.Params) ([]catalog.Product, int, error) {
	all := make([]catalog.Product, 0, len(f.products))
	for _, product := range f.products {
		if category == "" || product.Category == category {
			all = append(all, *product)
		}
	}
	return all, len(all), nil
}

func (f *fakeRepository) Create(_ context.Context, product *catalog.Product) error {
	f.products[product.ID] = product
	f.writes++
	return nil
}

func (f *fakeRepository) Update(_ context.Context, product *catalog.Product) error {
	if _, ok := f.products[product.ID]; !ok {
		return apperr.NotFound("Registro")
	}
	f.products[product.ID] = product
	f.writes++
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, productID string) error {
	if _, ok := f.products[productID]; !ok {
		return apperr.NotFound("Registro")
	}
	delete(f.products, productID)
	f.writes++
	return nil
}

// fakeRoles maps user ids to roles for authorization tests.
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

func newFixture() (*catalog.Service, *fakeRepository, *fakeInvalidator) {
	repo := &fakeRepository{products: map[string]*catalog.Product{
		"prod-1": {ID: "prod-1", Name: "VIP Esmeralda", Price: 29.9, Category: catalog.CategoryVIPs, Color: "emerald", Image: "/img/vip.png"},
	}}
	roles := fakeRoles{"admin-1": sec.RoleAdmin, "player-1": sec.RoleUser}
	views := &fakeInvalidator{}
	return catalog.NewService(repo, roles, views, catalog.DefaultPolicies()), repo, views
}

func adminClaims() *sec.AuthClaims {
	return &sec.AuthClaims{UserID: "admin-1", Nickname: "Root"}
}

func playerClaims() *sec.AuthClaims {
	return &sec.AuthClaims{UserID: "player-1", Nickname: "Steve"}
}

/*
TestService_Create_AdminSucceeds verifies a create by an admin persists the
product, applies the default color, and invalidates the storefront views.
*/
func TestService_Create_AdminSucceeds(t *testing.T) {
	service, repo, views := newFixture()

	product, err := service.Create(context.Background(), adminClaims(), catalog.ProductInput{
		Name:     "1000 Coins",
		Price:    9.9,
		Category: catalog.CategoryCoins,
		Image:    "/img/coins.png",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, product.ID)
	assert.Equal(t, "emerald", product.Color)
	assert.Contains(t, repo.products, product.ID)
	assert.Equal(t, []string{"/loja", "/admin/products"}, views.paths)
}

/*
TestService_Mutations_DeniedForNonAdmins verifies the shipped policy table
gates every product mutation on the admin role, with no store write on
denial.
*/
func TestService_Mutations_DeniedForNonAdmins(t *testing.T) {
	input := catalog.ProductInput{Name: "Unban", Price: 49.9, Category: catalog.CategoryUnban, Image: "/img/unban.png"}

	tests := []struct {
		name     string
		actor    *sec.AuthClaims
		wantCode string
	}{
		{"anonymous", nil, "UNAUTHORIZED"},
		{"regular_user", playerClaims(), "FORBIDDEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, views := newFixture()

			_, err := service.Create(context.Background(), tt.actor, input)
			assertDenied(t, err, tt.wantCode)

			_, err = service.Update(context.Background(), tt.actor, "prod-1", input)
			assertDenied(t, err, tt.wantCode)

			err = service.Delete(context.Background(), tt.actor, "prod-1")
			assertDenied(t, err, tt.wantCode)

			assert.Zero(t, repo.writes)
			assert.Empty(t, views.paths)
		})
	}
}

func assertDenied(t *testing.T, err error, wantCode string) {
	t.Helper()
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, wantCode, ae.Code)
}

/*
TestService_PolicyTableIsTheSwitchPoint verifies that relaxing one entry in
the policy table opens exactly that action, leaving the others gated.
*/
func TestService_PolicyTableIsTheSwitchPoint(t *testing.T) {
	repo := &fakeRepository{products: map[string]*catalog.Product{}}
	roles := fakeRoles{"player-1": sec.RoleUser}
	views := &fakeInvalidator{}

	policies := catalog.DefaultPolicies()
	policies.Create = gateway.AuthOnly()

	service := catalog.NewService(repo, roles, views, policies)

	_, err := service.Create(context.Background(), playerClaims(), catalog.ProductInput{
		Name:     "Pacote Coins",
		Price:    5,
		Category: catalog.CategoryCoins,
		Image:    "/img/coins.png",
	})
	require.NoError(t, err)

	err = service.Delete(context.Background(), playerClaims(), "missing")
	assertDenied(t, err, "FORBIDDEN")
}

/*
TestService_Update_InvalidatesDetailView verifies an update also marks the
product's own admin view stale.
*/
func TestService_Update_InvalidatesDetailView(t *testing.T) {
	service, _, views := newFixture()

	_, err := service.Update(context.Background(), adminClaims(), "prod-1", catalog.ProductInput{
		Name:     "VIP Diamante",
		Price:    59.9,
		Category: catalog.CategoryVIPs,
		Image:    "/img/vip-diamond.png",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"/loja", "/admin/products", "/admin/products/prod-1"}, views.paths)
}

/*
TestService_Update_KeepsColorWhenOmitted verifies an update without a color
keeps the stored accent instead of resetting it.
*/
func TestService_Update_KeepsColorWhenOmitted(t *testing.T) {
	service, repo, _ := newFixture()

	updated, err := service.Update(context.Background(), adminClaims(), "prod-1", catalog.ProductInput{
		Name:     "VIP Esmeralda",
		Price:    34.9,
		Category: catalog.CategoryVIPs,
		Image:    "/img/vip.png",
	})

	require.NoError(t, err)
	assert.Equal(t, "emerald", updated.Color)
	assert.Equal(t, 34.9, repo.products["prod-1"].Price)
}

/*
TestService_Delete_MissingProduct verifies deleting an unknown product maps
to a not-found error and invalidates nothing.
*/
func TestService_Delete_MissingProduct(t *testing.T) {
	service, _, views := newFixture()

	err := service.Delete(context.Background(), adminClaims(), "missing")

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
	assert.Empty(t, views.paths)
}
