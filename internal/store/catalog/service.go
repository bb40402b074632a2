// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package catalog

import (
	"context"
	"fmt"

	"github.com/minevale/api/internal/platform/constants"
	"github.com/minevale/api/internal/platform/gateway"
	"github.com/minevale/api/internal/platform/sec"
	"github.com/minevale/api/pkg/pagination"
	"github.com/minevale/api/pkg/uuidv7"
)

// # Action Policies

// Policies is the per-action gating table for catalog mutations. Changing
// who may manage products is a one-line change here, nowhere else.
type Policies struct {
	Create gateway.Policy
	Update gateway.Policy
	Delete gateway.Policy
}

// DefaultPolicies gates every catalog mutation on the admin role.
func DefaultPolicies() Policies {
	return Policies{
		Create: gateway.RequireRole(sec.RoleAdmin),
		Update: gateway.RequireRole(sec.RoleAdmin),
		Delete: gateway.RequireRole(sec.RoleAdmin),
	}
}

// # Service

// Service implements storefront product use cases.
type Service struct {
	repository Repository
	roles      gateway.RoleLookup
	views      gateway.ViewInvalidator
	policies   Policies
}

// NewService constructs a catalog [Service].
func NewService(repository Repository, roles gateway.RoleLookup, views gateway.ViewInvalidator, policies Policies) *Service {
	return &Service{
		repository: repository,
		roles:      roles,
		views:      views,
		policies:   policies,
	}
}

// # Reads

// Get returns one product by id.
func (service *Service) Get(ctx context.Context, productID string) (*Product, error) {
	return service.repository.FindByID(ctx, productID)
}

// List returns a page of products, optionally filtered by category.
func (service *Service) List(ctx context.Context, category string, params pagination.Params) ([]Product, int, error) {
	return service.repository.List(ctx, category, params)
}

// # Mutations

// ProductInput holds the validated fields of a product create or update.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	Color       string
	Image       string
}

// Create adds a new product to the storefront.
//
// An empty color falls back to the storefront's default accent token.
func (service *Service) Create(ctx context.Context, actor *sec.AuthClaims, input ProductInput) (*Product, error) {
	if err := gateway.Authorize(ctx, service.policies.Create, actor, service.roles, gateway.MsgForbidden); err != nil {
		return nil, err
	}

	product := &Product{
		ID:          uuidv7.New(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		Color:       input.Color,
		Image:       input.Image,
	}
	if product.Color == "" {
		product.Color = constants.DefaultProductColor
	}

	if err := service.repository.Create(ctx, product); err != nil {
		return nil, err
	}

	service.views.Invalidate(ctx, "/loja", "/admin/products")

	return product, nil
}

// Update replaces the mutable fields of an existing product.
func (service *Service) Update(ctx context.Context, actor *sec.AuthClaims, productID string, input ProductInput) (*Product, error) {
	if err := gateway.Authorize(ctx, service.policies.Update, actor, service.roles, gateway.MsgForbidden); err != nil {
		return nil, err
	}

	product, err := service.repository.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.Category = input.Category
	product.Image = input.Image
	if input.Color != "" {
		product.Color = input.Color
	}

	if err := service.repository.Update(ctx, product); err != nil {
		return nil, err
	}

	service.views.Invalidate(ctx, "/loja", "/admin/products", fmt.Sprintf("/admin/products/%s", product.ID))

	return product, nil
}

// Delete removes a product from the storefront.
func (service *Service) Delete(ctx context.Context, actor *sec.AuthClaims, productID string) error {
	if err := gateway.Authorize(ctx, service.policies.Delete, actor, service.roles, gateway.MsgForbidden); err != nil {
		return err
	}

	if err := service.repository.Delete(ctx, productID); err != nil {
		return err
	}

	service.views.Invalidate(ctx, "/loja", "/admin/products")

	return nil
}
