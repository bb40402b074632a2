// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package catalog

import (
	"context"

	"github.com/minevale/api/pkg/pagination"
)

// Repository defines persistence operations for storefront products.
type Repository interface {
	// FindByID returns one product by id.
	FindByID(ctx context.Context, productID string) (*Product, error)

	// List returns products filtered by category (empty string means all),
	// newest first, plus the total row count for the filter.
	List(ctx context.Context, category string, params pagination.Params) ([]Product, int, error)

	// Create persists a new product.
	Create(ctx context.Context, product *Product) error

	// Update persists changes to an existing product.
	Update(ctx context.Context, product *Product) error

	// Delete removes a product by id.
	Delete(ctx context.Context, productID string) error
}
