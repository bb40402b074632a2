// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

// # Package catalog
//
// Storefront products: VIP ranks, coin packs, and unban passes sold on the
// server store.
package catalog

import "time"

// Product is one purchasable item on the storefront.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Color       string    `json:"color"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Product categories sold on the storefront.
const (
	CategoryVIPs  = "vips"
	CategoryCoins = "coins"
	CategoryUnban = "unban"
)

// Categories returns every valid product category.
func Categories() []string {
	return []string{CategoryVIPs, CategoryCoins, CategoryUnban}
}

// Field name constants for validation error details.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldCategory    = "category"
	FieldColor       = "color"
	FieldImage       = "image"
	FieldProductID   = "productId"
)

const (
	// NameMinLen is the minimum product name length.
	NameMinLen = 3
	// NameMaxLen bounds product names for storefront card layout.
	NameMaxLen = 60
)
