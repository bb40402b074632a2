// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package profile

import (
	"context"

	"github.com/minevale/api/internal/platform/sec"
	"github.com/minevale/api/pkg/pagination"
)

// Repository defines persistence operations for player profiles.
type Repository interface {
	// FindRoleByID returns the persisted role of a single account.
	FindRoleByID(ctx context.Context, userID string) (sec.Role, error)

	// FindByID returns one profile by account id.
	FindByID(ctx context.Context, userID string) (*Profile, error)

	// List returns a page of profiles ordered by creation date (newest
	// first), plus the total row count.
	List(ctx context.Context, params pagination.Params) ([]Profile, int, error)

	// UpdateRole persists a new role for the given account.
	UpdateRole(ctx context.Context, userID string, role sec.Role) error
}
