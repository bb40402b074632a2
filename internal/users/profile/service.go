// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package profile

import (
	"context"

	"github.com/minevale/api/internal/platform/gateway"
	"github.com/minevale/api/internal/platform/sec"
	"github.com/minevale/api/pkg/pagination"
)

// MsgRoleChangeDenied is the denial shown to non-admins attempting a role
// change. The wording is part of the public contract of the action.
const MsgRoleChangeDenied = "Apenas administradores podem alterar cargos."

// Service implements profile use cases and serves as the platform's role
// lookup: gateway.Authorize reads roles through it.
type Service struct {
	repository   Repository
	views        gateway.ViewInvalidator
	changePolicy gateway.Policy
	listPolicy   gateway.Policy
}

// NewService constructs a profile [Service]. Role changes and the user
// table are always admin-gated; the policies live here so tests can assert
// them and so every gate in this service has one switch point.
func NewService(repository Repository, views gateway.ViewInvalidator) *Service {
	return &Service{
		repository:   repository,
		views:        views,
		changePolicy: gateway.RequireRole(sec.RoleAdmin),
		listPolicy:   gateway.RequireRole(sec.RoleAdmin),
	}
}

// RoleOf returns the persisted role of an account. Implements
// [gateway.RoleLookup].
func (service *Service) RoleOf(ctx context.Context, userID string) (sec.Role, error) {
	return service.repository.FindRoleByID(ctx, userID)
}

// Get returns one profile by account id.
func (service *Service) Get(ctx context.Context, userID string) (*Profile, error) {
	return service.repository.FindByID(ctx, userID)
}

// List returns a page of profiles for the admin user table.
func (service *Service) List(ctx context.Context, actor *sec.AuthClaims, params pagination.Params) ([]Profile, int, error) {
	if err := gateway.Authorize(ctx, service.listPolicy, actor, service, gateway.MsgForbidden); err != nil {
		return nil, 0, err
	}

	return service.repository.List(ctx, params)
}

// RoleChangeInput holds the target of a role change action.
type RoleChangeInput struct {
	UserID  string
	NewRole sec.Role
}

// UpdateRole changes the persisted role of an account.
//
// Only admins may change roles; everyone else receives the same denial
// regardless of the attempted target or direction of the change. On success
// the cached admin user view is marked stale.
func (service *Service) UpdateRole(ctx context.Context, actor *sec.AuthClaims, input RoleChangeInput) (*Profile, error) {
	if err := gateway.Authorize(ctx, service.changePolicy, actor, service, MsgRoleChangeDenied); err != nil {
		return nil, err
	}

	if err := service.repository.UpdateRole(ctx, input.UserID, input.NewRole); err != nil {
		return nil, err
	}

	service.views.Invalidate(ctx, "/admin/users")

	return service.repository.FindByID(ctx, input.UserID)
}
