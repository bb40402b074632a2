// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/minevale/api/internal/platform/request"
	"github.com/minevale/api/internal/platform/respond"
	"github.com/minevale/api/internal/platform/sec"
	"github.com/minevale/api/internal/platform/validate"
	"github.com/minevale/api/pkg/pagination"
)

// Handler implements profile HTTP endpoints.
type Handler struct {
	profileService *Service
}

// NewHandler constructs a new profile [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{profileService: service}
}

// Routes returns a [chi.Router] with profile routes.
//
// # Endpoints
//   - GET   /me              : Current player's own profile.
//   - GET   /                : Admin user table (paginated).
//   - PATCH /{userID}/role   : Admin role change.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/me", handler.me)
	router.Get("/", handler.list)
	router.Patch("/{userID}/role", handler.updateRole)

	return router
}

// me serves the authenticated player's own profile.
//
// GET /api/v1/users/me
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.profileService.Get(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

// list serves the admin user table.
//
// GET /api/v1/users?page=1&limit=20
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	profiles, total, err := handler.profileService.List(request.Context(), requestutil.Claims(request), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, profiles, pagination.NewMeta(params.Page, params.Limit, total))
}

type roleChangeRequest struct {
	NewRole string `json:"newRole"`
}

/*
updateRole changes the persisted role of an account.

PATCH /api/v1/users/{userID}/role

Validation runs before the admin gate, and both run before the single
store write.

Response:
  - 200: Updated profile
  - 400: Invalid user id or role value
  - 403: Caller is not an admin
*/
func (handler *Handler) updateRole(writer http.ResponseWriter, request *http.Request) {
	targetID := requestutil.Param(request, "userID")

	var input roleChangeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUserID, targetID).
		UUID(FieldUserID, targetID).
		Required(FieldNewRole, input.NewRole).
		OneOf(FieldNewRole, input.NewRole, sec.Roles()...)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.profileService.UpdateRole(request.Context(), requestutil.Claims(request), RoleChangeInput{
		UserID:  targetID,
		NewRole: sec.Role(input.NewRole),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}
