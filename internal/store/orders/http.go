// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package orders

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/minevale/api/internal/platform/request"
	"github.com/minevale/api/internal/platform/respond"
	"github.com/minevale/api/internal/platform/validate"
	"github.com/minevale/api/pkg/pagination"
)

// Handler implements order HTTP endpoints.
type Handler struct {
	orderService *Service
}

// NewHandler constructs a new orders [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{orderService: service}
}

// Routes returns a [chi.Router] with order routes.
//
// # Endpoints
//   - POST  /                  : Place an order (authenticated).
//   - GET   /me                : Own purchase history.
//   - GET   /                  : Admin order table.
//   - PATCH /{orderID}/status  : Admin fulfillment update.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.place)
	router.Get("/me", handler.listOwn)
	router.Get("/", handler.listAll)
	router.Patch("/{orderID}/status", handler.updateStatus)

	return router
}

type placeOrderRequest struct {
	ProductID string `json:"productId"`
}

/*
place creates a pending order for the authenticated player.

POST /api/v1/store/orders
*/
func (handler *Handler) place(writer http.ResponseWriter, request *http.Request) {
	var input placeOrderRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required("productId", input.ProductID).
		UUID("productId", input.ProductID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	order, err := handler.orderService.Place(request.Context(), requestutil.Claims(request), input.ProductID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, order)
}

// listOwn serves the player's own purchase history.
//
// GET /api/v1/store/orders/me
func (handler *Handler) listOwn(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	results, total, err := handler.orderService.ListOwn(request.Context(), requestutil.Claims(request), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, results, pagination.NewMeta(params.Page, params.Limit, total))
}

// listAll serves the admin order table.
//
// GET /api/v1/store/orders
func (handler *Handler) listAll(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	results, total, err := handler.orderService.ListAll(request.Context(), requestutil.Claims(request), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, results, pagination.NewMeta(params.Page, params.Limit, total))
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

/*
updateStatus moves an order to a new fulfillment state.

PATCH /api/v1/store/orders/{orderID}/status

Response:
  - 200: Updated order
  - 400: Unknown status value or malformed order id
  - 401/403: Denied by the action policy
*/
func (handler *Handler) updateStatus(writer http.ResponseWriter, request *http.Request) {
	orderID := requestutil.Param(request, "orderID")

	var input statusUpdateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldOrderID, orderID).
		UUID(FieldOrderID, orderID).
		Required(FieldStatus, input.Status).
		OneOf(FieldStatus, input.Status, Statuses()...)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	order, err := handler.orderService.UpdateStatus(request.Context(), requestutil.Claims(request), orderID, Status(input.Status))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, order)
}
