// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package support

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/minevale/api/internal/platform/request"
	"github.com/minevale/api/internal/platform/respond"
	"github.com/minevale/api/internal/platform/validate"
	"github.com/minevale/api/pkg/pagination"
)

// Handler implements support ticket HTTP endpoints.
type Handler struct {
	supportService *Service
}

// NewHandler constructs a new support [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{supportService: service}
}

// Routes returns a [chi.Router] with ticket routes.
//
// # Endpoints
//   - POST  /                   : Open a ticket.
//   - GET   /me                 : Own tickets.
//   - GET   /                   : Staff queue.
//   - PATCH /{ticketID}/status  : Staff status update.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.open)
	router.Get("/me", handler.listOwn)
	router.Get("/", handler.listQueue)
	router.Patch("/{ticketID}/status", handler.updateStatus)

	return router
}

type openTicketRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

/*
open files a new support ticket.

POST /api/v1/support/tickets
*/
func (handler *Handler) open(writer http.ResponseWriter, request *http.Request) {
	var input openTicketRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldSubject, input.Subject).
		MinLen(FieldSubject, input.Subject, SubjectMinLen).
		MaxLen(FieldSubject, input.Subject, SubjectMaxLen).
		Required(FieldBody, input.Body).
		MinLen(FieldBody, input.Body, BodyMinLen)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ticket, err := handler.supportService.Open(request.Context(), requestutil.Claims(request), TicketInput{
		Subject: input.Subject,
		Body:    input.Body,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, ticket)
}

// listOwn serves the caller's own tickets.
//
// GET /api/v1/support/tickets/me
func (handler *Handler) listOwn(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	tickets, total, err := handler.supportService.ListOwn(request.Context(), requestutil.Claims(request), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, tickets, pagination.NewMeta(params.Page, params.Limit, total))
}

// listQueue serves the staff handling queue.
//
// GET /api/v1/support/tickets
func (handler *Handler) listQueue(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	tickets, total, err := handler.supportService.ListQueue(request.Context(), requestutil.Claims(request), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, tickets, pagination.NewMeta(params.Page, params.Limit, total))
}

type ticketStatusRequest struct {
	Status string `json:"status"`
}

// updateStatus moves a ticket to a new handling state.
//
// PATCH /api/v1/support/tickets/{ticketID}/status
func (handler *Handler) updateStatus(writer http.ResponseWriter, request *http.Request) {
	ticketID := requestutil.Param(request, "ticketID")

	var input ticketStatusRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldTicketID, ticketID).
		UUID(FieldTicketID, ticketID).
		Required(FieldStatus, input.Status).
		OneOf(FieldStatus, input.Status, Statuses()...)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ticket, err := handler.supportService.UpdateStatus(request.Context(), requestutil.Claims(request), ticketID, Status(input.Status))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ticket)
}
