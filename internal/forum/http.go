// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package forum

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/minevale/api/internal/platform/request"
	"github.com/minevale/api/internal/platform/respond"
	"github.com/minevale/api/internal/platform/validate"
	"github.com/minevale/api/internal/platform/viewcache"
	"github.com/minevale/api/pkg/pagination"
)

// Handler implements forum HTTP endpoints.
type Handler struct {
	forumService *Service
	views        *viewcache.Cache
}

// NewHandler constructs a new forum [Handler].
func NewHandler(service *Service, views *viewcache.Cache) *Handler {
	return &Handler{forumService: service, views: views}
}

// Routes returns a [chi.Router] with forum routes.
//
// # Endpoints
//   - GET  /                   : Thread listing (cached).
//   - GET  /{slug}             : Single thread (cached).
//   - POST /                   : Open a thread.
//   - POST /{slug}/solve       : Mark a thread solved.
//   - POST /{slug}/report      : File a moderation report.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{slug}", handler.get)
	router.Post("/", handler.create)
	router.Post("/{slug}/solve", handler.solve)
	router.Post("/{slug}/report", handler.report)

	return router
}

// forumView is the cached payload of the default thread listing.
type forumView struct {
	Threads []Thread        `json:"threads"`
	Meta    pagination.Meta `json:"meta"`
}

const forumViewPath = "/forum"

// list serves the thread listing, cache-aside on the default page.
//
// GET /api/v1/forum/threads?page=1&limit=20
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	cacheable := params.Page == pagination.DefaultPage && params.Limit == pagination.DefaultLimit

	if cacheable {
		var cached forumView
		if handler.views.Get(request.Context(), forumViewPath, &cached) {
			respond.Paginated(writer, cached.Threads, cached.Meta)
			return
		}
	}

	threads, total, err := handler.forumService.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	meta := pagination.NewMeta(params.Page, params.Limit, total)

	if cacheable {
		handler.views.Set(request.Context(), forumViewPath, forumView{Threads: threads, Meta: meta})
	}

	respond.Paginated(writer, threads, meta)
}

// get serves one thread, cache-aside keyed by its public page path.
//
// GET /api/v1/forum/threads/{slug}
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	threadSlug := requestutil.Param(request, "slug")
	viewPath := forumViewPath + "/" + threadSlug

	var cached Thread
	if handler.views.Get(request.Context(), viewPath, &cached) {
		respond.OK(writer, &cached)
		return
	}

	thread, err := handler.forumService.Get(request.Context(), threadSlug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.views.Set(request.Context(), viewPath, thread)

	respond.OK(writer, thread)
}

type createThreadRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

/*
create opens a new thread.

POST /api/v1/forum/threads
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createThreadRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MinLen(FieldTitle, input.Title, TitleMinLen).
		MaxLen(FieldTitle, input.Title, TitleMaxLen).
		Required(FieldBody, input.Body).
		MinLen(FieldBody, input.Body, BodyMinLen)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	thread, err := handler.forumService.CreateThread(request.Context(), requestutil.Claims(request), ThreadInput{
		Title: input.Title,
		Body:  input.Body,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, thread)
}

// solve marks a thread as resolved.
//
// POST /api/v1/forum/threads/{slug}/solve
func (handler *Handler) solve(writer http.ResponseWriter, request *http.Request) {
	threadSlug := requestutil.Param(request, "slug")

	thread, err := handler.forumService.MarkSolved(request.Context(), requestutil.Claims(request), threadSlug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, thread)
}

type reportRequest struct {
	Reason string `json:"reason"`
}

// report files a moderation report against a thread.
//
// POST /api/v1/forum/threads/{slug}/report
func (handler *Handler) report(writer http.ResponseWriter, request *http.Request) {
	threadSlug := requestutil.Param(request, "slug")

	var input reportRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldReason, input.Reason).
		MaxLen(FieldReason, input.Reason, ReasonMaxLen)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	report, err := handler.forumService.Report(request.Context(), requestutil.Claims(request), threadSlug, input.Reason)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, report)
}
