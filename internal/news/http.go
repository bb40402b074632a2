// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package news

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/minevale/api/internal/platform/request"
	"github.com/minevale/api/internal/platform/respond"
	"github.com/minevale/api/internal/platform/validate"
	"github.com/minevale/api/internal/platform/viewcache"
	"github.com/minevale/api/pkg/pagination"
)

// Handler implements news HTTP endpoints.
type Handler struct {
	newsService *Service
	views       *viewcache.Cache
}

// NewHandler constructs a new news [Handler].
func NewHandler(service *Service, views *viewcache.Cache) *Handler {
	return &Handler{newsService: service, views: views}
}

// Routes returns a [chi.Router] with news routes.
//
// # Endpoints
//   - GET    /           : Public listing (cached).
//   - GET    /{slug}     : Single post.
//   - POST   /           : Publish a post.
//   - PUT    /{postID}   : Rewrite a post.
//   - DELETE /{postID}   : Remove a post.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{slug}", handler.get)
	router.Post("/", handler.create)
	router.Put("/{postID}", handler.update)
	router.Delete("/{postID}", handler.remove)

	return router
}

// newsView is the cached payload of the default news listing.
type newsView struct {
	Posts []Post          `json:"posts"`
	Meta  pagination.Meta `json:"meta"`
}

const newsViewPath = "/noticias"

// list serves the announcement listing, cache-aside on the default page.
//
// GET /api/v1/news?page=1&limit=20
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	cacheable := params.Page == pagination.DefaultPage && params.Limit == pagination.DefaultLimit

	if cacheable {
		var cached newsView
		if handler.views.Get(request.Context(), newsViewPath, &cached) {
			respond.Paginated(writer, cached.Posts, cached.Meta)
			return
		}
	}

	posts, total, err := handler.newsService.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	meta := pagination.NewMeta(params.Page, params.Limit, total)

	if cacheable {
		handler.views.Set(request.Context(), newsViewPath, newsView{Posts: posts, Meta: meta})
	}

	respond.Paginated(writer, posts, meta)
}

// get serves one announcement, cache-aside keyed by its public page path.
//
// GET /api/v1/news/{slug}
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	postSlug := requestutil.Param(request, "slug")
	viewPath := newsViewPath + "/" + postSlug

	var cached Post
	if handler.views.Get(request.Context(), viewPath, &cached) {
		respond.OK(writer, &cached)
		return
	}

	post, err := handler.newsService.Get(request.Context(), postSlug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.views.Set(request.Context(), viewPath, post)

	respond.OK(writer, post)
}

// postRequest is the raw announcement payload.
type postRequest struct {
	Title      string `json:"title"`
	Body       string `json:"body"`
	CoverImage string `json:"coverImage"`
}

// validatePost runs the announcement rule set.
func validatePost(input postRequest) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MinLen(FieldTitle, input.Title, TitleMinLen).
		MaxLen(FieldTitle, input.Title, TitleMaxLen).
		Required(FieldBody, input.Body).
		MinLen(FieldBody, input.Body, BodyMinLen)
	return validator.Err()
}

/*
create publishes a new announcement.

POST /api/v1/news
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input postRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := validatePost(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.newsService.Create(request.Context(), requestutil.Claims(request), PostInput{
		Title:      input.Title,
		Body:       input.Body,
		CoverImage: input.CoverImage,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, post)
}

// update rewrites an announcement.
//
// PUT /api/v1/news/{postID}
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	postID := requestutil.Param(request, "postID")

	var input postRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.UUID(FieldPostID, postID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := validatePost(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.newsService.Update(request.Context(), requestutil.Claims(request), postID, PostInput{
		Title:      input.Title,
		Body:       input.Body,
		CoverImage: input.CoverImage,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}

// remove deletes an announcement.
//
// DELETE /api/v1/news/{postID}
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	postID := requestutil.Param(request, "postID")

	validator := &validate.Validator{}
	validator.UUID(FieldPostID, postID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.newsService.Delete(request.Context(), requestutil.Claims(request), postID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
