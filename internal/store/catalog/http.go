// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/minevale/api/internal/platform/request"
	"github.com/minevale/api/internal/platform/respond"
	"github.com/minevale/api/internal/platform/validate"
	"github.com/minevale/api/internal/platform/viewcache"
	"github.com/minevale/api/pkg/pagination"
)

// Handler implements storefront product HTTP endpoints.
type Handler struct {
	catalogService *Service
	views          *viewcache.Cache
}

// NewHandler constructs a new catalog [Handler].
func NewHandler(service *Service, views *viewcache.Cache) *Handler {
	return &Handler{catalogService: service, views: views}
}

// Routes returns a [chi.Router] with product routes.
//
// # Endpoints
//   - GET    /              : Public storefront listing (cached).
//   - GET    /{productID}   : Single product.
//   - POST   /              : Create product.
//   - PUT    /{productID}   : Update product.
//   - DELETE /{productID}   : Delete product.
//
// Mutations are open at the router level; the service's policy table is the
// authority on who may perform them.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{productID}", handler.get)
	router.Post("/", handler.create)
	router.Put("/{productID}", handler.update)
	router.Delete("/{productID}", handler.remove)

	return router
}

// storefrontView is the cached payload of the default storefront listing.
type storefrontView struct {
	Products []Product       `json:"products"`
	Meta     pagination.Meta `json:"meta"`
}

// storefrontViewPath is the cache key for the default storefront listing.
// It matches the public page that renders it, which is also the path every
// product mutation invalidates.
const storefrontViewPath = "/loja"

/*
list serves the storefront product listing.

GET /api/v1/store/products?category=vips&page=1&limit=20

The default view (no category filter, first page, default size) is served
cache-aside; filtered views go straight to the store.
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	category := request.URL.Query().Get("category")
	params := pagination.FromRequest(request)

	cacheable := category == "" && params.Page == pagination.DefaultPage && params.Limit == pagination.DefaultLimit

	if cacheable {
		var cached storefrontView
		if handler.views.Get(request.Context(), storefrontViewPath, &cached) {
			respond.Paginated(writer, cached.Products, cached.Meta)
			return
		}
	}

	if category != "" {
		validator := &validate.Validator{}
		validator.OneOf(FieldCategory, category, Categories()...)
		if err := validator.Err(); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	products, total, err := handler.catalogService.List(request.Context(), category, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	meta := pagination.NewMeta(params.Page, params.Limit, total)

	if cacheable {
		handler.views.Set(request.Context(), storefrontViewPath, storefrontView{Products: products, Meta: meta})
	}

	respond.Paginated(writer, products, meta)
}

// get serves a single product.
//
// GET /api/v1/store/products/{productID}
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	productID := requestutil.Param(request, "productID")

	validator := &validate.Validator{}
	validator.UUID(FieldProductID, productID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	product, err := handler.catalogService.Get(request.Context(), productID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, product)
}

// productRequest is the raw product payload. Price travels as a string and
// is coerced during validation, matching the admin form submission.
type productRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Category    string `json:"category"`
	Color       string `json:"color"`
	Image       string `json:"image"`
}

// validateProduct runs the full product rule set and returns the coerced
// input. Every broken rule is reported in one response.
func validateProduct(input productRequest) (ProductInput, error) {
	var price float64

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MinLen(FieldName, input.Name, NameMinLen).
		MaxLen(FieldName, input.Name, NameMaxLen).
		Required(FieldPrice, input.Price).
		Float(FieldPrice, input.Price, &price).
		MinFloat(FieldPrice, price, 0).
		Required(FieldCategory, input.Category).
		OneOf(FieldCategory, input.Category, Categories()...).
		Required(FieldImage, input.Image)

	if err := validator.Err(); err != nil {
		return ProductInput{}, err
	}

	return ProductInput{
		Name:        input.Name,
		Description: input.Description,
		Price:       price,
		Category:    input.Category,
		Color:       input.Color,
		Image:       input.Image,
	}, nil
}

/*
create adds a new product to the storefront.

POST /api/v1/store/products

Response:
  - 201: Created product
  - 400: Validation failure (per-field details, no store access)
  - 401/403: Denied by the action policy
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input productRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	productInput, err := validateProduct(input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	product, err := handler.catalogService.Create(request.Context(), requestutil.Claims(request), productInput)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, product)
}

// update replaces a product's fields.
//
// PUT /api/v1/store/products/{productID}
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	productID := requestutil.Param(request, "productID")

	var input productRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.UUID(FieldProductID, productID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	productInput, err := validateProduct(input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	product, err := handler.catalogService.Update(request.Context(), requestutil.Claims(request), productID, productInput)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, product)
}

// remove deletes a product.
//
// DELETE /api/v1/store/products/{productID}
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	productID := requestutil.Param(request, "productID")

	validator := &validate.Validator{}
	validator.UUID(FieldProductID, productID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.catalogService.Delete(request.Context(), requestutil.Claims(request), productID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
