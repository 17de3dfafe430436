package marketplace

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/workbay/workbay/internal/platform/middleware"
	requestutil "github.com/workbay/workbay/internal/platform/request"
	"github.com/workbay/workbay/internal/platform/respond"
	"github.com/workbay/workbay/internal/platform/sec"
	"github.com/workbay/workbay/internal/platform/validate"
	"github.com/workbay/workbay/pkg/pagination"
	"github.com/workbay/workbay/pkg/query"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public catalog
	router.Get("/products", handler.listProducts)
	router.Get("/products/by-slug/{slug}", handler.getProductBySlug)

	// Seller catalog management
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleDeveloper))
		r.Post("/products", handler.createProduct)
		r.Get("/products/mine", handler.listMyProducts)
		r.Patch("/products/{id}", handler.updateProduct)
	})

	// Buying
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/products/{id}/purchase", handler.purchase)
		r.Get("/orders", handler.listOrders)
	})
}

type createProductRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	Currency    string `json:"currency"`
	Category    string `json:"category"`
}

type updateProductRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	PriceCents  *int64  `json:"price_cents"`
	Category    *string `json:"category"`
	Status      *string `json:"status"`
}

func (handler *Handler) createProduct(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createProductRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if input.Currency == "" {
		input.Currency = "usd"
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, 200).
		Required(FieldDescription, input.Description).
		Positive(FieldPriceCents, input.PriceCents).
		MaxLen(FieldCategory, input.Category, 50)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	product, err := handler.service.CreateProduct(request.Context(), userID, CreateProductInput{
		Title:       input.Title,
		Description: input.Description,
		PriceCents:  input.PriceCents,
		Currency:    input.Currency,
		Category:    input.Category,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, product)
}

func (handler *Handler) getProductBySlug(writer http.ResponseWriter, request *http.Request) {
	product, err := handler.service.GetBySlug(request.Context(), chi.URLParam(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, product)
}

func (handler *Handler) listProducts(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	values := request.URL.Query()

	filter := ListFilter{
		Category:      values.Get("category"),
		Search:        values.Get("q"),
		MaxPriceCents: int64(query.IntD(values.Get("max_price_cents"), 0)),
	}

	products, total, err := handler.service.ListPublished(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, products, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) listMyProducts(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	products, total, err := handler.service.ListBySeller(request.Context(), userID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, products, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) updateProduct(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProductRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Title != nil {
		validator.Required(FieldTitle, *input.Title).
			MaxLen(FieldTitle, *input.Title, 200)
	}
	if input.PriceCents != nil {
		validator.Positive(FieldPriceCents, *input.PriceCents)
	}
	if input.Status != nil {
		validator.OneOf(FieldStatus, *input.Status, StatusDraft, StatusPublished, StatusArchived)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	product, err := handler.service.UpdateProduct(request.Context(), requestutil.ID(request, "id"), userID, UpdateProductInput{
		Title:       input.Title,
		Description: input.Description,
		PriceCents:  input.PriceCents,
		Category:    input.Category,
		Status:      input.Status,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, product)
}

func (handler *Handler) purchase(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	order, err := handler.service.Purchase(request.Context(), requestutil.ID(request, "id"), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, order)
}

func (handler *Handler) listOrders(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	orders, total, err := handler.service.ListOrders(request.Context(), userID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, orders, pagination.NewMeta(params.Page, params.Limit, total))
}
