package request

import (
	stdctx "context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/workbay/workbay/internal/platform/middleware"
	requestutil "github.com/workbay/workbay/internal/platform/request"
	"github.com/workbay/workbay/internal/platform/respond"
	"github.com/workbay/workbay/internal/platform/sec"
	"github.com/workbay/workbay/internal/platform/validate"
	"github.com/workbay/workbay/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// All request routes require authentication.
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", handler.listOpen)
		r.Get("/{id}", handler.getRequest)
		r.Get("/mine", handler.listMine)
	})

	// Clients open and close requests
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleClient))
		r.Post("/", handler.createRequest)
		r.Post("/{id}/complete", handler.completeRequest)
		r.Post("/{id}/cancel", handler.cancelRequest)
	})

	// Developers snag and release
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleDeveloper))
		r.Get("/snagged", handler.listSnagged)
		r.Post("/{id}/snag", handler.snagRequest)
		r.Post("/{id}/release", handler.releaseRequest)
	})
}

type createRequestRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	BudgetCents int64  `json:"budget_cents"`
}

func (handler *Handler) createRequest(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequestRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, 200).
		Required(FieldDescription, input.Description).
		Positive(FieldBudgetCents, input.BudgetCents)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.Create(request.Context(), userID, CreateInput{
		Title:       input.Title,
		Description: input.Description,
		BudgetCents: input.BudgetCents,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, item)
}

func (handler *Handler) getRequest(writer http.ResponseWriter, request *http.Request) {
	item, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

func (handler *Handler) listOpen(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	items, total, err := handler.service.ListOpen(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, items, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	items, total, err := handler.service.ListByClient(request.Context(), userID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, items, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) listSnagged(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	items, total, err := handler.service.ListSnaggedBy(request.Context(), userID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, items, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) snagRequest(writer http.ResponseWriter, request *http.Request) {
	handler.transition(writer, request, handler.service.Snag)
}

func (handler *Handler) releaseRequest(writer http.ResponseWriter, request *http.Request) {
	handler.transition(writer, request, handler.service.Release)
}

func (handler *Handler) completeRequest(writer http.ResponseWriter, request *http.Request) {
	handler.transition(writer, request, handler.service.Complete)
}

func (handler *Handler) cancelRequest(writer http.ResponseWriter, request *http.Request) {
	handler.transition(writer, request, handler.service.Cancel)
}

// transition runs one of the lifecycle operations keyed by caller identity.
func (handler *Handler) transition(
	writer http.ResponseWriter,
	request *http.Request,
	operation func(ctx stdctx.Context, requestID, userID string) (*Request, error),
) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := operation(request.Context(), requestutil.ID(request, "id"), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}
