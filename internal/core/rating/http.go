package rating

import (
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
	// Public reads
	router.Get("/developer/{developerID}", handler.listForDeveloper)
	router.Get("/developer/{developerID}/stats", handler.statsForDeveloper)

	// Client-only writes
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleClient))
		r.Put("/developer/{developerID}", handler.rate)
		r.Delete("/developer/{developerID}", handler.unrate)
	})
}

type rateRequest struct {
	Stars   int    `json:"stars"`
	Comment string `json:"comment"`
}

func (handler *Handler) rate(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input rateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Range(FieldStars, input.Stars, MinStars, MaxStars).
		MaxLen(FieldComment, input.Comment, 1000)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	rating, err := handler.service.Rate(request.Context(), userID, RateInput{
		DeveloperID: requestutil.ID(request, "developerID"),
		Stars:       input.Stars,
		Comment:     input.Comment,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, rating)
}

func (handler *Handler) unrate(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Unrate(request.Context(), userID, requestutil.ID(request, "developerID")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func (handler *Handler) listForDeveloper(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	ratings, total, err := handler.service.ListByDeveloper(
		request.Context(), requestutil.ID(request, "developerID"), params,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, ratings, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) statsForDeveloper(writer http.ResponseWriter, request *http.Request) {
	stats, err := handler.service.Stats(request.Context(), requestutil.ID(request, "developerID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stats)
}
