package payment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/workbay/workbay/internal/platform/middleware"
	requestutil "github.com/workbay/workbay/internal/platform/request"
	"github.com/workbay/workbay/internal/platform/respond"
	"github.com/workbay/workbay/internal/platform/sec"
	"github.com/workbay/workbay/internal/platform/validate"
	"github.com/workbay/workbay/pkg/pagination"
	"github.com/workbay/workbay/pkg/pointer"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Donations may be anonymous, so the endpoint stays public. If the
	// caller is authenticated, the donation is attributed to them.
	router.Post("/donations", handler.donate)

	// Admin-only ledger access
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Get("/donations", handler.listDonations)
		r.Get("/donations/{id}", handler.getDonation)
	})
}

type donateRequest struct {
	ProjectID   *string `json:"project_id"`
	AmountCents int64   `json:"amount_cents"`
	Currency    string  `json:"currency"`
	Message     string  `json:"message"`
}

func (handler *Handler) donate(writer http.ResponseWriter, request *http.Request) {
	var input donateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if input.Currency == "" {
		input.Currency = "usd"
	}

	validator := &validate.Validator{}
	validator.Positive(FieldAmountCents, input.AmountCents).
		MaxLen(FieldMessage, input.Message, 500)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var donorID *string
	if principal := requestutil.Principal(request); principal != nil {
		donorID = pointer.To(principal.UserID)
	}

	donation, err := handler.service.Donate(request.Context(), DonateInput{
		DonorID:     donorID,
		ProjectID:   input.ProjectID,
		AmountCents: input.AmountCents,
		Currency:    input.Currency,
		Message:     input.Message,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, donation)
}

func (handler *Handler) listDonations(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	donations, total, err := handler.service.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, donations, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getDonation(writer http.ResponseWriter, request *http.Request) {
	donation, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, donation)
}
