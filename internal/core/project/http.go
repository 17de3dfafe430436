package project

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
	router.Get("/{id}", handler.getProject)
	router.Get("/by-owner/{ownerID}", handler.listByOwner)

	// Developer-only writes
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleDeveloper))
		r.Post("/", handler.createProject)
		r.Patch("/{id}", handler.updateProject)
		r.Delete("/{id}", handler.deleteProject)
	})
}

type createProjectRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ProjectURL  *string `json:"project_url"`
}

type updateProjectRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ProjectURL  *string `json:"project_url"`
}

func (handler *Handler) createProject(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createProjectRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, 200).
		Required(FieldDescription, input.Description)
	if input.ProjectURL != nil {
		validator.URL(FieldProjectURL, *input.ProjectURL)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	project, err := handler.service.Create(request.Context(), userID, CreateInput{
		Title:       input.Title,
		Description: input.Description,
		ProjectURL:  input.ProjectURL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, project)
}

func (handler *Handler) getProject(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	project, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, project)
}

func (handler *Handler) listByOwner(writer http.ResponseWriter, request *http.Request) {
	ownerID := requestutil.ID(request, "ownerID")
	params := pagination.FromRequest(request)

	projects, total, err := handler.service.ListByOwner(request.Context(), ownerID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, projects, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) updateProject(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProjectRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Title != nil {
		validator.Required(FieldTitle, *input.Title).
			MaxLen(FieldTitle, *input.Title, 200)
	}
	if input.ProjectURL != nil {
		validator.URL(FieldProjectURL, *input.ProjectURL)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	project, err := handler.service.Update(request.Context(), requestutil.ID(request, "id"), userID, UpdateInput{
		Title:       input.Title,
		Description: input.Description,
		ProjectURL:  input.ProjectURL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, project)
}

func (handler *Handler) deleteProject(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), requestutil.ID(request, "id"), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
