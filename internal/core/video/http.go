package video

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/workbay/workbay/internal/platform/apperr"
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
	router.Get("/", handler.listRecent)
	router.Get("/{id}", handler.getVideo)
	router.Get("/{id}/playback", handler.playback)
	router.Get("/by-owner/{ownerID}", handler.listByOwner)

	// Developer uploads
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleDeveloper))
		r.Post("/", handler.upload)
		r.Delete("/{id}", handler.deleteVideo)
	})

	// Voting requires any authenticated member
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/{id}/like", handler.like)
		r.Delete("/{id}/like", handler.unlike)
	})
}

// upload accepts a multipart form: "file" plus "title" and optional
// "description" fields.
func (handler *Handler) upload(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	request.Body = http.MaxBytesReader(writer, request.Body, MaxUploadBytes)
	if err := request.ParseMultipartForm(32 << 20); err != nil {
		respond.Error(writer, request, apperr.ValidationError("Invalid or oversized multipart body"))
		return
	}

	title := request.FormValue("title")
	description := request.FormValue("description")

	validator := &validate.Validator{}
	validator.Required(FieldTitle, title).
		MaxLen(FieldTitle, title, 200).
		MaxLen(FieldDescription, description, 2000)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	file, header, err := request.FormFile("file")
	if err != nil {
		respond.Error(writer, request, validate.RequiredError(FieldFile, "A video file is required"))
		return
	}
	defer file.Close()

	video, err := handler.service.Upload(request.Context(), userID, UploadInput{
		Title:       title,
		Description: description,
		ContentType: header.Header.Get("Content-Type"),
		SizeBytes:   header.Size,
		Body:        file,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, video)
}

func (handler *Handler) getVideo(writer http.ResponseWriter, request *http.Request) {
	video, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, video)
}

func (handler *Handler) playback(writer http.ResponseWriter, request *http.Request) {
	info, err := handler.service.Playback(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, info)
}

func (handler *Handler) listRecent(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	videos, total, err := handler.service.ListRecent(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, videos, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) listByOwner(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	videos, total, err := handler.service.ListByOwner(
		request.Context(), requestutil.ID(request, "ownerID"), params,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, videos, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) deleteVideo(writer http.ResponseWriter, request *http.Request) {
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

func (handler *Handler) like(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Like(request.Context(), requestutil.ID(request, "id"), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]string{"message": "Vote recorded"})
}

func (handler *Handler) unlike(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Unlike(request.Context(), requestutil.ID(request, "id"), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
