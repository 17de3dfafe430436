package request

import (
	"context"
	"log/slog"
	"time"

	"github.com/workbay/workbay/internal/platform/apperr"
	"github.com/workbay/workbay/pkg/pagination"
	"github.com/workbay/workbay/pkg/uuidv7"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

type CreateInput struct {
	Title       string
	Description string
	BudgetCents int64
}

// Create opens a new work request after screening its text for secrets.
func (service *Service) Create(context context.Context, clientID string, input CreateInput) (*Request, error) {
	if err := screenContent(input.Title, input.Description); err != nil {
		service.logger.WarnContext(context, "request_screen_rejected",
			slog.String("client_id", clientID))
		return nil, err
	}

	item := &Request{
		ID:          uuidv7.New(),
		ClientID:    clientID,
		Title:       input.Title,
		Description: input.Description,
		BudgetCents: input.BudgetCents,
		Status:      StatusOpen,
	}

	if err := service.repo.Create(context, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (service *Service) Get(context context.Context, id string) (*Request, error) {
	return service.repo.FindByID(context, id)
}

func (service *Service) ListOpen(context context.Context, params pagination.Params) ([]*Request, int, error) {
	return service.repo.ListOpen(context, params)
}

func (service *Service) ListByClient(context context.Context, clientID string, params pagination.Params) ([]*Request, int, error) {
	return service.repo.ListByClient(context, clientID, params)
}

func (service *Service) ListSnaggedBy(context context.Context, developerID string, params pagination.Params) ([]*Request, int, error) {
	return service.repo.ListSnaggedBy(context, developerID, params)
}

// Snag claims an open request for the developer. Developers cannot snag
// their own requests, and a request can only be held by one developer.
func (service *Service) Snag(context context.Context, requestID, developerID string) (*Request, error) {
	item, err := service.repo.FindByID(context, requestID)
	if err != nil {
		return nil, err
	}

	if item.ClientID == developerID {
		return nil, apperr.Forbidden("You cannot snag your own request")
	}

	switch item.Status {
	case StatusOpen:
		// eligible
	case StatusSnagged:
		return nil, apperr.Conflict("Request is already snagged")
	default:
		return nil, apperr.Conflict("Request is closed")
	}

	claimed, err := service.repo.Snag(context, requestID, developerID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		// Lost the race to another developer between the read and the claim.
		return nil, apperr.Conflict("Request is already snagged")
	}

	service.logger.InfoContext(context, "request_snagged",
		slog.String("request_id", requestID),
		slog.String("developer_id", developerID))

	return service.repo.FindByID(context, requestID)
}

// Release returns a snagged request to the open pool. Only the developer
// currently holding it may release.
func (service *Service) Release(context context.Context, requestID, developerID string) (*Request, error) {
	item, err := service.repo.FindByID(context, requestID)
	if err != nil {
		return nil, err
	}

	if item.Status != StatusSnagged {
		return nil, apperr.Conflict("Request is not snagged")
	}

	if item.SnaggedBy == nil || *item.SnaggedBy != developerID {
		return nil, apperr.Forbidden("Request is snagged by another developer")
	}

	item.Status = StatusOpen
	item.SnaggedBy = nil
	item.SnaggedAt = nil

	if err := service.repo.Update(context, item); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "request_released",
		slog.String("request_id", requestID),
		slog.String("developer_id", developerID))

	return item, nil
}

// Complete closes a snagged request. Only the owning client may mark done.
func (service *Service) Complete(context context.Context, requestID, clientID string) (*Request, error) {
	return service.close(context, requestID, clientID, StatusCompleted, StatusSnagged)
}

// Cancel withdraws a request. Only the owning client may cancel, and only
// while the work is not completed.
func (service *Service) Cancel(context context.Context, requestID, clientID string) (*Request, error) {
	item, err := service.repo.FindByID(context, requestID)
	if err != nil {
		return nil, err
	}

	if item.ClientID != clientID {
		return nil, apperr.Forbidden("You do not own this request")
	}

	if item.Status == StatusCompleted || item.Status == StatusCancelled {
		return nil, apperr.Conflict("Request is already closed")
	}

	item.Status = StatusCancelled
	if err := service.repo.Update(context, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (service *Service) close(context context.Context, requestID, clientID, target, required string) (*Request, error) {
	item, err := service.repo.FindByID(context, requestID)
	if err != nil {
		return nil, err
	}

	if item.ClientID != clientID {
		return nil, apperr.Forbidden("You do not own this request")
	}

	if item.Status != required {
		return nil, apperr.Conflict("Request must be snagged before completion")
	}

	item.Status = target
	now := time.Now()
	item.UpdatedAt = now

	if err := service.repo.Update(context, item); err != nil {
		return nil, err
	}

	return item, nil
}
