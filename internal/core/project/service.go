package project

import (
	"context"
	"log/slog"

	"github.com/workbay/workbay/internal/platform/apperr"
	"github.com/workbay/workbay/internal/platform/ctxutil"
	"github.com/workbay/workbay/internal/platform/sec"
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
	ProjectURL  *string
}

type UpdateInput struct {
	Title       *string
	Description *string
	ProjectURL  *string
}

func (service *Service) Create(context context.Context, ownerID string, input CreateInput) (*Project, error) {
	project := &Project{
		ID:          uuidv7.New(),
		OwnerID:     ownerID,
		Title:       input.Title,
		Description: input.Description,
		ProjectURL:  input.ProjectURL,
	}

	if err := service.repo.Create(context, project); err != nil {
		return nil, err
	}

	return project, nil
}

func (service *Service) Get(context context.Context, id string) (*Project, error) {
	return service.repo.FindByID(context, id)
}

func (service *Service) ListByOwner(context context.Context, ownerID string, params pagination.Params) ([]*Project, int, error) {
	return service.repo.ListByOwner(context, ownerID, params)
}

// Update modifies a project. Only the owner may change their own entries.
func (service *Service) Update(context context.Context, id, callerID string, input UpdateInput) (*Project, error) {
	project, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if !service.canMutate(context, project, callerID) {
		return nil, apperr.Forbidden("You do not own this project")
	}

	if input.Title != nil {
		project.Title = *input.Title
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.ProjectURL != nil {
		project.ProjectURL = input.ProjectURL
	}

	if err := service.repo.Update(context, project); err != nil {
		return nil, err
	}

	return project, nil
}

func (service *Service) Delete(context context.Context, id, callerID string) error {
	project, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}

	if !service.canMutate(context, project, callerID) {
		return apperr.Forbidden("You do not own this project")
	}

	return service.repo.Delete(context, id)
}

// canMutate allows the owner, or an admin acting on any entry.
func (service *Service) canMutate(context context.Context, project *Project, callerID string) bool {
	if project.OwnerID == callerID {
		return true
	}

	if principal := ctxutil.GetPrincipal(context); principal != nil {
		return principal.Role.Grants(sec.RoleAdmin)
	}

	return false
}
