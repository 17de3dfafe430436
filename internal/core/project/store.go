package project

import (
	"context"

	"github.com/workbay/workbay/pkg/pagination"
)

type Repository interface {
	Create(context context.Context, project *Project) error
	FindByID(context context.Context, id string) (*Project, error)
	ListByOwner(context context.Context, ownerID string, params pagination.Params) ([]*Project, int, error)
	Update(context context.Context, project *Project) error
	Delete(context context.Context, id string) error
}
