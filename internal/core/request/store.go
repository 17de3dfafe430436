package request

import (
	"context"

	"github.com/workbay/workbay/pkg/pagination"
)

type Repository interface {
	Create(context context.Context, request *Request) error
	FindByID(context context.Context, id string) (*Request, error)
	ListOpen(context context.Context, params pagination.Params) ([]*Request, int, error)
	ListByClient(context context.Context, clientID string, params pagination.Params) ([]*Request, int, error)
	ListSnaggedBy(context context.Context, developerID string, params pagination.Params) ([]*Request, int, error)
	Update(context context.Context, request *Request) error

	// Snag atomically claims an open request for the developer. It returns
	// false when the request was not open (already snagged or closed), which
	// lets concurrent snag attempts race safely at the database level.
	Snag(context context.Context, requestID, developerID string) (bool, error)
}
