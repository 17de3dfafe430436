package rating

import (
	"context"
	"time"

	"github.com/workbay/workbay/pkg/pagination"
)

type Repository interface {
	// Upsert inserts the rating or, when the (developer, client) pair
	// already exists, replaces its stars and comment.
	Upsert(context context.Context, rating *Rating) error
	ListByDeveloper(context context.Context, developerID string, params pagination.Params) ([]*Rating, int, error)
	ComputeStats(context context.Context, developerID string) (*Stats, error)
	Delete(context context.Context, developerID, clientID string) error
}

// StatsCache is the volatile layer in front of [Repository.ComputeStats].
type StatsCache interface {
	Get(context context.Context, developerID string) (*Stats, error)
	Set(context context.Context, stats *Stats, ttl time.Duration) error
	Invalidate(context context.Context, developerID string) error
}
