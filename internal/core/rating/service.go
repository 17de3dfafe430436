package rating

import (
	"context"
	"log/slog"
	"time"

	"github.com/workbay/workbay/internal/platform/apperr"
	"github.com/workbay/workbay/pkg/pagination"
	"github.com/workbay/workbay/pkg/uuidv7"
)

// statsCacheTTL bounds staleness if an invalidation is ever lost.
const statsCacheTTL = 10 * time.Minute

type Service struct {
	repo   Repository
	cache  StatsCache
	logger *slog.Logger
}

func NewService(repo Repository, cache StatsCache, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

type RateInput struct {
	DeveloperID string
	Stars       int
	Comment     string
}

// Rate records or replaces the caller's rating of a developer.
func (service *Service) Rate(context context.Context, clientID string, input RateInput) (*Rating, error) {
	if input.DeveloperID == clientID {
		return nil, apperr.Forbidden("You cannot rate yourself")
	}

	if input.Stars < MinStars || input.Stars > MaxStars {
		return nil, apperr.Unprocessable("Stars must be between 1 and 5")
	}

	rating := &Rating{
		ID:          uuidv7.New(),
		DeveloperID: input.DeveloperID,
		ClientID:    clientID,
		Stars:       input.Stars,
		Comment:     input.Comment,
	}

	if err := service.repo.Upsert(context, rating); err != nil {
		return nil, err
	}

	service.invalidateStats(context, input.DeveloperID)
	return rating, nil
}

// Unrate removes the caller's rating of a developer.
func (service *Service) Unrate(context context.Context, clientID, developerID string) error {
	if err := service.repo.Delete(context, developerID, clientID); err != nil {
		return err
	}

	service.invalidateStats(context, developerID)
	return nil
}

func (service *Service) ListByDeveloper(context context.Context, developerID string, params pagination.Params) ([]*Rating, int, error) {
	return service.repo.ListByDeveloper(context, developerID, params)
}

// Stats returns the aggregate rating view, served from Redis when warm.
//
// Cache failures fall through to the database: a cold or broken cache
// degrades latency, never correctness.
func (service *Service) Stats(context context.Context, developerID string) (*Stats, error) {
	if cached, err := service.cache.Get(context, developerID); err == nil {
		return cached, nil
	}

	stats, err := service.repo.ComputeStats(context, developerID)
	if err != nil {
		return nil, err
	}

	if err := service.cache.Set(context, stats, statsCacheTTL); err != nil {
		service.logger.WarnContext(context, "rating_stats_cache_set_failed",
			slog.String("developer_id", developerID),
			slog.Any("error", err))
	}

	return stats, nil
}

func (service *Service) invalidateStats(context context.Context, developerID string) {
	if err := service.cache.Invalidate(context, developerID); err != nil {
		service.logger.WarnContext(context, "rating_stats_invalidate_failed",
			slog.String("developer_id", developerID),
			slog.Any("error", err))
	}
}
