package rating_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workbay/workbay/internal/core/rating"
	"github.com/workbay/workbay/internal/platform/apperr"
	"github.com/workbay/workbay/pkg/pagination"
)

type pairKey struct{ developerID, clientID string }

// fakeRepository mirrors the one-rating-per-pair upsert of the real store and
// counts ComputeStats calls so cache behavior is observable.
type fakeRepository struct {
	ratings      map[pairKey]*rating.Rating
	computeCalls int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{ratings: map[pairKey]*rating.Rating{}}
}

func (f *fakeRepository) Upsert(_ context.Context, item *rating.Rating) error {
	f.ratings[pairKey{item.DeveloperID, item.ClientID}] = item
	return nil
}

func (f *fakeRepository) ListByDeveloper(_ context.Context, developerID string, _ pagination.Params) ([]*rating.Rating, int, error) {
	var items []*rating.Rating
	for key, item := range f.ratings {
		if key.developerID == developerID {
			items = append(items, item)
		}
	}
	return items, len(items), nil
}

func (f *fakeRepository) ComputeStats(_ context.Context, developerID string) (*rating.Stats, error) {
	f.computeCalls++

	total, count := 0, 0
	for key, item := range f.ratings {
		if key.developerID == developerID {
			total += item.Stars
			count++
		}
	}

	stats := &rating.Stats{DeveloperID: developerID, Count: count}
	if count > 0 {
		stats.Average = float64(total) / float64(count)
	}
	return stats, nil
}

func (f *fakeRepository) Delete(_ context.Context, developerID, clientID string) error {
	key := pairKey{developerID, clientID}
	if _, ok := f.ratings[key]; !ok {
		return apperr.NotFound("Rating")
	}
	delete(f.ratings, key)
	return nil
}

// fakeCache is an in-memory StatsCache with a switch to simulate outages.
type fakeCache struct {
	entries map[string]*rating.Stats
	broken  bool
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]*rating.Stats{}}
}

func (f *fakeCache) Get(_ context.Context, developerID string) (*rating.Stats, error) {
	if f.broken {
		return nil, errCacheDown
	}
	if stats, ok := f.entries[developerID]; ok {
		return stats, nil
	}
	return nil, apperr.NotFound("Rating stats")
}

func (f *fakeCache) Set(_ context.Context, stats *rating.Stats, _ time.Duration) error {
	if f.broken {
		return errCacheDown
	}
	f.sets++
	f.entries[stats.DeveloperID] = stats
	return nil
}

func (f *fakeCache) Invalidate(_ context.Context, developerID string) error {
	if f.broken {
		return errCacheDown
	}
	delete(f.entries, developerID)
	return nil
}

var errCacheDown = errors.New("cache unavailable")

func newTestService() (*rating.Service, *fakeRepository, *fakeCache) {
	repo := newFakeRepository()
	cache := newFakeCache()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return rating.NewService(repo, cache, logger), repo, cache
}

/*
TestRate_Guards verifies self-rating and out-of-range stars are rejected.
*/
func TestRate_Guards(t *testing.T) {
	service, repo, _ := newTestService()

	_, err := service.Rate(context.Background(), "user-1", rating.RateInput{
		DeveloperID: "user-1",
		Stars:       5,
	})
	require.Error(t, err)
	assert.Equal(t, 403, apperr.As(err).HTTPStatus)

	for _, stars := range []int{0, -1, 6, 100} {
		_, err := service.Rate(context.Background(), "client-1", rating.RateInput{
			DeveloperID: "dev-1",
			Stars:       stars,
		})
		require.Error(t, err, "stars=%d", stars)
		assert.Equal(t, 422, apperr.As(err).HTTPStatus)
	}

	assert.Empty(t, repo.ratings)
}

/*
TestRate_UpsertReplacesPriorRating verifies a client re-rating the same
developer replaces the old score instead of stacking a second one.
*/
func TestRate_UpsertReplacesPriorRating(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Rate(context.Background(), "client-1", rating.RateInput{
		DeveloperID: "dev-1",
		Stars:       2,
	})
	require.NoError(t, err)

	_, err = service.Rate(context.Background(), "client-1", rating.RateInput{
		DeveloperID: "dev-1",
		Stars:       5,
		Comment:     "much better after the rework",
	})
	require.NoError(t, err)

	stats, err := service.Stats(context.Background(), "dev-1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Count)
	assert.InDelta(t, 5.0, stats.Average, 0.001)
}

/*
TestStats_CacheFlow verifies the read-through behavior: first call computes
and warms the cache, repeat calls are served without touching the store, and
writes invalidate.
*/
func TestStats_CacheFlow(t *testing.T) {
	service, repo, cache := newTestService()

	_, err := service.Rate(context.Background(), "client-1", rating.RateInput{DeveloperID: "dev-1", Stars: 4})
	require.NoError(t, err)
	_, err = service.Rate(context.Background(), "client-2", rating.RateInput{DeveloperID: "dev-1", Stars: 2})
	require.NoError(t, err)

	// Cold read computes once and warms the cache.
	stats, err := service.Stats(context.Background(), "dev-1")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Count)
	assert.InDelta(t, 3.0, stats.Average, 0.001)
	assert.Equal(t, 1, repo.computeCalls)
	assert.Equal(t, 1, cache.sets)

	// Warm reads never reach the store.
	_, err = service.Stats(context.Background(), "dev-1")
	require.NoError(t, err)
	_, err = service.Stats(context.Background(), "dev-1")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.computeCalls)

	// A new rating invalidates, so the next read recomputes.
	_, err = service.Rate(context.Background(), "client-3", rating.RateInput{DeveloperID: "dev-1", Stars: 3})
	require.NoError(t, err)

	stats, err = service.Stats(context.Background(), "dev-1")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, 2, repo.computeCalls)
}

/*
TestStats_BrokenCacheFallsThrough verifies a cache outage degrades to direct
store reads without surfacing an error.
*/
func TestStats_BrokenCacheFallsThrough(t *testing.T) {
	service, repo, cache := newTestService()

	_, err := service.Rate(context.Background(), "client-1", rating.RateInput{DeveloperID: "dev-1", Stars: 5})
	require.NoError(t, err)

	cache.broken = true

	for i := 0; i < 2; i++ {
		stats, err := service.Stats(context.Background(), "dev-1")
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Count)
	}

	// Every read hits the store while the cache is down.
	assert.Equal(t, 2, repo.computeCalls)
}

/*
TestUnrate verifies removal invalidates the cached aggregate and that deleting
a missing rating reports not found.
*/
func TestUnrate(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Rate(context.Background(), "client-1", rating.RateInput{DeveloperID: "dev-1", Stars: 4})
	require.NoError(t, err)

	// Warm the cache, then remove the rating.
	_, err = service.Stats(context.Background(), "dev-1")
	require.NoError(t, err)

	require.NoError(t, service.Unrate(context.Background(), "client-1", "dev-1"))

	stats, err := service.Stats(context.Background(), "dev-1")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Count)
	assert.InDelta(t, 0.0, stats.Average, 0.001)

	err = service.Unrate(context.Background(), "client-1", "dev-1")
	require.Error(t, err)
	assert.Equal(t, 404, apperr.As(err).HTTPStatus)
}
