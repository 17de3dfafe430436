package video

import (
	"context"

	"github.com/workbay/workbay/pkg/pagination"
)

type Repository interface {
	Create(context context.Context, video *Video) error
	FindByID(context context.Context, id string) (*Video, error)
	ListByOwner(context context.Context, ownerID string, params pagination.Params) ([]*Video, int, error)
	ListRecent(context context.Context, params pagination.Params) ([]*Video, int, error)
	Delete(context context.Context, id string) error

	// CountLikes returns the current vote total for a video.
	CountLikes(context context.Context, videoID string) (int, error)
}

// VoteRepository tracks which users liked which videos.
type VoteRepository interface {
	// Add records a like. Returns false when the user already liked the video.
	Add(context context.Context, videoID, userID string) (bool, error)
	// Remove deletes a like. Returns false when no like existed.
	Remove(context context.Context, videoID, userID string) (bool, error)
}

// ViewCounter tracks playback counts in volatile storage.
type ViewCounter interface {
	Increment(context context.Context, videoID string) (int64, error)
	Get(context context.Context, videoID string) (int64, error)
}
