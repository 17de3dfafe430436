package video

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/workbay/workbay/internal/platform/apperr"
	"github.com/workbay/workbay/pkg/pagination"
	"github.com/workbay/workbay/pkg/uuidv7"
)

// ObjectStore is the blob storage surface the service needs.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) error
	PresignGet(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type Service struct {
	repo    Repository
	votes   VoteRepository
	views   ViewCounter
	storage ObjectStore
	logger  *slog.Logger
}

func NewService(repo Repository, votes VoteRepository, views ViewCounter, storage ObjectStore, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		votes:   votes,
		views:   views,
		storage: storage,
		logger:  logger,
	}
}

type UploadInput struct {
	Title       string
	Description string
	ContentType string
	SizeBytes   int64
	Body        io.Reader
}

// Upload streams the file into object storage, then records its metadata.
// If the metadata write fails, the uploaded object is removed again so the
// bucket never accumulates orphans.
func (service *Service) Upload(context context.Context, ownerID string, input UploadInput) (*Video, error) {
	if !strings.HasPrefix(input.ContentType, "video/") {
		return nil, apperr.Unprocessable("File must be a video")
	}

	if input.SizeBytes > MaxUploadBytes {
		return nil, apperr.Unprocessable("Video exceeds the upload size limit")
	}

	id := uuidv7.New()
	now := time.Now()
	objectKey := fmt.Sprintf("videos/%d/%02d/%s", now.Year(), now.Month(), id)

	if err := service.storage.Put(context, objectKey, input.Body, input.ContentType); err != nil {
		return nil, apperr.BadGateway("Video storage is unavailable", err)
	}

	video := &Video{
		ID:          id,
		OwnerID:     ownerID,
		Title:       input.Title,
		Description: input.Description,
		ObjectKey:   objectKey,
		ContentType: input.ContentType,
		SizeBytes:   input.SizeBytes,
	}

	if err := service.repo.Create(context, video); err != nil {
		if cleanupErr := service.storage.Delete(context, objectKey); cleanupErr != nil {
			service.logger.ErrorContext(context, "video_orphan_cleanup_failed",
				slog.String("object_key", objectKey),
				slog.Any("error", cleanupErr))
		}
		return nil, err
	}

	service.logger.InfoContext(context, "video_uploaded",
		slog.String("video_id", id),
		slog.String("owner_id", ownerID),
		slog.Int64("size_bytes", input.SizeBytes))

	return video, nil
}

// Playback returns the video metadata plus a presigned URL, and counts
// the view.
func (service *Service) Playback(context context.Context, videoID string) (*PlaybackInfo, error) {
	video, err := service.hydrate(context, videoID)
	if err != nil {
		return nil, err
	}

	url, err := service.storage.PresignGet(context, video.ObjectKey)
	if err != nil {
		return nil, apperr.BadGateway("Video storage is unavailable", err)
	}

	views, err := service.views.Increment(context, videoID)
	if err != nil {
		// A broken counter must not block playback.
		service.logger.WarnContext(context, "video_view_count_failed",
			slog.String("video_id", videoID),
			slog.Any("error", err))
	}

	return &PlaybackInfo{Video: video, URL: url, Views: views}, nil
}

func (service *Service) Get(context context.Context, videoID string) (*Video, error) {
	return service.hydrate(context, videoID)
}

func (service *Service) ListByOwner(context context.Context, ownerID string, params pagination.Params) ([]*Video, int, error) {
	return service.repo.ListByOwner(context, ownerID, params)
}

func (service *Service) ListRecent(context context.Context, params pagination.Params) ([]*Video, int, error) {
	return service.repo.ListRecent(context, params)
}

// Delete removes a video's metadata and its stored object. Only the owner
// may delete.
func (service *Service) Delete(context context.Context, videoID, callerID string) error {
	video, err := service.repo.FindByID(context, videoID)
	if err != nil {
		return err
	}

	if video.OwnerID != callerID {
		return apperr.Forbidden("You do not own this video")
	}

	if err := service.repo.Delete(context, videoID); err != nil {
		return err
	}

	if err := service.storage.Delete(context, video.ObjectKey); err != nil {
		// Metadata is gone; the stray object is logged for manual cleanup.
		service.logger.ErrorContext(context, "video_object_delete_failed",
			slog.String("object_key", video.ObjectKey),
			slog.Any("error", err))
	}

	return nil
}

// Like records the caller's vote. Voting twice is a conflict.
func (service *Service) Like(context context.Context, videoID, userID string) error {
	if _, err := service.repo.FindByID(context, videoID); err != nil {
		return err
	}

	added, err := service.votes.Add(context, videoID, userID)
	if err != nil {
		return err
	}
	if !added {
		return apperr.Conflict("You have already liked this video")
	}

	return nil
}

// Unlike removes the caller's vote. Removing a vote that does not exist is
// a not-found.
func (service *Service) Unlike(context context.Context, videoID, userID string) error {
	removed, err := service.votes.Remove(context, videoID, userID)
	if err != nil {
		return err
	}
	if !removed {
		return apperr.NotFound("Vote")
	}

	return nil
}

// hydrate loads a video and fills its like count.
func (service *Service) hydrate(context context.Context, videoID string) (*Video, error) {
	video, err := service.repo.FindByID(context, videoID)
	if err != nil {
		return nil, err
	}

	likes, err := service.repo.CountLikes(context, videoID)
	if err != nil {
		return nil, err
	}
	video.Likes = likes

	return video, nil
}
