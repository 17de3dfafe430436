// Package video manages developer showcase videos.
//
// Binaries live in S3-compatible object storage; PostgreSQL holds only
// metadata and object keys. Playback happens through short-lived presigned
// URLs so video bytes never pass through the API.
package video

import "time"

// MaxUploadBytes caps a single video upload (100 MiB).
const MaxUploadBytes = 100 << 20

// Video is the metadata record for one uploaded file.
type Video struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ObjectKey   string    `json:"-"` // Storage location, never exposed.
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	Likes       int       `json:"likes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PlaybackInfo pairs a video with its presigned URL and live view count.
type PlaybackInfo struct {
	Video *Video `json:"video"`
	URL   string `json:"url"`
	Views int64  `json:"views"`
}

// Field names used in validation errors.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldFile        = "file"
)
