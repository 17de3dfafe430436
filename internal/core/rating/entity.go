// Package rating manages client ratings of developers.
//
// A client leaves at most one rating per developer; submitting again
// overwrites the previous stars. Aggregate statistics are cached in Redis
// because profile pages read them far more often than clients write them.
package rating

import "time"

const (
	// MinStars and MaxStars bound a rating's value.
	MinStars = 1
	MaxStars = 5
)

// Rating is one client's assessment of one developer.
type Rating struct {
	ID          string    `json:"id"`
	DeveloperID string    `json:"developer_id"`
	ClientID    string    `json:"client_id"`
	Stars       int       `json:"stars"`
	Comment     string    `json:"comment,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Stats is the aggregate view shown on developer profiles.
type Stats struct {
	DeveloperID string  `json:"developer_id"`
	Average     float64 `json:"average"`
	Count       int     `json:"count"`
}

// Field names used in validation errors.
const (
	FieldStars   = "stars"
	FieldComment = "comment"
)
