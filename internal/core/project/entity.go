// Package project manages developer portfolio projects.
//
// A project is a showcase entry owned by a developer: a title, a description,
// and an optional link to the deployed work. Clients browse these when
// choosing who to hire.
package project

import "time"

// Project represents a single portfolio entry.
type Project struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ProjectURL  *string   `json:"project_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Field names used in validation errors.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldProjectURL  = "project_url"
)
