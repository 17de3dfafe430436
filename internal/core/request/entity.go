// Package request manages client work requests and their snag lifecycle.
//
// A request starts open, gets snagged (claimed) by exactly one developer,
// and ends completed or cancelled. Snagging is exclusive: a snagged request
// is invisible to other developers until released.
package request

import "time"

// Status values for the request lifecycle.
const (
	StatusOpen      = "open"
	StatusSnagged   = "snagged"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Request represents a unit of work a client wants done.
type Request struct {
	ID          string     `json:"id"`
	ClientID    string     `json:"client_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	BudgetCents int64      `json:"budget_cents"`
	Status      string     `json:"status"`
	SnaggedBy   *string    `json:"snagged_by,omitempty"`
	SnaggedAt   *time.Time `json:"snagged_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Field names used in validation errors.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldBudgetCents = "budget_cents"
)
