// Package marketplace manages ready-made products developers sell directly:
// templates, plugins, and prebuilt applications.
package marketplace

import "time"

// Product lifecycle statuses.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Product is a sellable catalog entry owned by a developer.
type Product struct {
	ID          string    `json:"id"`
	SellerID    string    `json:"seller_id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	Currency    string    `json:"currency"`
	Category    string    `json:"category,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Order records a completed or attempted purchase of a product.
type Order struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	BuyerID    string    `json:"buyer_id"`
	PriceCents int64     `json:"price_cents"`
	Currency   string    `json:"currency"`
	ChargeRef  string    `json:"charge_ref"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// ListFilter narrows the public catalog listing.
type ListFilter struct {
	Category string
	Search   string
	// MaxPriceCents of 0 means no price cap.
	MaxPriceCents int64
}

// Field names used in validation errors.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldPriceCents  = "price_cents"
	FieldCategory    = "category"
	FieldStatus      = "status"
)
