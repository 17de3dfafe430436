// Package payment records money movement: marketplace charges and
// platform donations.
//
// The actual card processing happens at an external provider; this package
// keeps the ledger and abstracts the provider behind an interface so the
// rest of the system never touches provider SDKs directly.
package payment

import "time"

// Charge statuses as reported by the provider.
const (
	ChargeStatusPending   = "pending"
	ChargeStatusSucceeded = "succeeded"
	ChargeStatusFailed    = "failed"
)

// Donation is a voluntary contribution to the platform. Donor and project
// are both optional: anonymous and undirected donations are allowed.
type Donation struct {
	ID          string    `json:"id"`
	DonorID     *string   `json:"donor_id,omitempty"`
	ProjectID   *string   `json:"project_id,omitempty"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	Message     string    `json:"message,omitempty"`
	ChargeRef   string    `json:"charge_ref"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// Field names used in validation errors.
const (
	FieldAmountCents = "amount_cents"
	FieldCurrency    = "currency"
	FieldMessage     = "message"
)
