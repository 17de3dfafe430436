package payment

import "context"

// ChargeInput describes a single charge to run at the provider.
type ChargeInput struct {
	AmountCents int64
	Currency    string
	Description string
	// CustomerRef is an opaque handle for the paying user, when known.
	CustomerRef string
}

// ChargeResult is the provider's answer for a charge attempt.
type ChargeResult struct {
	// Reference is the provider-side charge identifier, stored in the ledger
	// for reconciliation.
	Reference string
	Status    string
}

// Provider abstracts the external payment processor.
type Provider interface {
	CreateCharge(context context.Context, input ChargeInput) (*ChargeResult, error)
}
