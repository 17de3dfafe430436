package payment

import (
	"context"
	"log/slog"

	"github.com/workbay/workbay/internal/platform/apperr"
	"github.com/workbay/workbay/pkg/pagination"
	"github.com/workbay/workbay/pkg/uuidv7"
)

type Service struct {
	donations DonationRepository
	provider  Provider
	logger    *slog.Logger
}

func NewService(donations DonationRepository, provider Provider, logger *slog.Logger) *Service {
	return &Service{
		donations: donations,
		provider:  provider,
		logger:    logger,
	}
}

type DonateInput struct {
	DonorID     *string // nil for anonymous donations
	ProjectID   *string // nil for undirected donations
	AmountCents int64
	Currency    string
	Message     string
}

// Donate charges the donor at the provider and records the result in the
// ledger. The ledger row is written regardless of charge outcome so failed
// attempts remain auditable.
func (service *Service) Donate(context context.Context, input DonateInput) (*Donation, error) {
	if input.AmountCents <= 0 {
		return nil, apperr.Unprocessable("Donation amount must be positive")
	}

	customerRef := ""
	if input.DonorID != nil {
		customerRef = *input.DonorID
	}

	result, err := service.provider.CreateCharge(context, ChargeInput{
		AmountCents: input.AmountCents,
		Currency:    input.Currency,
		Description: "Workbay donation",
		CustomerRef: customerRef,
	})
	if err != nil {
		return nil, apperr.BadGateway("Payment provider rejected the charge", err)
	}

	donation := &Donation{
		ID:          uuidv7.New(),
		DonorID:     input.DonorID,
		ProjectID:   input.ProjectID,
		AmountCents: input.AmountCents,
		Currency:    input.Currency,
		Message:     input.Message,
		ChargeRef:   result.Reference,
		Status:      result.Status,
	}

	if err := service.donations.Create(context, donation); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "donation_recorded",
		slog.String("donation_id", donation.ID),
		slog.Int64("amount_cents", donation.AmountCents),
		slog.String("status", donation.Status))

	return donation, nil
}

func (service *Service) Get(context context.Context, id string) (*Donation, error) {
	return service.donations.FindByID(context, id)
}

func (service *Service) List(context context.Context, params pagination.Params) ([]*Donation, int, error) {
	return service.donations.List(context, params)
}
