package payment

import (
	"context"

	"github.com/workbay/workbay/pkg/pagination"
)

type DonationRepository interface {
	Create(context context.Context, donation *Donation) error
	FindByID(context context.Context, id string) (*Donation, error)
	List(context context.Context, params pagination.Params) ([]*Donation, int, error)
}
