package marketplace

import (
	"context"

	"github.com/workbay/workbay/pkg/pagination"
)

type ProductRepository interface {
	Create(context context.Context, product *Product) error
	FindByID(context context.Context, id string) (*Product, error)
	FindBySlug(context context.Context, slug string) (*Product, error)
	ListPublished(context context.Context, filter ListFilter, params pagination.Params) ([]*Product, int, error)
	ListBySeller(context context.Context, sellerID string, params pagination.Params) ([]*Product, int, error)
	Update(context context.Context, product *Product) error
}

type OrderRepository interface {
	Create(context context.Context, order *Order) error
	FindByID(context context.Context, id string) (*Order, error)
	ListByBuyer(context context.Context, buyerID string, params pagination.Params) ([]*Order, int, error)
}
