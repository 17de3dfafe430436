package marketplace

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/workbay/workbay/internal/platform/apperr"
	"github.com/workbay/workbay/internal/core/payment"
	"github.com/workbay/workbay/pkg/pagination"
	"github.com/workbay/workbay/pkg/slug"
	"github.com/workbay/workbay/pkg/uuidv7"
)

type Service struct {
	products ProductRepository
	orders   OrderRepository
	provider payment.Provider
	logger   *slog.Logger
}

func NewService(products ProductRepository, orders OrderRepository, provider payment.Provider, logger *slog.Logger) *Service {
	return &Service{
		products: products,
		orders:   orders,
		provider: provider,
		logger:   logger,
	}
}

type CreateProductInput struct {
	Title       string
	Description string
	PriceCents  int64
	Currency    string
	Category    string
}

type UpdateProductInput struct {
	Title       *string
	Description *string
	PriceCents  *int64
	Category    *string
	Status      *string
}

// CreateProduct registers a new draft product. The slug derives from the
// title with a short random suffix to dodge collisions.
func (service *Service) CreateProduct(context context.Context, sellerID string, input CreateProductInput) (*Product, error) {
	id := uuidv7.New()

	product := &Product{
		ID:          id,
		SellerID:    sellerID,
		Title:       input.Title,
		Slug:        fmt.Sprintf("%s-%s", slug.From(input.Title), id[len(id)-8:]),
		Description: input.Description,
		PriceCents:  input.PriceCents,
		Currency:    input.Currency,
		Category:    input.Category,
		Status:      StatusDraft,
	}

	if err := service.products.Create(context, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (service *Service) GetBySlug(context context.Context, productSlug string) (*Product, error) {
	product, err := service.products.FindBySlug(context, productSlug)
	if err != nil {
		return nil, err
	}

	// Drafts and archived products resolve only for their seller via
	// ListBySeller; the public lookup hides them.
	if product.Status != StatusPublished {
		return nil, apperr.NotFound("Product")
	}

	return product, nil
}

func (service *Service) ListPublished(context context.Context, filter ListFilter, params pagination.Params) ([]*Product, int, error) {
	return service.products.ListPublished(context, filter, params)
}

func (service *Service) ListBySeller(context context.Context, sellerID string, params pagination.Params) ([]*Product, int, error) {
	return service.products.ListBySeller(context, sellerID, params)
}

// UpdateProduct mutates a product. Only the seller may change their catalog.
func (service *Service) UpdateProduct(context context.Context, productID, sellerID string, input UpdateProductInput) (*Product, error) {
	product, err := service.products.FindByID(context, productID)
	if err != nil {
		return nil, err
	}

	if product.SellerID != sellerID {
		return nil, apperr.Forbidden("You do not own this product")
	}

	if input.Title != nil {
		product.Title = *input.Title
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.PriceCents != nil {
		product.PriceCents = *input.PriceCents
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Status != nil {
		switch *input.Status {
		case StatusDraft, StatusPublished, StatusArchived:
			product.Status = *input.Status
		default:
			return nil, apperr.Unprocessable("Status must be draft, published, or archived")
		}
	}

	if err := service.products.Update(context, product); err != nil {
		return nil, err
	}

	return product, nil
}

// Purchase charges the buyer for a published product and records the order.
//
// Sellers cannot buy their own products, and only published products can
// be purchased.
func (service *Service) Purchase(context context.Context, productID, buyerID string) (*Order, error) {
	product, err := service.products.FindByID(context, productID)
	if err != nil {
		return nil, err
	}

	if product.Status != StatusPublished {
		return nil, apperr.Conflict("Product is not available for purchase")
	}

	if product.SellerID == buyerID {
		return nil, apperr.Forbidden("You cannot purchase your own product")
	}

	result, err := service.provider.CreateCharge(context, payment.ChargeInput{
		AmountCents: product.PriceCents,
		Currency:    product.Currency,
		Description: "Workbay purchase: " + product.Title,
		CustomerRef: buyerID,
	})
	if err != nil {
		return nil, apperr.BadGateway("Payment provider rejected the charge", err)
	}

	order := &Order{
		ID:         uuidv7.New(),
		ProductID:  product.ID,
		BuyerID:    buyerID,
		PriceCents: product.PriceCents,
		Currency:   product.Currency,
		ChargeRef:  result.Reference,
		Status:     result.Status,
	}

	if err := service.orders.Create(context, order); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "product_purchased",
		slog.String("order_id", order.ID),
		slog.String("product_id", product.ID),
		slog.String("buyer_id", buyerID))

	return order, nil
}

func (service *Service) ListOrders(context context.Context, buyerID string, params pagination.Params) ([]*Order, int, error) {
	return service.orders.ListByBuyer(context, buyerID, params)
}
