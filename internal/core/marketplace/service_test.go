package marketplace_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workbay/workbay/internal/core/marketplace"
	"github.com/workbay/workbay/internal/core/payment"
	"github.com/workbay/workbay/internal/platform/apperr"
	"github.com/workbay/workbay/pkg/pagination"
)

type fakeProductRepository struct {
	products map[string]*marketplace.Product
}

func newFakeProductRepository() *fakeProductRepository {
	return &fakeProductRepository{products: map[string]*marketplace.Product{}}
}

func (f *fakeProductRepository) Create(_ context.Context, product *marketplace.Product) error {
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepository) FindByID(_ context.Context, id string) (*marketplace.Product, error) {
	if product, ok := f.products[id]; ok {
		copied := *product
		return &copied, nil
	}
	return nil, apperr.NotFound("Product")
}

func (f *fakeProductRepository) FindBySlug(_ context.Context, slug string) (*marketplace.Product, error) {
	for _, product := range f.products {
		if product.Slug == slug {
			copied := *product
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Product")
}

func (f *fakeProductRepository) ListPublished(_ context.Context, filter marketplace.ListFilter, _ pagination.Params) ([]*marketplace.Product, int, error) {
	var items []*marketplace.Product
	for _, product := range f.products {
		if product.Status != marketplace.StatusPublished {
			continue
		}
		if filter.Category != "" && product.Category != filter.Category {
			continue
		}
		if filter.MaxPriceCents > 0 && product.PriceCents > filter.MaxPriceCents {
			continue
		}
		items = append(items, product)
	}
	return items, len(items), nil
}

func (f *fakeProductRepository) ListBySeller(_ context.Context, sellerID string, _ pagination.Params) ([]*marketplace.Product, int, error) {
	var items []*marketplace.Product
	for _, product := range f.products {
		if product.SellerID == sellerID {
			items = append(items, product)
		}
	}
	return items, len(items), nil
}

func (f *fakeProductRepository) Update(_ context.Context, product *marketplace.Product) error {
	if _, ok := f.products[product.ID]; !ok {
		return apperr.NotFound("Product")
	}
	copied := *product
	f.products[product.ID] = &copied
	return nil
}

type fakeOrderRepository struct {
	orders map[string]*marketplace.Order
}

func newFakeOrderRepository() *fakeOrderRepository {
	return &fakeOrderRepository{orders: map[string]*marketplace.Order{}}
}

func (f *fakeOrderRepository) Create(_ context.Context, order *marketplace.Order) error {
	f.orders[order.ID] = order
	return nil
}

func (f *fakeOrderRepository) FindByID(_ context.Context, id string) (*marketplace.Order, error) {
	if order, ok := f.orders[id]; ok {
		return order, nil
	}
	return nil, apperr.NotFound("Order")
}

func (f *fakeOrderRepository) ListByBuyer(_ context.Context, buyerID string, _ pagination.Params) ([]*marketplace.Order, int, error) {
	var items []*marketplace.Order
	for _, order := range f.orders {
		if order.BuyerID == buyerID {
			items = append(items, order)
		}
	}
	return items, len(items), nil
}

// fakeProvider records charges and can be flipped into failure mode.
type fakeProvider struct {
	charges []payment.ChargeInput
	fail    bool
}

func (f *fakeProvider) CreateCharge(_ context.Context, input payment.ChargeInput) (*payment.ChargeResult, error) {
	if f.fail {
		return nil, errors.New("processor timeout")
	}
	f.charges = append(f.charges, input)
	return &payment.ChargeResult{Reference: "ch_test_1", Status: payment.ChargeStatusSucceeded}, nil
}

func newTestService() (*marketplace.Service, *fakeProductRepository, *fakeOrderRepository, *fakeProvider) {
	products := newFakeProductRepository()
	orders := newFakeOrderRepository()
	provider := &fakeProvider{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return marketplace.NewService(products, orders, provider, logger), products, orders, provider
}

func createProduct(t *testing.T, service *marketplace.Service, sellerID string) *marketplace.Product {
	t.Helper()
	product, err := service.CreateProduct(context.Background(), sellerID, marketplace.CreateProductInput{
		Title:       "React Admin Dashboard",
		Description: "A prebuilt admin panel with auth wired in.",
		PriceCents:  4900,
		Currency:    "usd",
		Category:    "templates",
	})
	require.NoError(t, err)
	return product
}

func publish(t *testing.T, service *marketplace.Service, product *marketplace.Product) *marketplace.Product {
	t.Helper()
	status := marketplace.StatusPublished
	updated, err := service.UpdateProduct(context.Background(), product.ID, product.SellerID,
		marketplace.UpdateProductInput{Status: &status})
	require.NoError(t, err)
	return updated
}

/*
TestCreateProduct verifies new products start as drafts with a derived,
suffixed slug.
*/
func TestCreateProduct(t *testing.T) {
	service, _, _, _ := newTestService()

	product := createProduct(t, service, "dev-1")

	assert.Equal(t, marketplace.StatusDraft, product.Status)
	assert.True(t, strings.HasPrefix(product.Slug, "react-admin-dashboard-"), "slug %q", product.Slug)
	// The suffix is the tail of the time-sortable ID.
	assert.True(t, strings.HasSuffix(product.Slug, product.ID[len(product.ID)-8:]))

	// Two products with the same title never share a slug.
	other := createProduct(t, service, "dev-1")
	assert.NotEqual(t, product.Slug, other.Slug)
}

/*
TestGetBySlug verifies the public lookup resolves published products only.
*/
func TestGetBySlug(t *testing.T) {
	service, _, _, _ := newTestService()
	product := createProduct(t, service, "dev-1")

	// Draft products are invisible to the public lookup.
	_, err := service.GetBySlug(context.Background(), product.Slug)
	require.Error(t, err)
	assert.Equal(t, 404, apperr.As(err).HTTPStatus)

	publish(t, service, product)

	found, err := service.GetBySlug(context.Background(), product.Slug)
	require.NoError(t, err)
	assert.Equal(t, product.ID, found.ID)

	// Archiving hides it again.
	archived := marketplace.StatusArchived
	_, err = service.UpdateProduct(context.Background(), product.ID, "dev-1",
		marketplace.UpdateProductInput{Status: &archived})
	require.NoError(t, err)

	_, err = service.GetBySlug(context.Background(), product.Slug)
	require.Error(t, err)
	assert.Equal(t, 404, apperr.As(err).HTTPStatus)
}

/*
TestUpdateProduct verifies seller-only mutation and the status whitelist.
*/
func TestUpdateProduct(t *testing.T) {
	service, _, _, _ := newTestService()
	product := createProduct(t, service, "dev-1")

	// Someone else's catalog is off limits.
	title := "Hijacked"
	_, err := service.UpdateProduct(context.Background(), product.ID, "dev-2",
		marketplace.UpdateProductInput{Title: &title})
	require.Error(t, err)
	assert.Equal(t, 403, apperr.As(err).HTTPStatus)

	// Unknown statuses are rejected.
	bogus := "on-sale"
	_, err = service.UpdateProduct(context.Background(), product.ID, "dev-1",
		marketplace.UpdateProductInput{Status: &bogus})
	require.Error(t, err)
	assert.Equal(t, 422, apperr.As(err).HTTPStatus)

	// Partial update touches only the provided fields.
	price := int64(5900)
	updated, err := service.UpdateProduct(context.Background(), product.ID, "dev-1",
		marketplace.UpdateProductInput{PriceCents: &price})
	require.NoError(t, err)
	assert.Equal(t, int64(5900), updated.PriceCents)
	assert.Equal(t, "React Admin Dashboard", updated.Title)
}

/*
TestPurchase_Guards verifies draft products and self-purchases are refused
before any charge is attempted.
*/
func TestPurchase_Guards(t *testing.T) {
	service, _, orders, provider := newTestService()
	product := createProduct(t, service, "dev-1")

	// Drafts cannot be bought.
	_, err := service.Purchase(context.Background(), product.ID, "client-1")
	require.Error(t, err)
	assert.Equal(t, 409, apperr.As(err).HTTPStatus)

	publish(t, service, product)

	// Sellers cannot buy from themselves.
	_, err = service.Purchase(context.Background(), product.ID, "dev-1")
	require.Error(t, err)
	assert.Equal(t, 403, apperr.As(err).HTTPStatus)

	assert.Empty(t, provider.charges)
	assert.Empty(t, orders.orders)
}

/*
TestPurchase_ProviderFailure verifies a processor error surfaces as a bad
gateway and records no order.
*/
func TestPurchase_ProviderFailure(t *testing.T) {
	service, _, orders, provider := newTestService()
	product := publish(t, service, createProduct(t, service, "dev-1"))

	provider.fail = true

	_, err := service.Purchase(context.Background(), product.ID, "client-1")
	require.Error(t, err)
	assert.Equal(t, 502, apperr.As(err).HTTPStatus)
	assert.Empty(t, orders.orders)
}

/*
TestPurchase_Success verifies the charge runs with the product's price and the
order ledger captures the provider reference.
*/
func TestPurchase_Success(t *testing.T) {
	service, _, _, provider := newTestService()
	product := publish(t, service, createProduct(t, service, "dev-1"))

	order, err := service.Purchase(context.Background(), product.ID, "client-1")
	require.NoError(t, err)

	assert.Equal(t, product.ID, order.ProductID)
	assert.Equal(t, "client-1", order.BuyerID)
	assert.Equal(t, int64(4900), order.PriceCents)
	assert.Equal(t, "ch_test_1", order.ChargeRef)
	assert.Equal(t, payment.ChargeStatusSucceeded, order.Status)

	require.Len(t, provider.charges, 1)
	assert.Equal(t, int64(4900), provider.charges[0].AmountCents)
	assert.Equal(t, "client-1", provider.charges[0].CustomerRef)

	listed, total, err := service.ListOrders(context.Background(), "client-1", pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, listed, 1)
	assert.Equal(t, order.ID, listed[0].ID)
}
