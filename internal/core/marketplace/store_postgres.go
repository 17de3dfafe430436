package marketplace

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/workbay/workbay/internal/platform/apperr"
	"github.com/workbay/workbay/internal/platform/dberr"
	"github.com/workbay/workbay/pkg/pagination"
)

type PostgresProductRepository struct {
	db *pgxpool.Pool
}

func NewPostgresProductRepository(db *pgxpool.Pool) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

const productColumns = `id, sellerid, title, slug, description, pricecents, currency, category, status, createdat, updatedat`

func (repository *PostgresProductRepository) Create(context context.Context, product *Product) error {
	const query = `
		INSERT INTO core.product (id, sellerid, title, slug, description, pricecents, currency, category, status, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		product.ID,
		product.SellerID,
		product.Title,
		product.Slug,
		product.Description,
		product.PriceCents,
		product.Currency,
		product.Category,
		product.Status,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Product")
	}

	return nil
}

func (repository *PostgresProductRepository) FindByID(context context.Context, id string) (*Product, error) {
	const query = `
		SELECT ` + productColumns + `
		FROM core.product
		WHERE id = $1`

	return repository.scanOne(context, query, id)
}

func (repository *PostgresProductRepository) FindBySlug(context context.Context, slug string) (*Product, error) {
	const query = `
		SELECT ` + productColumns + `
		FROM core.product
		WHERE slug = $1`

	return repository.scanOne(context, query, slug)
}

// ListPublished builds the catalog query dynamically from the filter. Only
// published products are visible here.
func (repository *PostgresProductRepository) ListPublished(context context.Context, filter ListFilter, params pagination.Params) ([]*Product, int, error) {
	conditions := []string{"status = $1"}
	args := []any{StatusPublished}

	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}

	if filter.MaxPriceCents > 0 {
		args = append(args, filter.MaxPriceCents)
		conditions = append(conditions, fmt.Sprintf("pricecents <= $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	countQuery := `SELECT COUNT(*) FROM core.product WHERE ` + where

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Product")
	}

	args = append(args, params.Limit, params.Offset())
	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM core.product
		WHERE %s
		ORDER BY createdat DESC
		LIMIT $%d OFFSET $%d`, productColumns, where, len(args)-1, len(args))

	rows, err := repository.db.Query(context, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Product")
	}
	defer rows.Close()

	return repository.collect(rows, total)
}

func (repository *PostgresProductRepository) ListBySeller(context context.Context, sellerID string, params pagination.Params) ([]*Product, int, error) {
	const countQuery = `SELECT COUNT(*) FROM core.product WHERE sellerid = $1`

	var total int
	if err := repository.db.QueryRow(context, countQuery, sellerID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Product")
	}

	const query = `
		SELECT ` + productColumns + `
		FROM core.product
		WHERE sellerid = $1
		ORDER BY createdat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.db.Query(context, query, sellerID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Product")
	}
	defer rows.Close()

	return repository.collect(rows, total)
}

func (repository *PostgresProductRepository) Update(context context.Context, product *Product) error {
	const query = `
		UPDATE core.product
		SET title = $2, slug = $3, description = $4, pricecents = $5,
		    currency = $6, category = $7, status = $8, updatedat = $9
		WHERE id = $1`

	product.UpdatedAt = time.Now()

	tag, err := repository.db.Exec(context, query,
		product.ID,
		product.Title,
		product.Slug,
		product.Description,
		product.PriceCents,
		product.Currency,
		product.Category,
		product.Status,
		product.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Product")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Product")
	}

	return nil
}

type productRows interface {
	Next() bool
	Scan(dest ...any) error
}

func (repository *PostgresProductRepository) collect(rows productRows, total int) ([]*Product, int, error) {
	products := make([]*Product, 0)
	for rows.Next() {
		product := &Product{}
		if err := rows.Scan(
			&product.ID,
			&product.SellerID,
			&product.Title,
			&product.Slug,
			&product.Description,
			&product.PriceCents,
			&product.Currency,
			&product.Category,
			&product.Status,
			&product.CreatedAt,
			&product.UpdatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "Product")
		}
		products = append(products, product)
	}

	return products, total, nil
}

func (repository *PostgresProductRepository) scanOne(context context.Context, query string, args ...any) (*Product, error) {
	product := &Product{}
	err := repository.db.QueryRow(context, query, args...).Scan(
		&product.ID,
		&product.SellerID,
		&product.Title,
		&product.Slug,
		&product.Description,
		&product.PriceCents,
		&product.Currency,
		&product.Category,
		&product.Status,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Product")
	}

	return product, nil
}

// # Order Repository

type PostgresOrderRepository struct {
	db *pgxpool.Pool
}

func NewPostgresOrderRepository(db *pgxpool.Pool) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

const orderColumns = `id, productid, buyerid, pricecents, currency, chargeref, status, createdat`

func (repository *PostgresOrderRepository) Create(context context.Context, order *Order) error {
	const query = `
		INSERT INTO core.product_order (id, productid, buyerid, pricecents, currency, chargeref, status, createdat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	order.CreatedAt = time.Now()

	_, err := repository.db.Exec(context, query,
		order.ID,
		order.ProductID,
		order.BuyerID,
		order.PriceCents,
		order.Currency,
		order.ChargeRef,
		order.Status,
		order.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Order")
	}

	return nil
}

func (repository *PostgresOrderRepository) FindByID(context context.Context, id string) (*Order, error) {
	const query = `
		SELECT ` + orderColumns + `
		FROM core.product_order
		WHERE id = $1`

	order := &Order{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&order.ID,
		&order.ProductID,
		&order.BuyerID,
		&order.PriceCents,
		&order.Currency,
		&order.ChargeRef,
		&order.Status,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Order")
	}

	return order, nil
}

func (repository *PostgresOrderRepository) ListByBuyer(context context.Context, buyerID string, params pagination.Params) ([]*Order, int, error) {
	const countQuery = `SELECT COUNT(*) FROM core.product_order WHERE buyerid = $1`

	var total int
	if err := repository.db.QueryRow(context, countQuery, buyerID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Order")
	}

	const query = `
		SELECT ` + orderColumns + `
		FROM core.product_order
		WHERE buyerid = $1
		ORDER BY createdat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.db.Query(context, query, buyerID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Order")
	}
	defer rows.Close()

	orders := make([]*Order, 0)
	for rows.Next() {
		order := &Order{}
		if err := rows.Scan(
			&order.ID,
			&order.ProductID,
			&order.BuyerID,
			&order.PriceCents,
			&order.Currency,
			&order.ChargeRef,
			&order.Status,
			&order.CreatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "Order")
		}
		orders = append(orders, order)
	}

	return orders, total, nil
}
