package request

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/workbay/workbay/internal/platform/apperr"
	"github.com/workbay/workbay/internal/platform/dberr"
	"github.com/workbay/workbay/pkg/pagination"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const requestColumns = `id, clientid, title, description, budgetcents, status, snaggedby, snaggedat, createdat, updatedat`

func (repository *PostgresRepository) Create(context context.Context, request *Request) error {
	const query = `
		INSERT INTO core.request (id, clientid, title, description, budgetcents, status, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	now := time.Now()
	request.CreatedAt = now
	request.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		request.ID,
		request.ClientID,
		request.Title,
		request.Description,
		request.BudgetCents,
		request.Status,
		request.CreatedAt,
		request.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Request")
	}

	return nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Request, error) {
	const query = `
		SELECT ` + requestColumns + `
		FROM core.request
		WHERE id = $1`

	return repository.scanOne(context, query, id)
}

func (repository *PostgresRepository) ListOpen(context context.Context, params pagination.Params) ([]*Request, int, error) {
	const countQuery = `SELECT COUNT(*) FROM core.request WHERE status = $1`
	const query = `
		SELECT ` + requestColumns + `
		FROM core.request
		WHERE status = $1
		ORDER BY createdat DESC
		LIMIT $2 OFFSET $3`

	return repository.list(context, countQuery, query, StatusOpen, params)
}

func (repository *PostgresRepository) ListByClient(context context.Context, clientID string, params pagination.Params) ([]*Request, int, error) {
	const countQuery = `SELECT COUNT(*) FROM core.request WHERE clientid = $1`
	const query = `
		SELECT ` + requestColumns + `
		FROM core.request
		WHERE clientid = $1
		ORDER BY createdat DESC
		LIMIT $2 OFFSET $3`

	return repository.list(context, countQuery, query, clientID, params)
}

func (repository *PostgresRepository) ListSnaggedBy(context context.Context, developerID string, params pagination.Params) ([]*Request, int, error) {
	const countQuery = `SELECT COUNT(*) FROM core.request WHERE snaggedby = $1 AND status = 'snagged'`
	const query = `
		SELECT ` + requestColumns + `
		FROM core.request
		WHERE snaggedby = $1 AND status = 'snagged'
		ORDER BY snaggedat DESC
		LIMIT $2 OFFSET $3`

	return repository.list(context, countQuery, query, developerID, params)
}

func (repository *PostgresRepository) Update(context context.Context, request *Request) error {
	const query = `
		UPDATE core.request
		SET title = $2, description = $3, budgetcents = $4, status = $5,
		    snaggedby = $6, snaggedat = $7, updatedat = $8
		WHERE id = $1`

	request.UpdatedAt = time.Now()

	tag, err := repository.db.Exec(context, query,
		request.ID,
		request.Title,
		request.Description,
		request.BudgetCents,
		request.Status,
		request.SnaggedBy,
		request.SnaggedAt,
		request.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Request")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Request")
	}

	return nil
}

// Snag claims an open request via a conditional UPDATE. The WHERE status
// guard makes concurrent claims race safely: exactly one wins.
func (repository *PostgresRepository) Snag(context context.Context, requestID, developerID string) (bool, error) {
	const query = `
		UPDATE core.request
		SET status = $3, snaggedby = $2, snaggedat = $4, updatedat = $4
		WHERE id = $1 AND status = $5`

	tag, err := repository.db.Exec(context, query,
		requestID, developerID, StatusSnagged, time.Now(), StatusOpen,
	)
	if err != nil {
		return false, dberr.Wrap(err, "Request")
	}

	return tag.RowsAffected() == 1, nil
}

func (repository *PostgresRepository) list(context context.Context, countQuery, query string, filter any, params pagination.Params) ([]*Request, int, error) {
	var total int
	if err := repository.db.QueryRow(context, countQuery, filter).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Request")
	}

	rows, err := repository.db.Query(context, query, filter, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Request")
	}
	defer rows.Close()

	requests := make([]*Request, 0)
	for rows.Next() {
		item := &Request{}
		if err := rows.Scan(
			&item.ID,
			&item.ClientID,
			&item.Title,
			&item.Description,
			&item.BudgetCents,
			&item.Status,
			&item.SnaggedBy,
			&item.SnaggedAt,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "Request")
		}
		requests = append(requests, item)
	}

	return requests, total, nil
}

func (repository *PostgresRepository) scanOne(context context.Context, query string, args ...any) (*Request, error) {
	item := &Request{}
	err := repository.db.QueryRow(context, query, args...).Scan(
		&item.ID,
		&item.ClientID,
		&item.Title,
		&item.Description,
		&item.BudgetCents,
		&item.Status,
		&item.SnaggedBy,
		&item.SnaggedAt,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Request")
	}

	return item, nil
}
