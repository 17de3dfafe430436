package payment

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/workbay/workbay/internal/platform/dberr"
	"github.com/workbay/workbay/pkg/pagination"
)

type PostgresDonationRepository struct {
	db *pgxpool.Pool
}

func NewPostgresDonationRepository(db *pgxpool.Pool) *PostgresDonationRepository {
	return &PostgresDonationRepository{db: db}
}

const donationColumns = `id, donorid, projectid, amountcents, currency, message, chargeref, status, createdat`

func (repository *PostgresDonationRepository) Create(context context.Context, donation *Donation) error {
	const query = `
		INSERT INTO core.donation (id, donorid, projectid, amountcents, currency, message, chargeref, status, createdat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	donation.CreatedAt = time.Now()

	_, err := repository.db.Exec(context, query,
		donation.ID,
		donation.DonorID,
		donation.ProjectID,
		donation.AmountCents,
		donation.Currency,
		donation.Message,
		donation.ChargeRef,
		donation.Status,
		donation.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Donation")
	}

	return nil
}

func (repository *PostgresDonationRepository) FindByID(context context.Context, id string) (*Donation, error) {
	const query = `
		SELECT ` + donationColumns + `
		FROM core.donation
		WHERE id = $1`

	donation := &Donation{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&donation.ID,
		&donation.DonorID,
		&donation.ProjectID,
		&donation.AmountCents,
		&donation.Currency,
		&donation.Message,
		&donation.ChargeRef,
		&donation.Status,
		&donation.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Donation")
	}

	return donation, nil
}

func (repository *PostgresDonationRepository) List(context context.Context, params pagination.Params) ([]*Donation, int, error) {
	const countQuery = `SELECT COUNT(*) FROM core.donation`

	var total int
	if err := repository.db.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Donation")
	}

	const query = `
		SELECT ` + donationColumns + `
		FROM core.donation
		ORDER BY createdat DESC
		LIMIT $1 OFFSET $2`

	rows, err := repository.db.Query(context, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Donation")
	}
	defer rows.Close()

	donations := make([]*Donation, 0)
	for rows.Next() {
		donation := &Donation{}
		if err := rows.Scan(
			&donation.ID,
			&donation.DonorID,
			&donation.ProjectID,
			&donation.AmountCents,
			&donation.Currency,
			&donation.Message,
			&donation.ChargeRef,
			&donation.Status,
			&donation.CreatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "Donation")
		}
		donations = append(donations, donation)
	}

	return donations, total, nil
}
