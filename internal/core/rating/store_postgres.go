package rating

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

// Upsert relies on the (developerid, clientid) unique constraint so that a
// repeat rating from the same client replaces the old one.
func (repository *PostgresRepository) Upsert(context context.Context, rating *Rating) error {
	const query = `
		INSERT INTO core.developer_rating (id, developerid, clientid, stars, comment, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (developerid, clientid)
		DO UPDATE SET stars = EXCLUDED.stars, comment = EXCLUDED.comment, updatedat = EXCLUDED.updatedat`

	now := time.Now()
	rating.CreatedAt = now
	rating.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		rating.ID,
		rating.DeveloperID,
		rating.ClientID,
		rating.Stars,
		rating.Comment,
		now,
	)
	if err != nil {
		return dberr.Wrap(err, "Rating")
	}

	return nil
}

func (repository *PostgresRepository) ListByDeveloper(context context.Context, developerID string, params pagination.Params) ([]*Rating, int, error) {
	const countQuery = `SELECT COUNT(*) FROM core.developer_rating WHERE developerid = $1`

	var total int
	if err := repository.db.QueryRow(context, countQuery, developerID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Rating")
	}

	const query = `
		SELECT id, developerid, clientid, stars, comment, createdat, updatedat
		FROM core.developer_rating
		WHERE developerid = $1
		ORDER BY updatedat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.db.Query(context, query, developerID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Rating")
	}
	defer rows.Close()

	ratings := make([]*Rating, 0)
	for rows.Next() {
		item := &Rating{}
		if err := rows.Scan(
			&item.ID,
			&item.DeveloperID,
			&item.ClientID,
			&item.Stars,
			&item.Comment,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "Rating")
		}
		ratings = append(ratings, item)
	}

	return ratings, total, nil
}

func (repository *PostgresRepository) ComputeStats(context context.Context, developerID string) (*Stats, error) {
	const query = `
		SELECT COALESCE(AVG(stars), 0), COUNT(*)
		FROM core.developer_rating
		WHERE developerid = $1`

	stats := &Stats{DeveloperID: developerID}
	err := repository.db.QueryRow(context, query, developerID).Scan(&stats.Average, &stats.Count)
	if err != nil {
		return nil, dberr.Wrap(err, "Rating")
	}

	return stats, nil
}

func (repository *PostgresRepository) Delete(context context.Context, developerID, clientID string) error {
	const query = `DELETE FROM core.developer_rating WHERE developerid = $1 AND clientid = $2`

	tag, err := repository.db.Exec(context, query, developerID, clientID)
	if err != nil {
		return dberr.Wrap(err, "Rating")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Rating")
	}

	return nil
}
