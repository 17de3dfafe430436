package video

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

const videoColumns = `id, ownerid, title, description, objectkey, contenttype, sizebytes, createdat, updatedat`

func (repository *PostgresRepository) Create(context context.Context, video *Video) error {
	const query = `
		INSERT INTO core.video (id, ownerid, title, description, objectkey, contenttype, sizebytes, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	now := time.Now()
	video.CreatedAt = now
	video.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		video.ID,
		video.OwnerID,
		video.Title,
		video.Description,
		video.ObjectKey,
		video.ContentType,
		video.SizeBytes,
		video.CreatedAt,
		video.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Video")
	}

	return nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Video, error) {
	const query = `
		SELECT ` + videoColumns + `
		FROM core.video
		WHERE id = $1`

	video := &Video{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&video.ID,
		&video.OwnerID,
		&video.Title,
		&video.Description,
		&video.ObjectKey,
		&video.ContentType,
		&video.SizeBytes,
		&video.CreatedAt,
		&video.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Video")
	}

	return video, nil
}

func (repository *PostgresRepository) ListByOwner(context context.Context, ownerID string, params pagination.Params) ([]*Video, int, error) {
	const countQuery = `SELECT COUNT(*) FROM core.video WHERE ownerid = $1`
	const query = `
		SELECT ` + videoColumns + `
		FROM core.video
		WHERE ownerid = $1
		ORDER BY createdat DESC
		LIMIT $2 OFFSET $3`

	var total int
	if err := repository.db.QueryRow(context, countQuery, ownerID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Video")
	}

	rows, err := repository.db.Query(context, query, ownerID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Video")
	}
	defer rows.Close()

	return collect(rows, total)
}

func (repository *PostgresRepository) ListRecent(context context.Context, params pagination.Params) ([]*Video, int, error) {
	const countQuery = `SELECT COUNT(*) FROM core.video`
	const query = `
		SELECT ` + videoColumns + `
		FROM core.video
		ORDER BY createdat DESC
		LIMIT $1 OFFSET $2`

	var total int
	if err := repository.db.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Video")
	}

	rows, err := repository.db.Query(context, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Video")
	}
	defer rows.Close()

	return collect(rows, total)
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM core.video WHERE id = $1`

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "Video")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Video")
	}

	return nil
}

func (repository *PostgresRepository) CountLikes(context context.Context, videoID string) (int, error) {
	const query = `SELECT COUNT(*) FROM core.video_vote WHERE videoid = $1`

	var count int
	if err := repository.db.QueryRow(context, query, videoID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "Video vote")
	}

	return count, nil
}

type videoRows interface {
	Next() bool
	Scan(dest ...any) error
}

func collect(rows videoRows, total int) ([]*Video, int, error) {
	videos := make([]*Video, 0)
	for rows.Next() {
		video := &Video{}
		if err := rows.Scan(
			&video.ID,
			&video.OwnerID,
			&video.Title,
			&video.Description,
			&video.ObjectKey,
			&video.ContentType,
			&video.SizeBytes,
			&video.CreatedAt,
			&video.UpdatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "Video")
		}
		videos = append(videos, video)
	}

	return videos, total, nil
}

// # Vote Repository

type PostgresVoteRepository struct {
	db *pgxpool.Pool
}

func NewPostgresVoteRepository(db *pgxpool.Pool) *PostgresVoteRepository {
	return &PostgresVoteRepository{db: db}
}

// Add inserts a like, relying on ON CONFLICT to make repeat likes a no-op
// that reports false.
func (repository *PostgresVoteRepository) Add(context context.Context, videoID, userID string) (bool, error) {
	const query = `
		INSERT INTO core.video_vote (videoid, userid, createdat)
		VALUES ($1, $2, $3)
		ON CONFLICT (videoid, userid) DO NOTHING`

	tag, err := repository.db.Exec(context, query, videoID, userID, time.Now())
	if err != nil {
		return false, dberr.Wrap(err, "Video vote")
	}

	return tag.RowsAffected() == 1, nil
}

func (repository *PostgresVoteRepository) Remove(context context.Context, videoID, userID string) (bool, error) {
	const query = `DELETE FROM core.video_vote WHERE videoid = $1 AND userid = $2`

	tag, err := repository.db.Exec(context, query, videoID, userID)
	if err != nil {
		return false, dberr.Wrap(err, "Video vote")
	}

	return tag.RowsAffected() == 1, nil
}
