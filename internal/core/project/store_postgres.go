package project

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

const projectColumns = `id, ownerid, title, description, projecturl, createdat, updatedat`

func (repository *PostgresRepository) Create(context context.Context, project *Project) error {
	const query = `
		INSERT INTO core.project (id, ownerid, title, description, projecturl, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		project.ID,
		project.OwnerID,
		project.Title,
		project.Description,
		project.ProjectURL,
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Project")
	}

	return nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Project, error) {
	const query = `
		SELECT ` + projectColumns + `
		FROM core.project
		WHERE id = $1`

	project := &Project{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&project.ID,
		&project.OwnerID,
		&project.Title,
		&project.Description,
		&project.ProjectURL,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Project")
	}

	return project, nil
}

func (repository *PostgresRepository) ListByOwner(context context.Context, ownerID string, params pagination.Params) ([]*Project, int, error) {
	const countQuery = `SELECT COUNT(*) FROM core.project WHERE ownerid = $1`

	var total int
	if err := repository.db.QueryRow(context, countQuery, ownerID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Project")
	}

	const query = `
		SELECT ` + projectColumns + `
		FROM core.project
		WHERE ownerid = $1
		ORDER BY createdat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.db.Query(context, query, ownerID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Project")
	}
	defer rows.Close()

	projects := make([]*Project, 0)
	for rows.Next() {
		project := &Project{}
		if err := rows.Scan(
			&project.ID,
			&project.OwnerID,
			&project.Title,
			&project.Description,
			&project.ProjectURL,
			&project.CreatedAt,
			&project.UpdatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "Project")
		}
		projects = append(projects, project)
	}

	return projects, total, nil
}

func (repository *PostgresRepository) Update(context context.Context, project *Project) error {
	const query = `
		UPDATE core.project
		SET title = $2, description = $3, projecturl = $4, updatedat = $5
		WHERE id = $1`

	project.UpdatedAt = time.Now()

	tag, err := repository.db.Exec(context, query,
		project.ID,
		project.Title,
		project.Description,
		project.ProjectURL,
		project.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Project")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Project")
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM core.project WHERE id = $1`

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "Project")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Project")
	}

	return nil
}
