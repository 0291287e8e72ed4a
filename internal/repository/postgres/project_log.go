package postgres

import (
	"context"
	"database/sql"
	"time"

	"volunteer-marketplace-backend/internal/domain"
	"volunteer-marketplace-backend/internal/repository"
)

type projectLogRepository struct {
	db *sql.DB
}

func NewProjectLogRepository(db *sql.DB) repository.ProjectLogRepository {
	return &projectLogRepository{db: db}
}

func (r *projectLogRepository) Create(ctx context.Context, e *domain.ProjectLog) error {
	query := `INSERT INTO project_logs (project_id, change_type, change_target, description, author_id, change_date)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return q(ctx, r.db).QueryRowContext(ctx, query,
		e.ProjectID, e.ChangeType, e.ChangeTarget, e.Description, e.AuthorID, time.Now()).Scan(&e.ID)
}

func (r *projectLogRepository) ListByProject(ctx context.Context, projectID int32) ([]domain.ProjectLog, error) {
	query := `SELECT id, project_id, change_type, change_target, description, author_id, change_date
	          FROM project_logs WHERE project_id = $1 ORDER BY change_date DESC`
	rows, err := q(ctx, r.db).QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.ProjectLog
	for rows.Next() {
		var e domain.ProjectLog
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.ChangeType, &e.ChangeTarget, &e.Description, &e.AuthorID, &e.ChangeDate); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
