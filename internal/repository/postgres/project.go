package postgres

import (
	"context"
	"database/sql"
	"time"

	"volunteer-marketplace-backend/internal/domain"
	"volunteer-marketplace-backend/internal/repository"
)

const projectColumns = `id, org_id, name, short_summary, motivation, solution_description, cause, status,
	intended_start_date, intended_end_date, actual_start_date, actual_end_date,
	deliverable_url, documentation_url, created_on, updated_on`

type projectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) repository.ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (org_id, name, short_summary, motivation, solution_description, cause, status,
	              intended_start_date, intended_end_date, deliverable_url, documentation_url, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12) RETURNING id`
	return q(ctx, r.db).QueryRowContext(ctx, query,
		p.OrgID, p.Name, p.ShortSummary, p.Motivation, p.SolutionDescription, p.Cause, p.Status,
		p.IntendedStartDate, p.IntendedEndDate, p.DeliverableURL, p.DocumentationURL, time.Now()).Scan(&p.ID)
}

func (r *projectRepository) GetByID(ctx context.Context, id int32) (*domain.Project, error) {
	p := &domain.Project{}
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	err := q(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.OrgID, &p.Name, &p.ShortSummary, &p.Motivation, &p.SolutionDescription, &p.Cause, &p.Status,
		&p.IntendedStartDate, &p.IntendedEndDate, &p.ActualStartDate, &p.ActualEndDate,
		&p.DeliverableURL, &p.DocumentationURL, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *projectRepository) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET name = $1, short_summary = $2, motivation = $3, solution_description = $4,
	              cause = $5, status = $6, intended_start_date = $7, intended_end_date = $8,
	              actual_start_date = $9, actual_end_date = $10, deliverable_url = $11, documentation_url = $12,
	              updated_on = $13
	          WHERE id = $14`
	_, err := q(ctx, r.db).ExecContext(ctx, query,
		p.Name, p.ShortSummary, p.Motivation, p.SolutionDescription,
		p.Cause, p.Status, p.IntendedStartDate, p.IntendedEndDate,
		p.ActualStartDate, p.ActualEndDate, p.DeliverableURL, p.DocumentationURL,
		time.Now(), p.ID)
	return err
}

func (r *projectRepository) ListByOrg(ctx context.Context, orgID int32) ([]domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE org_id = $1 AND status <> $2 ORDER BY created_on DESC`
	return r.queryProjects(ctx, query, orgID, domain.ProjectStatusDeleted)
}

func (r *projectRepository) ListPublic(ctx context.Context) ([]domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects
	          WHERE status NOT IN ($1, $2, $3) ORDER BY created_on DESC`
	return r.queryProjects(ctx, query,
		domain.ProjectStatusDraft, domain.ProjectStatusExpired, domain.ProjectStatusDeleted)
}

func (r *projectRepository) ListPublicByOrg(ctx context.Context, orgID int32) ([]domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects
	          WHERE org_id = $1 AND status NOT IN ($2, $3, $4) ORDER BY created_on DESC`
	return r.queryProjects(ctx, query, orgID,
		domain.ProjectStatusDraft, domain.ProjectStatusExpired, domain.ProjectStatusDeleted)
}

func (r *projectRepository) ListDraftsByOwner(ctx context.Context, userID int32) ([]domain.Project, error) {
	query := `SELECT p.id, p.org_id, p.name, p.short_summary, p.motivation, p.solution_description, p.cause, p.status,
	              p.intended_start_date, p.intended_end_date, p.actual_start_date, p.actual_end_date,
	              p.deliverable_url, p.documentation_url, p.created_on, p.updated_on
	          FROM projects p JOIN project_roles r ON r.project_id = p.id
	          WHERE p.status = $1 AND r.user_id = $2 AND r.role = $3 ORDER BY p.created_on DESC`
	return r.queryProjects(ctx, query, domain.ProjectStatusDraft, userID, domain.ProjRoleOwner)
}

func (r *projectRepository) ListExpirable(ctx context.Context) ([]domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects
	          WHERE status NOT IN ($1, $2, $3, $4) AND intended_end_date < $5`
	return r.queryProjects(ctx, query,
		domain.ProjectStatusDraft, domain.ProjectStatusCompleted, domain.ProjectStatusExpired,
		domain.ProjectStatusDeleted, time.Now())
}

func (r *projectRepository) queryProjects(ctx context.Context, query string, args ...any) ([]domain.Project, error) {
	rows, err := q(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(
			&p.ID, &p.OrgID, &p.Name, &p.ShortSummary, &p.Motivation, &p.SolutionDescription, &p.Cause, &p.Status,
			&p.IntendedStartDate, &p.IntendedEndDate, &p.ActualStartDate, &p.ActualEndDate,
			&p.DeliverableURL, &p.DocumentationURL, &p.CreatedOn, &p.UpdatedOn); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}
