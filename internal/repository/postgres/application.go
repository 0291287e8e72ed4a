package postgres

import (
	"context"
	"database/sql"
	"time"

	"volunteer-marketplace-backend/internal/domain"
	"volunteer-marketplace-backend/internal/repository"
)

const applicationColumns = `id, task_id, volunteer_id, application_letter, status,
	public_reviewer_comments, private_reviewer_notes, application_date, resolution_date`

type applicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) repository.ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, a *domain.VolunteerApplication) error {
	query := `INSERT INTO volunteer_applications (task_id, volunteer_id, application_letter, status, application_date)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return q(ctx, r.db).QueryRowContext(ctx, query,
		a.TaskID, a.VolunteerID, a.ApplicationLetter, a.Status, time.Now()).Scan(&a.ID)
}

func (r *applicationRepository) GetByID(ctx context.Context, taskID, appID int32) (*domain.VolunteerApplication, error) {
	a := &domain.VolunteerApplication{}
	query := `SELECT ` + applicationColumns + ` FROM volunteer_applications WHERE task_id = $1 AND id = $2`
	err := q(ctx, r.db).QueryRowContext(ctx, query, taskID, appID).Scan(
		&a.ID, &a.TaskID, &a.VolunteerID, &a.ApplicationLetter, &a.Status,
		&a.PublicReviewerComments, &a.PrivateReviewerNotes, &a.ApplicationDate, &a.ResolutionDate)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *applicationRepository) Update(ctx context.Context, a *domain.VolunteerApplication) error {
	query := `UPDATE volunteer_applications SET status = $1, public_reviewer_comments = $2,
	              private_reviewer_notes = $3, resolution_date = $4
	          WHERE id = $5`
	_, err := q(ctx, r.db).ExecContext(ctx, query,
		a.Status, a.PublicReviewerComments, a.PrivateReviewerNotes, a.ResolutionDate, a.ID)
	return err
}

func (r *applicationRepository) ListByTask(ctx context.Context, taskID int32) ([]domain.VolunteerApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM volunteer_applications
	          WHERE task_id = $1 ORDER BY application_date DESC`
	return r.queryApplications(ctx, query, taskID)
}

func (r *applicationRepository) ListByProject(ctx context.Context, projectID int32) ([]domain.VolunteerApplication, error) {
	query := `SELECT a.id, a.task_id, a.volunteer_id, a.application_letter, a.status,
	              a.public_reviewer_comments, a.private_reviewer_notes, a.application_date, a.resolution_date
	          FROM volunteer_applications a JOIN project_tasks t ON t.id = a.task_id
	          WHERE t.project_id = $1 ORDER BY a.application_date DESC`
	return r.queryApplications(ctx, query, projectID)
}

func (r *applicationRepository) HasPending(ctx context.Context, taskID, volunteerID int32) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM volunteer_applications WHERE task_id = $1 AND volunteer_id = $2 AND status = $3)`
	err := q(ctx, r.db).QueryRowContext(ctx, query, taskID, volunteerID, domain.ReviewStatusNew).Scan(&exists)
	return exists, err
}

func (r *applicationRepository) queryApplications(ctx context.Context, query string, args ...any) ([]domain.VolunteerApplication, error) {
	rows, err := q(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.VolunteerApplication
	for rows.Next() {
		var a domain.VolunteerApplication
		if err := rows.Scan(&a.ID, &a.TaskID, &a.VolunteerID, &a.ApplicationLetter, &a.Status,
			&a.PublicReviewerComments, &a.PrivateReviewerNotes, &a.ApplicationDate, &a.ResolutionDate); err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}
