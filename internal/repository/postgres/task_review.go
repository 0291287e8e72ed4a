package postgres

import (
	"context"
	"database/sql"
	"time"

	"volunteer-marketplace-backend/internal/domain"
	"volunteer-marketplace-backend/internal/repository"
)

const taskReviewColumns = `id, task_id, volunteer_id, volunteer_comment, volunteer_effort_hours,
	reviewer_comment, result, score, request_date, review_date`

type taskReviewRepository struct {
	db *sql.DB
}

func NewTaskReviewRepository(db *sql.DB) repository.TaskReviewRepository {
	return &taskReviewRepository{db: db}
}

func (r *taskReviewRepository) Create(ctx context.Context, rev *domain.ProjectTaskReview) error {
	query := `INSERT INTO project_task_reviews (task_id, volunteer_id, volunteer_comment, volunteer_effort_hours,
	              result, request_date)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return q(ctx, r.db).QueryRowContext(ctx, query,
		rev.TaskID, rev.VolunteerID, rev.VolunteerComment, rev.VolunteerEffortHours,
		rev.Result, time.Now()).Scan(&rev.ID)
}

func (r *taskReviewRepository) GetByID(ctx context.Context, taskID, reviewID int32) (*domain.ProjectTaskReview, error) {
	rev := &domain.ProjectTaskReview{}
	query := `SELECT ` + taskReviewColumns + ` FROM project_task_reviews WHERE task_id = $1 AND id = $2`
	err := q(ctx, r.db).QueryRowContext(ctx, query, taskID, reviewID).Scan(
		&rev.ID, &rev.TaskID, &rev.VolunteerID, &rev.VolunteerComment, &rev.VolunteerEffortHours,
		&rev.ReviewerComment, &rev.Result, &rev.Score, &rev.RequestDate, &rev.ReviewDate)
	if err != nil {
		return nil, err
	}
	return rev, nil
}

func (r *taskReviewRepository) Update(ctx context.Context, rev *domain.ProjectTaskReview) error {
	query := `UPDATE project_task_reviews SET reviewer_comment = $1, result = $2, score = $3, review_date = $4
	          WHERE id = $5`
	_, err := q(ctx, r.db).ExecContext(ctx, query,
		rev.ReviewerComment, rev.Result, rev.Score, rev.ReviewDate, rev.ID)
	return err
}

func (r *taskReviewRepository) ListByTask(ctx context.Context, taskID int32) ([]domain.ProjectTaskReview, error) {
	query := `SELECT ` + taskReviewColumns + ` FROM project_task_reviews WHERE task_id = $1 ORDER BY request_date DESC`
	return r.queryReviews(ctx, query, taskID)
}

func (r *taskReviewRepository) ListPendingByProject(ctx context.Context, projectID int32) ([]domain.ProjectTaskReview, error) {
	query := `SELECT v.id, v.task_id, v.volunteer_id, v.volunteer_comment, v.volunteer_effort_hours,
	              v.reviewer_comment, v.result, v.score, v.request_date, v.review_date
	          FROM project_task_reviews v JOIN project_tasks t ON t.id = v.task_id
	          WHERE t.project_id = $1 AND v.result = $2 ORDER BY v.request_date`
	return r.queryReviews(ctx, query, projectID, domain.ReviewStatusNew)
}

func (r *taskReviewRepository) queryReviews(ctx context.Context, query string, args ...any) ([]domain.ProjectTaskReview, error) {
	rows, err := q(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.ProjectTaskReview
	for rows.Next() {
		var rev domain.ProjectTaskReview
		if err := rows.Scan(&rev.ID, &rev.TaskID, &rev.VolunteerID, &rev.VolunteerComment, &rev.VolunteerEffortHours,
			&rev.ReviewerComment, &rev.Result, &rev.Score, &rev.RequestDate, &rev.ReviewDate); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}
