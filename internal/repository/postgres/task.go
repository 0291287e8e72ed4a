package postgres

import (
	"context"
	"database/sql"
	"time"

	"volunteer-marketplace-backend/internal/domain"
	"volunteer-marketplace-backend/internal/repository"
)

const taskColumns = `id, project_id, name, description, type, stage, accepting_volunteers, percentage_complete,
	estimated_effort_hours, actual_effort_hours, estimated_start_date, estimated_end_date, created_on, updated_on`

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) repository.TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, t *domain.ProjectTask) error {
	query := `INSERT INTO project_tasks (project_id, name, description, type, stage, accepting_volunteers,
	              percentage_complete, estimated_effort_hours, actual_effort_hours,
	              estimated_start_date, estimated_end_date, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12) RETURNING id`
	return q(ctx, r.db).QueryRowContext(ctx, query,
		t.ProjectID, t.Name, t.Description, t.Type, t.Stage, t.AcceptingVolunteers,
		t.PercentageComplete, t.EstimatedEffortHours, t.ActualEffortHours,
		t.EstimatedStartDate, t.EstimatedEndDate, time.Now()).Scan(&t.ID)
}

func (r *taskRepository) GetByID(ctx context.Context, projectID, taskID int32) (*domain.ProjectTask, error) {
	t := &domain.ProjectTask{}
	query := `SELECT ` + taskColumns + ` FROM project_tasks WHERE project_id = $1 AND id = $2`
	err := q(ctx, r.db).QueryRowContext(ctx, query, projectID, taskID).Scan(
		&t.ID, &t.ProjectID, &t.Name, &t.Description, &t.Type, &t.Stage, &t.AcceptingVolunteers, &t.PercentageComplete,
		&t.EstimatedEffortHours, &t.ActualEffortHours, &t.EstimatedStartDate, &t.EstimatedEndDate, &t.CreatedOn, &t.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *taskRepository) Update(ctx context.Context, t *domain.ProjectTask) error {
	query := `UPDATE project_tasks SET name = $1, description = $2, type = $3, stage = $4, accepting_volunteers = $5,
	              percentage_complete = $6, estimated_effort_hours = $7, actual_effort_hours = $8,
	              estimated_start_date = $9, estimated_end_date = $10, updated_on = $11
	          WHERE id = $12`
	_, err := q(ctx, r.db).ExecContext(ctx, query,
		t.Name, t.Description, t.Type, t.Stage, t.AcceptingVolunteers,
		t.PercentageComplete, t.EstimatedEffortHours, t.ActualEffortHours,
		t.EstimatedStartDate, t.EstimatedEndDate, time.Now(), t.ID)
	return err
}

func (r *taskRepository) Delete(ctx context.Context, taskID int32) error {
	_, err := q(ctx, r.db).ExecContext(ctx, `DELETE FROM project_tasks WHERE id = $1`, taskID)
	return err
}

func (r *taskRepository) ListByProject(ctx context.Context, projectID int32) ([]domain.ProjectTask, error) {
	query := `SELECT ` + taskColumns + ` FROM project_tasks WHERE project_id = $1 AND stage <> $2 ORDER BY created_on`
	return r.queryTasks(ctx, query, projectID, domain.TaskStageDeleted)
}

func (r *taskRepository) ListPublicByProject(ctx context.Context, projectID int32) ([]domain.ProjectTask, error) {
	query := `SELECT ` + taskColumns + ` FROM project_tasks
	          WHERE project_id = $1 AND stage NOT IN ($2, $3) ORDER BY created_on`
	return r.queryTasks(ctx, query, projectID, domain.TaskStageDraft, domain.TaskStageDeleted)
}

func (r *taskRepository) queryTasks(ctx context.Context, query string, args ...any) ([]domain.ProjectTask, error) {
	rows, err := q(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.ProjectTask
	for rows.Next() {
		var t domain.ProjectTask
		if err := rows.Scan(
			&t.ID, &t.ProjectID, &t.Name, &t.Description, &t.Type, &t.Stage, &t.AcceptingVolunteers, &t.PercentageComplete,
			&t.EstimatedEffortHours, &t.ActualEffortHours, &t.EstimatedStartDate, &t.EstimatedEndDate, &t.CreatedOn, &t.UpdatedOn); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
