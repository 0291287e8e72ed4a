package postgres

import (
	"context"
	"database/sql"
	"time"

	"volunteer-marketplace-backend/internal/domain"
	"volunteer-marketplace-backend/internal/repository"
)

type taskRoleRepository struct {
	db *sql.DB
}

func NewTaskRoleRepository(db *sql.DB) repository.TaskRoleRepository {
	return &taskRoleRepository{db: db}
}

func (r *taskRoleRepository) Create(ctx context.Context, role *domain.ProjectTaskRole) error {
	query := `INSERT INTO project_task_roles (task_id, user_id, role, created_on) VALUES ($1, $2, $3, $4) RETURNING id`
	return q(ctx, r.db).QueryRowContext(ctx, query, role.TaskID, role.UserID, role.Role, time.Now()).Scan(&role.ID)
}

func (r *taskRoleRepository) GetByID(ctx context.Context, taskID, roleID int32) (*domain.ProjectTaskRole, error) {
	role := &domain.ProjectTaskRole{}
	query := `SELECT id, task_id, user_id, role, created_on FROM project_task_roles WHERE task_id = $1 AND id = $2`
	err := q(ctx, r.db).QueryRowContext(ctx, query, taskID, roleID).Scan(
		&role.ID, &role.TaskID, &role.UserID, &role.Role, &role.CreatedOn)
	if err != nil {
		return nil, err
	}
	return role, nil
}

func (r *taskRoleRepository) Get(ctx context.Context, taskID, userID int32) (*domain.ProjectTaskRole, error) {
	role := &domain.ProjectTaskRole{}
	query := `SELECT id, task_id, user_id, role, created_on FROM project_task_roles WHERE task_id = $1 AND user_id = $2`
	err := q(ctx, r.db).QueryRowContext(ctx, query, taskID, userID).Scan(
		&role.ID, &role.TaskID, &role.UserID, &role.Role, &role.CreatedOn)
	if err != nil {
		return nil, err
	}
	return role, nil
}

func (r *taskRoleRepository) Update(ctx context.Context, role *domain.ProjectTaskRole) error {
	query := `UPDATE project_task_roles SET task_id = $1 WHERE id = $2`
	_, err := q(ctx, r.db).ExecContext(ctx, query, role.TaskID, role.ID)
	return err
}

func (r *taskRoleRepository) Delete(ctx context.Context, roleID int32) error {
	_, err := q(ctx, r.db).ExecContext(ctx, `DELETE FROM project_task_roles WHERE id = $1`, roleID)
	return err
}

func (r *taskRoleRepository) ListVolunteers(ctx context.Context, taskID int32) ([]domain.User, error) {
	query := `SELECT u.id, u.email, u.username, u.password_hash, u.first_name, u.last_name, u.type, u.created_on, u.updated_on
	          FROM users u JOIN project_task_roles r ON r.user_id = u.id
	          WHERE r.task_id = $1 ORDER BY r.created_on`
	rows, err := q(ctx, r.db).QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Type, &u.CreatedOn, &u.UpdatedOn); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *taskRoleRepository) CountByTask(ctx context.Context, taskID int32) (int32, error) {
	var count int32
	err := q(ctx, r.db).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM project_task_roles WHERE task_id = $1`, taskID).Scan(&count)
	return count, err
}

func (r *taskRoleRepository) ListByUserAndProject(ctx context.Context, userID, projectID int32) ([]domain.ProjectTaskRole, error) {
	query := `SELECT r.id, r.task_id, r.user_id, r.role, r.created_on
	          FROM project_task_roles r JOIN project_tasks t ON t.id = r.task_id
	          WHERE r.user_id = $1 AND t.project_id = $2 ORDER BY r.created_on`
	rows, err := q(ctx, r.db).QueryContext(ctx, query, userID, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []domain.ProjectTaskRole
	for rows.Next() {
		var role domain.ProjectTaskRole
		if err := rows.Scan(&role.ID, &role.TaskID, &role.UserID, &role.Role, &role.CreatedOn); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *taskRoleRepository) ListTasksByVolunteer(ctx context.Context, userID int32) ([]domain.ProjectTask, error) {
	query := `SELECT t.id, t.project_id, t.name, t.description, t.type, t.stage, t.accepting_volunteers,
	              t.percentage_complete, t.estimated_effort_hours, t.actual_effort_hours,
	              t.estimated_start_date, t.estimated_end_date, t.created_on, t.updated_on
	          FROM project_tasks t JOIN project_task_roles r ON r.task_id = t.id
	          WHERE r.user_id = $1 AND t.stage <> $2 ORDER BY t.created_on DESC`
	rows, err := q(ctx, r.db).QueryContext(ctx, query, userID, domain.TaskStageDeleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.ProjectTask
	for rows.Next() {
		var t domain.ProjectTask
		if err := rows.Scan(
			&t.ID, &t.ProjectID, &t.Name, &t.Description, &t.Type, &t.Stage, &t.AcceptingVolunteers,
			&t.PercentageComplete, &t.EstimatedEffortHours, &t.ActualEffortHours,
			&t.EstimatedStartDate, &t.EstimatedEndDate, &t.CreatedOn, &t.UpdatedOn); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
