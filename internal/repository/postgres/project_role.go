package postgres

import (
	"context"
	"database/sql"
	"time"

	"volunteer-marketplace-backend/internal/domain"
	"volunteer-marketplace-backend/internal/repository"
)

type projectRoleRepository struct {
	db *sql.DB
}

func NewProjectRoleRepository(db *sql.DB) repository.ProjectRoleRepository {
	return &projectRoleRepository{db: db}
}

func (r *projectRoleRepository) Create(ctx context.Context, role *domain.ProjectRole) error {
	query := `INSERT INTO project_roles (project_id, user_id, role, created_on) VALUES ($1, $2, $3, $4) RETURNING id`
	return q(ctx, r.db).QueryRowContext(ctx, query, role.ProjectID, role.UserID, role.Role, time.Now()).Scan(&role.ID)
}

func (r *projectRoleRepository) GetByID(ctx context.Context, projectID, roleID int32) (*domain.ProjectRole, error) {
	role := &domain.ProjectRole{}
	query := `SELECT id, project_id, user_id, role, created_on FROM project_roles WHERE project_id = $1 AND id = $2`
	err := q(ctx, r.db).QueryRowContext(ctx, query, projectID, roleID).Scan(
		&role.ID, &role.ProjectID, &role.UserID, &role.Role, &role.CreatedOn)
	if err != nil {
		return nil, err
	}
	return role, nil
}

func (r *projectRoleRepository) Get(ctx context.Context, projectID, userID int32) (*domain.ProjectRole, error) {
	role := &domain.ProjectRole{}
	query := `SELECT id, project_id, user_id, role, created_on FROM project_roles WHERE project_id = $1 AND user_id = $2`
	err := q(ctx, r.db).QueryRowContext(ctx, query, projectID, userID).Scan(
		&role.ID, &role.ProjectID, &role.UserID, &role.Role, &role.CreatedOn)
	if err != nil {
		return nil, err
	}
	return role, nil
}

func (r *projectRoleRepository) Update(ctx context.Context, role *domain.ProjectRole) error {
	query := `UPDATE project_roles SET role = $1 WHERE id = $2`
	_, err := q(ctx, r.db).ExecContext(ctx, query, role.Role, role.ID)
	return err
}

func (r *projectRoleRepository) Delete(ctx context.Context, roleID int32) error {
	_, err := q(ctx, r.db).ExecContext(ctx, `DELETE FROM project_roles WHERE id = $1`, roleID)
	return err
}

func (r *projectRoleRepository) ListByProject(ctx context.Context, projectID int32) ([]domain.ProjectRole, error) {
	query := `SELECT id, project_id, user_id, role, created_on FROM project_roles WHERE project_id = $1 ORDER BY created_on`
	return r.queryRoles(ctx, query, projectID)
}

func (r *projectRoleRepository) ListOwners(ctx context.Context, projectID int32) ([]domain.ProjectRole, error) {
	query := `SELECT id, project_id, user_id, role, created_on FROM project_roles
	          WHERE project_id = $1 AND role = $2 ORDER BY created_on`
	return r.queryRoles(ctx, query, projectID, domain.ProjRoleOwner)
}

func (r *projectRoleRepository) CountOwners(ctx context.Context, projectID int32) (int32, error) {
	var count int32
	query := `SELECT COUNT(*) FROM project_roles WHERE project_id = $1 AND role = $2`
	err := q(ctx, r.db).QueryRowContext(ctx, query, projectID, domain.ProjRoleOwner).Scan(&count)
	return count, err
}

func (r *projectRoleRepository) queryRoles(ctx context.Context, query string, args ...any) ([]domain.ProjectRole, error) {
	rows, err := q(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []domain.ProjectRole
	for rows.Next() {
		var role domain.ProjectRole
		if err := rows.Scan(&role.ID, &role.ProjectID, &role.UserID, &role.Role, &role.CreatedOn); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// ToggleFollower adds the user as a follower, or removes them if already
// following. Returns true when the user follows the project afterwards.
func (r *projectRoleRepository) ToggleFollower(ctx context.Context, projectID, userID int32) (bool, error) {
	res, err := q(ctx, r.db).ExecContext(ctx,
		`DELETE FROM project_followers WHERE project_id = $1 AND user_id = $2`, projectID, userID)
	if err != nil {
		return false, err
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if deleted > 0 {
		return false, nil
	}
	_, err = q(ctx, r.db).ExecContext(ctx,
		`INSERT INTO project_followers (project_id, user_id, created_on) VALUES ($1, $2, $3)`,
		projectID, userID, time.Now())
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *projectRoleRepository) ListFollowers(ctx context.Context, projectID int32) ([]domain.User, error) {
	query := `SELECT u.id, u.email, u.username, u.password_hash, u.first_name, u.last_name, u.type, u.created_on, u.updated_on
	          FROM users u JOIN project_followers f ON f.user_id = u.id
	          WHERE f.project_id = $1 ORDER BY f.created_on`
	rows, err := q(ctx, r.db).QueryContext(ctx, query, projectID)
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
