package postgres

import (
	"context"
	"database/sql"
	"time"

	"volunteer-marketplace-backend/internal/domain"
	"volunteer-marketplace-backend/internal/repository"
)

type orgRoleRepository struct {
	db *sql.DB
}

func NewOrgRoleRepository(db *sql.DB) repository.OrgRoleRepository {
	return &orgRoleRepository{db: db}
}

func (r *orgRoleRepository) Create(ctx context.Context, role *domain.OrganizationRole) error {
	query := `INSERT INTO organization_roles (org_id, user_id, role, created_on) VALUES ($1, $2, $3, $4) RETURNING id`
	return q(ctx, r.db).QueryRowContext(ctx, query, role.OrgID, role.UserID, role.Role, time.Now()).Scan(&role.ID)
}

func (r *orgRoleRepository) GetByID(ctx context.Context, orgID, roleID int32) (*domain.OrganizationRole, error) {
	role := &domain.OrganizationRole{}
	query := `SELECT id, org_id, user_id, role, created_on FROM organization_roles WHERE org_id = $1 AND id = $2`
	err := q(ctx, r.db).QueryRowContext(ctx, query, orgID, roleID).Scan(
		&role.ID, &role.OrgID, &role.UserID, &role.Role, &role.CreatedOn)
	if err != nil {
		return nil, err
	}
	return role, nil
}

func (r *orgRoleRepository) Get(ctx context.Context, orgID, userID int32) (*domain.OrganizationRole, error) {
	role := &domain.OrganizationRole{}
	query := `SELECT id, org_id, user_id, role, created_on FROM organization_roles WHERE org_id = $1 AND user_id = $2`
	err := q(ctx, r.db).QueryRowContext(ctx, query, orgID, userID).Scan(
		&role.ID, &role.OrgID, &role.UserID, &role.Role, &role.CreatedOn)
	if err != nil {
		return nil, err
	}
	return role, nil
}

func (r *orgRoleRepository) Update(ctx context.Context, role *domain.OrganizationRole) error {
	query := `UPDATE organization_roles SET role = $1 WHERE id = $2`
	_, err := q(ctx, r.db).ExecContext(ctx, query, role.Role, role.ID)
	return err
}

func (r *orgRoleRepository) Delete(ctx context.Context, roleID int32) error {
	_, err := q(ctx, r.db).ExecContext(ctx, `DELETE FROM organization_roles WHERE id = $1`, roleID)
	return err
}

func (r *orgRoleRepository) ListByOrg(ctx context.Context, orgID int32) ([]domain.OrganizationRole, error) {
	query := `SELECT id, org_id, user_id, role, created_on FROM organization_roles WHERE org_id = $1 ORDER BY created_on`
	rows, err := q(ctx, r.db).QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []domain.OrganizationRole
	for rows.Next() {
		var role domain.OrganizationRole
		if err := rows.Scan(&role.ID, &role.OrgID, &role.UserID, &role.Role, &role.CreatedOn); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *orgRoleRepository) ListAdmins(ctx context.Context, orgID int32) ([]domain.User, error) {
	query := `SELECT u.id, u.email, u.username, u.password_hash, u.first_name, u.last_name, u.type, u.created_on, u.updated_on
	          FROM users u JOIN organization_roles r ON r.user_id = u.id
	          WHERE r.org_id = $1 AND r.role = $2 ORDER BY u.id`
	return r.queryUsers(ctx, query, orgID, domain.OrgRoleAdministrator)
}

func (r *orgRoleRepository) CountAdmins(ctx context.Context, orgID int32) (int32, error) {
	var count int32
	query := `SELECT COUNT(*) FROM organization_roles WHERE org_id = $1 AND role = $2`
	err := q(ctx, r.db).QueryRowContext(ctx, query, orgID, domain.OrgRoleAdministrator).Scan(&count)
	return count, err
}

func (r *orgRoleRepository) ListMembers(ctx context.Context, orgID int32) ([]domain.User, error) {
	query := `SELECT u.id, u.email, u.username, u.password_hash, u.first_name, u.last_name, u.type, u.created_on, u.updated_on
	          FROM users u JOIN organization_roles r ON r.user_id = u.id
	          WHERE r.org_id = $1 ORDER BY u.id`
	return r.queryUsers(ctx, query, orgID)
}

func (r *orgRoleRepository) queryUsers(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	rows, err := q(ctx, r.db).QueryContext(ctx, query, args...)
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
