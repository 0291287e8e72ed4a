package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"volunteer-marketplace-backend/internal/domain"
	"volunteer-marketplace-backend/internal/repository"
)

type organizationRepository struct {
	db *sql.DB
}

func NewOrganizationRepository(db *sql.DB) repository.OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) Create(ctx context.Context, o *domain.Organization) error {
	query := `INSERT INTO organizations (name, type, short_summary, description, website_url, budget,
	              years_in_operation, geographical_scope, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9) RETURNING id`
	return q(ctx, r.db).QueryRowContext(ctx, query,
		o.Name, o.Type, o.ShortSummary, o.Description, o.WebsiteURL, o.Budget,
		o.YearsInOperation, o.GeographicalScope, time.Now()).Scan(&o.ID)
}

func (r *organizationRepository) GetByID(ctx context.Context, id int32) (*domain.Organization, error) {
	o := &domain.Organization{}
	query := `SELECT id, name, type, short_summary, description, website_url, budget,
	              years_in_operation, geographical_scope, created_on, updated_on
	          FROM organizations WHERE id = $1`
	err := q(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&o.ID, &o.Name, &o.Type, &o.ShortSummary, &o.Description, &o.WebsiteURL, &o.Budget,
		&o.YearsInOperation, &o.GeographicalScope, &o.CreatedOn, &o.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if o.SocialCauses, err = r.listCauses(ctx, o.ID); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *organizationRepository) GetByName(ctx context.Context, name string) (*domain.Organization, error) {
	o := &domain.Organization{}
	query := `SELECT id, name, type, short_summary, description, website_url, budget,
	              years_in_operation, geographical_scope, created_on, updated_on
	          FROM organizations WHERE name = $1`
	err := q(ctx, r.db).QueryRowContext(ctx, query, name).Scan(
		&o.ID, &o.Name, &o.Type, &o.ShortSummary, &o.Description, &o.WebsiteURL, &o.Budget,
		&o.YearsInOperation, &o.GeographicalScope, &o.CreatedOn, &o.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *organizationRepository) List(ctx context.Context) ([]domain.Organization, error) {
	query := `SELECT id, name, type, short_summary, description, website_url, budget,
	              years_in_operation, geographical_scope, created_on, updated_on
	          FROM organizations ORDER BY name`
	return r.queryOrgs(ctx, query)
}

func (r *organizationRepository) Search(ctx context.Context, name string, causes []domain.SocialCause) ([]domain.Organization, error) {
	query := `SELECT DISTINCT o.id, o.name, o.type, o.short_summary, o.description, o.website_url, o.budget,
	              o.years_in_operation, o.geographical_scope, o.created_on, o.updated_on
	          FROM organizations o
	          LEFT JOIN organization_social_causes c ON c.org_id = o.id
	          WHERE ($1 = '' OR o.name ILIKE '%' || $1 || '%')
	            AND (cardinality($2::text[]) = 0 OR c.social_cause = ANY($2))
	          ORDER BY o.name`
	causeStrs := make([]string, len(causes))
	for i, c := range causes {
		causeStrs[i] = string(c)
	}
	return r.queryOrgs(ctx, query, name, pq.Array(causeStrs))
}

func (r *organizationRepository) queryOrgs(ctx context.Context, query string, args ...any) ([]domain.Organization, error) {
	rows, err := q(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []domain.Organization
	for rows.Next() {
		var o domain.Organization
		if err := rows.Scan(&o.ID, &o.Name, &o.Type, &o.ShortSummary, &o.Description, &o.WebsiteURL, &o.Budget,
			&o.YearsInOperation, &o.GeographicalScope, &o.CreatedOn, &o.UpdatedOn); err != nil {
			return nil, err
		}
		orgs = append(orgs, o)
	}
	return orgs, rows.Err()
}

func (r *organizationRepository) Update(ctx context.Context, o *domain.Organization) error {
	query := `UPDATE organizations SET name = $1, type = $2, short_summary = $3, description = $4,
	              website_url = $5, budget = $6, years_in_operation = $7, geographical_scope = $8, updated_on = $9
	          WHERE id = $10`
	_, err := q(ctx, r.db).ExecContext(ctx, query,
		o.Name, o.Type, o.ShortSummary, o.Description, o.WebsiteURL, o.Budget,
		o.YearsInOperation, o.GeographicalScope, time.Now(), o.ID)
	return err
}

func (r *organizationRepository) SetSocialCauses(ctx context.Context, orgID int32, causes []domain.SocialCause) error {
	if _, err := q(ctx, r.db).ExecContext(ctx, `DELETE FROM organization_social_causes WHERE org_id = $1`, orgID); err != nil {
		return err
	}
	for _, c := range causes {
		query := `INSERT INTO organization_social_causes (org_id, social_cause) VALUES ($1, $2)`
		if _, err := q(ctx, r.db).ExecContext(ctx, query, orgID, c); err != nil {
			return err
		}
	}
	return nil
}

func (r *organizationRepository) listCauses(ctx context.Context, orgID int32) ([]domain.SocialCause, error) {
	rows, err := q(ctx, r.db).QueryContext(ctx,
		`SELECT social_cause FROM organization_social_causes WHERE org_id = $1 ORDER BY social_cause`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var causes []domain.SocialCause
	for rows.Next() {
		var c domain.SocialCause
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		causes = append(causes, c)
	}
	return causes, rows.Err()
}
