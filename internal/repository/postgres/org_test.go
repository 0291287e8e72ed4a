package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"volunteer-marketplace-backend/internal/domain"
)

const orgColumns = "id, name, type, short_summary, description, website_url, budget, " +
	"years_in_operation, geographical_scope, created_on, updated_on"

func orgRow(o domain.Organization) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "type", "short_summary", "description", "website_url", "budget",
		"years_in_operation", "geographical_scope", "created_on", "updated_on",
	}).AddRow(o.ID, o.Name, o.Type, o.ShortSummary, o.Description, o.WebsiteURL, o.Budget,
		o.YearsInOperation, o.GeographicalScope, o.CreatedOn, o.UpdatedOn)
}

func TestOrganizationRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrganizationRepository(db)

	o := &domain.Organization{Name: "River Cleanup", Type: domain.OrganizationTypeSocialGood}
	mock.ExpectQuery("INSERT INTO organizations").
		WithArgs(o.Name, o.Type, o.ShortSummary, o.Description, o.WebsiteURL, o.Budget,
			o.YearsInOperation, o.GeographicalScope, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	err := repo.Create(context.Background(), o)
	assert.NoError(t, err)
	assert.Equal(t, int32(3), o.ID)
}

func TestOrganizationRepository_GetByID_IncludesCauses(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrganizationRepository(db)

	now := time.Now()
	mock.ExpectQuery("SELECT " + orgColumns + " FROM organizations WHERE id").
		WithArgs(int32(3)).
		WillReturnRows(orgRow(domain.Organization{
			ID: 3, Name: "River Cleanup", Type: domain.OrganizationTypeSocialGood,
			CreatedOn: now, UpdatedOn: now,
		}))
	mock.ExpectQuery("SELECT social_cause FROM organization_social_causes").
		WithArgs(int32(3)).
		WillReturnRows(sqlmock.NewRows([]string{"social_cause"}).
			AddRow(domain.SocialCauseEnvironment).
			AddRow(domain.SocialCauseHealth))

	o, err := repo.GetByID(context.Background(), 3)
	assert.NoError(t, err)
	assert.Equal(t, "River Cleanup", o.Name)
	assert.Equal(t, []domain.SocialCause{domain.SocialCauseEnvironment, domain.SocialCauseHealth}, o.SocialCauses)
}

func TestOrganizationRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrganizationRepository(db)

	o := &domain.Organization{ID: 3, Name: "River Cleanup", Type: domain.OrganizationTypeSocialGood}
	mock.ExpectExec("UPDATE organizations SET").
		WithArgs(o.Name, o.Type, o.ShortSummary, o.Description, o.WebsiteURL, o.Budget,
			o.YearsInOperation, o.GeographicalScope, sqlmock.AnyArg(), o.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Update(context.Background(), o))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrganizationRepository_SetSocialCauses_ReplacesAll(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrganizationRepository(db)

	mock.ExpectExec("DELETE FROM organization_social_causes").
		WithArgs(int32(3)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO organization_social_causes").
		WithArgs(int32(3), domain.SocialCauseEducation).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.SetSocialCauses(context.Background(), 3, []domain.SocialCause{domain.SocialCauseEducation})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrganizationRepository_Search(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrganizationRepository(db)

	now := time.Now()
	mock.ExpectQuery("SELECT DISTINCT (.+) FROM organizations o").
		WithArgs("river", sqlmock.AnyArg()).
		WillReturnRows(orgRow(domain.Organization{
			ID: 3, Name: "River Cleanup", Type: domain.OrganizationTypeSocialGood,
			CreatedOn: now, UpdatedOn: now,
		}))

	orgs, err := repo.Search(context.Background(), "river", []domain.SocialCause{domain.SocialCauseEnvironment})
	assert.NoError(t, err)
	assert.Len(t, orgs, 1)
	assert.Equal(t, "River Cleanup", orgs[0].Name)
}
