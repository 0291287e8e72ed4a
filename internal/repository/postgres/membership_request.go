package postgres

import (
	"context"
	"database/sql"
	"time"

	"volunteer-marketplace-backend/internal/domain"
	"volunteer-marketplace-backend/internal/repository"
)

type membershipRequestRepository struct {
	db *sql.DB
}

func NewMembershipRequestRepository(db *sql.DB) repository.MembershipRequestRepository {
	return &membershipRequestRepository{db: db}
}

func (r *membershipRequestRepository) Create(ctx context.Context, req *domain.MembershipRequest) error {
	query := `INSERT INTO membership_requests (org_id, user_id, role, status, request_date)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return q(ctx, r.db).QueryRowContext(ctx, query,
		req.OrgID, req.UserID, req.Role, req.Status, time.Now()).Scan(&req.ID)
}

func (r *membershipRequestRepository) GetByID(ctx context.Context, orgID, reqID int32) (*domain.MembershipRequest, error) {
	req := &domain.MembershipRequest{}
	query := `SELECT id, org_id, user_id, role, status, reviewer_id, request_date, resolution_date
	          FROM membership_requests WHERE org_id = $1 AND id = $2`
	err := q(ctx, r.db).QueryRowContext(ctx, query, orgID, reqID).Scan(
		&req.ID, &req.OrgID, &req.UserID, &req.Role, &req.Status, &req.ReviewerID, &req.RequestDate, &req.ResolutionDate)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *membershipRequestRepository) Update(ctx context.Context, req *domain.MembershipRequest) error {
	query := `UPDATE membership_requests SET status = $1, reviewer_id = $2, resolution_date = $3 WHERE id = $4`
	_, err := q(ctx, r.db).ExecContext(ctx, query, req.Status, req.ReviewerID, req.ResolutionDate, req.ID)
	return err
}

func (r *membershipRequestRepository) ListByOrg(ctx context.Context, orgID int32) ([]domain.MembershipRequest, error) {
	query := `SELECT id, org_id, user_id, role, status, reviewer_id, request_date, resolution_date
	          FROM membership_requests WHERE org_id = $1 ORDER BY request_date DESC`
	rows, err := q(ctx, r.db).QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.MembershipRequest
	for rows.Next() {
		var req domain.MembershipRequest
		if err := rows.Scan(&req.ID, &req.OrgID, &req.UserID, &req.Role, &req.Status, &req.ReviewerID, &req.RequestDate, &req.ResolutionDate); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

func (r *membershipRequestRepository) HasPending(ctx context.Context, orgID, userID int32) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM membership_requests WHERE org_id = $1 AND user_id = $2 AND status = $3)`
	err := q(ctx, r.db).QueryRowContext(ctx, query, orgID, userID, domain.ReviewStatusNew).Scan(&exists)
	return exists, err
}
