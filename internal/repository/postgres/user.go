package postgres

import (
	"context"
	"database/sql"
	"time"

	"volunteer-marketplace-backend/internal/domain"
	"volunteer-marketplace-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (email, username, password_hash, first_name, last_name, type, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $7) RETURNING id`
	return q(ctx, r.db).QueryRowContext(ctx, query,
		u.Email, u.Username, u.PasswordHash, u.FirstName, u.LastName, u.Type, time.Now()).Scan(&u.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, email, username, password_hash, first_name, last_name, type, created_on, updated_on
	          FROM users WHERE id = $1`
	err := q(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Type, &u.CreatedOn, &u.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, email, username, password_hash, first_name, last_name, type, created_on, updated_on
	          FROM users WHERE email = $1`
	err := q(ctx, r.db).QueryRowContext(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Type, &u.CreatedOn, &u.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET email = $1, username = $2, first_name = $3, last_name = $4, updated_on = $5 WHERE id = $6`
	_, err := q(ctx, r.db).ExecContext(ctx, query, u.Email, u.Username, u.FirstName, u.LastName, time.Now(), u.ID)
	return err
}

func (r *userRepository) CreateVolunteerProfile(ctx context.Context, p *domain.VolunteerProfile) error {
	query := `INSERT INTO volunteer_profiles (user_id, status, average_review_score, completed_task_count, is_edited, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return q(ctx, r.db).QueryRowContext(ctx, query,
		p.UserID, p.Status, p.AverageReviewScore, p.CompletedTaskCount, p.IsEdited, time.Now()).Scan(&p.ID)
}

func (r *userRepository) GetVolunteerProfile(ctx context.Context, userID int32) (*domain.VolunteerProfile, error) {
	p := &domain.VolunteerProfile{}
	query := `SELECT id, user_id, status, average_review_score, completed_task_count, is_edited, created_on
	          FROM volunteer_profiles WHERE user_id = $1`
	err := q(ctx, r.db).QueryRowContext(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.Status, &p.AverageReviewScore, &p.CompletedTaskCount, &p.IsEdited, &p.CreatedOn)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *userRepository) UpdateVolunteerProfile(ctx context.Context, p *domain.VolunteerProfile) error {
	query := `UPDATE volunteer_profiles SET status = $1, average_review_score = $2, completed_task_count = $3, is_edited = $4
	          WHERE id = $5`
	_, err := q(ctx, r.db).ExecContext(ctx, query, p.Status, p.AverageReviewScore, p.CompletedTaskCount, p.IsEdited, p.ID)
	return err
}

func (r *userRepository) ListPendingVolunteerProfiles(ctx context.Context) ([]domain.VolunteerProfile, error) {
	query := `SELECT id, user_id, status, average_review_score, completed_task_count, is_edited, created_on
	          FROM volunteer_profiles WHERE status = $1 ORDER BY is_edited, created_on DESC`
	rows, err := q(ctx, r.db).QueryContext(ctx, query, domain.ReviewStatusNew)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.VolunteerProfile
	for rows.Next() {
		var p domain.VolunteerProfile
		if err := rows.Scan(&p.ID, &p.UserID, &p.Status, &p.AverageReviewScore, &p.CompletedTaskCount, &p.IsEdited, &p.CreatedOn); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *userRepository) CreateBadge(ctx context.Context, b *domain.UserBadge) error {
	query := `INSERT INTO user_badges (user_id, type, tier, created_on) VALUES ($1, $2, $3, $4) RETURNING id`
	return q(ctx, r.db).QueryRowContext(ctx, query, b.UserID, b.Type, b.Tier, time.Now()).Scan(&b.ID)
}

func (r *userRepository) ListBadges(ctx context.Context, userID int32) ([]domain.UserBadge, error) {
	query := `SELECT id, user_id, type, tier, created_on FROM user_badges WHERE user_id = $1 ORDER BY created_on`
	rows, err := q(ctx, r.db).QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var badges []domain.UserBadge
	for rows.Next() {
		var b domain.UserBadge
		if err := rows.Scan(&b.ID, &b.UserID, &b.Type, &b.Tier, &b.CreatedOn); err != nil {
			return nil, err
		}
		badges = append(badges, b)
	}
	return badges, rows.Err()
}
