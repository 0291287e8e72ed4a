package postgres

import (
	"context"
	"database/sql"

	"volunteer-marketplace-backend/internal/repository"

	_ "github.com/lib/pq"
)

// querier is satisfied by both *sql.DB and *sql.Tx so repositories run the
// same queries inside and outside a transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txKey struct{}

// q returns the transaction carried by ctx, or the pool.
func q(ctx context.Context, db *sql.DB) querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.OrganizationRepository
	repository.OrgRoleRepository
	repository.MembershipRequestRepository
	repository.ProjectRepository
	repository.ProjectRoleRepository
	repository.TaskRepository
	repository.TaskRoleRepository
	repository.ApplicationRepository
	repository.TaskReviewRepository
	repository.ProjectLogRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                          db,
		UserRepository:              NewUserRepository(db),
		OrganizationRepository:      NewOrganizationRepository(db),
		OrgRoleRepository:           NewOrgRoleRepository(db),
		MembershipRequestRepository: NewMembershipRequestRepository(db),
		ProjectRepository:           NewProjectRepository(db),
		ProjectRoleRepository:       NewProjectRoleRepository(db),
		TaskRepository:              NewTaskRepository(db),
		TaskRoleRepository:          NewTaskRoleRepository(db),
		ApplicationRepository:       NewApplicationRepository(db),
		TaskReviewRepository:        NewTaskReviewRepository(db),
		ProjectLogRepository:        NewProjectLogRepository(db),
		NotificationRepository:      NewNotificationRepository(db),
	}
}

// WithinTx runs fn with a transaction injected into the context. Nested calls
// reuse the outer transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
