package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/classpulse/classpulse-api/internal/models"
	appErrors "github.com/classpulse/classpulse-api/pkg/errors"
)

// GoalRepository is the remote store gateway for academic goals.
type GoalRepository struct {
	db *sqlx.DB
}

// NewGoalRepository constructs a goal gateway.
func NewGoalRepository(db *sqlx.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

// FetchAll returns every goal.
func (r *GoalRepository) FetchAll(ctx context.Context) ([]models.Goal, error) {
	if r.db == nil {
		return nil, appErrors.ErrRemoteUnavailable
	}
	const query = `SELECT id, title, description, subject, progress_percent, owner, created_at, updated_at
FROM goals ORDER BY created_at ASC`
	var goals []models.Goal
	if err := r.db.SelectContext(ctx, &goals, query); err != nil {
		return nil, appErrors.RemoteUnavailable(err)
	}
	return goals, nil
}

// Insert persists a goal.
func (r *GoalRepository) Insert(ctx context.Context, goal models.Goal) (models.Goal, error) {
	if r.db == nil {
		return goal, appErrors.ErrRemoteUnavailable
	}
	if goal.ID == "" {
		goal.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = now
	}
	goal.UpdatedAt = now
	const query = `INSERT INTO goals (id, title, description, subject, progress_percent, owner, created_at, updated_at)
VALUES (:id, :title, :description, :subject, :progress_percent, :owner, :created_at, :updated_at)
ON CONFLICT (id) DO NOTHING`
	if _, err := r.db.NamedExecContext(ctx, query, goal); err != nil {
		return goal, appErrors.RemoteUnavailable(err)
	}
	return goal, nil
}

// Update overwrites a goal row.
func (r *GoalRepository) Update(ctx context.Context, goal models.Goal) error {
	if r.db == nil {
		return appErrors.ErrRemoteUnavailable
	}
	goal.UpdatedAt = time.Now().UTC()
	const query = `UPDATE goals SET title = :title, description = :description, subject = :subject,
progress_percent = :progress_percent, owner = :owner, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, goal); err != nil {
		return appErrors.RemoteUnavailable(err)
	}
	return nil
}

// Delete removes a goal.
func (r *GoalRepository) Delete(ctx context.Context, id string) error {
	if r.db == nil {
		return appErrors.ErrRemoteUnavailable
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM goals WHERE id = $1", id); err != nil {
		return appErrors.RemoteUnavailable(err)
	}
	return nil
}
