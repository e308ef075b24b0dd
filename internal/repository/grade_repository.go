package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/classpulse/classpulse-api/internal/models"
	appErrors "github.com/classpulse/classpulse-api/pkg/errors"
)

// GradeRepository is the remote store gateway for grade entries. It performs
// no retries and no caching; resilience lives in the sync coordinator.
type GradeRepository struct {
	db *sqlx.DB
}

// NewGradeRepository constructs a grade gateway. A nil db is allowed and
// reports the remote store as unavailable on every call.
func NewGradeRepository(db *sqlx.DB) *GradeRepository {
	return &GradeRepository{db: db}
}

// FetchAll returns every grade entry.
func (r *GradeRepository) FetchAll(ctx context.Context) ([]models.GradeEntry, error) {
	if r.db == nil {
		return nil, appErrors.ErrRemoteUnavailable
	}
	const query = `SELECT id, student_id, student_name, assignment_label, grade, attendance_percent, created_at, updated_at
FROM grade_entries ORDER BY student_name ASC`
	var entries []models.GradeEntry
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, appErrors.RemoteUnavailable(err)
	}
	return entries, nil
}

// Insert persists a grade entry, keeping the caller-assigned identity.
func (r *GradeRepository) Insert(ctx context.Context, entry models.GradeEntry) (models.GradeEntry, error) {
	if r.db == nil {
		return entry, appErrors.ErrRemoteUnavailable
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now
	const query = `INSERT INTO grade_entries (id, student_id, student_name, assignment_label, grade, attendance_percent, created_at, updated_at)
VALUES (:id, :student_id, :student_name, :assignment_label, :grade, :attendance_percent, :created_at, :updated_at)
ON CONFLICT (id) DO NOTHING`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return entry, appErrors.RemoteUnavailable(err)
	}
	return entry, nil
}

// Update overwrites a grade entry row. Last writer wins.
func (r *GradeRepository) Update(ctx context.Context, entry models.GradeEntry) error {
	if r.db == nil {
		return appErrors.ErrRemoteUnavailable
	}
	entry.UpdatedAt = time.Now().UTC()
	const query = `UPDATE grade_entries SET student_name = :student_name, assignment_label = :assignment_label,
grade = :grade, attendance_percent = :attendance_percent, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return appErrors.RemoteUnavailable(err)
	}
	return nil
}

// Delete removes a grade entry.
func (r *GradeRepository) Delete(ctx context.Context, id string) error {
	if r.db == nil {
		return appErrors.ErrRemoteUnavailable
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM grade_entries WHERE id = $1", id); err != nil {
		return appErrors.RemoteUnavailable(err)
	}
	return nil
}
