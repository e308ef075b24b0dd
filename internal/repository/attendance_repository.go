package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/classpulse/classpulse-api/internal/models"
	appErrors "github.com/classpulse/classpulse-api/pkg/errors"
)

// AttendanceRepository is the remote store gateway for per-day attendance
// records.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs an attendance gateway.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// FetchAll returns every attendance record.
func (r *AttendanceRepository) FetchAll(ctx context.Context) ([]models.AttendanceRecord, error) {
	if r.db == nil {
		return nil, appErrors.ErrRemoteUnavailable
	}
	const query = `SELECT id, student_id, student_name, date, present, created_at, updated_at
FROM attendance_records ORDER BY date ASC, student_name ASC`
	var records []models.AttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, appErrors.RemoteUnavailable(err)
	}
	return records, nil
}

// Insert persists an attendance record. The (student_id, date) uniqueness is
// enforced by the store; conflicting rows update presence in place.
func (r *AttendanceRepository) Insert(ctx context.Context, record models.AttendanceRecord) (models.AttendanceRecord, error) {
	if r.db == nil {
		return record, appErrors.ErrRemoteUnavailable
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	record.Date = models.DateOnly(record.Date)
	const query = `INSERT INTO attendance_records (id, student_id, student_name, date, present, created_at, updated_at)
VALUES (:id, :student_id, :student_name, :date, :present, :created_at, :updated_at)
ON CONFLICT (student_id, date) DO UPDATE SET present = EXCLUDED.present, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return record, appErrors.RemoteUnavailable(err)
	}
	return record, nil
}

// Update overwrites an attendance record row.
func (r *AttendanceRepository) Update(ctx context.Context, record models.AttendanceRecord) error {
	if r.db == nil {
		return appErrors.ErrRemoteUnavailable
	}
	record.UpdatedAt = time.Now().UTC()
	record.Date = models.DateOnly(record.Date)
	const query = `UPDATE attendance_records SET student_name = :student_name, date = :date, present = :present,
updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return appErrors.RemoteUnavailable(err)
	}
	return nil
}

// Delete removes an attendance record.
func (r *AttendanceRepository) Delete(ctx context.Context, id string) error {
	if r.db == nil {
		return appErrors.ErrRemoteUnavailable
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM attendance_records WHERE id = $1", id); err != nil {
		return appErrors.RemoteUnavailable(err)
	}
	return nil
}
