package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/classpulse/classpulse-api/internal/models"
	appErrors "github.com/classpulse/classpulse-api/pkg/errors"
)

// CalendarRepository is the remote store gateway for calendar events.
type CalendarRepository struct {
	db *sqlx.DB
}

// NewCalendarRepository constructs a calendar gateway.
func NewCalendarRepository(db *sqlx.DB) *CalendarRepository {
	return &CalendarRepository{db: db}
}

// FetchAll returns every calendar event ordered by occurrence.
func (r *CalendarRepository) FetchAll(ctx context.Context) ([]models.CalendarEvent, error) {
	if r.db == nil {
		return nil, appErrors.ErrRemoteUnavailable
	}
	const query = `SELECT id, title, description, occurs_on, category, attributed_to, created_at, updated_at
FROM calendar_events ORDER BY occurs_on ASC`
	var events []models.CalendarEvent
	if err := r.db.SelectContext(ctx, &events, query); err != nil {
		return nil, appErrors.RemoteUnavailable(err)
	}
	return events, nil
}

// Insert persists a calendar event.
func (r *CalendarRepository) Insert(ctx context.Context, event models.CalendarEvent) (models.CalendarEvent, error) {
	if r.db == nil {
		return event, appErrors.ErrRemoteUnavailable
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = now
	}
	event.UpdatedAt = now
	const query = `INSERT INTO calendar_events (id, title, description, occurs_on, category, attributed_to, created_at, updated_at)
VALUES (:id, :title, :description, :occurs_on, :category, :attributed_to, :created_at, :updated_at)
ON CONFLICT (id) DO NOTHING`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return event, appErrors.RemoteUnavailable(err)
	}
	return event, nil
}

// Update overwrites a calendar event row.
func (r *CalendarRepository) Update(ctx context.Context, event models.CalendarEvent) error {
	if r.db == nil {
		return appErrors.ErrRemoteUnavailable
	}
	event.UpdatedAt = time.Now().UTC()
	const query = `UPDATE calendar_events SET title = :title, description = :description, occurs_on = :occurs_on,
category = :category, attributed_to = :attributed_to, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return appErrors.RemoteUnavailable(err)
	}
	return nil
}

// Delete removes a calendar event.
func (r *CalendarRepository) Delete(ctx context.Context, id string) error {
	if r.db == nil {
		return appErrors.ErrRemoteUnavailable
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM calendar_events WHERE id = $1", id); err != nil {
		return appErrors.RemoteUnavailable(err)
	}
	return nil
}
