package models

import "time"

// EventCategory enumerates supported calendar event kinds.
type EventCategory string

const (
	EventAssignment EventCategory = "assignment"
	EventExam       EventCategory = "exam"
	EventDeadline   EventCategory = "deadline"
)

// Valid returns true when the category is a supported value.
func (c EventCategory) Valid() bool {
	switch c {
	case EventAssignment, EventExam, EventDeadline:
		return true
	default:
		return false
	}
}

// CalendarEvent represents an academic calendar entry.
type CalendarEvent struct {
	ID           string        `db:"id" json:"id"`
	Title        string        `db:"title" json:"title"`
	Description  string        `db:"description" json:"description,omitempty"`
	OccursOn     time.Time     `db:"occurs_on" json:"occurs_on"`
	Category     EventCategory `db:"category" json:"category"`
	AttributedTo string        `db:"attributed_to" json:"attributed_to"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updated_at"`
}

// EntityID implements the sync entity contract.
func (e CalendarEvent) EntityID() string { return e.ID }

// EntityType tags the collection shape.
func (CalendarEvent) EntityType() EntityKind { return KindEvent }
