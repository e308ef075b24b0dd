package dto

import "time"

// CreateEventRequest adds a calendar event.
type CreateEventRequest struct {
	Title        string    `json:"title" validate:"required"`
	Description  string    `json:"description"`
	OccursOn     time.Time `json:"occurs_on" validate:"required"`
	Category     string    `json:"category" validate:"required,event_category"`
	AttributedTo string    `json:"attributed_to" validate:"required"`
}

// UpdateEventRequest replaces the mutable fields of an event.
type UpdateEventRequest struct {
	Title        string    `json:"title" validate:"required"`
	Description  string    `json:"description"`
	OccursOn     time.Time `json:"occurs_on" validate:"required"`
	Category     string    `json:"category" validate:"required,event_category"`
	AttributedTo string    `json:"attributed_to" validate:"required"`
}
