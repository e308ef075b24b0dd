package models

import "time"

// Goal tracks an academic objective and its completion percentage.
type Goal struct {
	ID              string    `db:"id" json:"id"`
	Title           string    `db:"title" json:"title"`
	Description     string    `db:"description" json:"description,omitempty"`
	Subject         string    `db:"subject" json:"subject"`
	ProgressPercent int       `db:"progress_percent" json:"progress_percent"`
	Owner           string    `db:"owner" json:"owner"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// EntityID implements the sync entity contract.
func (g Goal) EntityID() string { return g.ID }

// EntityType tags the collection shape.
func (Goal) EntityType() EntityKind { return KindGoal }

// SetProgress stores a clamped progress percentage.
func (g *Goal) SetProgress(v int) {
	g.ProgressPercent = ClampPercent(v)
}
