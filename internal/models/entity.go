package models

import "time"

// EntityKind discriminates the collection an entity belongs to. Every
// collection managed by the sync layer carries exactly one canonical shape,
// tagged explicitly instead of inferred from structure.
type EntityKind string

const (
	KindGrade      EntityKind = "grade"
	KindAttendance EntityKind = "attendance"
	KindEvent      EntityKind = "event"
	KindGoal       EntityKind = "goal"
)

// Collection keys scope one snapshot slot per entity type.
const (
	CollectionGrades     = "grades"
	CollectionAttendance = "attendance"
	CollectionEvents     = "events"
	CollectionGoals      = "goals"
)

// ClampPercent bounds percent-valued fields into [0,100]. Applied at the
// point of mutation, never at read time.
func ClampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// DateOnly strips the time-of-day component, keeping a UTC calendar date.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDate reports whether two instants fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}

// Role identifies the dashboard viewer.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleParent  Role = "parent"
	RoleStudent Role = "student"
)

// Valid returns true when the role is a supported value.
func (r Role) Valid() bool {
	switch r {
	case RoleTeacher, RoleParent, RoleStudent:
		return true
	default:
		return false
	}
}

// Student is a roster entry known to the dashboard. Roster identity is a
// stable slug so regenerated fallback data lines up with remote rows.
type Student struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
