package models

import "time"

// GradeEntry captures one student's score for an assignment together with the
// coarse attendance percentage shown on the grade sheet. The percentage is
// kept independent of the per-day attendance log (see AttendanceRecord).
type GradeEntry struct {
	ID                string    `db:"id" json:"id"`
	StudentID         string    `db:"student_id" json:"student_id"`
	StudentName       string    `db:"student_name" json:"student_name"`
	AssignmentLabel   string    `db:"assignment_label" json:"assignment_label"`
	Grade             int       `db:"grade" json:"grade"`
	AttendancePercent int       `db:"attendance_percent" json:"attendance_percent"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// EntityID implements the sync entity contract.
func (g GradeEntry) EntityID() string { return g.ID }

// EntityType tags the collection shape.
func (GradeEntry) EntityType() EntityKind { return KindGrade }

// SetGrade stores a clamped grade value.
func (g *GradeEntry) SetGrade(v int) {
	g.Grade = ClampPercent(v)
}

// SetAttendancePercent stores a clamped attendance percentage.
func (g *GradeEntry) SetAttendancePercent(v int) {
	g.AttendancePercent = ClampPercent(v)
}
