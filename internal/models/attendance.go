package models

import "time"

// AttendanceRecord is one student's presence on one calendar date. The
// intended invariant is a single record per (student_id, date) pair.
type AttendanceRecord struct {
	ID          string    `db:"id" json:"id"`
	StudentID   string    `db:"student_id" json:"student_id"`
	StudentName string    `db:"student_name" json:"student_name"`
	Date        time.Time `db:"date" json:"date"`
	Present     bool      `db:"present" json:"present"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// EntityID implements the sync entity contract.
func (a AttendanceRecord) EntityID() string { return a.ID }

// EntityType tags the collection shape.
func (AttendanceRecord) EntityType() EntityKind { return KindAttendance }

// WeekWindow resolves the Monday..Friday window for the week containing
// reference shifted by offset weeks. A Sunday reference counts as day 7 of
// the prior week.
func WeekWindow(reference time.Time, offset int) (time.Time, time.Time) {
	ref := DateOnly(reference.AddDate(0, 0, 7*offset))
	back := int(ref.Weekday()) - 1
	if ref.Weekday() == time.Sunday {
		back = 6
	}
	start := ref.AddDate(0, 0, -back)
	return start, start.AddDate(0, 0, 4)
}

// InWindow reports whether the record's date lies in [start,end] inclusive,
// compared as calendar dates.
func (a AttendanceRecord) InWindow(start, end time.Time) bool {
	d := DateOnly(a.Date)
	return !d.Before(DateOnly(start)) && !d.After(DateOnly(end))
}

// WeeklyAttendanceSummary is derived on demand and never persisted.
type WeeklyAttendanceSummary struct {
	StudentID    string    `json:"student_id"`
	StudentName  string    `json:"student_name"`
	WeekStart    time.Time `json:"week_start"`
	WeekEnd      time.Time `json:"week_end"`
	PresentCount int       `json:"present_count"`
	AbsentCount  int       `json:"absent_count"`
}
