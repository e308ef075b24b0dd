package dto

import (
	"time"

	"github.com/classpulse/classpulse-api/internal/models"
)

// SetAttendanceRequest upserts one student's presence for one calendar date.
type SetAttendanceRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Present   bool   `json:"present"`
}

// AttendanceWeekResponse is the windowed view for one week offset.
type AttendanceWeekResponse struct {
	WeekOffset int                              `json:"week_offset"`
	WeekStart  time.Time                        `json:"week_start"`
	WeekEnd    time.Time                        `json:"week_end"`
	Records    []models.AttendanceRecord        `json:"records"`
	Summaries  []models.WeeklyAttendanceSummary `json:"summaries"`
}
