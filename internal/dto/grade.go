package dto

// CreateGradeEntryRequest adds a student row to the grade sheet.
type CreateGradeEntryRequest struct {
	StudentID         string `json:"student_id" validate:"required"`
	StudentName       string `json:"student_name" validate:"required"`
	AssignmentLabel   string `json:"assignment_label" validate:"required"`
	Grade             int    `json:"grade"`
	AttendancePercent int    `json:"attendance_percent"`
}

// UpdateGradeEntryRequest mutates grade and/or attendance percent fields.
// Values outside [0,100] are clamped at apply time.
type UpdateGradeEntryRequest struct {
	Grade             *int `json:"grade"`
	AttendancePercent *int `json:"attendance_percent"`
}
