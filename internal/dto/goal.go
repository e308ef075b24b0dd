package dto

// CreateGoalRequest adds an academic goal.
type CreateGoalRequest struct {
	Title           string `json:"title" validate:"required"`
	Description     string `json:"description"`
	Subject         string `json:"subject" validate:"required"`
	ProgressPercent int    `json:"progress_percent"`
	Owner           string `json:"owner" validate:"required"`
}

// UpdateGoalRequest mutates goal fields; nil fields are left untouched.
type UpdateGoalRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	Subject         *string `json:"subject"`
	ProgressPercent *int    `json:"progress_percent"`
}
