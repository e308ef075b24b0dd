package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClampPercent(t *testing.T) {
	assert.Equal(t, 0, ClampPercent(-5))
	assert.Equal(t, 0, ClampPercent(0))
	assert.Equal(t, 42, ClampPercent(42))
	assert.Equal(t, 100, ClampPercent(100))
	assert.Equal(t, 100, ClampPercent(120))
}

func TestGradeEntrySettersClamp(t *testing.T) {
	var entry GradeEntry
	entry.SetGrade(150)
	entry.SetAttendancePercent(-1)
	assert.Equal(t, 100, entry.Grade)
	assert.Equal(t, 0, entry.AttendancePercent)
}

func TestGoalSetProgressClamps(t *testing.T) {
	var goal Goal
	goal.SetProgress(101)
	assert.Equal(t, 100, goal.ProgressPercent)
	goal.SetProgress(-10)
	assert.Equal(t, 0, goal.ProgressPercent)
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleTeacher.Valid())
	assert.True(t, RoleParent.Valid())
	assert.True(t, RoleStudent.Valid())
	assert.False(t, Role("admin").Valid())
	assert.False(t, Role("").Valid())
}

func TestEventCategoryValid(t *testing.T) {
	assert.True(t, EventAssignment.Valid())
	assert.True(t, EventExam.Valid())
	assert.True(t, EventDeadline.Valid())
	assert.False(t, EventCategory("holiday").Valid())
}

func TestSameDate(t *testing.T) {
	a := time.Date(2024, time.March, 5, 8, 0, 0, 0, time.UTC)
	b := time.Date(2024, time.March, 5, 23, 30, 0, 0, time.UTC)
	assert.True(t, SameDate(a, b))
	assert.False(t, SameDate(a, b.AddDate(0, 0, 1)))
}
