// Package seed produces fallback datasets for collections with no remote or
// cached data. Generation is structurally deterministic (one entry per roster
// student, fixed week coverage) while values are drawn from bounded random
// ranges. The generator performs no I/O.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/classpulse/classpulse-api/internal/models"
)

const (
	gradeMin      = 65
	gradeMax      = 95
	attendanceMin = 75
	attendanceMax = 100

	presentProbability = 0.75
	fallbackWeeks      = 3
)

// Config assembles a generator.
type Config struct {
	Students        []string
	AssignmentLabel string
	Rand            *rand.Rand
	Now             func() time.Time
}

// Generator builds fallback entities for every collection.
type Generator struct {
	roster          []models.Student
	assignmentLabel string
	rng             *rand.Rand
	now             func() time.Time
}

// NewGenerator constructs a generator with the provided roster and sources.
func NewGenerator(cfg Config) *Generator {
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	label := cfg.AssignmentLabel
	if label == "" {
		label = "Math Quiz 1"
	}
	return &Generator{
		roster:          Roster(cfg.Students),
		assignmentLabel: label,
		rng:             rng,
		now:             now,
	}
}

// Roster maps student names onto stable slug identities, so regenerated data
// lines up with rows previously seeded into the remote store.
func Roster(names []string) []models.Student {
	students := make([]models.Student, 0, len(names))
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		students = append(students, models.Student{ID: slug(trimmed), Name: trimmed})
	}
	return students
}

// Students returns the roster the generator was built with.
func (g *Generator) Students() []models.Student {
	return append([]models.Student(nil), g.roster...)
}

// GradeEntries generates one entry per roster student with bounded random
// grade and attendance values.
func (g *Generator) GradeEntries() []models.GradeEntry {
	now := g.now().UTC()
	entries := make([]models.GradeEntry, 0, len(g.roster))
	for _, student := range g.roster {
		entries = append(entries, models.GradeEntry{
			ID:                uuid.NewString(),
			StudentID:         student.ID,
			StudentName:       student.Name,
			AssignmentLabel:   g.assignmentLabel,
			Grade:             g.intBetween(gradeMin, gradeMax),
			AttendancePercent: g.intBetween(attendanceMin, attendanceMax),
			CreatedAt:         now,
			UpdatedAt:         now,
		})
	}
	return entries
}

// AttendanceRecords generates Monday-Friday rows for the current week and the
// two preceding weeks, for every roster student, with an independent 75%
// present probability per day. Never emits two records for one
// (studentId, date) pair.
func (g *Generator) AttendanceRecords() []models.AttendanceRecord {
	now := g.now().UTC()
	seen := make(map[string]struct{})
	records := make([]models.AttendanceRecord, 0, len(g.roster)*5*fallbackWeeks)
	for offset := -(fallbackWeeks - 1); offset <= 0; offset++ {
		weekStart, _ := models.WeekWindow(now, offset)
		for day := 0; day < 5; day++ {
			date := weekStart.AddDate(0, 0, day)
			for _, student := range g.roster {
				key := student.ID + "|" + date.Format("2006-01-02")
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				records = append(records, models.AttendanceRecord{
					ID:          uuid.NewString(),
					StudentID:   student.ID,
					StudentName: student.Name,
					Date:        date,
					Present:     g.rng.Float64() < presentProbability,
					CreatedAt:   now,
					UpdatedAt:   now,
				})
			}
		}
	}
	return records
}

// CalendarEvents generates a plausible upcoming-events catalog with dates
// relative to the current day.
func (g *Generator) CalendarEvents() []models.CalendarEvent {
	now := g.now().UTC()
	catalog := []struct {
		title        string
		description  string
		category     models.EventCategory
		attributedTo string
		dayOffset    int
	}{
		{"Math Quiz - Algebra", "Covering chapters 5-7 on polynomial expressions", models.EventExam, "Mrs. Johnson", 3},
		{"History Essay", "Write a 1000-word essay on the Industrial Revolution", models.EventAssignment, "Mr. Smith", 7},
		{"Science Project Deadline", "Final submission of the ecosystem model", models.EventDeadline, "Dr. Williams", 10},
		{"Literature Analysis", "Character study for \"To Kill a Mockingbird\"", models.EventAssignment, "Ms. Davis", -2},
		{"Mid-term Exams", "All subjects - review study guides", models.EventExam, "School Administration", 14},
	}
	events := make([]models.CalendarEvent, 0, len(catalog))
	for _, entry := range catalog {
		events = append(events, models.CalendarEvent{
			ID:           uuid.NewString(),
			Title:        entry.title,
			Description:  entry.description,
			OccursOn:     now.AddDate(0, 0, entry.dayOffset),
			Category:     entry.category,
			AttributedTo: entry.attributedTo,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	return events
}

// Goals generates a starter goal catalog with bounded random progress.
func (g *Generator) Goals() []models.Goal {
	now := g.now().UTC()
	catalog := []struct {
		title       string
		description string
		subject     string
	}{
		{"Master quadratic equations", "Work through the practice set and review mistakes weekly", "Mathematics"},
		{"Read two novels this term", "Finish assigned reading ahead of each discussion", "English"},
		{"Improve lab report scores", "Focus on methodology sections and citation format", "Science"},
	}
	owner := "student"
	if len(g.roster) > 0 {
		owner = g.roster[0].ID
	}
	goals := make([]models.Goal, 0, len(catalog))
	for _, entry := range catalog {
		goals = append(goals, models.Goal{
			ID:              uuid.NewString(),
			Title:           entry.title,
			Description:     entry.description,
			Subject:         entry.subject,
			ProgressPercent: g.intBetween(0, 80),
			Owner:           owner,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
	}
	return goals
}

func (g *Generator) intBetween(min, max int) int {
	return min + g.rng.Intn(max-min+1)
}

func slug(name string) string {
	cleaned := strings.ToLower(strings.TrimSpace(name))
	cleaned = strings.Join(strings.Fields(cleaned), "-")
	if cleaned == "" {
		cleaned = fmt.Sprintf("student-%s", uuid.NewString()[:8])
	}
	return cleaned
}
