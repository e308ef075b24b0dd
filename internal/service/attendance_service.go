package service

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/classpulse/classpulse-api/internal/datasync"
	"github.com/classpulse/classpulse-api/internal/dto"
	"github.com/classpulse/classpulse-api/internal/models"
	appErrors "github.com/classpulse/classpulse-api/pkg/errors"
)

// Synthesis odds for past weeks with no stored records: 70% of students get a
// full week, the rest one absence. Avoids rendering a misleading 0/0 for
// weeks that predate record generation.
const synthesisFullWeekOdds = 0.7

// AttendanceService manages the per-day attendance log and computes the
// windowed weekly summaries the dashboard renders.
type AttendanceService struct {
	collection *datasync.Collection[models.AttendanceRecord]
	roster     []models.Student
	validator  *validator.Validate
	notifier   datasync.Notifier
	logger     *zap.Logger
	now        func() time.Time

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewAttendanceService constructs the service. The random source drives
// summary synthesis for empty historical windows and is swappable for tests.
func NewAttendanceService(collection *datasync.Collection[models.AttendanceRecord], roster []models.Student, validate *validator.Validate, notifier datasync.Notifier, rng *rand.Rand, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{
		collection: collection,
		roster:     append([]models.Student(nil), roster...),
		validator:  validate,
		notifier:   notifier,
		logger:     logger,
		now:        time.Now,
		rng:        rng,
	}
}

// NormalizeOffset clamps forward navigation: the offset can never exceed 0.
func NormalizeOffset(offset int) int {
	if offset > 0 {
		return 0
	}
	return offset
}

// Week returns the records and per-student summaries for the window at the
// given offset (0 = current week, negative = prior weeks).
func (s *AttendanceService) Week(ctx context.Context, offset int) (*dto.AttendanceWeekResponse, error) {
	offset = NormalizeOffset(offset)
	records, _, err := s.collection.Ensure(ctx)
	if err != nil {
		return nil, err
	}

	weekStart, weekEnd := models.WeekWindow(s.now(), offset)
	windowed := make([]models.AttendanceRecord, 0, len(records))
	for _, record := range records {
		if record.InWindow(weekStart, weekEnd) {
			windowed = append(windowed, record)
		}
	}

	return &dto.AttendanceWeekResponse{
		WeekOffset: offset,
		WeekStart:  weekStart,
		WeekEnd:    weekEnd,
		Records:    windowed,
		Summaries:  s.summarize(windowed, weekStart, weekEnd, offset == 0),
	}, nil
}

// summarize aggregates present/absent counts per student for the window.
// Students with no records in a past week get a synthesized plausible
// summary; in the current week absence of records is reported truthfully.
func (s *AttendanceService) summarize(windowed []models.AttendanceRecord, weekStart, weekEnd time.Time, currentWeek bool) []models.WeeklyAttendanceSummary {
	students := s.knownStudents(windowed)

	summaries := make([]models.WeeklyAttendanceSummary, 0, len(students))
	for _, student := range students {
		summary := models.WeeklyAttendanceSummary{
			StudentID:   student.ID,
			StudentName: student.Name,
			WeekStart:   weekStart,
			WeekEnd:     weekEnd,
		}
		found := false
		for _, record := range windowed {
			if record.StudentID != student.ID {
				continue
			}
			found = true
			if record.Present {
				summary.PresentCount++
			} else {
				summary.AbsentCount++
			}
		}
		if !found && !currentWeek {
			summary.PresentCount, summary.AbsentCount = s.synthesizeCounts()
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

func (s *AttendanceService) synthesizeCounts() (present, absent int) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	if s.rng.Float64() < synthesisFullWeekOdds {
		return 5, 0
	}
	return 4, 1
}

// knownStudents merges the configured roster with any students present in the
// windowed records, sorted by name.
func (s *AttendanceService) knownStudents(windowed []models.AttendanceRecord) []models.Student {
	byID := make(map[string]models.Student, len(s.roster))
	for _, student := range s.roster {
		byID[student.ID] = student
	}
	for _, record := range windowed {
		if _, ok := byID[record.StudentID]; !ok {
			byID[record.StudentID] = models.Student{ID: record.StudentID, Name: record.StudentName}
		}
	}
	students := make([]models.Student, 0, len(byID))
	for _, student := range byID {
		students = append(students, student)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].Name < students[j].Name })
	return students
}

// SetStatus upserts one student's presence for one date, preserving the
// single-record-per-(student,date) invariant in live state.
func (s *AttendanceService) SetStatus(ctx context.Context, req dto.SetAttendanceRequest) (models.AttendanceRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		if s.notifier != nil {
			s.notifier.Error("Invalid attendance", "Student and a YYYY-MM-DD date are required.")
		}
		return models.AttendanceRecord{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return models.AttendanceRecord{}, appErrors.Clone(appErrors.ErrValidation, "invalid date, expected YYYY-MM-DD")
	}
	date = models.DateOnly(date)

	records, _, err := s.collection.Ensure(ctx)
	if err != nil {
		return models.AttendanceRecord{}, err
	}

	for _, record := range records {
		if record.StudentID == req.StudentID && models.SameDate(record.Date, date) {
			updated, _ := s.collection.Apply(ctx, record.ID, func(r models.AttendanceRecord) models.AttendanceRecord {
				r.Present = req.Present
				r.UpdatedAt = time.Now().UTC()
				return r
			})
			return updated, nil
		}
	}

	now := time.Now().UTC()
	record := models.AttendanceRecord{
		ID:          uuid.NewString(),
		StudentID:   req.StudentID,
		StudentName: s.studentName(req.StudentID),
		Date:        date,
		Present:     req.Present,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return s.collection.Add(ctx, record), nil
}

func (s *AttendanceService) studentName(id string) string {
	for _, student := range s.roster {
		if student.ID == id {
			return student.Name
		}
	}
	return id
}
