package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	appErrors "github.com/classpulse/classpulse-api/pkg/errors"
	"github.com/classpulse/classpulse-api/pkg/export"
)

// ExportFile is a rendered document ready to stream.
type ExportFile struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders weekly attendance summaries and the grade sheet as
// CSV or PDF documents.
type ExportService struct {
	attendance *AttendanceService
	grades     *GradeService
	csv        *export.CSVExporter
	pdf        *export.PDFExporter
	logger     *zap.Logger
}

// NewExportService constructs the service.
func NewExportService(attendance *AttendanceService, grades *GradeService, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		attendance: attendance,
		grades:     grades,
		csv:        export.NewCSVExporter(),
		pdf:        export.NewPDFExporter(),
		logger:     logger,
	}
}

// WeeklyAttendance renders the summary table for the window at offset.
func (s *ExportService) WeeklyAttendance(ctx context.Context, offset int, format string) (*ExportFile, error) {
	week, err := s.attendance.Week(ctx, offset)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{
		Headers: []string{"Student", "Week Start", "Week End", "Present", "Absent"},
	}
	for _, summary := range week.Summaries {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Student":    summary.StudentName,
			"Week Start": summary.WeekStart.Format("2006-01-02"),
			"Week End":   summary.WeekEnd.Format("2006-01-02"),
			"Present":    strconv.Itoa(summary.PresentCount),
			"Absent":     strconv.Itoa(summary.AbsentCount),
		})
	}

	title := fmt.Sprintf("Weekly Attendance %s", week.WeekStart.Format("2006-01-02"))
	return s.render(dataset, title, fmt.Sprintf("attendance-week-%s", week.WeekStart.Format("2006-01-02")), format)
}

// GradeSheet renders the current grade sheet.
func (s *ExportService) GradeSheet(ctx context.Context, format string) (*ExportFile, error) {
	entries, _, err := s.grades.List(ctx)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{
		Headers: []string{"Student", "Assignment", "Grade", "Attendance %"},
	}
	for _, entry := range entries {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Student":      entry.StudentName,
			"Assignment":   entry.AssignmentLabel,
			"Grade":        strconv.Itoa(entry.Grade),
			"Attendance %": strconv.Itoa(entry.AttendancePercent),
		})
	}

	return s.render(dataset, "Grade Sheet", "grade-sheet", format)
}

func (s *ExportService) render(dataset export.Dataset, title, basename, format string) (*ExportFile, error) {
	switch format {
	case "", "csv":
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "csv export failed")
		}
		return &ExportFile{Content: content, ContentType: "text/csv", Filename: basename + ".csv"}, nil
	case "pdf":
		content, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "pdf export failed")
		}
		return &ExportFile{Content: content, ContentType: "application/pdf", Filename: basename + ".pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format, expected csv or pdf")
	}
}
