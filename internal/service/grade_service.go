package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/classpulse/classpulse-api/internal/datasync"
	"github.com/classpulse/classpulse-api/internal/dto"
	"github.com/classpulse/classpulse-api/internal/models"
	appErrors "github.com/classpulse/classpulse-api/pkg/errors"
)

// GradeService manages the grade sheet collection through its sync
// coordinator. All percent-valued fields are clamped at mutation time.
type GradeService struct {
	collection *datasync.Collection[models.GradeEntry]
	validator  *validator.Validate
	notifier   datasync.Notifier
	logger     *zap.Logger
}

// NewGradeService constructs the service.
func NewGradeService(collection *datasync.Collection[models.GradeEntry], validate *validator.Validate, notifier datasync.Notifier, logger *zap.Logger) *GradeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{collection: collection, validator: validate, notifier: notifier, logger: logger}
}

// List returns the live grade sheet, loading it on first use.
func (s *GradeService) List(ctx context.Context) ([]models.GradeEntry, datasync.Source, error) {
	return s.collection.Ensure(ctx)
}

// Create adds a grade entry optimistically.
func (s *GradeService) Create(ctx context.Context, req dto.CreateGradeEntryRequest) (models.GradeEntry, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.GradeEntry{}, s.validationFailure("grade entry", err)
	}
	if _, _, err := s.collection.Ensure(ctx); err != nil {
		return models.GradeEntry{}, err
	}

	now := time.Now().UTC()
	entry := models.GradeEntry{
		ID:              uuid.NewString(),
		StudentID:       req.StudentID,
		StudentName:     req.StudentName,
		AssignmentLabel: req.AssignmentLabel,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	entry.SetGrade(req.Grade)
	entry.SetAttendancePercent(req.AttendancePercent)

	return s.collection.Add(ctx, entry), nil
}

// UpdateEntry mutates grade and/or attendance percent, clamped, applied to
// live state immediately and in invocation order.
func (s *GradeService) UpdateEntry(ctx context.Context, id string, req dto.UpdateGradeEntryRequest) (models.GradeEntry, error) {
	if req.Grade == nil && req.AttendancePercent == nil {
		return models.GradeEntry{}, s.validationFailure("grade entry", appErrors.Clone(appErrors.ErrValidation, "no fields to update"))
	}
	if _, _, err := s.collection.Ensure(ctx); err != nil {
		return models.GradeEntry{}, err
	}

	updated, ok := s.collection.Apply(ctx, id, func(entry models.GradeEntry) models.GradeEntry {
		if req.Grade != nil {
			entry.SetGrade(*req.Grade)
		}
		if req.AttendancePercent != nil {
			entry.SetAttendancePercent(*req.AttendancePercent)
		}
		entry.UpdatedAt = time.Now().UTC()
		return entry
	})
	if !ok {
		return models.GradeEntry{}, appErrors.Clone(appErrors.ErrNotFound, "grade entry not found")
	}
	return updated, nil
}

// Delete removes a grade entry optimistically; a failed remote delete does
// not restore it.
func (s *GradeService) Delete(ctx context.Context, id string) error {
	if _, _, err := s.collection.Ensure(ctx); err != nil {
		return err
	}
	if _, ok := s.collection.Remove(ctx, id); !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "grade entry not found")
	}
	return nil
}

func (s *GradeService) validationFailure(what string, err error) error {
	if s.notifier != nil {
		s.notifier.Error("Invalid "+what, "Please fill in the required fields before saving.")
	}
	appErr := appErrors.FromError(err)
	if appErr.Code == appErrors.ErrValidation.Code {
		return appErr
	}
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
}
