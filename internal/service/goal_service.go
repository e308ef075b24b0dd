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

// GoalService manages academic goals through the sync layer.
type GoalService struct {
	collection *datasync.Collection[models.Goal]
	validator  *validator.Validate
	notifier   datasync.Notifier
	logger     *zap.Logger
}

// NewGoalService constructs the service.
func NewGoalService(collection *datasync.Collection[models.Goal], validate *validator.Validate, notifier datasync.Notifier, logger *zap.Logger) *GoalService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GoalService{collection: collection, validator: validate, notifier: notifier, logger: logger}
}

// List returns the live goal collection, loading it on first use.
func (s *GoalService) List(ctx context.Context) ([]models.Goal, datasync.Source, error) {
	return s.collection.Ensure(ctx)
}

// Create adds a goal optimistically. The goal stays in the live list with its
// optimistic values even if the remote insert later fails.
func (s *GoalService) Create(ctx context.Context, req dto.CreateGoalRequest) (models.Goal, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Goal{}, s.validationFailure(err)
	}
	if _, _, err := s.collection.Ensure(ctx); err != nil {
		return models.Goal{}, err
	}

	now := time.Now().UTC()
	goal := models.Goal{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Subject:     req.Subject,
		Owner:       req.Owner,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	goal.SetProgress(req.ProgressPercent)

	return s.collection.Add(ctx, goal), nil
}

// Update mutates goal fields; progress is clamped.
func (s *GoalService) Update(ctx context.Context, id string, req dto.UpdateGoalRequest) (models.Goal, error) {
	if req.Title == nil && req.Description == nil && req.Subject == nil && req.ProgressPercent == nil {
		return models.Goal{}, s.validationFailure(appErrors.Clone(appErrors.ErrValidation, "no fields to update"))
	}
	if _, _, err := s.collection.Ensure(ctx); err != nil {
		return models.Goal{}, err
	}

	updated, ok := s.collection.Apply(ctx, id, func(goal models.Goal) models.Goal {
		if req.Title != nil {
			goal.Title = *req.Title
		}
		if req.Description != nil {
			goal.Description = *req.Description
		}
		if req.Subject != nil {
			goal.Subject = *req.Subject
		}
		if req.ProgressPercent != nil {
			goal.SetProgress(*req.ProgressPercent)
		}
		goal.UpdatedAt = time.Now().UTC()
		return goal
	})
	if !ok {
		return models.Goal{}, appErrors.Clone(appErrors.ErrNotFound, "goal not found")
	}
	return updated, nil
}

// Delete removes a goal optimistically.
func (s *GoalService) Delete(ctx context.Context, id string) error {
	if _, _, err := s.collection.Ensure(ctx); err != nil {
		return err
	}
	if _, ok := s.collection.Remove(ctx, id); !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "goal not found")
	}
	return nil
}

func (s *GoalService) validationFailure(err error) error {
	if s.notifier != nil {
		s.notifier.Error("Invalid goal", "Title, subject and owner are required.")
	}
	appErr := appErrors.FromError(err)
	if appErr.Code == appErrors.ErrValidation.Code {
		return appErr
	}
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
}
