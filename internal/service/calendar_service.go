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

// CalendarService manages academic calendar events through the sync layer.
type CalendarService struct {
	collection *datasync.Collection[models.CalendarEvent]
	validator  *validator.Validate
	notifier   datasync.Notifier
	logger     *zap.Logger
}

// NewCalendarService constructs the service.
func NewCalendarService(collection *datasync.Collection[models.CalendarEvent], validate *validator.Validate, notifier datasync.Notifier, logger *zap.Logger) *CalendarService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &CalendarService{collection: collection, validator: validate, notifier: notifier, logger: logger}
	_ = svc.validator.RegisterValidation("event_category", func(fl validator.FieldLevel) bool {
		return models.EventCategory(fl.Field().String()).Valid()
	})
	return svc
}

// List returns the live event collection, loading it on first use.
func (s *CalendarService) List(ctx context.Context) ([]models.CalendarEvent, datasync.Source, error) {
	return s.collection.Ensure(ctx)
}

// Create adds an event optimistically.
func (s *CalendarService) Create(ctx context.Context, req dto.CreateEventRequest) (models.CalendarEvent, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.CalendarEvent{}, s.validationFailure(err)
	}
	if _, _, err := s.collection.Ensure(ctx); err != nil {
		return models.CalendarEvent{}, err
	}

	now := time.Now().UTC()
	event := models.CalendarEvent{
		ID:           uuid.NewString(),
		Title:        req.Title,
		Description:  req.Description,
		OccursOn:     req.OccursOn,
		Category:     models.EventCategory(req.Category),
		AttributedTo: req.AttributedTo,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.collection.Add(ctx, event), nil
}

// Update replaces the mutable fields of an event.
func (s *CalendarService) Update(ctx context.Context, id string, req dto.UpdateEventRequest) (models.CalendarEvent, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.CalendarEvent{}, s.validationFailure(err)
	}
	if _, _, err := s.collection.Ensure(ctx); err != nil {
		return models.CalendarEvent{}, err
	}

	updated, ok := s.collection.Apply(ctx, id, func(event models.CalendarEvent) models.CalendarEvent {
		event.Title = req.Title
		event.Description = req.Description
		event.OccursOn = req.OccursOn
		event.Category = models.EventCategory(req.Category)
		event.AttributedTo = req.AttributedTo
		event.UpdatedAt = time.Now().UTC()
		return event
	})
	if !ok {
		return models.CalendarEvent{}, appErrors.Clone(appErrors.ErrNotFound, "event not found")
	}
	return updated, nil
}

// Delete removes an event optimistically.
func (s *CalendarService) Delete(ctx context.Context, id string) error {
	if _, _, err := s.collection.Ensure(ctx); err != nil {
		return err
	}
	if _, ok := s.collection.Remove(ctx, id); !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "event not found")
	}
	return nil
}

func (s *CalendarService) validationFailure(err error) error {
	if s.notifier != nil {
		s.notifier.Error("Invalid event", "Title, date and a valid category are required.")
	}
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
}
