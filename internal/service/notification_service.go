package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/classpulse/classpulse-api/internal/models"
)

// NotificationService keeps a bounded ring of recent sync notifications, the
// backend of the dashboard's toast stream. Fire-and-forget: callers never
// block on delivery.
type NotificationService struct {
	mu       sync.Mutex
	buf      []models.Notification
	capacity int
	logger   *zap.Logger
	now      func() time.Time
}

// NewNotificationService constructs the service.
func NewNotificationService(capacity int, logger *zap.Logger) *NotificationService {
	if capacity <= 0 {
		capacity = 50
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		capacity: capacity,
		logger:   logger,
		now:      time.Now,
	}
}

// Notify records a notification, evicting the oldest when full.
func (s *NotificationService) Notify(kind models.NotificationKind, title, message string) {
	notification := models.Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Title:     title,
		Message:   message,
		CreatedAt: s.now().UTC(),
	}

	s.mu.Lock()
	s.buf = append(s.buf, notification)
	if len(s.buf) > s.capacity {
		s.buf = s.buf[len(s.buf)-s.capacity:]
	}
	s.mu.Unlock()

	s.logger.Info("notification",
		zap.String("kind", string(kind)),
		zap.String("title", title),
		zap.String("message", message),
	)
}

// Success implements the coordinator notifier contract.
func (s *NotificationService) Success(title, message string) {
	s.Notify(models.NotificationSuccess, title, message)
}

// Error implements the coordinator notifier contract.
func (s *NotificationService) Error(title, message string) {
	s.Notify(models.NotificationError, title, message)
}

// Recent returns notifications newest first.
func (s *NotificationService) Recent() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Notification, len(s.buf))
	for i, n := range s.buf {
		out[len(s.buf)-1-i] = n
	}
	return out
}
