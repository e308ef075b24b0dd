package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classpulse/classpulse-api/internal/models"
	"github.com/classpulse/classpulse-api/pkg/response"
)

type notificationLister interface {
	Recent() []models.Notification
}

// NotificationHandler exposes the recent sync notification feed.
type NotificationHandler struct {
	service notificationLister
}

// NewNotificationHandler constructs the handler.
func NewNotificationHandler(service notificationLister) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// List godoc
// @Summary Recent sync notifications, newest first
// @Tags Notifications
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Recent())
}
