package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classpulse/classpulse-api/internal/datasync"
	"github.com/classpulse/classpulse-api/internal/dto"
	"github.com/classpulse/classpulse-api/internal/models"
	appErrors "github.com/classpulse/classpulse-api/pkg/errors"
	"github.com/classpulse/classpulse-api/pkg/response"
)

type goalService interface {
	List(ctx context.Context) ([]models.Goal, datasync.Source, error)
	Create(ctx context.Context, req dto.CreateGoalRequest) (models.Goal, error)
	Update(ctx context.Context, id string, req dto.UpdateGoalRequest) (models.Goal, error)
	Delete(ctx context.Context, id string) error
}

// GoalHandler exposes the academic goals endpoints.
type GoalHandler struct {
	service goalService
}

// NewGoalHandler constructs the handler.
func NewGoalHandler(service goalService) *GoalHandler {
	return &GoalHandler{service: service}
}

// List godoc
// @Summary List goals
// @Tags Goals
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /goals [get]
func (h *GoalHandler) List(c *gin.Context) {
	goals, source, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, goals, map[string]interface{}{"source": source})
}

// Create godoc
// @Summary Add a goal
// @Tags Goals
// @Accept json
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /goals [post]
func (h *GoalHandler) Create(c *gin.Context) {
	var req dto.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	goal, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, goal)
}

// Update godoc
// @Summary Update goal fields
// @Tags Goals
// @Accept json
// @Produce json
// @Param id path string true "Goal ID"
// @Success 200 {object} response.Envelope
// @Router /goals/{id} [patch]
func (h *GoalHandler) Update(c *gin.Context) {
	var req dto.UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	goal, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, goal)
}

// Delete godoc
// @Summary Remove a goal
// @Tags Goals
// @Param id path string true "Goal ID"
// @Success 204
// @Router /goals/{id} [delete]
func (h *GoalHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
