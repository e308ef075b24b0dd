package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classpulse/classpulse-api/internal/datasync"
	"github.com/classpulse/classpulse-api/internal/dto"
	"github.com/classpulse/classpulse-api/internal/models"
	"github.com/classpulse/classpulse-api/internal/service"
	appErrors "github.com/classpulse/classpulse-api/pkg/errors"
	"github.com/classpulse/classpulse-api/pkg/response"
)

type gradeService interface {
	List(ctx context.Context) ([]models.GradeEntry, datasync.Source, error)
	Create(ctx context.Context, req dto.CreateGradeEntryRequest) (models.GradeEntry, error)
	UpdateEntry(ctx context.Context, id string, req dto.UpdateGradeEntryRequest) (models.GradeEntry, error)
	Delete(ctx context.Context, id string) error
}

type gradeExporter interface {
	GradeSheet(ctx context.Context, format string) (*service.ExportFile, error)
}

// GradeHandler exposes the grade sheet endpoints.
type GradeHandler struct {
	service  gradeService
	exporter gradeExporter
}

// NewGradeHandler constructs the handler.
func NewGradeHandler(service gradeService, exporter gradeExporter) *GradeHandler {
	return &GradeHandler{service: service, exporter: exporter}
}

// List godoc
// @Summary List grade entries
// @Tags Grades
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /grades [get]
func (h *GradeHandler) List(c *gin.Context) {
	entries, source, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, map[string]interface{}{"source": source})
}

// Create godoc
// @Summary Add a grade entry
// @Tags Grades
// @Accept json
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /grades [post]
func (h *GradeHandler) Create(c *gin.Context) {
	var req dto.CreateGradeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	entry, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}

// Update godoc
// @Summary Update grade and/or attendance percent
// @Tags Grades
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} response.Envelope
// @Router /grades/{id} [patch]
func (h *GradeHandler) Update(c *gin.Context) {
	var req dto.UpdateGradeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	entry, err := h.service.UpdateEntry(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry)
}

// Delete godoc
// @Summary Remove a grade entry
// @Tags Grades
// @Param id path string true "Entry ID"
// @Success 204
// @Router /grades/{id} [delete]
func (h *GradeHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Export godoc
// @Summary Export the grade sheet
// @Tags Grades
// @Produce text/csv,application/pdf
// @Param format query string false "csv (default) or pdf"
// @Router /grades/export [get]
func (h *GradeHandler) Export(c *gin.Context) {
	if h.exporter == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "exports disabled"))
		return
	}
	file, err := h.exporter.GradeSheet(c.Request.Context(), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
