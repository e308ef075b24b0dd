package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classpulse/classpulse-api/internal/dto"
	"github.com/classpulse/classpulse-api/internal/models"
	"github.com/classpulse/classpulse-api/internal/service"
	appErrors "github.com/classpulse/classpulse-api/pkg/errors"
	"github.com/classpulse/classpulse-api/pkg/response"
)

type attendanceService interface {
	Week(ctx context.Context, offset int) (*dto.AttendanceWeekResponse, error)
	SetStatus(ctx context.Context, req dto.SetAttendanceRequest) (models.AttendanceRecord, error)
}

type attendanceExporter interface {
	WeeklyAttendance(ctx context.Context, offset int, format string) (*service.ExportFile, error)
}

// AttendanceHandler exposes the windowed attendance endpoints.
type AttendanceHandler struct {
	service  attendanceService
	exporter attendanceExporter
}

// NewAttendanceHandler constructs the handler.
func NewAttendanceHandler(svc attendanceService, exporter attendanceExporter) *AttendanceHandler {
	return &AttendanceHandler{service: svc, exporter: exporter}
}

// Week godoc
// @Summary Windowed attendance records and weekly summaries
// @Tags Attendance
// @Produce json
// @Param weekOffset query int false "0 = current week, negative = prior weeks (clamped to 0)"
// @Success 200 {object} response.Envelope
// @Router /attendance [get]
func (h *AttendanceHandler) Week(c *gin.Context) {
	offset := intQuery(c, "weekOffset", 0)
	week, err := h.service.Week(c.Request.Context(), offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, week)
}

// SetStatus godoc
// @Summary Upsert one student's presence for one date
// @Tags Attendance
// @Accept json
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /attendance [post]
func (h *AttendanceHandler) SetStatus(c *gin.Context) {
	var req dto.SetAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	record, err := h.service.SetStatus(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// Export godoc
// @Summary Export weekly attendance summaries
// @Tags Attendance
// @Produce text/csv,application/pdf
// @Param weekOffset query int false "Week offset"
// @Param format query string false "csv (default) or pdf"
// @Router /attendance/export [get]
func (h *AttendanceHandler) Export(c *gin.Context) {
	if h.exporter == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "exports disabled"))
		return
	}
	offset := intQuery(c, "weekOffset", 0)
	file, err := h.exporter.WeeklyAttendance(c.Request.Context(), offset, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
