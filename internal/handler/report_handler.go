package handler

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/cms-report-api/internal/models"
	"github.com/noah-isme/cms-report-api/internal/service"
	appErrors "github.com/noah-isme/cms-report-api/pkg/errors"
	"github.com/noah-isme/cms-report-api/pkg/export"
	"github.com/noah-isme/cms-report-api/pkg/response"
)

type reportService interface {
	CourseReport(ctx context.Context, session models.Session, format export.Format) (*service.ReportResult, error)
	StudentReport(ctx context.Context, session models.Session, studentID int64, format export.Format) (*service.ReportResult, error)
	LecturerReport(ctx context.Context, session models.Session, lecturerID int64, format export.Format) (*service.ReportResult, error)
	LecturerSelfReport(ctx context.Context, session models.Session, format export.Format) (*service.ReportResult, error)
	OpenReportFile(name string) (*os.File, error)
}

// ReportHandler exposes reporting endpoints.
type ReportHandler struct {
	reports       reportService
	defaultFormat export.Format
}

// NewReportHandler constructs handler. defaultFormat applies when the
// request carries no format query parameter.
func NewReportHandler(reports reportService, defaultFormat export.Format) *ReportHandler {
	if defaultFormat == "" {
		defaultFormat = export.FormatConsole
	}
	return &ReportHandler{reports: reports, defaultFormat: defaultFormat}
}

func (h *ReportHandler) format(c *gin.Context) export.Format {
	token, ok := c.GetQuery("format")
	if !ok {
		return h.defaultFormat
	}
	return export.ParseFormat(token)
}

func (h *ReportHandler) respond(c *gin.Context, result *service.ReportResult, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, map[string]interface{}{"lines": len(result.Lines)})
}

// CourseReport godoc
// @Summary Course report
// @Tags Reports
// @Produce json
// @Param format query string false "console, csv, txt; anything else prints raw lines"
// @Success 200 {object} response.Envelope
// @Router /reports/courses [get]
func (h *ReportHandler) CourseReport(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	result, err := h.reports.CourseReport(c.Request.Context(), session, h.format(c))
	h.respond(c, result, err)
}

// StudentReport godoc
// @Summary Student report
// @Tags Reports
// @Produce json
// @Param id path int true "Student ID"
// @Param format query string false "console, csv, txt; anything else prints raw lines"
// @Success 200 {object} response.Envelope
// @Router /reports/students/{id} [get]
func (h *ReportHandler) StudentReport(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	id, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.reports.StudentReport(c.Request.Context(), session, id, h.format(c))
	h.respond(c, result, err)
}

// LecturerReport godoc
// @Summary Lecturer report
// @Tags Reports
// @Produce json
// @Param id path int true "Lecturer ID"
// @Param format query string false "console, csv, txt; anything else prints raw lines"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /reports/lecturers/{id} [get]
func (h *ReportHandler) LecturerReport(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	id, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.reports.LecturerReport(c.Request.Context(), session, id, h.format(c))
	h.respond(c, result, err)
}

// LecturerSelfReport godoc
// @Summary Report for the calling lecturer
// @Tags Reports
// @Produce json
// @Param format query string false "console, csv, txt; anything else prints raw lines"
// @Success 200 {object} response.Envelope
// @Router /reports/me [get]
func (h *ReportHandler) LecturerSelfReport(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	result, err := h.reports.LecturerSelfReport(c.Request.Context(), session, h.format(c))
	h.respond(c, result, err)
}

// DownloadReport godoc
// @Summary Download a persisted csv or txt report
// @Tags Reports
// @Produce octet-stream
// @Param name path string true "Stored file name"
// @Success 200 {file} binary
// @Router /reports/files/{name} [get]
func (h *ReportHandler) DownloadReport(c *gin.Context) {
	name := c.Param("name")
	file, err := h.reports.OpenReportFile(name)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close() //nolint:errcheck

	info, err := file.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to stat report file"))
		return
	}
	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", name))
	c.Header("Cache-Control", "no-store")
	c.DataFromReader(http.StatusOK, info.Size(), contentType, file, nil)
}
