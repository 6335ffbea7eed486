package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/cms-report-api/internal/models"
	appErrors "github.com/noah-isme/cms-report-api/pkg/errors"
	"github.com/noah-isme/cms-report-api/pkg/export"
)

const (
	courseReportPrefix       = "CourseReport_"
	studentReportPrefix      = "StudentReport_"
	lecturerReportPrefix     = "LecturerReport_"
	lecturerSelfReportPrefix = "LecturerSelfReport_"
)

var reportFilePrefixes = []string{courseReportPrefix, studentReportPrefix, lecturerReportPrefix, lecturerSelfReportPrefix}

type documentBuilder interface {
	BuildCourseReport(ctx context.Context) ([]string, error)
	BuildStudentReport(ctx context.Context, studentID int64) ([]string, bool, error)
	BuildLecturerReport(ctx context.Context, lecturerID int64) ([]string, error)
	BuildLecturerSelfReport(ctx context.Context, lecturerID int64) ([]string, error)
}

type rendererRegistry interface {
	For(format export.Format) export.Renderer
}

type reportFileStore interface {
	Open(filename string) (*os.File, error)
	CleanupOlderThan(ttl time.Duration, match func(name string) bool) ([]string, error)
}

type reportMetrics interface {
	ObserveReportBuild(kind models.ReportKind, duration time.Duration)
	RecordReportGenerated(kind models.ReportKind, format export.Format)
	RecordReportFailure(kind models.ReportKind, stage string)
	RecordFilesRemoved(n int)
}

// ReportServiceConfig governs naming and retention.
type ReportServiceConfig struct {
	Retention time.Duration
	// Now supplies the timestamp embedded in document names.
	Now func() time.Time
}

// ReportResult describes a rendered report.
type ReportResult struct {
	Kind     models.ReportKind `json:"kind"`
	Name     string            `json:"name"`
	Format   export.Format     `json:"format"`
	Lines    []string          `json:"lines"`
	Location string            `json:"location,omitempty"`
}

// ReportService authorizes report requests, builds the document and hands it
// to the backend selected by format.
type ReportService struct {
	builder   documentBuilder
	renderers rendererRegistry
	files     reportFileStore
	metrics   reportMetrics
	validator *validator.Validate
	logger    *zap.Logger
	cfg       ReportServiceConfig
}

// NewReportService constructs the report service. metrics may be nil.
func NewReportService(builder documentBuilder, renderers rendererRegistry, files reportFileStore, metrics reportMetrics, validate *validator.Validate, logger *zap.Logger, cfg ReportServiceConfig) *ReportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 7 * 24 * time.Hour
	}
	if metrics == nil {
		metrics = (*MetricsService)(nil)
	}
	return &ReportService{
		builder:   builder,
		renderers: renderers,
		files:     files,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
	}
}

// CourseReport renders every course with its modules.
func (s *ReportService) CourseReport(ctx context.Context, session models.Session, format export.Format) (*ReportResult, error) {
	kind := models.ReportKindCourse
	if err := s.authorize(session, kind, models.RoleOffice); err != nil {
		return nil, err
	}

	started := time.Now()
	lines, err := s.builder.BuildCourseReport(ctx)
	s.metrics.ObserveReportBuild(kind, time.Since(started))
	if err != nil {
		return nil, s.buildFailure(kind, err)
	}
	return s.render(kind, s.name(courseReportPrefix), lines, format)
}

// StudentReport renders one student's enrolments. An unknown student still
// produces a document holding a not-found notice.
func (s *ReportService) StudentReport(ctx context.Context, session models.Session, studentID int64, format export.Format) (*ReportResult, error) {
	kind := models.ReportKindStudent
	if err := s.authorize(session, kind, models.RoleOffice); err != nil {
		return nil, err
	}

	started := time.Now()
	lines, found, err := s.builder.BuildStudentReport(ctx, studentID)
	s.metrics.ObserveReportBuild(kind, time.Since(started))
	if err != nil {
		return nil, s.buildFailure(kind, err, zap.Int64("student_id", studentID))
	}

	prefix := fmt.Sprintf("%s%d_", studentReportPrefix, studentID)
	if !found {
		prefix = studentReportPrefix + "NotFound_"
	}
	return s.render(kind, s.name(prefix), lines, format)
}

// LecturerReport renders a lecturer with the modules they teach.
func (s *ReportService) LecturerReport(ctx context.Context, session models.Session, lecturerID int64, format export.Format) (*ReportResult, error) {
	kind := models.ReportKindLecturer
	if err := s.authorize(session, kind, models.RoleOffice); err != nil {
		return nil, err
	}

	started := time.Now()
	lines, err := s.builder.BuildLecturerReport(ctx, lecturerID)
	s.metrics.ObserveReportBuild(kind, time.Since(started))
	if err != nil {
		return nil, s.buildFailure(kind, err, zap.Int64("lecturer_id", lecturerID))
	}
	return s.render(kind, s.name(fmt.Sprintf("%s%d_", lecturerReportPrefix, lecturerID)), lines, format)
}

// LecturerSelfReport renders the calling lecturer's own report.
func (s *ReportService) LecturerSelfReport(ctx context.Context, session models.Session, format export.Format) (*ReportResult, error) {
	kind := models.ReportKindLecturerSelf
	if err := s.authorize(session, kind, models.RoleLecturer); err != nil {
		return nil, err
	}

	started := time.Now()
	lines, err := s.builder.BuildLecturerSelfReport(ctx, session.UserID)
	s.metrics.ObserveReportBuild(kind, time.Since(started))
	if err != nil {
		return nil, s.buildFailure(kind, err, zap.Int64("lecturer_id", session.UserID))
	}
	return s.render(kind, s.name(fmt.Sprintf("%s%d_", lecturerSelfReportPrefix, session.UserID)), lines, format)
}

// OpenReportFile opens a persisted csv or txt report by its stored name.
func (s *ReportService) OpenReportFile(name string) (*os.File, error) {
	if name == "" || filepath.Base(name) != name || !IsReportFile(name) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid report file name")
	}
	file, err := s.files.Open(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "report file not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open report file")
	}
	return file, nil
}

// Cleanup removes persisted report files older than ttl, or the configured
// retention when ttl is not positive. It returns the removed names.
func (s *ReportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.Retention
	}
	removed, err := s.files.CleanupOlderThan(ttl, IsReportFile)
	s.metrics.RecordFilesRemoved(len(removed))
	if err != nil {
		s.logger.Error("report cleanup failed", zap.Error(err), zap.Int("removed", len(removed)))
		return removed, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clean up reports")
	}
	if len(removed) > 0 {
		s.logger.Info("report files removed", zap.Int("count", len(removed)), zap.Duration("ttl", ttl))
	}
	return removed, nil
}

// IsReportFile reports whether name looks like a file written by a file backend.
func IsReportFile(name string) bool {
	ext := filepath.Ext(name)
	if ext != ".csv" && ext != ".txt" {
		return false
	}
	for _, prefix := range reportFilePrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

func (s *ReportService) authorize(session models.Session, kind models.ReportKind, roles ...models.UserRole) error {
	if err := s.validator.Struct(session); err != nil {
		s.metrics.RecordReportFailure(kind, StageAuthorize)
		return appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid session")
	}
	for _, role := range roles {
		if session.Is(role) {
			return nil
		}
	}
	s.metrics.RecordReportFailure(kind, StageAuthorize)
	s.logger.Warn("report access denied", zap.String("kind", string(kind)), zap.String("role", string(session.Role)), zap.Int64("user_id", session.UserID))
	return appErrors.Clone(appErrors.ErrForbidden, fmt.Sprintf("role %s may not request %s reports", session.Role, kind))
}

func (s *ReportService) buildFailure(kind models.ReportKind, err error, fields ...zap.Field) error {
	s.metrics.RecordReportFailure(kind, StageBuild)
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	s.logger.Error("report build failed", append(fields, zap.String("kind", string(kind)), zap.Error(err))...)
	return appErrors.WrapAs(appErrors.ErrStoreUnavailable, err, "")
}

func (s *ReportService) render(kind models.ReportKind, name string, lines []string, format export.Format) (*ReportResult, error) {
	doc := export.Document{Name: name, Lines: lines}
	location, err := s.renderers.For(format).Render(doc)
	if err != nil {
		s.metrics.RecordReportFailure(kind, StageRender)
		s.logger.Error("report render failed", zap.String("kind", string(kind)), zap.String("name", name), zap.String("format", string(format)), zap.Error(err))
		return nil, appErrors.WrapAs(appErrors.ErrRenderFailed, err, "")
	}
	s.metrics.RecordReportGenerated(kind, format)
	s.logger.Info("report generated", zap.String("kind", string(kind)), zap.String("name", name), zap.String("format", string(format)), zap.Int("lines", len(lines)))
	return &ReportResult{Kind: kind, Name: name, Format: format, Lines: lines, Location: location}, nil
}

func (s *ReportService) name(prefix string) string {
	return fmt.Sprintf("%s%d", prefix, s.cfg.Now().UnixMilli())
}
