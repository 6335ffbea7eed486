package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/cms-report-api/internal/models"
	"github.com/noah-isme/cms-report-api/pkg/export"
)

// Report failure stages.
const (
	StageAuthorize = "authorize"
	StageBuild     = "build"
	StageRender    = "render"
)

// MetricsService encapsulates Prometheus instrumentation.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	reportsTotal    *prometheus.CounterVec
	reportFailures  *prometheus.CounterVec
	buildDuration   *prometheus.HistogramVec
	filesRemoved    prometheus.Counter
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	reportsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reports_generated_total",
		Help: "Reports rendered successfully",
	}, []string{"kind", "format"})

	reportFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "report_failures_total",
		Help: "Report requests that failed, by stage",
	}, []string{"kind", "stage"})

	buildDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "report_build_duration_seconds",
		Help:    "Time spent walking the record store for a report",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})

	filesRemoved := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "report_files_removed_total",
		Help: "Persisted report files removed by retention cleanup",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, reportsTotal, reportFailures, buildDuration, filesRemoved, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		reportsTotal:    reportsTotal,
		reportFailures:  reportFailures,
		buildDuration:   buildDuration,
		filesRemoved:    filesRemoved,
	}
}

// Registry exposes the underlying Prometheus registry.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveReportBuild records how long the builder took for kind.
func (m *MetricsService) ObserveReportBuild(kind models.ReportKind, duration time.Duration) {
	if m == nil {
		return
	}
	m.buildDuration.WithLabelValues(string(kind)).Observe(duration.Seconds())
}

// RecordReportGenerated counts a successfully rendered report.
func (m *MetricsService) RecordReportGenerated(kind models.ReportKind, format export.Format) {
	if m == nil {
		return
	}
	m.reportsTotal.WithLabelValues(string(kind), string(format)).Inc()
}

// RecordReportFailure counts a failed report at stage.
func (m *MetricsService) RecordReportFailure(kind models.ReportKind, stage string) {
	if m == nil {
		return
	}
	m.reportFailures.WithLabelValues(string(kind), stage).Inc()
}

// RecordFilesRemoved counts files deleted by retention cleanup.
func (m *MetricsService) RecordFilesRemoved(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.filesRemoved.Add(float64(n))
}
