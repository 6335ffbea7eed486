package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/cms-report-api/internal/service"
)

type pingStub struct{ err error }

func (p pingStub) PingContext(context.Context) error { return p.err }

func newMetricsRouter(h *MetricsHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
	r.GET("/metrics", h.Prometheus)
	return r
}

func TestMetricsHandlerReady(t *testing.T) {
	r := newMetricsRouter(NewMetricsHandler(nil, pingStub{}))
	assert.Equal(t, http.StatusOK, serve(r, "/ready").Code)
	assert.Equal(t, http.StatusOK, serve(r, "/health").Code)

	r = newMetricsRouter(NewMetricsHandler(nil, pingStub{err: errors.New("down")}))
	assert.Equal(t, http.StatusServiceUnavailable, serve(r, "/ready").Code)
}

func TestMetricsHandlerPrometheus(t *testing.T) {
	metrics := service.NewMetricsService()
	metrics.RecordReportFailure("course", service.StageBuild)
	r := newMetricsRouter(NewMetricsHandler(metrics.Handler(), nil))

	w := serve(r, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `report_failures_total{kind="course",stage="build"} 1`)

	r = newMetricsRouter(NewMetricsHandler(nil, nil))
	assert.Equal(t, http.StatusServiceUnavailable, serve(r, "/metrics").Code)
}
