package main

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/cms-report-api/internal/handler"
	"github.com/noah-isme/cms-report-api/internal/middleware"
	"github.com/noah-isme/cms-report-api/internal/models"
	"github.com/noah-isme/cms-report-api/pkg/config"
	"github.com/noah-isme/cms-report-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/cms-report-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/cms-report-api/pkg/middleware/requestid"
)

type sessionParser interface {
	ParseSession(token string) (models.Session, error)
}

type requestObserver interface {
	ObserveHTTPRequest(method, path string, status int, duration time.Duration)
}

type routerDeps struct {
	reports  *handler.ReportHandler
	metrics  *handler.MetricsHandler
	tokens   sessionParser
	observer requestObserver
}

func newRouter(cfg *config.Config, logr *zap.Logger, deps routerDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(deps.observer))

	r.GET("/health", deps.metrics.Health)
	r.GET("/ready", deps.metrics.Ready)
	r.GET("/metrics", deps.metrics.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	reports := api.Group("/reports", middleware.JWT(deps.tokens))
	{
		office := reports.Group("", middleware.RequireRoles(models.RoleOffice))
		office.GET("/courses", deps.reports.CourseReport)
		office.GET("/students/:id", deps.reports.StudentReport)
		office.GET("/lecturers/:id", deps.reports.LecturerReport)
		office.GET("/files/:name", deps.reports.DownloadReport)

		reports.GET("/me", middleware.RequireRoles(models.RoleLecturer), deps.reports.LecturerSelfReport)
	}

	return r
}
