package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	_ "github.com/noah-isme/cms-report-api/api/swagger"
	"github.com/noah-isme/cms-report-api/internal/handler"
	"github.com/noah-isme/cms-report-api/internal/repository"
	"github.com/noah-isme/cms-report-api/internal/service"
	"github.com/noah-isme/cms-report-api/pkg/config"
	"github.com/noah-isme/cms-report-api/pkg/database"
	"github.com/noah-isme/cms-report-api/pkg/export"
	"github.com/noah-isme/cms-report-api/pkg/jobs"
	"github.com/noah-isme/cms-report-api/pkg/logger"
	"github.com/noah-isme/cms-report-api/pkg/storage"
)

// @title CMS Report API
// @version 1.0.0
// @description Course, student and lecturer reports over the academic records store
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db.DB); err != nil {
			logr.Fatal("failed to migrate database", zap.Error(err))
		}
	}

	files, err := storage.NewLocalStorage(cfg.Reports.OutputDir)
	if err != nil {
		logr.Fatal("failed to prepare report storage", zap.Error(err))
	}

	validate := validator.New()
	metrics := service.NewMetricsService()
	store := repository.NewStore(db)
	builder := service.NewReportBuilder(store.Courses, store.Modules, store.Lecturers, store.Students, store.Enrolments, store.Grades, logr)
	reports := service.NewReportService(builder, export.NewRegistry(files, os.Stdout, os.Stdout), files, metrics, validate, logr, service.ReportServiceConfig{
		Retention: cfg.Reports.Retention,
	})
	tokens := service.NewTokenService(cfg.JWT.Secret, validate)

	if cfg.Reports.CleanupInterval > 0 {
		sweeper := jobs.NewPeriodic("report-cleanup", func(context.Context) error {
			_, err := reports.Cleanup(cfg.Reports.Retention)
			return err
		}, jobs.PeriodicConfig{Interval: cfg.Reports.CleanupInterval, MaxRetries: 2, RetryDelay: 5 * time.Second, Logger: logr})
		sweeper.Start(context.Background())
		defer sweeper.Stop()
	}

	r := newRouter(cfg, logr, routerDeps{
		reports:  handler.NewReportHandler(reports, export.ParseFormat(cfg.Reports.DefaultFormat)),
		metrics:  handler.NewMetricsHandler(metrics.Handler(), db),
		tokens:   tokens,
		observer: metrics,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "reports_dir", cfg.Reports.OutputDir)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
