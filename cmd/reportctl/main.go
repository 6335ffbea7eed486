package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/cms-report-api/internal/repository"
	"github.com/noah-isme/cms-report-api/internal/service"
	"github.com/noah-isme/cms-report-api/pkg/config"
	"github.com/noah-isme/cms-report-api/pkg/database"
	"github.com/noah-isme/cms-report-api/pkg/export"
	"github.com/noah-isme/cms-report-api/pkg/logger"
	"github.com/noah-isme/cms-report-api/pkg/storage"
)

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

	files, err := storage.NewLocalStorage(cfg.Reports.OutputDir)
	if err != nil {
		log.Fatalf("failed to prepare report storage: %v", err)
	}

	validate := validator.New()
	cli := &commandLine{
		tokens:        service.NewTokenService(cfg.JWT.Secret, validate),
		out:           os.Stdout,
		defaultFormat: cfg.Reports.DefaultFormat,
	}

	var builder *service.ReportBuilder
	if needsStore(os.Args) {
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			log.Fatalf("failed to connect database: %v", err)
		}
		defer db.Close() //nolint:errcheck
		cli.db = db.DB

		store := repository.NewStore(db)
		builder = service.NewReportBuilder(store.Courses, store.Modules, store.Lecturers, store.Students, store.Enrolments, store.Grades, logr)
	}
	cli.reports = service.NewReportService(builder, export.NewRegistry(files, os.Stdout, os.Stdout), files, nil, validate, logr, service.ReportServiceConfig{
		Retention: cfg.Reports.Retention,
	})

	if err := cli.run(context.Background(), os.Args); err != nil {
		if errors.Is(err, errHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
