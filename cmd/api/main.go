package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/pharmacy-shift-go/internal/config"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/employee"
	appHTTP "github.com/cmlabs-hris/pharmacy-shift-go/internal/handler/http"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/pkg/cron"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/pkg/database"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/pkg/directory"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/pkg/storage"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/repository/postgresql"
	overtimeService "github.com/cmlabs-hris/pharmacy-shift-go/internal/service/overtime"
	reportService "github.com/cmlabs-hris/pharmacy-shift-go/internal/service/report"
	scheduleService "github.com/cmlabs-hris/pharmacy-shift-go/internal/service/schedule"
	shiftService "github.com/cmlabs-hris/pharmacy-shift-go/internal/service/shift"
	"github.com/go-chi/httplog/v3"
)

const (
	appName    = "pharmacy-shift"
	appVersion = "v1.0.0"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env == "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.LogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", appName),
		slog.String("version", appVersion),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	location, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	shiftConfigRepo := postgresql.NewShiftTimeConfigRepository(db)
	assignmentRepo := postgresql.NewScheduleAssignmentRepository(db)
	overtimeRecordRepo := postgresql.NewOvertimeRecordRepository(db)
	overtimeTotalsRepo := postgresql.NewOvertimeTotalsRepository(db)

	var employeeDirectory employee.Directory
	switch cfg.Directory.Type {
	case config.DirectoryHTTP:
		employeeDirectory = directory.NewHTTPDirectory(cfg.Directory.URL, cfg.Directory.Timeout, logger)
	default:
		employeeDirectory = postgresql.NewEmployeeDirectory(db)
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize local storage: %w", err)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	shiftSvc := shiftService.NewShiftService(shiftConfigRepo)
	scheduleSvc := scheduleService.NewScheduleService(assignmentRepo, shiftSvc, employeeDirectory, logger)
	overtimeSvc := overtimeService.NewOvertimeService(
		postgresql.NewTransactor(db),
		overtimeRecordRepo,
		overtimeTotalsRepo,
		assignmentRepo,
		shiftSvc,
		employeeDirectory,
		logger,
		location,
	)
	reportSvc := reportService.NewReportService(assignmentRepo, shiftSvc, employeeDirectory, fileStorage, logger, location)

	router := appHTTP.NewRouter(JWTService, logger, cfg.App.FrontendURL, appHTTP.Handlers{
		Shift:    appHTTP.NewShiftHandler(shiftSvc),
		Schedule: appHTTP.NewScheduleHandler(scheduleSvc),
		Overtime: appHTTP.NewOvertimeHandler(overtimeSvc),
		Report:   appHTTP.NewReportHandler(reportSvc),
	})

	scheduler := cron.NewScheduler(ctx, logger)
	cron.NewReportJobs(reportSvc, logger, location).RegisterJobs(scheduler, cfg.Report.ExportInterval)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server running", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
