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

	"github.com/cmlabs-hris/hris-duty-report/internal/config"
	"github.com/cmlabs-hris/hris-duty-report/internal/domain/attendance"
	appHTTP "github.com/cmlabs-hris/hris-duty-report/internal/handler/http"
	"github.com/cmlabs-hris/hris-duty-report/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-duty-report/internal/pkg/database"
	"github.com/cmlabs-hris/hris-duty-report/internal/pkg/hrisapi"
	"github.com/cmlabs-hris/hris-duty-report/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-duty-report/internal/pkg/oauth"
	"github.com/cmlabs-hris/hris-duty-report/internal/repository/postgresql"
	reportService "github.com/cmlabs-hris/hris-duty-report/internal/service/report"
	snapshotService "github.com/cmlabs-hris/hris-duty-report/internal/service/snapshot"
	"github.com/cmlabs-hris/hris-duty-report/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.SlogLevel(),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpClient := oauth.NewHTTPClient(ctx, cfg.Upstream, &http.Client{Timeout: cfg.Upstream.Timeout})
	hrisClient := hrisapi.NewClient(cfg.Upstream, httpClient)

	var snapshotRepo attendance.SnapshotRepository
	if cfg.Database.Enabled {
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			slog.Error("Error connecting to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := migrations.Up(ctx, db); err != nil {
			slog.Error("Error applying migrations", "error", err)
			os.Exit(1)
		}
		snapshotRepo = postgresql.NewAttendanceSnapshotRepository(db)
	}

	var attendanceRepo attendance.AttendanceRepository = hrisClient
	if cfg.Report.Source == config.SourceSnapshot {
		attendanceRepo = snapshotRepo
	}

	var holidayRepo attendance.HolidayRepository
	if cfg.Report.AttachHoliday {
		holidayRepo = hrisClient
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)
	reportSvc := reportService.NewReportService(attendanceRepo, holidayRepo)
	snapshotSvc := snapshotService.NewSnapshotService(hrisClient, snapshotRepo, cfg.Cron.SyncLookbackDays, cfg.Cron.RetentionDays)

	if cfg.Cron.Enabled {
		scheduler := cron.NewScheduler()
		cron.NewSnapshotJobs(snapshotSvc, cfg.Cron.SyncInterval).RegisterJobs(scheduler)
		scheduler.Start()
		defer scheduler.Stop()
	}

	reportHandler := appHTTP.NewReportHandler(reportSvc)
	snapshotHandler := appHTTP.NewSnapshotHandler(snapshotSvc)

	router := appHTTP.NewRouter(
		cfg.App,
		JWTService,
		reportHandler,
		snapshotHandler,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "report_source", cfg.Report.Source)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
}
