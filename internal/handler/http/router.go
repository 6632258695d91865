package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/hris-duty-report/internal/config"
	"github.com/cmlabs-hris/hris-duty-report/internal/domain/user"
	"github.com/cmlabs-hris/hris-duty-report/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-duty-report/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-duty-report/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(app config.AppConfig, JWTService jwt.Service, reportHandler ReportHandler, snapshotHandler SnapshotHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(app.Env != "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-duty-report"),
		slog.String("version", "v1.0.0"),
		slog.String("env", app.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	r.Get("/static/print.css", reportHandler.GetPrintStylesheet)

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/reports", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionReportsView)).
					Get("/attendance", reportHandler.GetAttendanceReport)

				r.Route("/duty-summary", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionReportsView)).
						Get("/", reportHandler.GetDutySummaryReport)
					r.With(middleware.RequirePermission(user.PermissionReportsExport)).
						Get("/export", reportHandler.ExportDutySummary)
				})
			})

			r.With(middleware.RequirePermission(user.PermissionAttendanceViewOwn)).
				Get("/attendance/me", reportHandler.GetMyAttendance)

			// Admin only
			r.Route("/snapshots", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Use(middleware.RequirePermission(user.PermissionSnapshotsManage))
				r.Post("/sync", snapshotHandler.Sync)
			})
		})
	})
	return r
}
