package http

import (
	"log/slog"

	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/user"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers groups the endpoint handlers mounted under /api/v1.
type Handlers struct {
	Shift    ShiftHandler
	Schedule ScheduleHandler
	Overtime OvertimeHandler
	Report   ReportHandler
}

func NewRouter(JWTService jwt.Service, logger *slog.Logger, allowedOrigins []string, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired)

		r.Route("/shifts", func(r chi.Router) {
			r.Use(middleware.RequirePermission(user.PermissionShiftView))
			r.Get("/times", h.Shift.Times)
			r.Get("/hours", h.Shift.Hours)
			r.Get("/configs", h.Shift.ListConfigs)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionShiftManage))
				r.Put("/configs/{shift}", h.Shift.UpsertConfig)
				r.Delete("/configs/{shift}", h.Shift.DeactivateConfig)
			})
		})

		r.Route("/schedules", func(r chi.Router) {
			r.Use(middleware.RequirePermission(user.PermissionScheduleView))
			r.Get("/", h.Schedule.List)
			r.Get("/daily", h.Schedule.Daily)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionScheduleManage))
				r.Post("/", h.Schedule.Assign)
				r.Patch("/{id}/leave-type", h.Schedule.SetLeaveType)
				r.Delete("/{id}", h.Schedule.Unassign)
			})
		})

		r.Route("/overtime", func(r chi.Router) {
			r.Use(middleware.RequireAnyPermission(user.PermissionOvertimeViewOwn, user.PermissionOvertimeViewAll))
			r.Get("/", h.Overtime.List)
			r.Get("/estimate", h.Overtime.Estimate)
			r.Get("/summary", h.Overtime.Summary)
			// Ownership of a single record is checked by the service.
			r.Put("/{id}", h.Overtime.Update)
			r.Delete("/{id}", h.Overtime.Delete)

			r.With(middleware.RequirePermission(user.PermissionOvertimeCreate)).Post("/", h.Overtime.Create)
			r.With(middleware.RequirePermission(user.PermissionOvertimeViewAll)).Post("/merge", h.Overtime.Merge)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionOvertimeApprove))
				r.Post("/{id}/approve", h.Overtime.Approve)
				r.Post("/{id}/reject", h.Overtime.Reject)
			})
		})

		r.Route("/reports", func(r chi.Router) {
			r.Use(middleware.RequirePermission(user.PermissionReportsView))
			r.Get("/monthly-hours", h.Report.GetMonthlyHoursReport)
			r.Get("/monthly-hours/export", h.Report.ExportMonthlyHoursReport)
		})
	})

	return r
}
