package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/scan-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/scan-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/scan-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	FrontendURL string
	Env         string
	LogLevel    slog.Level
}

func NewRouter(
	cfg RouterConfig,
	JWTService jwt.Service,
	authHandler AuthHandler,
	departmentHandler DepartmentHandler,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "scan-attendance"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	authenticated := chi.Chain(
		jwtauth.Verify(JWTService.JWTAuth(), jwtauth.TokenFromHeader, jwt.TokenFromSessionCookie),
		middleware.AuthRequired,
	)

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.With(authenticated...).Get("/me", authHandler.Me)
		})

		r.Route("/attendance", func(r chi.Router) {
			// EventSource cannot set headers; the stream authenticates with a query token
			r.Get("/scans/stream", attendanceHandler.Stream)

			r.Group(func(r chi.Router) {
				r.Use(authenticated...)
				r.Use(middleware.RequirePermission(user.PermissionAttendanceScan))
				r.Post("/scan", attendanceHandler.Scan)
				r.Get("/scans/mine", attendanceHandler.GetMyScans)
				r.Get("/scans/stream-token", attendanceHandler.GetStreamToken)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(authenticated...)

			r.Route("/departments", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionDepartmentView))
					r.Get("/", departmentHandler.List)
					r.Get("/my", departmentHandler.GetMine)
					r.Get("/{id}", departmentHandler.Get)
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionDepartmentManage))
					r.Post("/", departmentHandler.Create)
					r.Put("/{id}", departmentHandler.Update)
					r.Delete("/{id}", departmentHandler.Delete)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeView))
					r.Get("/", employeeHandler.ListEmployees)
					r.Get("/{id}", employeeHandler.GetEmployee)
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))
					r.Post("/", employeeHandler.CreateEmployee)
					r.Put("/{id}", employeeHandler.UpdateEmployee)
					r.Delete("/{id}", employeeHandler.DeleteEmployee)
				})

				r.With(middleware.RequirePermission(user.PermissionAttendanceViewAll)).Get("/{id}/attendance", attendanceHandler.GetWallet)
				r.With(middleware.RequirePermission(user.PermissionReportsView)).Get("/{id}/work-logs", attendanceHandler.GetWorkLogs)
				r.With(middleware.RequirePermission(user.PermissionAttendanceSeed)).Post("/{id}/attendance/sample", attendanceHandler.AddSampleEntries)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	return r
}
