package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/talentindo/hrms-backend-go/internal/config"
	"github.com/talentindo/hrms-backend-go/internal/handler/http/middleware"
	"github.com/talentindo/hrms-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	userHandler UserHandler,
	employeeHandler EmployeeHandler,
	requestHandler RequestHandler,
	attendanceHandler AttendanceHandler,
	departmentHandler DepartmentHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
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

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/logout", authHandler.Logout)
			r.Route("/oauth", func(r chi.Router) {
				r.Get("/google", authHandler.GoogleRedirect)
				r.Get("/callback/google", authHandler.GoogleCallback)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/users", func(r chi.Router) {
				r.Post("/", userHandler.Create)
				r.Route("/{id}/roles", func(r chi.Router) {
					r.Post("/", userHandler.AssignRole)
					r.Delete("/{role}", userHandler.RemoveRole)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.List)
				r.Post("/", employeeHandler.Create)
				r.Post("/import", employeeHandler.Import)
				r.Get("/export", employeeHandler.Export)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", employeeHandler.Get)
					r.Put("/", employeeHandler.Update)
					r.Delete("/", employeeHandler.Delete)
					r.Post("/photo", employeeHandler.UploadPhoto)
				})
			})

			r.Route("/requests/{type}", func(r chi.Router) {
				r.Get("/", requestHandler.List)
				r.Post("/", requestHandler.Create)
				r.Get("/export", requestHandler.Export)
				r.Put("/bulk-status", requestHandler.BulkUpdateStatus)
				r.Route("/{id}", func(r chi.Router) {
					r.Put("/status", requestHandler.UpdateStatus)
					r.Delete("/", requestHandler.Destroy)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", attendanceHandler.List)
				r.Post("/", attendanceHandler.Create)
				r.Post("/import", attendanceHandler.Import)
				r.Post("/device-pull", attendanceHandler.PullFromDevice)
			})

			r.Route("/departments", func(r chi.Router) {
				r.Get("/", departmentHandler.List)
				r.Post("/", departmentHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Put("/", departmentHandler.Rename)
					r.Delete("/", departmentHandler.Delete)
				})
				r.Route("/managers", func(r chi.Router) {
					r.Get("/", departmentHandler.ListManagers)
					r.Post("/", departmentHandler.AssignManager)
					r.Delete("/", departmentHandler.UnassignManager)
				})
			})
		})
	})
	return r
}
