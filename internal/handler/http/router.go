package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/payroll-backend-go/internal/config"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	app config.AppConfig,
	JWTService jwt.Service,
	authHandler AuthHandler,
	userHandler UserHandler,
	employeeHandler EmployeeHandler,
	departmentHandler DepartmentHandler,
	timeEntryHandler TimeEntryHandler,
	payrollHandler PayrollHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(app.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", app.Name),
		slog.String("env", app.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json", "application/x-www-form-urlencoded"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(app.Name + "\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/users", func(r chi.Router) {
				r.Route("/me", func(r chi.Router) {
					r.Get("/", userHandler.GetMe)
					r.Put("/", userHandler.UpdateMe)
					r.Get("/employee", userHandler.GetMyEmployee)
					r.Post("/employee", userHandler.CreateMyEmployee)
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", userHandler.List)
					r.Get("/{id}", userHandler.Get)
					r.Put("/{id}", userHandler.Update)
					r.Delete("/{id}", userHandler.Delete)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				// owner or admin, checked by the service
				r.Get("/{id}", employeeHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", employeeHandler.List)
					r.Post("/", employeeHandler.Create)
					r.Put("/{id}", employeeHandler.Update)
					r.Delete("/{id}", employeeHandler.Delete)
				})
			})

			r.Route("/departments", func(r chi.Router) {
				r.Get("/", departmentHandler.List)
				r.Get("/{id}", departmentHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", departmentHandler.Create)
					r.Put("/{id}", departmentHandler.Update)
					r.Delete("/{id}", departmentHandler.Delete)
				})
			})

			r.Route("/time", func(r chi.Router) {
				r.Get("/summary/me", timeEntryHandler.MySummary)

				r.Route("/entries", func(r chi.Router) {
					r.Post("/", timeEntryHandler.ClockIn)
					r.Get("/me", timeEntryHandler.ListMine)
					r.Get("/{id}", timeEntryHandler.Get)
					r.Put("/{id}", timeEntryHandler.Update)
					r.Put("/{id}/clock-out", timeEntryHandler.ClockOut)

					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Get("/", timeEntryHandler.List)
						r.Delete("/{id}", timeEntryHandler.Delete)
					})
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Route("/records", func(r chi.Router) {
					r.Get("/", payrollHandler.ListRecords)
					r.Get("/me", payrollHandler.ListMyRecords)
					r.Get("/{id}", payrollHandler.GetRecord)

					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Post("/", payrollHandler.CreateRecord)
						r.Put("/{id}", payrollHandler.UpdateRecord)
					})
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/calculate", payrollHandler.Calculate)
					r.Post("/process-period", payrollHandler.ProcessPeriod)
					r.Get("/summary", payrollHandler.Summary)
				})
			})
		})
	})
	return r
}
