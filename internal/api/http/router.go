package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/jobboard-service/internal/api/http/handlers"
	"github.com/spec-kit/jobboard-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Jobs           *handlers.JobsHandler
	Applications   *handlers.ApplicationsHandler
	AuthMiddleware *auth.AuthMiddleware
	UploadDir      string
	UploadPath     string
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	if cfg.UploadDir != "" && cfg.UploadPath != "" {
		app.Static(cfg.UploadPath, cfg.UploadDir)
	}

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)
	authGroup.Post("/password/change", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Auth.ChangePassword)

	jobs := app.Group("/jobs")
	jobs.Get("/", cfg.Jobs.List)
	jobs.Get("/:id", cfg.Jobs.Get)
	jobs.Post("/", cfg.AuthMiddleware.Handle, auth.RequireRecruiter(), cfg.Jobs.Create)
	jobs.Put("/:id", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Jobs.Update)
	jobs.Delete("/:id", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Jobs.Delete)

	applications := app.Group("/applications", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	applications.Post("/", cfg.Applications.Apply)
	applications.Get("/", cfg.Applications.List)
	applications.Put("/:id/status", cfg.Applications.UpdateStatus)
	applications.Get("/:id/history", cfg.Applications.ListStatusHistory)
}
