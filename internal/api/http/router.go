package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-desk/internal/api/http/handlers"
	"github.com/spec-kit/support-desk/internal/auth"
	"github.com/spec-kit/support-desk/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Queries        *handlers.QueriesHandler
	SupportQueries *handlers.SupportQueriesHandler
	Dashboard      *handlers.DashboardHandler
	Profile        *handlers.ProfileHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)
	app.Post("/auth/logout", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)

	authed := app.Group("", cfg.AuthMiddleware.Handle)

	// both roles manage their own profile
	authed.Get("/profile", auth.RequireRole(), cfg.Profile.Get)
	authed.Put("/profile", auth.RequireRole(), cfg.Profile.Update)

	client := authed.Group("", auth.RequireRole(domain.RoleClient))
	client.Post("/queries", cfg.Queries.Create)
	client.Get("/queries", cfg.Queries.List)
	client.Get("/queries/categories", cfg.Queries.Categories)
	client.Get("/dashboard", cfg.Dashboard.Client)

	support := authed.Group("/support", auth.RequireRole(domain.RoleSupport))
	support.Get("/queries", cfg.SupportQueries.List)
	support.Post("/queries/:id/close", cfg.SupportQueries.Close)
	support.Post("/queries/:id/reopen", cfg.SupportQueries.Reopen)
	support.Get("/dashboard", cfg.Dashboard.Support)
}
