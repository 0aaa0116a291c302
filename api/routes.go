package api

import (
	"github.com/go-chi/chi/v5"
)

// setupCatalogRoutes mounts the read-only catalog API. There is no authentication.
func setupCatalogRoutes(r chi.Router, handlers *routeHandlers) {
	r.Get("/healthz", handlers.diagnosticsHandler.healthz())

	r.Route("/api", func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/categories", handlers.categoryHandler.getAllCategories())

		r.Get("/projects", handlers.projectHandler.getProjects())
		r.Get("/projects/{slug}", handlers.projectHandler.getProject())
		r.Get("/projects/{slug}/steps", handlers.projectHandler.getProjectSteps())

		r.Get("/dashboard", handlers.dashboardHandler.getDashboard())

		r.Get("/debug", handlers.diagnosticsHandler.debug())
		r.Get("/test", handlers.diagnosticsHandler.connectivity())
	})
}
