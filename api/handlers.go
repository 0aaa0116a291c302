package api

import (
	"time"

	"github.com/rpupo63/projectblox-backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, c map[string]string, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		categoryHandler:    newCategoryHandler(database.CategoryRepo()),
		projectHandler:     newProjectHandler(database.ProjectRepo(), database.ProjectStepRepo()),
		dashboardHandler:   newDashboardHandler(database.ProjectRepo(), database.CategoryRepo()),
		diagnosticsHandler: newDiagnosticsHandler(database, c, startupTime),
	}
}
