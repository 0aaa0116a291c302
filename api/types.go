package api

import (
	"github.com/rpupo63/projectblox-backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	categoryHandler    categoryHandler
	projectHandler     projectHandler
	dashboardHandler   dashboardHandler
	diagnosticsHandler diagnosticsHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Project not found"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"limit"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}

// DashboardResponse is the landing page payload. A half that failed is empty
// and its message appears under Errors.
// @Description Recent projects and categories fetched together
type DashboardResponse struct {
	Projects   []models.Project  `json:"projects"`
	Categories []models.Category `json:"categories"`
	Errors     map[string]string `json:"errors,omitempty"`
}

// DebugResponse reports which backend settings are present without revealing them
type DebugResponse struct {
	DBType     string `json:"db_type" example:"d1"`
	AccountID  string `json:"account_id" example:"SET"`
	DatabaseID string `json:"database_id" example:"SET"`
	APIToken   string `json:"api_token" example:"MISSING"`
	EnvLoaded  bool   `json:"env_loaded" example:"true"`
}

// ConnectivityResponse is returned by the database connectivity check
type ConnectivityResponse struct {
	Message         string `json:"message" example:"ProjectBlox database connected successfully!"`
	ProjectsCount   int    `json:"projects_count" example:"42"`
	CategoriesCount int    `json:"categories_count" example:"8"`
	DatabaseID      string `json:"database_id,omitempty"`
	Timestamp       string `json:"timestamp" example:"2025-01-01T00:00:00Z"`
}

// HealthResponse reports process liveness
type HealthResponse struct {
	Status    string `json:"status" example:"ok"`
	StartedAt string `json:"startedAt"`
	Uptime    string `json:"uptime" example:"1h2m3s"`
}
