package api

import (
	"net/http"
	"time"

	"github.com/rpupo63/projectblox-backend/config"
	"github.com/rpupo63/projectblox-backend/database"
	"github.com/rpupo63/projectblox-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type diagnosticsHandler struct {
	responder   Responder
	logger      zerolog.Logger
	database    database.Database
	config      map[string]string
	startupTime time.Time
}

func newDiagnosticsHandler(database database.Database, c map[string]string, startupTime time.Time) diagnosticsHandler {
	logger := log.With().Str("handlerName", "diagnosticsHandler").Logger()

	return diagnosticsHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		database:    database,
		config:      c,
		startupTime: startupTime,
	}
}

func presence(c map[string]string, keys ...string) string {
	for _, key := range keys {
		if config.IsSet(c, key) {
			return "SET"
		}
	}
	return "MISSING"
}

// debug reports which backend settings are configured
// @Summary Configuration check
// @Description Reports SET or MISSING for each Cloudflare setting; values are never returned
// @Tags Diagnostics
// @Produce json
// @Success 200 {object} DebugResponse
// @Router /api/debug [get]
func (h diagnosticsHandler) debug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, DebugResponse{
			DBType:     config.GetString(h.config, "DB_TYPE", "d1"),
			AccountID:  presence(h.config, "CLOUDFLARE_ACCOUNT_ID"),
			DatabaseID: presence(h.config, "CLOUDFLARE_DATABASE_ID"),
			APIToken:   presence(h.config, "CLOUDFLARE_API_TOKEN", "CLOUDFLARE_API_TOKEN_SSM_PARAM"),
			EnvLoaded:  config.IsSet(h.config, "CLOUDFLARE_ACCOUNT_ID"),
		})
	}
}

// connectivity counts projects and categories to prove the backend answers
// @Summary Database connectivity check
// @Tags Diagnostics
// @Produce json
// @Success 200 {object} ConnectivityResponse
// @Failure 500 {object} ErrorResponse "Database connection failed"
// @Router /api/test [get]
func (h diagnosticsHandler) connectivity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := h.database.Stats(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("Database connection failed", err))
			return
		}

		h.responder.WriteJSON(w, ConnectivityResponse{
			Message:         "ProjectBlox database connected successfully!",
			ProjectsCount:   stats.ProjectsCount,
			CategoriesCount: stats.CategoriesCount,
			DatabaseID:      config.GetString(h.config, "CLOUDFLARE_DATABASE_ID", ""),
			Timestamp:       time.Now().UTC().Format(time.RFC3339Nano),
		})
	}
}

// healthz reports liveness without touching the backend
func (h diagnosticsHandler) healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, HealthResponse{
			Status:    "ok",
			StartedAt: h.startupTime.UTC().Format(time.RFC3339),
			Uptime:    time.Since(h.startupTime).Round(time.Second).String(),
		})
	}
}
