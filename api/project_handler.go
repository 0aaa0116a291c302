package api

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/projectblox-backend/database"
	"github.com/rpupo63/projectblox-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder       Responder
	logger          zerolog.Logger
	projectRepo     *database.ProjectRepo
	projectStepRepo *database.ProjectStepRepo
}

func newProjectHandler(projectRepo *database.ProjectRepo, projectStepRepo *database.ProjectStepRepo) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:       NewResponder(logger),
		logger:          logger,
		projectRepo:     projectRepo,
		projectStepRepo: projectStepRepo,
	}
}

var errProjectNotFound = errs.NewNotFoundError("Project not found")

// getProjects lists published projects
// @Summary List projects
// @Description Retrieves one page of published projects, newest first, optionally filtered by category id and a case-insensitive title/description search
// @Tags Projects
// @Produce json
// @Param category query string false "Category id"
// @Param search query string false "Substring of title or description"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Rows to skip"
// @Success 200 {array} models.Project "Projects"
// @Failure 400 {object} ErrorResponse "Bad Request - limit or offset is not a non-negative integer"
// @Failure 500 {object} ErrorResponse "Failed to fetch projects"
// @Router /api/projects [get]
func (h projectHandler) getProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseProjectFilter(r.URL.Query())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projects, err := h.projectRepo.Find(r.Context(), filter)
		if err != nil {
			h.responder.WriteError(w, wrapFetchError("Failed to fetch projects", err))
			return
		}

		h.responder.WriteJSON(w, projects)
	}
}

// getProject retrieves a published project by slug
// @Summary Get project
// @Description Retrieves a published project by its slug
// @Tags Projects
// @Produce json
// @Param slug path string true "Project slug"
// @Success 200 {object} models.Project "Project"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Failure 500 {object} ErrorResponse "Failed to fetch project"
// @Router /api/projects/{slug} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		project, err := h.projectRepo.FindBySlug(r.Context(), slug)
		if err != nil {
			h.responder.WriteError(w, wrapFetchError("Failed to fetch project", err))
			return
		}

		if project == nil {
			h.responder.WriteError(w, errProjectNotFound)
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// getProjectSteps retrieves the steps of a published project
// @Summary Get project steps
// @Description Retrieves the ordered steps of a published project, tips and common mistakes decoded
// @Tags Projects
// @Produce json
// @Param slug path string true "Project slug"
// @Success 200 {array} models.ProjectStep "Steps in order"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Failure 500 {object} ErrorResponse "Failed to fetch project steps"
// @Router /api/projects/{slug}/steps [get]
func (h projectHandler) getProjectSteps() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		steps, err := h.projectStepRepo.FindByProjectSlug(r.Context(), slug)
		if errs.IsNotFound(err) {
			h.responder.WriteError(w, errProjectNotFound)
			return
		}
		if err != nil {
			h.responder.WriteError(w, wrapFetchError("Failed to fetch project steps", err))
			return
		}

		h.responder.WriteJSON(w, steps)
	}
}

// parseProjectFilter reads category, search, limit and offset. Absent or empty
// numbers fall back to the defaults; anything else must be a non-negative integer.
func parseProjectFilter(query url.Values) (database.ProjectFilter, error) {
	filter := database.ProjectFilter{
		CategoryID: strings.TrimSpace(query.Get("category")),
		Search:     query.Get("search"),
	}

	var err error
	if filter.Limit, err = nonNegativeParam(query, "limit"); err != nil {
		return database.ProjectFilter{}, err
	}
	if filter.Offset, err = nonNegativeParam(query, "offset"); err != nil {
		return database.ProjectFilter{}, err
	}
	return filter, nil
}

func nonNegativeParam(query url.Values, name string) (int, error) {
	raw := strings.TrimSpace(query.Get(name))
	if raw == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewInvalidFieldError(name, "must be an integer")
	}
	if n < 0 {
		return 0, errs.NewInvalidFieldError(name, "must not be negative")
	}
	return n, nil
}
