package api

import (
	"context"
	"net/http"
	"slices"

	"github.com/rpupo63/projectblox-backend/database"
	"github.com/rpupo63/projectblox-backend/errs"
	"github.com/rpupo63/projectblox-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// dashboardProjectLimit is how many recent projects the landing page shows
const dashboardProjectLimit = 12

type dashboardHandler struct {
	responder    Responder
	logger       zerolog.Logger
	projectRepo  *database.ProjectRepo
	categoryRepo *database.CategoryRepo
}

func newDashboardHandler(projectRepo *database.ProjectRepo, categoryRepo *database.CategoryRepo) dashboardHandler {
	logger := log.With().Str("handlerName", "dashboardHandler").Logger()

	return dashboardHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		projectRepo:  projectRepo,
		categoryRepo: categoryRepo,
	}
}

// getDashboard fetches recent projects and all categories concurrently
// @Summary Get dashboard
// @Description Recent projects (featured first) and categories. Each half is fetched independently; a failed half is reported under errors while the other is still returned.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} DashboardResponse "Dashboard data, possibly partial"
// @Failure 500 {object} ErrorResponse "Failed to load dashboard"
// @Router /api/dashboard [get]
func (h dashboardHandler) getDashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response, err := h.load(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("Failed to load dashboard", err))
			return
		}
		h.responder.WriteJSON(w, response)
	}
}

// load runs both fetches to completion; one failing does not cancel the other.
// It only fails when both halves failed.
func (h dashboardHandler) load(ctx context.Context) (DashboardResponse, error) {
	var (
		g           errgroup.Group
		projects    []models.Project
		categories  []models.Category
		projectsErr error
		categoryErr error
	)

	g.Go(func() error {
		projects, projectsErr = h.projectRepo.Find(ctx, database.ProjectFilter{Limit: dashboardProjectLimit})
		return projectsErr
	})
	g.Go(func() error {
		categories, categoryErr = h.categoryRepo.FindAll(ctx)
		return categoryErr
	})
	firstErr := g.Wait()

	failures := h.dashboardErrors(projectsErr, categoryErr)
	if len(failures) == 2 {
		return DashboardResponse{}, firstErr
	}

	response := DashboardResponse{
		Projects:   featuredFirst(projects),
		Categories: categories,
	}
	if response.Categories == nil {
		response.Categories = []models.Category{}
	}
	if len(failures) > 0 {
		response.Errors = failures
	}
	return response, nil
}

// dashboardErrors logs each failed half and maps it to its public message
func (h dashboardHandler) dashboardErrors(projectsErr, categoryErr error) map[string]string {
	failures := map[string]string{}
	if projectsErr != nil {
		h.logger.Error().Err(projectsErr).Msg("dashboard projects fetch failed")
		failures["projects"] = "Failed to fetch projects"
	}
	if categoryErr != nil {
		h.logger.Error().Err(categoryErr).Msg("dashboard categories fetch failed")
		failures["categories"] = "Failed to fetch categories"
	}
	return failures
}

// featuredFirst moves featured projects ahead of the rest, keeping recency order within each group
func featuredFirst(projects []models.Project) []models.Project {
	sorted := slices.Clone(projects)
	if sorted == nil {
		return []models.Project{}
	}
	slices.SortStableFunc(sorted, func(a, b models.Project) int {
		switch {
		case a.IsFeatured == b.IsFeatured:
			return 0
		case a.IsFeatured:
			return -1
		default:
			return 1
		}
	})
	return sorted
}
