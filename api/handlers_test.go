package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rpupo63/projectblox-backend/database"
	"github.com/rpupo63/projectblox-backend/errs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend answers catalog queries by table and records every call
type fakeBackend struct {
	mu    sync.Mutex
	calls []database.Query

	categories []map[string]any
	projects   []map[string]any
	steps      []map[string]any
	counts     map[string]int

	failProjects   error
	failCategories error
}

func (f *fakeBackend) Query(ctx context.Context, sql string, params []any) ([]map[string]any, error) {
	f.mu.Lock()
	f.calls = append(f.calls, database.Query{SQL: sql, Params: params})
	f.mu.Unlock()

	switch {
	case strings.Contains(sql, "COUNT(*)"):
		for table, n := range f.counts {
			if strings.HasSuffix(sql, "FROM "+table) {
				return []map[string]any{{"count": int64(n)}}, nil
			}
		}
		return []map[string]any{{"count": int64(0)}}, nil
	case strings.Contains(sql, "FROM project_steps"):
		return f.steps, nil
	case strings.Contains(sql, "FROM projects p"):
		if f.failProjects != nil {
			return nil, f.failProjects
		}
		if strings.Contains(sql, "p.slug = ?") {
			for _, p := range f.projects {
				if p["slug"] == params[0] {
					return []map[string]any{p}, nil
				}
			}
			return []map[string]any{}, nil
		}
		return f.projects, nil
	case strings.Contains(sql, "FROM categories"):
		if f.failCategories != nil {
			return nil, f.failCategories
		}
		return f.categories, nil
	}
	return nil, errors.New("unexpected query: " + sql)
}

func (f *fakeBackend) lastCall() database.Query {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func newTestBackend() *fakeBackend {
	return &fakeBackend{
		categories: []map[string]any{
			{"id": "cat-1", "name": "Woodworking", "slug": "woodworking", "icon": "🪚", "color": "amber", "sort_order": int64(1)},
			{"id": "cat-2", "name": "Electronics", "slug": "electronics", "icon": "🔌", "color": "blue", "sort_order": int64(2)},
		},
		projects: []map[string]any{
			{"id": "p-1", "title": "Bookshelf", "slug": "bookshelf", "category_id": "cat-1", "difficulty_level": int64(2), "is_published": int64(1), "is_featured": int64(0), "category_name": "Woodworking"},
			{"id": "p-2", "title": "Wooden Chair", "slug": "wooden-chair", "category_id": "cat-1", "difficulty_level": int64(3), "is_published": int64(1), "is_featured": int64(1), "category_name": "Woodworking"},
		},
		steps: []map[string]any{
			{"id": "s-1", "project_id": "p-2", "step_number": int64(1), "title": "Cut", "tips": `["Use clamps","Sand first"]`, "common_mistakes": nil},
			{"id": "s-2", "project_id": "p-2", "step_number": int64(2), "title": "Glue", "tips": "not json", "common_mistakes": `["Too much glue"]`},
		},
		counts: map[string]int{"projects": 2, "categories": 2},
	}
}

func serve(t *testing.T, backend database.Gateway, c map[string]string, method, target string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := newRouter(database.New(backend), withConfig(c), withStartupTime(time.Now().Add(-time.Minute)))

	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestGetCategories(t *testing.T) {
	rec := serve(t, newTestBackend(), nil, http.MethodGet, "/api/categories", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	categories := decode[[]map[string]any](t, rec)
	require.Len(t, categories, 2)
	assert.Equal(t, "woodworking", categories[0]["slug"])
	assert.EqualValues(t, 1, categories[0]["sortOrder"])
}

func TestGetProjectsPassesFilter(t *testing.T) {
	backend := newTestBackend()
	rec := serve(t, backend, nil, http.MethodGet, "/api/projects?category=cat-1&search=chair&limit=5&offset=10", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	projects := decode[[]map[string]any](t, rec)
	require.Len(t, projects, 2)
	assert.Equal(t, "Intermediate", projects[1]["difficultyLabel"])
	assert.Equal(t, "yellow", projects[1]["difficultyColor"])

	call := backend.lastCall()
	assert.Equal(t, []any{"cat-1", "%chair%", "%chair%", 5, 10}, call.Params)
	assert.NotContains(t, call.SQL, "chair")
}

func TestGetProjectsDefaultsAndOffsetWithoutLimit(t *testing.T) {
	backend := newTestBackend()
	rec := serve(t, backend, nil, http.MethodGet, "/api/projects?offset=20", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{database.DefaultProjectLimit, 20}, backend.lastCall().Params)
}

func TestGetProjectsRejectsBadNumbers(t *testing.T) {
	tests := []struct {
		name  string
		query string
		field string
	}{
		{"non-numeric limit", "limit=abc", "limit"},
		{"negative offset", "offset=-3", "offset"},
		{"fractional limit", "limit=2.5", "limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := newTestBackend()
			rec := serve(t, backend, nil, http.MethodGet, "/api/projects?"+tt.query, nil)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			body := decode[ErrorResponse](t, rec)
			assert.Equal(t, tt.field, body.Field)
			assert.Empty(t, backend.calls)
		})
	}
}

func TestGetProjectsBackendFailureIsGeneric(t *testing.T) {
	backend := newTestBackend()
	backend.failProjects = errs.NewBackendUnavailableError(http.StatusInternalServerError, "D1_ERROR: no such table: projects")

	rec := serve(t, backend, nil, http.MethodGet, "/api/projects", nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode[ErrorResponse](t, rec)
	assert.Equal(t, "Failed to fetch projects", body.Error)
	assert.NotContains(t, rec.Body.String(), "no such table")
}

func TestGetProject(t *testing.T) {
	backend := newTestBackend()

	rec := serve(t, backend, nil, http.MethodGet, "/api/projects/wooden-chair", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	project := decode[map[string]any](t, rec)
	assert.Equal(t, "p-2", project["id"])
	assert.Equal(t, true, project["isFeatured"])
	assert.Equal(t, []any{"wooden-chair"}, backend.lastCall().Params)
}

func TestGetProjectNotFound(t *testing.T) {
	rec := serve(t, newTestBackend(), nil, http.MethodGet, "/api/projects/unpublished-thing", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decode[ErrorResponse](t, rec)
	assert.Equal(t, "Project not found", body.Error)
}

func TestGetProjectSteps(t *testing.T) {
	rec := serve(t, newTestBackend(), nil, http.MethodGet, "/api/projects/wooden-chair/steps", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	steps := decode[[]map[string]any](t, rec)
	require.Len(t, steps, 2)
	assert.Equal(t, []any{"Use clamps", "Sand first"}, steps[0]["tips"])
	assert.Equal(t, []any{}, steps[0]["commonMistakes"])
	assert.Equal(t, []any{}, steps[1]["tips"])
	assert.Equal(t, []any{"Too much glue"}, steps[1]["commonMistakes"])
}

func TestGetProjectStepsUnknownSlug(t *testing.T) {
	backend := newTestBackend()
	rec := serve(t, backend, nil, http.MethodGet, "/api/projects/missing/steps", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Project not found", decode[ErrorResponse](t, rec).Error)
	for _, call := range backend.calls {
		assert.NotContains(t, call.SQL, "project_steps")
	}
}

func TestGetDashboard(t *testing.T) {
	backend := newTestBackend()
	rec := serve(t, backend, nil, http.MethodGet, "/api/dashboard", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[DashboardResponse](t, rec)
	require.Len(t, body.Projects, 2)
	assert.Equal(t, "wooden-chair", body.Projects[0].Slug, "featured projects come first")
	assert.Len(t, body.Categories, 2)
	assert.Empty(t, body.Errors)

	for _, call := range backend.calls {
		if strings.Contains(call.SQL, "FROM projects p") {
			assert.Equal(t, []any{dashboardProjectLimit}, call.Params)
		}
	}
}

func TestGetDashboardPartialFailure(t *testing.T) {
	backend := newTestBackend()
	backend.failCategories = errs.NewBackendCallError("D1 query", errors.New("connection reset"))

	rec := serve(t, backend, nil, http.MethodGet, "/api/dashboard", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[DashboardResponse](t, rec)
	assert.Len(t, body.Projects, 2)
	assert.Empty(t, body.Categories)
	assert.Equal(t, map[string]string{"categories": "Failed to fetch categories"}, body.Errors)
}

func TestGetDashboardProjectsFailure(t *testing.T) {
	backend := newTestBackend()
	backend.failProjects = errors.New("down")

	rec := serve(t, backend, nil, http.MethodGet, "/api/dashboard", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[DashboardResponse](t, rec)
	assert.NotNil(t, body.Projects)
	assert.Empty(t, body.Projects)
	assert.Len(t, body.Categories, 2)
	assert.Equal(t, map[string]string{"projects": "Failed to fetch projects"}, body.Errors)
}

func TestDashboardErrorsKeepsEveryFailure(t *testing.T) {
	h := newDashboardHandler(nil, nil)

	assert.Empty(t, h.dashboardErrors(nil, nil))
	assert.Equal(t, map[string]string{
		"projects":   "Failed to fetch projects",
		"categories": "Failed to fetch categories",
	}, h.dashboardErrors(errors.New("down"), errors.New("down")))
}

func TestGetDashboardTotalFailure(t *testing.T) {
	backend := newTestBackend()
	backend.failCategories = errors.New("down")
	backend.failProjects = errors.New("down")

	rec := serve(t, backend, nil, http.MethodGet, "/api/dashboard", nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to load dashboard", decode[ErrorResponse](t, rec).Error)
}

func TestDebug(t *testing.T) {
	c := map[string]string{
		"CLOUDFLARE_ACCOUNT_ID":  "acct",
		"CLOUDFLARE_DATABASE_ID": "  ",
	}
	rec := serve(t, newTestBackend(), c, http.MethodGet, "/api/debug", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[DebugResponse](t, rec)
	assert.Equal(t, DebugResponse{
		DBType:     "d1",
		AccountID:  "SET",
		DatabaseID: "MISSING",
		APIToken:   "MISSING",
		EnvLoaded:  true,
	}, body)
	assert.NotContains(t, rec.Body.String(), "acct")
}

func TestConnectivity(t *testing.T) {
	c := map[string]string{"CLOUDFLARE_DATABASE_ID": "db-123"}
	rec := serve(t, newTestBackend(), c, http.MethodGet, "/api/test", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[ConnectivityResponse](t, rec)
	assert.Equal(t, 2, body.ProjectsCount)
	assert.Equal(t, 2, body.CategoriesCount)
	assert.Equal(t, "db-123", body.DatabaseID)
	_, err := time.Parse(time.RFC3339Nano, body.Timestamp)
	assert.NoError(t, err)
}

func TestConnectivityFailure(t *testing.T) {
	failing := database.GatewayFunc(func(ctx context.Context, sql string, params []any) ([]map[string]any, error) {
		return nil, errs.NewBackendUnavailableError(http.StatusUnauthorized, "Authentication error")
	})
	rec := serve(t, failing, nil, http.MethodGet, "/api/test", nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Database connection failed", decode[ErrorResponse](t, rec).Error)
	assert.NotContains(t, rec.Body.String(), "Authentication error")
}

func TestHealthz(t *testing.T) {
	rec := serve(t, newTestBackend(), nil, http.MethodGet, "/healthz", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[HealthResponse](t, rec)
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "1m0s", body.Uptime)
}

func TestCORS(t *testing.T) {
	c := map[string]string{"ACCEPTED_ORIGINS": "https://projectblox.app, http://localhost:3000"}

	t.Run("allowed origin gets headers", func(t *testing.T) {
		rec := serve(t, newTestBackend(), c, http.MethodGet, "/api/categories", map[string]string{
			"Origin": "http://localhost:3000",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("disallowed preflight is rejected", func(t *testing.T) {
		rec := serve(t, newTestBackend(), c, http.MethodOptions, "/api/categories", map[string]string{
			"Origin":                        "https://evil.example",
			"Access-Control-Request-Method": http.MethodGet,
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestWriteErrorHidesUnexpectedErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	NewResponder(zerolog.Nop()).WriteError(rec, errors.New("pq: password authentication failed"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal Server Error", decode[ErrorResponse](t, rec).Error)
}
