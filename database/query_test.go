package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCategoriesQuery(t *testing.T) {
	q := ListCategoriesQuery()
	assert.True(t, strings.HasSuffix(q.SQL, "ORDER BY sort_order ASC, id ASC"))
	assert.Empty(t, q.Params)
	assert.NotNil(t, q.Params)
}

func TestListProjectsQuery(t *testing.T) {
	tests := []struct {
		name     string
		filter   ProjectFilter
		contains []string
		excludes []string
		params   []any
	}{
		{
			name:     "no filter uses the default limit",
			filter:   ProjectFilter{},
			contains: []string{"p.is_published = TRUE", "LIMIT ?"},
			excludes: []string{"OFFSET", "LIKE", "p.category_id = ?"},
			params:   []any{DefaultProjectLimit},
		},
		{
			name:     "category and search",
			filter:   ProjectFilter{CategoryID: "cat-1", Search: "Chair", Limit: 5},
			contains: []string{"p.category_id = ?", "LOWER(p.title) LIKE ?", "LOWER(p.description) LIKE ?"},
			params:   []any{"cat-1", "%chair%", "%chair%", 5},
		},
		{
			name:     "whitespace search is no search",
			filter:   ProjectFilter{Search: "   \t"},
			excludes: []string{"LIKE"},
			params:   []any{DefaultProjectLimit},
		},
		{
			name:     "offset without limit still pages",
			filter:   ProjectFilter{Offset: 40},
			contains: []string{"LIMIT ? OFFSET ?"},
			params:   []any{DefaultProjectLimit, 40},
		},
		{
			name:   "limit is capped",
			filter: ProjectFilter{Limit: 5000},
			params: []any{MaxProjectLimit},
		},
		{
			name:   "negative limit falls back to the default",
			filter: ProjectFilter{Limit: -1},
			params: []any{DefaultProjectLimit},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ListProjectsQuery(tt.filter)
			for _, s := range tt.contains {
				assert.Contains(t, q.SQL, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, q.SQL, s)
			}
			assert.Equal(t, tt.params, q.Params)
			assert.Contains(t, q.SQL, "ORDER BY p.created_at DESC, p.id ASC")
		})
	}
}

func TestUserValuesNeverReachSQLText(t *testing.T) {
	hostile := []string{
		"'; DROP TABLE projects; --",
		`" OR 1=1 --`,
		"chair') OR ('1'='1",
	}

	for _, value := range hostile {
		queries := []Query{
			ListProjectsQuery(ProjectFilter{CategoryID: value, Search: value}),
			ProjectBySlugQuery(value),
			StepsForProjectQuery(value),
		}
		for _, q := range queries {
			assert.NotContains(t, q.SQL, "DROP TABLE")
			assert.NotContains(t, q.SQL, "1=1")
			assert.NotContains(t, q.SQL, "'1'='1")
			assert.Equal(t, strings.Count(q.SQL, "?"), len(q.Params))
		}
	}
}

func TestProjectBySlugQuery(t *testing.T) {
	q := ProjectBySlugQuery("wooden-chair")
	assert.Contains(t, q.SQL, "p.is_published = TRUE")
	assert.Contains(t, q.SQL, "p.slug = ?")
	assert.True(t, strings.HasSuffix(q.SQL, "LIMIT 1"))
	assert.Equal(t, []any{"wooden-chair"}, q.Params)
}

func TestStepsForProjectQuery(t *testing.T) {
	q := StepsForProjectQuery("proj-1")
	assert.Contains(t, q.SQL, "FROM project_steps WHERE project_id = ?")
	assert.True(t, strings.HasSuffix(q.SQL, "ORDER BY step_number ASC"))
	assert.NotContains(t, q.SQL, "is_published")
	assert.Equal(t, []any{"proj-1"}, q.Params)
}

func TestCountQuery(t *testing.T) {
	q, err := CountQuery("projects")
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) AS count FROM projects", q.SQL)

	q, err = CountQuery("categories")
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) AS count FROM categories", q.SQL)

	for _, table := range []string{"project_steps", "users; DROP TABLE projects", ""} {
		_, err = CountQuery(table)
		assert.Error(t, err, table)
	}
}

func TestSearchPattern(t *testing.T) {
	assert.Equal(t, "%chair%", SearchPattern("CHAIR"))
	assert.Equal(t, `%100\%%`, SearchPattern("100%"))
	assert.Equal(t, `%pillow\_cover%`, SearchPattern("pillow_cover"))
	assert.Equal(t, `%a\\b%`, SearchPattern(`a\b`))
}
