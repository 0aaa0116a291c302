package database

import (
	"fmt"
	"strings"
)

const (
	// DefaultProjectLimit applies when a filter carries no positive limit
	DefaultProjectLimit = 20
	// MaxProjectLimit caps a single page of projects
	MaxProjectLimit = 100
)

// Query is a SQL statement with its positional (?) parameters.
// User-supplied values only ever appear in Params, never in SQL.
type Query struct {
	SQL    string
	Params []any
}

// ProjectFilter selects a page of published projects
type ProjectFilter struct {
	CategoryID string
	Search     string
	Limit      int
	Offset     int
}

const categoryColumns = "id, name, slug, description, icon, color, sort_order"

const projectColumns = "p.id, p.title, p.slug, p.description, p.thumbnail, p.category_id, p.creator_id, " +
	"p.difficulty_level, p.estimated_time, p.materials_cost, p.is_premium, p.is_featured, p.is_published, " +
	"p.views_count, p.completions_count, p.rating_avg, p.rating_count, p.created_at, p.updated_at, " +
	"c.name AS category_name, c.icon AS category_icon"

const stepColumns = "id, project_id, step_number, title, description, image_url, video_url, " +
	"estimated_minutes, tips, common_mistakes"

const publishedProjects = "FROM projects p JOIN categories c ON p.category_id = c.id WHERE p.is_published = TRUE"

// ListCategoriesQuery selects every category, lowest sort order first
func ListCategoriesQuery() Query {
	return Query{
		SQL:    "SELECT " + categoryColumns + " FROM categories ORDER BY sort_order ASC, id ASC",
		Params: []any{},
	}
}

// ListProjectsQuery selects one page of published projects, newest first
func ListProjectsQuery(filter ProjectFilter) Query {
	var sql strings.Builder
	params := make([]any, 0, 5)

	sql.WriteString("SELECT " + projectColumns + " " + publishedProjects)

	if filter.CategoryID != "" {
		sql.WriteString(" AND p.category_id = ?")
		params = append(params, filter.CategoryID)
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := SearchPattern(search)
		sql.WriteString(` AND (LOWER(p.title) LIKE ? ESCAPE '\' OR LOWER(p.description) LIKE ? ESCAPE '\')`)
		params = append(params, pattern, pattern)
	}

	sql.WriteString(" ORDER BY p.created_at DESC, p.id ASC LIMIT ?")
	params = append(params, clampLimit(filter.Limit))

	if filter.Offset > 0 {
		sql.WriteString(" OFFSET ?")
		params = append(params, filter.Offset)
	}

	return Query{SQL: sql.String(), Params: params}
}

// ProjectBySlugQuery selects the published project with exactly this slug
func ProjectBySlugQuery(slug string) Query {
	return Query{
		SQL:    "SELECT " + projectColumns + " " + publishedProjects + " AND p.slug = ? LIMIT 1",
		Params: []any{slug},
	}
}

// StepsForProjectQuery selects a project's steps in step order.
// Visibility is inherited from the already resolved project.
func StepsForProjectQuery(projectID string) Query {
	return Query{
		SQL:    "SELECT " + stepColumns + " FROM project_steps WHERE project_id = ? ORDER BY step_number ASC",
		Params: []any{projectID},
	}
}

var countableTables = map[string]bool{
	"projects":   true,
	"categories": true,
}

// CountQuery counts the rows of one of the catalog tables
func CountQuery(table string) (Query, error) {
	if !countableTables[table] {
		return Query{}, fmt.Errorf("table %q cannot be counted", table)
	}
	return Query{SQL: "SELECT COUNT(*) AS count FROM " + table, Params: []any{}}, nil
}

// SearchPattern lowercases text and wraps it for a substring LIKE match,
// escaping LIKE wildcards so they match literally.
func SearchPattern(text string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(text))
	return "%" + escaped + "%"
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultProjectLimit
	case limit > MaxProjectLimit:
		return MaxProjectLimit
	default:
		return limit
	}
}
