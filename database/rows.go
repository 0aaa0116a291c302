package database

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rpupo63/projectblox-backend/errs"
	"github.com/rpupo63/projectblox-backend/models"
	"github.com/rs/zerolog/log"
)

// Row is one result row as returned by a Gateway: column name to driver value.
// Values may be nil, string, []byte, bool, int64, float64, json.Number or time.Time depending on the backend.
type Row map[string]any

// lookup returns the first present, non-nil value among the column name and its aliases.
// Storage uses snake_case, some exports use camelCase; this is the only place the two meet.
func (r Row) lookup(column string, aliases ...string) (any, bool) {
	if v, ok := r[column]; ok && v != nil {
		return v, true
	}
	for _, alias := range aliases {
		if v, ok := r[alias]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func (r Row) str(column string, aliases ...string) string {
	v, ok := r.lookup(column, aliases...)
	if !ok {
		return ""
	}
	return toString(v)
}

// optionalStr returns nil for absent, null and empty values
func (r Row) optionalStr(column string, aliases ...string) *string {
	s := r.str(column, aliases...)
	if s == "" {
		return nil
	}
	return &s
}

func (r Row) integer(column string, aliases ...string) int {
	v, ok := r.lookup(column, aliases...)
	if !ok {
		return 0
	}
	n, _ := toFloat(v)
	return int(n)
}

func (r Row) optionalInt(column string, aliases ...string) *int {
	v, ok := r.lookup(column, aliases...)
	if !ok {
		return nil
	}
	n, ok := toFloat(v)
	if !ok {
		return nil
	}
	i := int(n)
	return &i
}

func (r Row) float(column string, aliases ...string) float64 {
	v, ok := r.lookup(column, aliases...)
	if !ok {
		return 0
	}
	n, _ := toFloat(v)
	return n
}

func (r Row) boolean(column string, aliases ...string) bool {
	v, ok := r.lookup(column, aliases...)
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		return err == nil && parsed
	case []byte:
		parsed, err := strconv.ParseBool(strings.TrimSpace(string(b)))
		return err == nil && parsed
	}
	n, ok := toFloat(v)
	return ok && n != 0
}

// timestampLayouts are the formats D1 (SQLite) and Postgres hand back as text
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

func (r Row) timestamp(column string, aliases ...string) time.Time {
	v, ok := r.lookup(column, aliases...)
	if !ok {
		return time.Time{}
	}
	switch t := v.(type) {
	case time.Time:
		return t.UTC()
	case string, []byte:
		s := strings.TrimSpace(toString(t))
		for _, layout := range timestampLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed.UTC()
			}
		}
	case int64, float64, int, json.Number:
		// unix seconds
		n, _ := toFloat(t)
		return time.Unix(int64(n), 0).UTC()
	}
	return time.Time{}
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case json.Number:
		return s.String()
	case int64:
		return strconv.FormatInt(s, 10)
	case int:
		return strconv.Itoa(s)
	case float64:
		if s == math.Trunc(s) && math.Abs(s) < 1e15 {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	case time.Time:
		return s.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprint(s)
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case string, []byte:
		f, err := strconv.ParseFloat(strings.TrimSpace(toString(n)), 64)
		return f, err == nil
	}
	return 0, false
}

// DecodeStringList decodes a JSON-text-encoded array of strings.
// Absent, empty, null and malformed values all yield an empty, non-nil slice.
func DecodeStringList(v any) ([]string, error) {
	var raw []byte
	switch t := v.(type) {
	case nil:
		return []string{}, nil
	case string:
		raw = []byte(t)
	case []byte:
		raw = t
	case []string:
		return append([]string{}, t...), nil
	case []any:
		list := make([]string, 0, len(t))
		for _, item := range t {
			list = append(list, toString(item))
		}
		return list, nil
	default:
		return []string{}, fmt.Errorf("unsupported type %T", v)
	}

	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return []string{}, nil
	}

	var list []string
	if err := json.Unmarshal([]byte(trimmed), &list); err != nil {
		return []string{}, err
	}
	if list == nil {
		list = []string{}
	}
	return list, nil
}

// stringList decodes a JSON array column, absorbing decode failures
func (r Row) stringList(column string, aliases ...string) []string {
	v, _ := r.lookup(column, aliases...)
	list, err := DecodeStringList(v)
	if err != nil {
		log.Warn().
			Err(errs.NewMalformedStoredDataError(column, err)).
			Str("column", column).
			Str("rowID", r.str("id")).
			Msg("substituting empty list for undecodable column")
	}
	return list
}

// CategoryFromRow decodes a categories row
func CategoryFromRow(r Row) models.Category {
	return models.Category{
		ID:          r.str("id"),
		Name:        r.str("name"),
		Slug:        r.str("slug"),
		Description: r.optionalStr("description"),
		Icon:        r.str("icon"),
		Color:       r.str("color"),
		SortOrder:   r.integer("sort_order", "sortOrder"),
	}
}

// ProjectFromRow decodes a projects row joined with its category name and icon
func ProjectFromRow(r Row) models.Project {
	return models.Project{
		ID:               r.str("id"),
		Title:            r.str("title"),
		Slug:             r.str("slug"),
		Description:      r.str("description"),
		Thumbnail:        r.optionalStr("thumbnail"),
		CategoryID:       r.str("category_id", "categoryId"),
		CreatorID:        r.str("creator_id", "creatorId"),
		DifficultyLevel:  models.Difficulty(r.integer("difficulty_level", "difficultyLevel")),
		EstimatedTime:    r.str("estimated_time", "estimatedTime"),
		MaterialsCost:    r.optionalStr("materials_cost", "materialsCost"),
		IsPremium:        r.boolean("is_premium", "isPremium"),
		IsFeatured:       r.boolean("is_featured", "isFeatured"),
		IsPublished:      r.boolean("is_published", "isPublished"),
		ViewsCount:       r.integer("views_count", "viewsCount"),
		CompletionsCount: r.integer("completions_count", "completionsCount"),
		RatingAvg:        r.float("rating_avg", "ratingAvg"),
		RatingCount:      r.integer("rating_count", "ratingCount"),
		CreatedAt:        r.timestamp("created_at", "createdAt"),
		UpdatedAt:        r.timestamp("updated_at", "updatedAt"),
		CategoryName:     r.str("category_name", "categoryName"),
		CategoryIcon:     r.str("category_icon", "categoryIcon"),
	}
}

// StepFromRow decodes a project_steps row, including its tip and mistake lists
func StepFromRow(r Row) models.ProjectStep {
	return models.ProjectStep{
		ID:               r.str("id"),
		ProjectID:        r.str("project_id", "projectId"),
		StepNumber:       r.integer("step_number", "stepNumber"),
		Title:            r.str("title"),
		Description:      r.str("description"),
		ImageURL:         r.optionalStr("image_url", "imageUrl"),
		VideoURL:         r.optionalStr("video_url", "videoUrl"),
		EstimatedMinutes: r.optionalInt("estimated_minutes", "estimatedMinutes"),
		Tips:             r.stringList("tips"),
		CommonMistakes:   r.stringList("common_mistakes", "commonMistakes"),
	}
}
