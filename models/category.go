package models

// Category groups projects for browsing (e.g. "Woodworking", "Electronics")
type Category struct {
	ID          string  `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Slug        string  `json:"slug" db:"slug"`
	Description *string `json:"description,omitempty" db:"description"`
	Icon        string  `json:"icon" db:"icon"`
	Color       string  `json:"color" db:"color"`
	SortOrder   int     `json:"sortOrder" db:"sort_order"`
}
