package models

import (
	"time"

	"gorm.io/datatypes"
)

// The record types below mirror the D1 schema and are only used by the SQL
// tooling (migration, seeding, model generation). The read path never loads
// them; it decodes raw rows into Category, Project and ProjectStep instead.

// CategoryRecord is the storage shape of the categories table
type CategoryRecord struct {
	ID          string    `json:"id" yaml:"id" gorm:"type:text;primaryKey;not null"`
	Name        string    `json:"name" yaml:"name" gorm:"type:text;not null"`
	Slug        string    `json:"slug" yaml:"slug" gorm:"type:text;not null;uniqueIndex:idx_categories_slug"`
	Description *string   `json:"description,omitempty" yaml:"description" gorm:"type:text"`
	Icon        string    `json:"icon" yaml:"icon" gorm:"type:text;not null;default:''"`
	Color       string    `json:"color" yaml:"color" gorm:"type:text;not null;default:''"`
	SortOrder   int       `json:"sort_order" yaml:"sort_order" gorm:"type:integer;not null;default:0"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at" gorm:"not null;autoCreateTime"`
}

func (CategoryRecord) TableName() string {
	return "categories"
}

// ProjectRecord is the storage shape of the projects table
type ProjectRecord struct {
	ID               string    `json:"id" yaml:"id" gorm:"type:text;primaryKey;not null"`
	Title            string    `json:"title" yaml:"title" gorm:"type:text;not null"`
	Slug             string    `json:"slug" yaml:"slug" gorm:"type:text;not null;uniqueIndex:idx_projects_slug"`
	Description      string    `json:"description" yaml:"description" gorm:"type:text;not null;default:''"`
	Thumbnail        *string   `json:"thumbnail,omitempty" yaml:"thumbnail" gorm:"type:text"`
	CategoryID       string    `json:"category_id" yaml:"category_id" gorm:"type:text;not null;index:idx_projects_category_id"`
	CreatorID        string    `json:"creator_id" yaml:"creator_id" gorm:"type:text;not null;default:''"`
	DifficultyLevel  int       `json:"difficulty_level" yaml:"difficulty_level" gorm:"type:integer;not null;default:1"`
	EstimatedTime    string    `json:"estimated_time" yaml:"estimated_time" gorm:"type:text;not null;default:''"`
	MaterialsCost    *string   `json:"materials_cost,omitempty" yaml:"materials_cost" gorm:"type:text"`
	IsPremium        bool      `json:"is_premium" yaml:"is_premium" gorm:"not null;default:false"`
	IsFeatured       bool      `json:"is_featured" yaml:"is_featured" gorm:"not null;default:false"`
	IsPublished      bool      `json:"is_published" yaml:"is_published" gorm:"not null;default:false;index:idx_projects_published"`
	ViewsCount       int       `json:"views_count" yaml:"views_count" gorm:"type:integer;not null;default:0"`
	CompletionsCount int       `json:"completions_count" yaml:"completions_count" gorm:"type:integer;not null;default:0"`
	RatingAvg        float64   `json:"rating_avg" yaml:"rating_avg" gorm:"type:real;not null;default:0"`
	RatingCount      int       `json:"rating_count" yaml:"rating_count" gorm:"type:integer;not null;default:0"`
	CreatedAt        time.Time `json:"created_at" yaml:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt        time.Time `json:"updated_at" yaml:"updated_at" gorm:"not null;autoUpdateTime"`

	Category CategoryRecord `json:"-" yaml:"-" gorm:"foreignKey:CategoryID;references:ID"`
}

func (ProjectRecord) TableName() string {
	return "projects"
}

// ProjectStepRecord is the storage shape of the project_steps table.
// Tips and CommonMistakes hold JSON-encoded string arrays as text.
type ProjectStepRecord struct {
	ID               string         `json:"id" yaml:"id" gorm:"type:text;primaryKey;not null"`
	ProjectID        string         `json:"project_id" yaml:"project_id" gorm:"type:text;not null;uniqueIndex:idx_project_steps_number"`
	StepNumber       int            `json:"step_number" yaml:"step_number" gorm:"type:integer;not null;uniqueIndex:idx_project_steps_number"`
	Title            string         `json:"title" yaml:"title" gorm:"type:text;not null"`
	Description      string         `json:"description" yaml:"description" gorm:"type:text;not null;default:''"`
	ImageURL         *string        `json:"image_url,omitempty" yaml:"image_url" gorm:"type:text"`
	VideoURL         *string        `json:"video_url,omitempty" yaml:"video_url" gorm:"type:text"`
	EstimatedMinutes *int           `json:"estimated_minutes,omitempty" yaml:"estimated_minutes" gorm:"type:integer"`
	Tips             datatypes.JSON `json:"tips" yaml:"-" gorm:"type:text"`
	CommonMistakes   datatypes.JSON `json:"common_mistakes" yaml:"-" gorm:"type:text"`

	Project ProjectRecord `json:"-" yaml:"-" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}

func (ProjectStepRecord) TableName() string {
	return "project_steps"
}
