package models

import (
	"encoding/json"
	"time"
)

// Project represents a published DIY tutorial, denormalized with its category name and icon
type Project struct {
	ID               string     `json:"id" db:"id"`
	Title            string     `json:"title" db:"title"`
	Slug             string     `json:"slug" db:"slug"`
	Description      string     `json:"description" db:"description"`
	Thumbnail        *string    `json:"thumbnail,omitempty" db:"thumbnail"`
	CategoryID       string     `json:"categoryId" db:"category_id"`
	CreatorID        string     `json:"creatorId" db:"creator_id"`
	DifficultyLevel  Difficulty `json:"difficultyLevel" db:"difficulty_level"`
	EstimatedTime    string     `json:"estimatedTime" db:"estimated_time"`
	MaterialsCost    *string    `json:"materialsCost,omitempty" db:"materials_cost"`
	IsPremium        bool       `json:"isPremium" db:"is_premium"`
	IsFeatured       bool       `json:"isFeatured" db:"is_featured"`
	IsPublished      bool       `json:"isPublished" db:"is_published"`
	ViewsCount       int        `json:"viewsCount" db:"views_count"`
	CompletionsCount int        `json:"completionsCount" db:"completions_count"`
	RatingAvg        float64    `json:"ratingAvg" db:"rating_avg"`
	RatingCount      int        `json:"ratingCount" db:"rating_count"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time  `json:"updatedAt" db:"updated_at"`

	CategoryName string `json:"categoryName,omitempty" db:"category_name"`
	CategoryIcon string `json:"categoryIcon,omitempty" db:"category_icon"`
}

// MarshalJSON adds the difficulty label and color next to the numeric level
func (p Project) MarshalJSON() ([]byte, error) {
	type project Project
	return json.Marshal(struct {
		project
		DifficultyLabel string `json:"difficultyLabel"`
		DifficultyColor string `json:"difficultyColor"`
	}{
		project:         project(p),
		DifficultyLabel: p.DifficultyLevel.Label(),
		DifficultyColor: p.DifficultyLevel.Color(),
	})
}
