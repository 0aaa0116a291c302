package models

// ProjectStep is one numbered instruction within a project.
// Tips and CommonMistakes are never nil once decoded.
type ProjectStep struct {
	ID               string   `json:"id" db:"id"`
	ProjectID        string   `json:"projectId" db:"project_id"`
	StepNumber       int      `json:"stepNumber" db:"step_number"`
	Title            string   `json:"title" db:"title"`
	Description      string   `json:"description" db:"description"`
	ImageURL         *string  `json:"imageUrl,omitempty" db:"image_url"`
	VideoURL         *string  `json:"videoUrl,omitempty" db:"video_url"`
	EstimatedMinutes *int     `json:"estimatedMinutes,omitempty" db:"estimated_minutes"`
	Tips             []string `json:"tips" db:"tips"`
	CommonMistakes   []string `json:"commonMistakes" db:"common_mistakes"`
}
