package database

import (
	"context"

	"github.com/rpupo63/projectblox-backend/models"
)

type ProjectRepo struct {
	gateway Gateway
}

func NewProjectRepo(gateway Gateway) *ProjectRepo {
	return &ProjectRepo{gateway}
}

// Find returns one page of published projects matching filter, newest first.
// An unknown category yields an empty slice, not an error.
func (r *ProjectRepo) Find(ctx context.Context, filter ProjectFilter) ([]models.Project, error) {
	rows, err := run(ctx, r.gateway, ListProjectsQuery(filter))
	if err != nil {
		return nil, err
	}

	projects := make([]models.Project, 0, len(rows))
	for _, row := range rows {
		projects = append(projects, ProjectFromRow(row))
	}
	return projects, nil
}

// FindBySlug returns the published project with this slug, or nil if there is none
func (r *ProjectRepo) FindBySlug(ctx context.Context, slug string) (*models.Project, error) {
	rows, err := run(ctx, r.gateway, ProjectBySlugQuery(slug))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	project := ProjectFromRow(rows[0])
	return &project, nil
}
