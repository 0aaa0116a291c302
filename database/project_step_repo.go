package database

import (
	"context"

	"github.com/rpupo63/projectblox-backend/errs"
	"github.com/rpupo63/projectblox-backend/models"
)

type ProjectStepRepo struct {
	gateway     Gateway
	projectRepo *ProjectRepo
}

func NewProjectStepRepo(gateway Gateway, projectRepo *ProjectRepo) *ProjectStepRepo {
	return &ProjectStepRepo{gateway: gateway, projectRepo: projectRepo}
}

// FindByProject returns the steps of a project ordered by step number.
// The caller is expected to have resolved a published project first.
func (r *ProjectStepRepo) FindByProject(ctx context.Context, projectID string) ([]models.ProjectStep, error) {
	rows, err := run(ctx, r.gateway, StepsForProjectQuery(projectID))
	if err != nil {
		return nil, err
	}

	steps := make([]models.ProjectStep, 0, len(rows))
	for _, row := range rows {
		steps = append(steps, StepFromRow(row))
	}
	return steps, nil
}

// FindByProjectSlug resolves a published project by slug and returns its steps.
// It fails with a not-found ApiErr when no published project has the slug.
func (r *ProjectStepRepo) FindByProjectSlug(ctx context.Context, slug string) ([]models.ProjectStep, error) {
	project, err := r.projectRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, errs.NewNotFound("project")
	}
	return r.FindByProject(ctx, project.ID)
}
