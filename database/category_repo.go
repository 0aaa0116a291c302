package database

import (
	"context"

	"github.com/rpupo63/projectblox-backend/models"
)

type CategoryRepo struct {
	gateway Gateway
}

func NewCategoryRepo(gateway Gateway) *CategoryRepo {
	return &CategoryRepo{gateway}
}

// FindAll returns every category in display order
func (r *CategoryRepo) FindAll(ctx context.Context) ([]models.Category, error) {
	rows, err := run(ctx, r.gateway, ListCategoriesQuery())
	if err != nil {
		return nil, err
	}

	categories := make([]models.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, CategoryFromRow(row))
	}
	return categories, nil
}
