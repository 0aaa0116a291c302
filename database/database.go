package database

import (
	"context"
	"fmt"

	"github.com/rpupo63/projectblox-backend/errs"
)

// Database is the catalog's read API. It is built once by the composition root
// around an explicit Gateway and holds no other state.
type Database struct {
	gateway         Gateway
	categoryRepo    *CategoryRepo
	projectRepo     *ProjectRepo
	projectStepRepo *ProjectStepRepo
}

// New initializes a new Database struct with each repository sharing the gateway
func New(gateway Gateway) Database {
	projectRepo := NewProjectRepo(gateway)
	return Database{
		gateway:         gateway,
		categoryRepo:    NewCategoryRepo(gateway),
		projectRepo:     projectRepo,
		projectStepRepo: NewProjectStepRepo(gateway, projectRepo),
	}
}

// Accessor methods for each repository

func (d Database) CategoryRepo() *CategoryRepo {
	return d.categoryRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ProjectStepRepo() *ProjectStepRepo {
	return d.projectStepRepo
}

// Stats holds table row counts for the connectivity check
type Stats struct {
	ProjectsCount   int `json:"projects_count"`
	CategoriesCount int `json:"categories_count"`
}

// Stats counts projects and categories, one round trip each
func (d Database) Stats(ctx context.Context) (Stats, error) {
	projects, err := d.count(ctx, "projects")
	if err != nil {
		return Stats{}, err
	}
	categories, err := d.count(ctx, "categories")
	if err != nil {
		return Stats{}, err
	}
	return Stats{ProjectsCount: projects, CategoriesCount: categories}, nil
}

func (d Database) count(ctx context.Context, table string) (int, error) {
	q, err := CountQuery(table)
	if err != nil {
		return 0, errs.NewInternalErrorWithCause("count query", err)
	}
	rows, err := run(ctx, d.gateway, q)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].integer("count"), nil
}

// run executes q and converts the gateway's rows
func run(ctx context.Context, gateway Gateway, q Query) ([]Row, error) {
	raw, err := gateway.Query(ctx, q.SQL, q.Params)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, len(raw))
	for i, r := range raw {
		rows[i] = Row(r)
	}
	return rows, nil
}
