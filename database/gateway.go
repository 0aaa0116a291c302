package database

import (
	"context"

	"github.com/rpupo63/projectblox-backend/errs"
	"gorm.io/gorm"
)

// Gateway executes one parameterized query against the storage backend and returns its rows.
// Implementations perform a single round trip per call and hold no per-call state, so they
// are safe for concurrent use. Failures are reported as errs.ErrBackendUnavailable.
type Gateway interface {
	Query(ctx context.Context, sql string, params []any) ([]map[string]any, error)
}

// GatewayFunc adapts a function to the Gateway interface
type GatewayFunc func(ctx context.Context, sql string, params []any) ([]map[string]any, error)

func (f GatewayFunc) Query(ctx context.Context, sql string, params []any) ([]map[string]any, error) {
	return f(ctx, sql, params)
}

// GormGateway runs queries through a gorm connection (Postgres or SQLite).
// gorm rewrites the ? placeholders into the dialect's bind variables.
type GormGateway struct {
	db *gorm.DB
}

func NewGormGateway(db *gorm.DB) *GormGateway {
	return &GormGateway{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (g *GormGateway) GetDB() *gorm.DB {
	return g.db
}

func (g *GormGateway) Query(ctx context.Context, sql string, params []any) ([]map[string]any, error) {
	rows := []map[string]any{}
	if err := g.db.WithContext(ctx).Raw(sql, params...).Scan(&rows).Error; err != nil {
		return nil, errs.NewBackendCallError("sql query", err)
	}
	return rows, nil
}
