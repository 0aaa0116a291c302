// Package backend builds the storage gateway selected by DB_TYPE.
package backend

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/rpupo63/projectblox-backend/config"
	"github.com/rpupo63/projectblox-backend/database"
	"github.com/rpupo63/projectblox-backend/errs"
	"github.com/rpupo63/projectblox-backend/services"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	TypeD1       = "d1"
	TypeSupabase = "supa"
	TypeSQLite   = "sqlite"
)

// Backend is an opened storage backend. DB is nil for D1, which is only reachable over HTTP.
type Backend struct {
	Type    string
	Gateway database.Gateway
	DB      *gorm.DB
}

// Database wraps the gateway in the catalog read API
func (b *Backend) Database() database.Database {
	return database.New(b.Gateway)
}

// RequireSQL returns the gorm connection, failing for D1
func (b *Backend) RequireSQL() (*gorm.DB, error) {
	if b.DB == nil {
		return nil, errs.NewConfigInvalidError("DB_TYPE", fmt.Sprintf("%q has no direct SQL connection; use %q or %q", b.Type, TypeSupabase, TypeSQLite))
	}
	return b.DB, nil
}

// Open connects to the backend named by DB_TYPE (default d1)
func Open(ctx context.Context, c map[string]string) (*Backend, error) {
	dbType := strings.ToLower(config.GetString(c, "DB_TYPE", TypeD1))

	switch dbType {
	case TypeD1:
		client, err := NewD1Client(ctx, c)
		if err != nil {
			return nil, err
		}
		return &Backend{Type: dbType, Gateway: client}, nil
	case TypeSupabase:
		db, err := OpenPostgres(c)
		if err != nil {
			return nil, err
		}
		return &Backend{Type: dbType, Gateway: database.NewGormGateway(db), DB: db}, nil
	case TypeSQLite:
		db, err := OpenSQLite(config.GetString(c, "SQLITE_PATH", "projectblox.db"))
		if err != nil {
			return nil, err
		}
		return &Backend{Type: dbType, Gateway: database.NewGormGateway(db), DB: db}, nil
	default:
		return nil, errs.NewConfigInvalidError("DB_TYPE", fmt.Sprintf("unsupported value %q", dbType))
	}
}

// NewD1Client builds the Cloudflare D1 client. When CLOUDFLARE_API_TOKEN is
// unset the token is read from the SSM parameter named by CLOUDFLARE_API_TOKEN_SSM_PARAM.
func NewD1Client(ctx context.Context, c map[string]string) (*services.D1Client, error) {
	token := config.GetString(c, "CLOUDFLARE_API_TOKEN", "")
	if token == "" && config.IsSet(c, "CLOUDFLARE_API_TOKEN_SSM_PARAM") {
		ssmClient, err := services.NewSSMClient(ctx, config.GetString(c, "AWS_REGION", ""))
		if err != nil {
			return nil, err
		}
		token, err = services.FetchSecureParameter(ctx, ssmClient, config.GetString(c, "CLOUDFLARE_API_TOKEN_SSM_PARAM", ""))
		if err != nil {
			return nil, err
		}
	}

	return services.NewD1Client(services.D1Config{
		AccountID:  config.GetString(c, "CLOUDFLARE_ACCOUNT_ID", ""),
		DatabaseID: config.GetString(c, "CLOUDFLARE_DATABASE_ID", ""),
		APIToken:   token,
		BaseURL:    config.GetString(c, "D1_BASE_URL", ""),
		Timeout:    config.GetSeconds(c, "D1_TIMEOUT_SECONDS", 30),
	})
}

func gormLogger() logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
}

// OpenPostgres connects to the Supabase Postgres database
func OpenPostgres(c map[string]string) (*gorm.DB, error) {
	connStr := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		config.GetString(c, "SUPABASE_DB_HOST", ""),
		config.GetString(c, "SUPABASE_DB_USER", ""),
		config.GetString(c, "SUPABASE_DB_PASSWORD", ""),
		config.GetString(c, "SUPABASE_DB_NAME", ""),
		config.GetString(c, "SUPABASE_DB_PORT", "5432"),
		config.GetString(c, "SUPABASE_DB_SSLMODE", "require"),
	)
	zlog.Info().Msg("Connecting to Supabase database...")

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      gormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := ping(db); err != nil {
		return nil, err
	}
	return db, nil
}

// OpenSQLite opens (creating if needed) a local SQLite database file
func OpenSQLite(path string) (*gorm.DB, error) {
	zlog.Info().Str("path", path).Msg("Opening SQLite database...")

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormLogger()})
	if err != nil {
		return nil, fmt.Errorf("error opening sqlite database %s: %w", path, err)
	}

	if err := ping(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ping(db *gorm.DB) error {
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return fmt.Errorf("error testing database connection: %w", err)
	}
	return nil
}
