package database

import (
	"context"
	"fmt"
	stdlog "log"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	"github.com/rpupo63/research-lab-backend/config"
	"github.com/rpupo63/research-lab-backend/errs"
)

// Settings describes how to reach the datastore.
type Settings struct {
	DSN           string
	ReplicaDSN    string
	MaxOpenConns  int
	MaxIdleConns  int
	SlowThreshold time.Duration
}

// SettingsFromConfig builds the connection settings. DATABASE_URL wins;
// otherwise the DSN is assembled from DB_TYPE specific keys.
func SettingsFromConfig(c map[string]string) (Settings, error) {
	settings := Settings{
		DSN:           config.GetString(c, "DATABASE_URL", ""),
		ReplicaDSN:    config.GetString(c, "DB_REPLICA_DSN", ""),
		MaxOpenConns:  config.GetInt(c, "DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:  config.GetInt(c, "DB_MAX_IDLE_CONNS", 5),
		SlowThreshold: config.GetSeconds(c, "DB_SLOW_THRESHOLD_SECONDS", 2),
	}
	if settings.DSN != "" {
		return settings, nil
	}

	switch dbType := strings.ToLower(config.GetString(c, "DB_TYPE", "postgres")); dbType {
	case "supa":
		host := config.GetString(c, "SUPABASE_DB_HOST", "")
		if host == "" {
			return settings, errs.NewConfigMissingError("SUPABASE_DB_HOST")
		}
		settings.DSN = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
			host,
			config.GetString(c, "SUPABASE_DB_USER", ""),
			config.GetString(c, "SUPABASE_DB_PASSWORD", ""),
			config.GetString(c, "SUPABASE_DB_NAME", "postgres"),
			config.GetString(c, "SUPABASE_DB_PORT", "5432"),
		)
	case "postgres":
		host := config.GetString(c, "DB_HOST", "")
		if host == "" {
			return settings, errs.NewConfigMissingError("DB_HOST")
		}
		settings.DSN = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			host,
			config.GetString(c, "DB_USER", "postgres"),
			config.GetString(c, "DB_PASSWORD", ""),
			config.GetString(c, "DB_NAME", "lab"),
			config.GetString(c, "DB_PORT", "5432"),
			config.GetString(c, "DB_SSLMODE", "disable"),
		)
	default:
		return settings, fmt.Errorf("unsupported DB_TYPE %q", dbType)
	}

	return settings, nil
}

// Open connects to postgres, registers the read replica when configured and
// verifies the connection.
func Open(ctx context.Context, settings Settings, log zerolog.Logger) (*gorm.DB, error) {
	gormLogger := logger.New(
		stdlog.New(log.With().Str("component", "gorm").Logger(), "", 0),
		logger.Config{
			SlowThreshold:             settings.SlowThreshold,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  settings.DSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt:    false,
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if settings.ReplicaDSN != "" {
		err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.New(postgres.Config{
				DSN:                  settings.ReplicaDSN,
				PreferSimpleProtocol: true,
			})},
			Policy: dbresolver.RandomPolicy{},
		}))
		if err != nil {
			return nil, fmt.Errorf("error registering read replica: %w", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("error getting sql database: %w", err)
	}
	sqlDB.SetMaxOpenConns(settings.MaxOpenConns)
	sqlDB.SetMaxIdleConns(settings.MaxIdleConns)

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("error testing database connection: %w", err)
	}

	return db, nil
}
