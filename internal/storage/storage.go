// Package storage opens the store selected by the configuration.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"wealthdesk/internal/config"
	"wealthdesk/internal/database"
	"wealthdesk/internal/memory"
	"wealthdesk/internal/models"
	"wealthdesk/internal/service"
)

// Open returns the configured store and a function that releases it.
// SQL stores are migrated before they are returned.
func Open(ctx context.Context, cfg config.StoreConfig, log *logrus.Logger) (service.Store, func() error, error) {
	var driver, dsn string
	switch cfg.Driver {
	case "memory":
		log.Warn("using the in-memory store; data is lost on exit")
		return memory.New(), func() error { return nil }, nil
	case "postgres":
		driver, dsn = database.DriverPostgres, cfg.PostgresURL
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create sqlite dir: %w", err)
		}
		driver, dsn = database.DriverSQLite, cfg.SQLitePath
	default:
		return nil, nil, fmt.Errorf("%w: unknown store driver %q", models.ErrConfiguration, cfg.Driver)
	}

	db, err := database.Open(driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("db connect failed: %w", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	log.Infof("connected to %s store", cfg.Driver)
	return database.New(db, log), db.Close, nil
}
