package db

import (
	"strings"
	"sync"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"text-summary/config"
	"text-summary/logger"
	"text-summary/models"
)

var (
	initOnce sync.Once

	// DB is the process-global GORM handle. Tests swap it for an
	// in-memory database via the test harness.
	DB *gorm.DB
)

// Init opens the database from DATABASE_URL and migrates the schema.
// Safe to call more than once; only the first call does work.
func Init() error {
	var initErr error
	initOnce.Do(func() {
		cfg := config.GetConfig()

		conn, err := gorm.Open(dialectorFor(cfg.Env.DatabaseURL), &gorm.Config{})
		if err != nil {
			initErr = err
			return
		}

		if err := conn.AutoMigrate(&models.TextSummary{}); err != nil {
			initErr = err
			return
		}

		DB = conn
		logger.Log.Info("database connected and migrated")
	})
	return initErr
}

// dialectorFor picks the driver from the DSN scheme: postgres URLs go to
// the pgx-backed driver, everything else is treated as a SQLite path.
func dialectorFor(dsn string) gorm.Dialector {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return postgres.Open(dsn)
	}
	return sqlite.Open(dsn)
}
