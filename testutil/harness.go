// Package testutil provisions transient databases and wired-up
// application instances for tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"text-summary/api/router"
	"text-summary/config"
	"text-summary/db"
	"text-summary/eventbus"
	"text-summary/models"
	"text-summary/repositories"
	"text-summary/services"
	"text-summary/summarizer"
)

// NewTestDB opens a uniquely named in-memory SQLite database, migrates
// the schema, and swaps it in as the process-global handle. The schema
// is dropped and the connection closed on cleanup.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.TextSummary{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	// a single connection serializes writers, which shared-cache sqlite
	// cannot do on its own
	if sqlDB, err := conn.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}

	prev := db.DB
	db.DB = conn
	t.Cleanup(func() {
		_ = conn.Migrator().DropTable(&models.TextSummary{})
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
		db.DB = prev
	})
	return conn
}

// TestConfig returns the application configuration substituted for
// testing: test environment flags and a punkt cache pre-seeded under a
// temp dir so no network download happens.
func TestConfig(t *testing.T) config.AppConfig {
	t.Helper()

	c := config.Default()
	c.Env.Environment = "test"
	c.Env.Testing = true
	c.Env.DatabaseURL = "file::memory:?cache=shared"
	c.Fetch.TimeoutSeconds = 5
	c.Summary.PunktCacheDir = t.TempDir()
	SeedPunktCache(t, c.Summary.PunktCacheDir)
	return c
}

// SeedPunktCache writes minimal punkt training data into the cache so
// the tokenizer's idempotent fast path is taken.
func SeedPunktCache(t *testing.T, cacheDir string) {
	t.Helper()

	dir := filepath.Join(cacheDir, "punkt")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create punkt cache dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "english.json"), []byte("{}"), 0o644); err != nil {
		t.Fatalf("failed to seed punkt cache: %v", err)
	}
}

// App is an application instance wired for tests: transient database,
// in-memory bus with the generation subscriber attached, and the full
// HTTP router.
type App struct {
	Engine  *gin.Engine
	DB      *gorm.DB
	Service *services.SummaryService
	Bus     *eventbus.MemoryBus

	// SessionOverride, when set, is meant to route handlers through an
	// isolated per-test session. Nothing consults it yet — handlers
	// still resolve the process-global handle, which NewTestDB swaps
	// underneath them instead.
	// TODO: thread the session through request context so this hook can
	// replace the db.DB global swap.
	SessionOverride func() *gorm.DB
}

// NewApp builds an App with configuration overridden for testing.
func NewApp(t *testing.T) *App {
	t.Helper()

	config.OverrideConfigForTest(TestConfig(t))
	gin.SetMode(gin.TestMode)

	conn := NewTestDB(t)

	bus := eventbus.NewMemoryBus(16)
	t.Cleanup(bus.Close)

	repo := repositories.NewTextSummaryRepository(conn)
	svc := services.NewSummaryService(repo, summarizer.New(config.GetConfig().Summary), bus)
	if err := bus.Subscribe(context.Background(), eventbus.TopicSummaryEvents, svc.HandleSummaryRequested); err != nil {
		t.Fatalf("failed to subscribe generator: %v", err)
	}

	return &App{
		Engine:  router.New(svc),
		DB:      conn,
		Service: svc,
		Bus:     bus,
	}
}
