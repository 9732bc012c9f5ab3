package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"text-summary/api/router"
	"text-summary/config"
	"text-summary/db"
	"text-summary/eventbus"
	"text-summary/logger"
	"text-summary/repositories"
	"text-summary/services"
	"text-summary/summarizer"
)

func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	if err := db.Init(); err != nil {
		logger.Log.Errorf("failed to initialize database: %v", err)
		os.Exit(1)
	}

	bus := eventbus.NewMemoryBus(64)
	defer bus.Close()

	repo := repositories.NewTextSummaryRepository(db.DB)
	svc := services.NewSummaryService(repo, summarizer.New(cfg.Summary), bus)

	ctx := context.Background()
	if err := bus.Subscribe(ctx, eventbus.TopicSummaryEvents, svc.HandleSummaryRequested); err != nil {
		logger.Log.Errorf("failed to subscribe summary generator: %v", err)
		os.Exit(1)
	}

	r := router.New(svc)
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Log.Infof("starting server on %s", addr)
	if err := r.Run(addr); err != nil && err != http.ErrServerClosed {
		logger.Log.Errorf("server error: %v", err)
		os.Exit(1)
	}
}
