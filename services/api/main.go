package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/davin-ai/agriview/services/api/config"
	"github.com/davin-ai/agriview/services/api/feed"
	httpserver "github.com/davin-ai/agriview/services/api/http"
	"github.com/davin-ai/agriview/services/api/interpret"
	"github.com/davin-ai/agriview/services/api/logging"
	"github.com/davin-ai/agriview/services/api/source"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logging.New("agriview-api")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	src, err := source.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("source connection error: %v", err)
	}
	defer src.Close()

	readings := feed.New(src, cfg.FetchTTL, logger)
	client := interpret.NewClient(cfg.ModelURL(), cfg.HFToken, cfg.HFTimeout)

	srv := httpserver.New(cfg, readings, client)
	logger.Info("dashboard API listening",
		"addr", cfg.ListenAddr(),
		"source", cfg.SourceDriver,
		"table", cfg.ReadingsTable,
		"fetch_ttl", cfg.FetchTTL,
	)

	if err := srv.Run(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
