package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"bazarbot/internal/bot"
	"bazarbot/internal/catalog"
	"bazarbot/internal/extract"
	"bazarbot/internal/ingest"
	"bazarbot/pkg/utils"
)

func main() {
	cfg := utils.Load()

	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_TOKEN is required")
	}
	if cfg.OpenAIKey == "" {
		log.Fatal("OPENAI_API_KEY is required")
	}

	extractor := extract.NewClient(extract.ClientConfig{
		APIKey:  cfg.OpenAIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
		Timeout: cfg.ExtractTime,
	})

	// listings are persisted through the catalog API, same as any other
	// producer
	store := catalog.NewAPIClient(cfg.APIBaseURL)
	pipeline := ingest.NewPipeline(extractor, store)

	b, err := bot.New(cfg.TelegramToken, pipeline)
	if err != nil {
		log.Fatalf("bot init failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("bot stopped: %v", err)
	}
	log.Println("bot stopped")
}
