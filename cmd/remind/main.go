package main

// One-shot deadline reminder sweep, intended for cron:
//   go run ./cmd/remind

import (
	"context"
	"log"
	"os"

	"tradecase-backend/internal/bootstrap"
	"tradecase-backend/internal/shared/config"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Printf("bootstrap error: %v", err)
		os.Exit(1)
	}
	ctx := context.Background()

	created, err := app.Sweeper.Sweep(ctx)
	if err != nil {
		log.Printf("sweep error: %v", err)
		os.Exit(1)
	}

	purged, err := app.NotifyService.PurgeExpired(ctx)
	if err != nil {
		log.Printf("purge error: %v", err)
		os.Exit(1)
	}

	log.Printf("sweep complete: %d reminders created, %d expired purged", created, purged)
}
