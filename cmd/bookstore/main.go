package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/rl1809/quantum-bookstore/internal/adapter/fulfillment"
	"github.com/rl1809/quantum-bookstore/internal/adapter/storage"
	"github.com/rl1809/quantum-bookstore/internal/console"
	"github.com/rl1809/quantum-bookstore/internal/core/service"
	"github.com/rl1809/quantum-bookstore/internal/observability"
	"github.com/rl1809/quantum-bookstore/internal/seed"
)

func main() {
	maxAge := flag.Int("max-age", 10, "remove books older than this many years before selling")
	currentYear := flag.Int("year", time.Now().Year(), "year used to compute book age")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	logger, err := observability.NewLogger(*logLevel, "console")
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	fulfiller := fulfillment.NewLogAdapter(logger)
	inventory := service.NewInventory(storage.NewMemoryBookRepository(), fulfiller, fulfiller, logger, otel.Tracer("bookstore/inventory"))
	if err := seed.Load(ctx, inventory); err != nil {
		logger.Fatal("failed to seed inventory", zap.Error(err))
	}

	inventory.RemoveOlderThan(ctx, *maxAge, *currentYear)

	if err := console.New(os.Stdin, os.Stdout).Run(ctx, inventory); err != nil {
		logger.Fatal("console session ended", zap.Error(err))
	}
}
