package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/rl1809/quantum-bookstore/internal/adapter/fulfillment"
	"github.com/rl1809/quantum-bookstore/internal/adapter/handler"
	"github.com/rl1809/quantum-bookstore/internal/adapter/storage"
	"github.com/rl1809/quantum-bookstore/internal/config"
	"github.com/rl1809/quantum-bookstore/internal/core/service"
	"github.com/rl1809/quantum-bookstore/internal/observability"
	"github.com/rl1809/quantum-bookstore/internal/port"
	"github.com/rl1809/quantum-bookstore/internal/seed"
)

func main() {
	configPath := flag.String("config", os.Getenv("BOOKSTORE_CONFIG"), "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	guard, closeGuard := openIdempotencyGuard(ctx, cfg, logger)
	defer closeGuard()

	journal, closeJournal := openJournal(ctx, cfg, logger)
	defer closeJournal()

	// Initialize services
	fulfiller := fulfillment.NewLogAdapter(logger)
	inventory := service.NewInventory(storage.NewMemoryBookRepository(), fulfiller, fulfiller, logger, otel.Tracer("bookstore/inventory"))
	if err := seed.Load(ctx, inventory); err != nil {
		logger.Fatal("failed to seed inventory", zap.Error(err))
	}
	checkoutService := service.NewCheckoutService(inventory, guard, cfg.Checkout.QueueSize, logger)

	// Start journal workers
	var wg sync.WaitGroup
	for i := 0; i < cfg.Checkout.Workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			service.RunJournalWorker(id, checkoutService.GetOrderQueue(), journal, logger)
		}(i)
	}
	logger.Info("started journal workers", zap.Int("count", cfg.Checkout.Workers))

	// Start gRPC server
	grpcServer := grpc.NewServer()
	handler.RegisterBookstoreServer(grpcServer, handler.NewGRPCHandler(checkoutService, logger))

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		logger.Fatal("failed to listen", zap.String("addr", cfg.GRPCAddr), zap.Error(err))
	}

	go func() {
		logger.Info("gRPC server listening", zap.String("addr", cfg.GRPCAddr))
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("gRPC server error", zap.Error(err))
		}
	}()

	// Start HTTP server
	httpHandler := handler.NewHTTPHandler(inventory, checkoutService, journal, logger)
	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: httpHandler.Routes(),
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown error", zap.Error(err))
	}
	logger.Info("HTTP server stopped")

	grpcServer.GracefulStop()
	logger.Info("gRPC server stopped")

	// Close order queue and wait for workers
	checkoutService.Close()
	wg.Wait()
	logger.Info("journal workers stopped")
}

func openIdempotencyGuard(ctx context.Context, cfg config.Config, logger *zap.Logger) (port.IdempotencyGuard, func()) {
	if cfg.Idempotency.Backend != config.BackendRedis {
		return storage.NewMemoryIdempotencyGuard(), func() {}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Idempotency.RedisAddr,
		PoolSize: 100,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Fatal("failed to connect redis", zap.Error(err))
	}
	logger.Info("connected to redis", zap.String("addr", cfg.Idempotency.RedisAddr))

	return storage.NewRedisAdapter(rdb), func() { rdb.Close() }
}

func openJournal(ctx context.Context, cfg config.Config, logger *zap.Logger) (port.OrderJournal, func()) {
	if cfg.Journal.Backend != config.BackendMySQL {
		return storage.NewMemoryJournal(), func() {}
	}

	db, err := sql.Open("mysql", cfg.Journal.MySQLDSN)
	if err != nil {
		logger.Fatal("failed to connect mysql", zap.Error(err))
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		logger.Fatal("failed to ping mysql", zap.Error(err))
	}
	logger.Info("connected to mysql")

	adapter := storage.NewMySQLAdapter(db)
	if err := adapter.EnsureSchema(ctx); err != nil {
		logger.Fatal("failed to prepare orders table", zap.Error(err))
	}

	return adapter, func() { db.Close() }
}
