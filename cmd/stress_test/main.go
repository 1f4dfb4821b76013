package main

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/rl1809/quantum-bookstore/internal/adapter/fulfillment"
	"github.com/rl1809/quantum-bookstore/internal/adapter/storage"
	"github.com/rl1809/quantum-bookstore/internal/core/domain"
	"github.com/rl1809/quantum-bookstore/internal/core/service"
)

const (
	bookID        = "stress-paper"
	initialStock  = 20
	totalRequests = 50
	queueSize     = 100
)

func main() {
	ctx := context.Background()
	logger := zap.NewNop()

	fulfiller := fulfillment.NewLogAdapter(logger)
	inventory := service.NewInventory(storage.NewMemoryBookRepository(), fulfiller, fulfiller, logger, otel.Tracer("stress"))

	book, err := domain.NewPaperBook(domain.Details{ID: bookID, Title: "Stress Testing in Go", Year: 2024, Price: 10}, initialStock)
	if err != nil {
		log.Fatalf("failed to create book: %v", err)
	}
	if err := inventory.Add(ctx, book); err != nil {
		log.Fatalf("failed to add book: %v", err)
	}

	checkoutService := service.NewCheckoutService(inventory, storage.NewMemoryIdempotencyGuard(), queueSize, logger)

	journal := storage.NewMemoryJournal()
	var workers sync.WaitGroup
	workers.Add(1)
	go func() {
		defer workers.Done()
		service.RunJournalWorker(0, checkoutService.GetOrderQueue(), journal, logger)
	}()

	// Counters
	var successCount atomic.Int32
	var failCount atomic.Int32

	// Spawn concurrent requests
	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := checkoutService.Checkout(ctx, service.CheckoutRequest{
				RequestID: uuid.NewString(),
				BookID:    bookID,
				Quantity:  1,
			})
			if err == nil {
				successCount.Add(1)
			} else {
				failCount.Add(1)
			}
		}()
	}

	wg.Wait()
	elapsed := time.Since(start)

	checkoutService.Close()
	workers.Wait()

	// Results
	success := successCount.Load()
	fail := failCount.Load()

	fmt.Println("========== STRESS TEST RESULTS ==========")
	fmt.Printf("Initial Stock:    %d\n", initialStock)
	fmt.Printf("Total Requests:   %d\n", totalRequests)
	fmt.Printf("Successful:       %d\n", success)
	fmt.Printf("Failed:           %d\n", fail)
	fmt.Printf("Journaled Orders: %d\n", len(journal.Orders()))
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("==========================================")

	if success == int32(initialStock) && fail == int32(totalRequests-initialStock) {
		fmt.Printf("PASS: Exactly %d purchases succeeded, %d failed\n", initialStock, totalRequests-initialStock)
	} else {
		fmt.Printf("FAIL: Expected %d success/%d fail, got %d/%d\n",
			initialStock, totalRequests-initialStock, success, fail)
	}

	// Verify final stock
	remaining, err := inventory.Get(ctx, bookID)
	if err != nil {
		log.Fatalf("failed to read stock: %v", err)
	}
	finalStock := remaining.(*domain.PaperBook).Stock
	fmt.Printf("Final Stock: %d\n", finalStock)

	if finalStock == 0 {
		fmt.Println("PASS: Stock depleted to 0")
	} else {
		fmt.Printf("FAIL: Expected stock 0, got %d\n", finalStock)
	}
}
