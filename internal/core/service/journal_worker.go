package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rl1809/quantum-bookstore/internal/core/domain"
	"github.com/rl1809/quantum-bookstore/internal/port"
)

const journalTimeout = 5 * time.Second

// RunJournalWorker records queued orders until the queue is closed.
// A failed write is logged; the purchase itself has already completed.
func RunJournalWorker(id int, queue <-chan domain.Order, journal port.OrderJournal, logger *zap.Logger) {
	for order := range queue {
		ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)

		if err := journal.RecordOrder(ctx, order); err != nil {
			logger.Error("failed to record order",
				zap.Int("worker", id),
				zap.String("order_id", order.ID),
				zap.Error(err),
			)
		} else {
			logger.Debug("recorded order", zap.Int("worker", id), zap.String("order_id", order.ID))
		}

		cancel()
	}
}
