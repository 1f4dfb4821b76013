package fulfillment

import (
	"context"

	"go.uber.org/zap"

	"github.com/rl1809/quantum-bookstore/internal/core/domain"
)

// LogAdapter records shipments and ebook deliveries in the log instead of
// contacting a courier or mail server.
type LogAdapter struct {
	logger *zap.Logger
}

func NewLogAdapter(logger *zap.Logger) *LogAdapter {
	return &LogAdapter{logger: logger}
}

func (a *LogAdapter) Ship(ctx context.Context, shipment domain.Shipment) error {
	a.logger.Info("shipping paper book",
		zap.String("book_id", shipment.BookID),
		zap.String("title", shipment.Title),
		zap.Int("quantity", shipment.Quantity),
		zap.String("address", shipment.Address),
	)
	return nil
}

func (a *LogAdapter) Email(ctx context.Context, delivery domain.EmailDelivery) error {
	a.logger.Info("sending ebook",
		zap.String("book_id", delivery.BookID),
		zap.String("title", delivery.Title),
		zap.String("file_type", delivery.FileType),
		zap.String("email", delivery.Email),
	)
	return nil
}
