package port

import (
	"context"

	"github.com/rl1809/quantum-bookstore/internal/core/domain"
)

type Shipper interface {
	// Ship sends a paper book to the customer's address
	Ship(ctx context.Context, shipment domain.Shipment) error
}

type Mailer interface {
	// Email sends an ebook to the customer's inbox
	Email(ctx context.Context, delivery domain.EmailDelivery) error
}
