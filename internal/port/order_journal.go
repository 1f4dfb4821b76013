package port

import (
	"context"

	"github.com/rl1809/quantum-bookstore/internal/core/domain"
)

type OrderJournal interface {
	// RecordOrder stores a completed order
	RecordOrder(ctx context.Context, order domain.Order) error

	// GetOrder returns domain.ErrOrderNotFound for an unknown id
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
}

type IdempotencyGuard interface {
	// SetIdempotency claims a key, returns false if already claimed
	SetIdempotency(ctx context.Context, key string) (bool, error)

	// ReleaseIdempotency frees a claimed key so the request may be retried
	ReleaseIdempotency(ctx context.Context, key string) error
}
