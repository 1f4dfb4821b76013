package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rl1809/quantum-bookstore/internal/core/domain"
	"github.com/rl1809/quantum-bookstore/internal/port"
)

var ErrDuplicateRequest = errors.New("duplicate request")

type CheckoutRequest struct {
	// RequestID is optional; when set, a second checkout with the same id is rejected
	RequestID string
	BookID    string
	Quantity  int
	Customer  domain.Customer
}

type CheckoutService struct {
	inventory  *Inventory
	guard      port.IdempotencyGuard
	orderQueue chan domain.Order
	logger     *zap.Logger
}

func NewCheckoutService(inventory *Inventory, guard port.IdempotencyGuard, queueSize int, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		inventory:  inventory,
		guard:      guard,
		orderQueue: make(chan domain.Order, queueSize),
		logger:     logger,
	}
}

func (s *CheckoutService) Checkout(ctx context.Context, req CheckoutRequest) (domain.Order, error) {
	idempotencyKey := fmt.Sprintf("purchase:%s", req.RequestID)

	if req.RequestID != "" {
		ok, err := s.guard.SetIdempotency(ctx, idempotencyKey)
		if err != nil {
			return domain.Order{}, fmt.Errorf("idempotency check failed: %w", err)
		}
		if !ok {
			return domain.Order{}, ErrDuplicateRequest
		}
	}

	sale, err := s.inventory.Sell(ctx, req.BookID, req.Quantity, req.Customer)
	if err != nil {
		if req.RequestID != "" {
			if releaseErr := s.guard.ReleaseIdempotency(ctx, idempotencyKey); releaseErr != nil {
				s.logger.Error("failed to release request id",
					zap.String("request_id", req.RequestID),
					zap.Error(releaseErr),
				)
			}
		}
		return domain.Order{}, err
	}

	order := domain.Order{
		ID:        uuid.NewString(),
		RequestID: req.RequestID,
		BookID:    sale.BookID,
		Kind:      sale.Kind,
		Quantity:  sale.Quantity,
		Amount:    sale.Amount,
		Customer:  req.Customer,
		Status:    domain.OrderStatusCompleted,
		CreatedAt: time.Now(),
	}

	select {
	case s.orderQueue <- order:
	case <-ctx.Done():
		s.logger.Warn("order not queued for journal", zap.String("order_id", order.ID), zap.Error(ctx.Err()))
	}

	return order, nil
}

func (s *CheckoutService) GetOrderQueue() <-chan domain.Order {
	return s.orderQueue
}

func (s *CheckoutService) Close() {
	close(s.orderQueue)
}
