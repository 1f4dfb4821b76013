package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/rl1809/quantum-bookstore/internal/core/domain"
	"github.com/rl1809/quantum-bookstore/internal/port"
)

var (
	ErrBookNotFound      = errors.New("book not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrNotForSale        = errors.New("book is not for sale")
	ErrFulfillmentFailed = errors.New("fulfillment failed")
	ErrInvalidBook       = domain.ErrInvalidBook
)

// Inventory owns every book in the store and dispatches purchases by book kind.
type Inventory struct {
	mu      sync.RWMutex
	books   port.BookRepository
	shipper port.Shipper
	mailer  port.Mailer
	logger  *zap.Logger
	tracer  trace.Tracer
}

func NewInventory(books port.BookRepository, shipper port.Shipper, mailer port.Mailer, logger *zap.Logger, tracer trace.Tracer) *Inventory {
	return &Inventory{
		books:   books,
		shipper: shipper,
		mailer:  mailer,
		logger:  logger,
		tracer:  tracer,
	}
}

// Add stores a copy of book, replacing any book with the same id. The
// caller keeps ownership of the value it passed in.
func (inv *Inventory) Add(ctx context.Context, book domain.Book) error {
	if err := domain.Validate(book); err != nil {
		return err
	}
	info := book.Info()

	inv.mu.Lock()
	inv.books.Save(book.Clone())
	inv.mu.Unlock()

	inv.logger.Info("book added",
		zap.String("book_id", info.ID),
		zap.String("title", info.Title),
		zap.String("kind", string(book.Kind())),
	)
	return nil
}

// RemoveOlderThan drops every book more than maxAgeYears old and returns them.
func (inv *Inventory) RemoveOlderThan(ctx context.Context, maxAgeYears, currentYear int) []domain.Book {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	var removed []domain.Book
	for _, book := range inv.books.All() {
		if domain.Age(book, currentYear) <= maxAgeYears {
			continue
		}
		info := book.Info()
		inv.books.Delete(info.ID)
		removed = append(removed, book)
		inv.logger.Info("removed outdated book",
			zap.String("book_id", info.ID),
			zap.String("title", info.Title),
			zap.Int("year", info.Year),
		)
	}
	return removed
}

func (inv *Inventory) Get(ctx context.Context, id string) (domain.Book, error) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	book, ok := inv.books.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBookNotFound, id)
	}
	return book.Clone(), nil
}

// List returns copies of all books ordered by id.
func (inv *Inventory) List(ctx context.Context) []domain.Book {
	inv.mu.RLock()
	all := inv.books.All()
	books := make([]domain.Book, 0, len(all))
	for _, book := range all {
		books = append(books, book.Clone())
	}
	inv.mu.RUnlock()

	slices.SortFunc(books, func(a, b domain.Book) int {
		return strings.Compare(a.Info().ID, b.Info().ID)
	})
	return books
}

// Purchase sells quantity copies of the book to customer and returns the amount paid.
func (inv *Inventory) Purchase(ctx context.Context, id string, quantity int, customer domain.Customer) (float64, error) {
	sale, err := inv.Sell(ctx, id, quantity, customer)
	if err != nil {
		return 0, err
	}
	return sale.Amount, nil
}

// Sell is Purchase returning the full sale, including the kind of book sold.
func (inv *Inventory) Sell(ctx context.Context, id string, quantity int, customer domain.Customer) (domain.Sale, error) {
	ctx, span := inv.tracer.Start(ctx, "inventory.purchase")
	defer span.End()

	span.SetAttributes(
		attribute.String("book.id", id),
		attribute.Int("purchase.quantity", quantity),
	)

	sale, err := inv.purchase(ctx, id, quantity, customer)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		inv.logger.Warn("purchase rejected",
			zap.String("book_id", id),
			zap.Int("quantity", quantity),
			zap.Error(err),
		)
		return domain.Sale{}, err
	}

	span.SetAttributes(
		attribute.String("book.kind", string(sale.Kind)),
		attribute.Float64("purchase.amount", sale.Amount),
	)
	inv.logger.Info("purchase successful",
		zap.String("book_id", id),
		zap.String("kind", string(sale.Kind)),
		zap.Int("quantity", quantity),
		zap.Float64("paid", sale.Amount),
	)
	return sale, nil
}

func (inv *Inventory) purchase(ctx context.Context, id string, quantity int, customer domain.Customer) (domain.Sale, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	book, ok := inv.books.Get(id)
	if !ok {
		return domain.Sale{}, fmt.Errorf("%w: %s", ErrBookNotFound, id)
	}

	switch b := book.(type) {
	case *domain.PaperBook:
		if quantity < 1 {
			return domain.Sale{}, fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
		}
		if !b.ReduceStock(quantity) {
			return domain.Sale{}, fmt.Errorf("%w: requested %d, %d left", ErrInsufficientStock, quantity, b.Stock)
		}
		err := inv.shipper.Ship(ctx, domain.Shipment{
			BookID:   b.ID,
			Title:    b.Title,
			Quantity: quantity,
			Address:  customer.Address,
		})
		if err != nil {
			b.RestoreStock(quantity)
			return domain.Sale{}, fmt.Errorf("%w: ship: %w", ErrFulfillmentFailed, err)
		}
		return domain.Sale{BookID: b.ID, Kind: domain.KindPaper, Quantity: quantity, Amount: b.Price * float64(quantity)}, nil

	case *domain.EBook:
		if quantity != 1 {
			return domain.Sale{}, fmt.Errorf("%w: only one copy of an ebook can be bought at a time", ErrInvalidQuantity)
		}
		err := inv.mailer.Email(ctx, domain.EmailDelivery{
			BookID:   b.ID,
			Title:    b.Title,
			FileType: b.FileType,
			Email:    customer.Email,
		})
		if err != nil {
			return domain.Sale{}, fmt.Errorf("%w: email: %w", ErrFulfillmentFailed, err)
		}
		return domain.Sale{BookID: b.ID, Kind: domain.KindEBook, Quantity: 1, Amount: b.Price}, nil

	default:
		return domain.Sale{}, fmt.Errorf("%w: %s", ErrNotForSale, id)
	}
}
