package storage

import (
	"context"
	"sync"

	"github.com/rl1809/quantum-bookstore/internal/core/domain"
)

// MemoryBookRepository is a plain map. It is not safe for concurrent use.
type MemoryBookRepository struct {
	books map[string]domain.Book
}

func NewMemoryBookRepository() *MemoryBookRepository {
	return &MemoryBookRepository{books: make(map[string]domain.Book)}
}

func (m *MemoryBookRepository) Save(book domain.Book) {
	m.books[book.Info().ID] = book
}

func (m *MemoryBookRepository) Get(id string) (domain.Book, bool) {
	book, ok := m.books[id]
	return book, ok
}

func (m *MemoryBookRepository) Delete(id string) {
	delete(m.books, id)
}

func (m *MemoryBookRepository) All() []domain.Book {
	all := make([]domain.Book, 0, len(m.books))
	for _, book := range m.books {
		all = append(all, book)
	}
	return all
}

type MemoryIdempotencyGuard struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func NewMemoryIdempotencyGuard() *MemoryIdempotencyGuard {
	return &MemoryIdempotencyGuard{keys: make(map[string]struct{})}
}

func (m *MemoryIdempotencyGuard) SetIdempotency(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.keys[key]; ok {
		return false, nil
	}
	m.keys[key] = struct{}{}
	return true, nil
}

func (m *MemoryIdempotencyGuard) ReleaseIdempotency(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.keys, key)
	return nil
}

// MemoryJournal keeps orders for the lifetime of the process.
type MemoryJournal struct {
	mu     sync.Mutex
	orders []domain.Order
}

func NewMemoryJournal() *MemoryJournal {
	return &MemoryJournal{}
}

func (m *MemoryJournal) RecordOrder(ctx context.Context, order domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append(m.orders, order)
	return nil
}

func (m *MemoryJournal) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, order := range m.orders {
		if order.ID == id {
			return &order, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (m *MemoryJournal) Orders() []domain.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Order(nil), m.orders...)
}
