package storage

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/quantum-bookstore/internal/core/domain"
)

func TestMemoryBookRepository(t *testing.T) {
	repo := NewMemoryBookRepository()

	book, err := domain.NewEBook(domain.Details{ID: "E001", Title: "Python for All", Price: 30}, "PDF")
	require.NoError(t, err)

	repo.Save(book)
	got, ok := repo.Get("E001")
	require.True(t, ok)
	assert.Same(t, book, got)
	assert.Len(t, repo.All(), 1)

	repo.Delete("E001")
	_, ok = repo.Get("E001")
	assert.False(t, ok)
	assert.Empty(t, repo.All())
}

func TestMemoryIdempotencyGuard_Concurrent(t *testing.T) {
	guard := NewMemoryIdempotencyGuard()
	ctx := context.Background()

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := guard.SetIdempotency(ctx, "same-key")
			if err == nil && ok {
				successCount.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), successCount.Load())

	require.NoError(t, guard.ReleaseIdempotency(ctx, "same-key"))
	ok, err := guard.SetIdempotency(ctx, "same-key")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryJournal(t *testing.T) {
	journal := NewMemoryJournal()

	require.NoError(t, journal.RecordOrder(context.Background(), domain.Order{ID: "o-1"}))
	require.NoError(t, journal.RecordOrder(context.Background(), domain.Order{ID: "o-2"}))

	orders := journal.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, "o-1", orders[0].ID)

	order, err := journal.GetOrder(context.Background(), "o-2")
	require.NoError(t, err)
	assert.Equal(t, "o-2", order.ID)

	_, err = journal.GetOrder(context.Background(), "o-3")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}
