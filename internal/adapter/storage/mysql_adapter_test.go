package storage

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/quantum-bookstore/internal/core/domain"
)

func getMySQLDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/bookstore?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	return db
}

func TestRecordOrder_RoundTrip(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	adapter := NewMySQLAdapter(db)
	require.NoError(t, adapter.EnsureSchema(ctx))

	order := domain.Order{
		ID:        uuid.NewString(),
		RequestID: "test-request",
		BookID:    "P001",
		Kind:      domain.KindPaper,
		Quantity:  3,
		Amount:    135.0,
		Customer:  domain.Customer{Name: "Ada", Email: "ada@example.com", Address: "1 Loop Rd"},
		Status:    domain.OrderStatusCompleted,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	require.NoError(t, adapter.RecordOrder(ctx, order))
	defer db.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, order.ID)

	stored, err := adapter.GetOrder(ctx, order.ID)
	require.NoError(t, err)

	assert.Equal(t, order.BookID, stored.BookID)
	assert.Equal(t, domain.KindPaper, stored.Kind)
	assert.Equal(t, order.Quantity, stored.Quantity)
	assert.Equal(t, order.Amount, stored.Amount)
	assert.Equal(t, order.Customer, stored.Customer)
	assert.Equal(t, order.Status, stored.Status)
}

func TestRecordOrder_DuplicateID(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	adapter := NewMySQLAdapter(db)
	require.NoError(t, adapter.EnsureSchema(ctx))

	order := domain.Order{
		ID:        uuid.NewString(),
		BookID:    "E001",
		Kind:      domain.KindEBook,
		Quantity:  1,
		Amount:    30.0,
		Status:    domain.OrderStatusCompleted,
		CreatedAt: time.Now(),
	}

	require.NoError(t, adapter.RecordOrder(ctx, order))
	defer db.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, order.ID)

	assert.Error(t, adapter.RecordOrder(ctx, order))
}

func TestGetOrder_NotFound(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	adapter := NewMySQLAdapter(db)
	require.NoError(t, adapter.EnsureSchema(ctx))

	_, err := adapter.GetOrder(ctx, "nonexistent-order")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}
