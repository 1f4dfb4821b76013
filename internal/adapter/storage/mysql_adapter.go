package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rl1809/quantum-bookstore/internal/core/domain"
)

const createOrdersTable = `
CREATE TABLE IF NOT EXISTS orders (
	id               VARCHAR(36)   NOT NULL PRIMARY KEY,
	request_id       VARCHAR(128)  NOT NULL DEFAULT '',
	book_id          VARCHAR(64)   NOT NULL,
	book_kind        VARCHAR(16)   NOT NULL,
	quantity         INT           NOT NULL,
	amount           DOUBLE        NOT NULL,
	customer_name    VARCHAR(255)  NOT NULL,
	customer_email   VARCHAR(255)  NOT NULL,
	customer_address VARCHAR(512)  NOT NULL,
	status           VARCHAR(32)   NOT NULL,
	created_at       DATETIME(6)   NOT NULL,
	INDEX idx_orders_book_id (book_id)
)`

// MySQLAdapter journals completed orders. Inventory itself is never stored here.
type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

func (m *MySQLAdapter) EnsureSchema(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, createOrdersTable); err != nil {
		return fmt.Errorf("create orders table: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) RecordOrder(ctx context.Context, order domain.Order) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO orders (id, request_id, book_id, book_kind, quantity, amount,
			customer_name, customer_email, customer_address, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.RequestID, order.BookID, order.Kind, order.Quantity, order.Amount,
		order.Customer.Name, order.Customer.Email, order.Customer.Address,
		order.Status, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	return nil
}

func (m *MySQLAdapter) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	var order domain.Order
	err := m.db.QueryRowContext(ctx, `
		SELECT id, request_id, book_id, book_kind, quantity, amount,
			customer_name, customer_email, customer_address, status, created_at
		FROM orders WHERE id = ?`, id,
	).Scan(&order.ID, &order.RequestID, &order.BookID, &order.Kind, &order.Quantity, &order.Amount,
		&order.Customer.Name, &order.Customer.Email, &order.Customer.Address,
		&order.Status, &order.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order: %w", err)
	}

	return &order, nil
}
