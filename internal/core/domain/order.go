package domain

import (
	"errors"
	"time"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderStatus string

const (
	OrderStatusCompleted OrderStatus = "completed"
)

type Customer struct {
	Name    string
	Email   string
	Address string
}

type Order struct {
	ID        string
	RequestID string
	BookID    string
	Kind      Kind
	Quantity  int
	Amount    float64
	Customer  Customer
	Status    OrderStatus
	CreatedAt time.Time
}

// Sale is what an accepted purchase produced.
type Sale struct {
	BookID   string
	Kind     Kind
	Quantity int
	Amount   float64
}

// Shipment is handed to a shipper once a paper book purchase is accepted.
type Shipment struct {
	BookID   string
	Title    string
	Quantity int
	Address  string
}

// EmailDelivery is handed to a mailer once an ebook purchase is accepted.
type EmailDelivery struct {
	BookID   string
	Title    string
	FileType string
	Email    string
}
