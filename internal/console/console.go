// Package console is the interactive front end of the bookstore demo.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rl1809/quantum-bookstore/internal/core/domain"
)

const prefix = "Quantum book store: "

// DemoBookID is bought at the end of every run to show a rejected sale.
const DemoBookID = "D001"

var ErrInvalidInput = errors.New("invalid input")

type Store interface {
	List(ctx context.Context) []domain.Book
	Purchase(ctx context.Context, id string, quantity int, customer domain.Customer) (float64, error)
}

type PurchaseRequest struct {
	BookID   string
	Quantity int
}

type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

func (c *Console) prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *Console) Say(format string, args ...any) {
	fmt.Fprintf(c.out, prefix+format+"\n", args...)
}

func (c *Console) ReadCustomer() (domain.Customer, error) {
	var customer domain.Customer
	var err error

	if customer.Name, err = c.prompt("Enter your name: "); err != nil {
		return domain.Customer{}, err
	}
	if customer.Email, err = c.prompt("Enter your email: "); err != nil {
		return domain.Customer{}, err
	}
	if customer.Address, err = c.prompt("Enter your address: "); err != nil {
		return domain.Customer{}, err
	}
	return customer, nil
}

func (c *Console) ShowBooks(books []domain.Book) {
	fmt.Fprintln(c.out)
	c.Say("Available Books:")
	for _, b := range books {
		info := b.Info()
		fmt.Fprintf(c.out, "%s - %s (%s)\n", info.ID, info.Title, kindLabel(b.Kind()))
	}
}

func kindLabel(k domain.Kind) string {
	switch k {
	case domain.KindPaper:
		return "Paper"
	case domain.KindEBook:
		return "EBook"
	case domain.KindDemo:
		return "Demo Book"
	default:
		return string(k)
	}
}

// ReadPurchase asks for the book kind first; quantity is only asked for paper books.
func (c *Console) ReadPurchase() (PurchaseRequest, error) {
	kind, err := c.prompt("Do you want to buy a PaperBook or EBook? (Enter 'paper' or 'ebook'): ")
	if err != nil {
		return PurchaseRequest{}, err
	}
	kind = strings.ToLower(kind)

	id, err := c.prompt("Enter the book ID you want to buy: ")
	if err != nil {
		return PurchaseRequest{}, err
	}

	req := PurchaseRequest{BookID: id, Quantity: 1}
	if kind == string(domain.KindPaper) {
		raw, err := c.prompt("Enter the quantity: ")
		if err != nil {
			return PurchaseRequest{}, err
		}
		req.Quantity, err = strconv.Atoi(raw)
		if err != nil {
			return PurchaseRequest{}, fmt.Errorf("%w: quantity %q is not a number", ErrInvalidInput, raw)
		}
	}
	return req, nil
}

// Buy runs one purchase and reports the outcome; failures are displayed, not returned.
func (c *Console) Buy(ctx context.Context, store Store, req PurchaseRequest, customer domain.Customer) bool {
	paid, err := store.Purchase(ctx, req.BookID, req.Quantity, customer)
	if err != nil {
		c.Say("Error - %v", err)
		return false
	}
	c.Say("Purchase successful. Paid: %.2f", paid)
	return true
}

// Run drives one demo session: customer details, one purchase of the user's
// choice, then an attempt to buy the demo book.
func (c *Console) Run(ctx context.Context, store Store) error {
	c.Say("Please make sure to enter your name, email, and address to proceed with your order.")

	customer, err := c.ReadCustomer()
	if err != nil {
		return fmt.Errorf("read customer: %w", err)
	}

	c.ShowBooks(store.List(ctx))

	req, err := c.ReadPurchase()
	if err != nil {
		if !errors.Is(err, ErrInvalidInput) {
			return fmt.Errorf("read purchase: %w", err)
		}
		c.Say("Error - %v", err)
	} else {
		c.Buy(ctx, store, req, customer)
	}

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "Trying to buy Demo Book (should fail):")
	c.Buy(ctx, store, PurchaseRequest{BookID: DemoBookID, Quantity: 1}, customer)

	c.Say("All test operations completed.")
	return nil
}
