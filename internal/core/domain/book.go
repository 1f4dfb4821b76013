package domain

import (
	"errors"
	"fmt"
)

var ErrInvalidBook = errors.New("invalid book")

type Kind string

const (
	KindPaper Kind = "paper"
	KindEBook Kind = "ebook"
	KindDemo  Kind = "demo"
)

// Details holds the fields every book kind shares.
type Details struct {
	ID     string
	Title  string
	Author string
	Year   int
	Price  float64
}

// Book is one of PaperBook, EBook or DemoBook.
type Book interface {
	Info() Details
	Kind() Kind
	// Clone returns a copy that does not share mutable state with the receiver.
	Clone() Book
	sealed()
}

// Age returns how many years old b is in currentYear.
func Age(b Book, currentYear int) int {
	return currentYear - b.Info().Year
}

// Validate reports whether b is a usable book: non-nil, with an id, a
// non-negative price, non-negative stock for paper books and a zero price
// for demo books.
func Validate(b Book) error {
	switch v := b.(type) {
	case nil:
		return fmt.Errorf("%w: nil book", ErrInvalidBook)
	case *PaperBook:
		if v == nil {
			return fmt.Errorf("%w: nil book", ErrInvalidBook)
		}
		if err := validateDetails(v.Details); err != nil {
			return err
		}
		if v.Stock < 0 {
			return fmt.Errorf("%w: negative stock", ErrInvalidBook)
		}
	case *EBook:
		if v == nil {
			return fmt.Errorf("%w: nil book", ErrInvalidBook)
		}
		return validateDetails(v.Details)
	case *DemoBook:
		if v == nil {
			return fmt.Errorf("%w: nil book", ErrInvalidBook)
		}
		if err := validateDetails(v.Details); err != nil {
			return err
		}
		if v.Price != 0 {
			return fmt.Errorf("%w: demo book must be free", ErrInvalidBook)
		}
	default:
		return fmt.Errorf("%w: unknown kind %T", ErrInvalidBook, b)
	}
	return nil
}

func validateDetails(d Details) error {
	if d.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidBook)
	}
	if d.Price < 0 {
		return fmt.Errorf("%w: negative price", ErrInvalidBook)
	}
	return nil
}

type PaperBook struct {
	Details
	Stock int
}

func NewPaperBook(d Details, stock int) (*PaperBook, error) {
	b := &PaperBook{Details: d, Stock: stock}
	if err := Validate(b); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *PaperBook) Info() Details { return b.Details }
func (b *PaperBook) Kind() Kind    { return KindPaper }
func (b *PaperBook) Clone() Book   { c := *b; return &c }
func (b *PaperBook) sealed()       {}

// ReduceStock removes quantity copies, returning false and leaving the stock
// untouched if fewer than quantity remain.
func (b *PaperBook) ReduceStock(quantity int) bool {
	if quantity > b.Stock {
		return false
	}
	b.Stock -= quantity
	return true
}

// RestoreStock puts back copies taken by ReduceStock.
func (b *PaperBook) RestoreStock(quantity int) {
	b.Stock += quantity
}

type EBook struct {
	Details
	FileType string
}

func NewEBook(d Details, fileType string) (*EBook, error) {
	b := &EBook{Details: d, FileType: fileType}
	if err := Validate(b); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *EBook) Info() Details { return b.Details }
func (b *EBook) Kind() Kind    { return KindEBook }
func (b *EBook) Clone() Book   { c := *b; return &c }
func (b *EBook) sealed()       {}

// DemoBook is a showcase copy. Its price is always zero.
type DemoBook struct {
	Details
}

func NewDemoBook(d Details) (*DemoBook, error) {
	d.Price = 0
	b := &DemoBook{Details: d}
	if err := Validate(b); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *DemoBook) Info() Details { return b.Details }
func (b *DemoBook) Kind() Kind    { return KindDemo }
func (b *DemoBook) Clone() Book   { c := *b; return &c }
func (b *DemoBook) sealed()       {}
