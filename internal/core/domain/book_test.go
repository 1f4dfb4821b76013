package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaperBook_RejectsInvalidFields(t *testing.T) {
	testCases := []struct {
		name    string
		details Details
		stock   int
	}{
		{name: "empty id", details: Details{Title: "x", Price: 1}, stock: 1},
		{name: "negative price", details: Details{ID: "P1", Price: -1}, stock: 1},
		{name: "negative stock", details: Details{ID: "P1", Price: 1}, stock: -1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPaperBook(tc.details, tc.stock)
			assert.ErrorIs(t, err, ErrInvalidBook)
		})
	}
}

func TestNewDemoBook_ForcesZeroPrice(t *testing.T) {
	book, err := NewDemoBook(Details{ID: "D001", Title: "Data Structures Demo", Year: 2010, Price: 12.5})
	require.NoError(t, err)

	assert.Equal(t, 0.0, book.Info().Price)
	assert.Equal(t, KindDemo, book.Kind())
}

func TestPaperBook_ReduceStock(t *testing.T) {
	book, err := NewPaperBook(Details{ID: "P001", Price: 45}, 10)
	require.NoError(t, err)

	assert.True(t, book.ReduceStock(3))
	assert.Equal(t, 7, book.Stock)

	assert.False(t, book.ReduceStock(8))
	assert.Equal(t, 7, book.Stock, "stock must not change on a failed reduction")

	book.RestoreStock(3)
	assert.Equal(t, 10, book.Stock)
}

func TestClone_DoesNotShareStock(t *testing.T) {
	book, err := NewPaperBook(Details{ID: "P001", Price: 45}, 10)
	require.NoError(t, err)

	clone := book.Clone().(*PaperBook)
	clone.Stock = 0

	assert.Equal(t, 10, book.Stock)
}

func TestAge(t *testing.T) {
	book, err := NewEBook(Details{ID: "E001", Year: 2020}, "PDF")
	require.NoError(t, err)

	assert.Equal(t, 5, Age(book, 2025))
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name string
		book Book
	}{
		{name: "nil interface", book: nil},
		{name: "typed nil paper book", book: (*PaperBook)(nil)},
		{name: "typed nil ebook", book: (*EBook)(nil)},
		{name: "typed nil demo book", book: (*DemoBook)(nil)},
		{name: "literal with negative stock", book: &PaperBook{Details: Details{ID: "P1"}, Stock: -1}},
		{name: "literal without id", book: &EBook{Details: Details{Price: 3}}},
		{name: "priced demo literal", book: &DemoBook{Details: Details{ID: "D1", Price: 9.99}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, Validate(tc.book), ErrInvalidBook)
		})
	}

	assert.NoError(t, Validate(&PaperBook{Details: Details{ID: "P1", Price: 5}, Stock: 0}))
}
