package port

import "github.com/rl1809/quantum-bookstore/internal/core/domain"

// BookRepository holds books keyed by id. Implementations need not be safe
// for concurrent use; the inventory service serializes access.
type BookRepository interface {
	// Save inserts or overwrites the book stored under its id
	Save(book domain.Book)

	// Get returns the stored book itself, not a copy
	Get(id string) (domain.Book, bool)

	// Delete removes the book with the given id, if any
	Delete(id string)

	// All returns every stored book in no particular order
	All() []domain.Book
}
