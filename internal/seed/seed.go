// Package seed stocks a fresh inventory with the demo catalogue.
package seed

import (
	"context"

	"github.com/rl1809/quantum-bookstore/internal/core/domain"
)

type Adder interface {
	Add(ctx context.Context, book domain.Book) error
}

func Books() ([]domain.Book, error) {
	paper, err := domain.NewPaperBook(domain.Details{
		ID: "P001", Title: "Java Basics", Author: "John Smith", Year: 2018, Price: 45.0,
	}, 10)
	if err != nil {
		return nil, err
	}
	ebook, err := domain.NewEBook(domain.Details{
		ID: "E001", Title: "Python for All", Author: "Alice Doe", Year: 2020, Price: 30.0,
	}, "PDF")
	if err != nil {
		return nil, err
	}
	demo, err := domain.NewDemoBook(domain.Details{
		ID: "D001", Title: "Data Structures Demo", Author: "James Bond", Year: 2010,
	})
	if err != nil {
		return nil, err
	}
	return []domain.Book{paper, ebook, demo}, nil
}

func Load(ctx context.Context, store Adder) error {
	books, err := Books()
	if err != nil {
		return err
	}
	for _, b := range books {
		if err := store.Add(ctx, b); err != nil {
			return err
		}
	}
	return nil
}
