package store

import (
	"log/slog"

	"github.com/smartlib/smartlib/internal/domain"
)

// DefaultBooksPath is the book store file used when none is configured.
const DefaultBooksPath = "library_data.json"

// BookStore persists the book inventory.
type BookStore struct {
	*Entity[*domain.Book]
}

// NewBookStore creates a book store backed by path.
func NewBookStore(path string, logger *slog.Logger) *BookStore {
	if path == "" {
		path = DefaultBooksPath
	}
	return &BookStore{Entity: NewEntity[*domain.Book](path, "books", logger)}
}
