package service

import (
	"fmt"
	"slices"
	"strings"

	"github.com/smartlib/smartlib/internal/domain"
	"github.com/smartlib/smartlib/internal/errors"
	"github.com/smartlib/smartlib/internal/normalize"
)

// AddBook appends an available book and persists the book store.
// ISBNs are compared exactly; a duplicate fails with DUPLICATE_ISBN.
func (s *LibrarySystem) AddBook(title, author, isbn string) (*AddResult, error) {
	if existing, _ := s.findBook(isbn); existing != nil {
		return nil, errors.DuplicateISBNf("Duplicate ISBN: %s is already %q", isbn, existing.Title)
	}

	book := domain.NewBook(title, author, isbn)
	s.books = append(s.books, book)

	if err := s.saveBooks(); err != nil {
		return nil, err
	}

	s.logger.Info("book added", "isbn", isbn, "title", title)

	return &AddResult{
		Book:    book.Clone(),
		Message: fmt.Sprintf("Book added: %q", title),
	}, nil
}

// DeleteBook removes an available book and persists the book store.
// A borrowed book cannot be deleted. The borrow log is left untouched.
func (s *LibrarySystem) DeleteBook(isbn string) (*DeleteResult, error) {
	book, idx := s.findBook(isbn)
	if book == nil {
		return nil, errNotFound(isbn)
	}
	if !book.IsAvailable {
		return nil, errors.BorrowedBookConflictf("Cannot delete %q: it is borrowed by %s", book.Title, book.Borrower())
	}

	s.books = slices.Delete(s.books, idx, idx+1)

	if err := s.saveBooks(); err != nil {
		return nil, err
	}

	s.logger.Info("book deleted", "isbn", isbn, "title", book.Title)

	return &DeleteResult{
		Book:    book,
		Message: fmt.Sprintf("Book deleted: %q", book.Title),
	}, nil
}

// Search returns copies of the books whose title, author or ISBN contains
// term ignoring case, so "x" finds an ISBN ending in an X check digit.
// Insertion order is kept. An empty term returns every book.
func (s *LibrarySystem) Search(term string) []*domain.Book {
	term = strings.TrimSpace(term)

	var out []*domain.Book
	for _, b := range s.books {
		if term == "" ||
			normalize.Contains(b.Title, term) ||
			normalize.Contains(b.Author, term) ||
			normalize.Contains(b.ISBN, term) {
			out = append(out, b.Clone())
		}
	}
	return out
}

// Stats counts the inventory by availability.
func (s *LibrarySystem) Stats() Stats {
	st := Stats{Total: len(s.books)}
	for _, b := range s.books {
		if b.IsAvailable {
			st.Available++
		} else {
			st.Borrowed++
		}
	}
	return st
}
