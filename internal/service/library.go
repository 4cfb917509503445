// Package service provides the lending controller: the single owner of the
// book inventory and the borrow log, and the only place business rules run.
package service

import (
	"log/slog"
	"slices"
	"time"

	"github.com/smartlib/smartlib/internal/domain"
	"github.com/smartlib/smartlib/internal/errors"
	"github.com/smartlib/smartlib/internal/id"
)

// BookRepository persists the whole book inventory.
type BookRepository interface {
	Load() ([]*domain.Book, error)
	Save(books []*domain.Book) error
	Quarantine() (string, error)
}

// RecordRepository persists the whole borrow log.
type RecordRepository interface {
	Load() ([]*domain.BorrowRecord, error)
	Save(records []*domain.BorrowRecord) error
	Quarantine() (string, error)
}

// Options tunes a LibrarySystem.
type Options struct {
	// Now supplies the current time; "today" is its calendar date. Defaults to time.Now.
	Now func() time.Time
	// StrictLoad makes NewLibrarySystem fail on an unreadable store instead
	// of starting with that store empty.
	StrictLoad bool
}

// LibrarySystem mediates every read and write of books and borrow records.
// It is not safe for concurrent use; callers invoke one operation at a time.
type LibrarySystem struct {
	books   []*domain.Book
	records []*domain.BorrowRecord

	bookStore   BookRepository
	recordStore RecordRepository

	logger       *slog.Logger
	now          func() time.Time
	loadFailures []error
}

// NewLibrarySystem loads both stores and returns a ready controller.
//
// A missing store file is an empty collection. A store that cannot be read
// or parsed is copied aside to <path>.corrupt, logged, and treated as empty;
// the failure stays available from LoadFailures. With Options.StrictLoad the
// STORE_LOAD error is returned instead.
func NewLibrarySystem(books BookRepository, records RecordRepository, logger *slog.Logger, opts Options) (*LibrarySystem, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &LibrarySystem{
		bookStore:   books,
		recordStore: records,
		logger:      logger,
		now:         opts.Now,
	}

	loadedBooks, err := books.Load()
	if err != nil {
		if opts.StrictLoad {
			return nil, err
		}
		s.recoverLoad("books", books.Quarantine, err)
	}
	s.books = slices.DeleteFunc(loadedBooks, func(b *domain.Book) bool { return b == nil })

	loadedRecords, err := records.Load()
	if err != nil {
		if opts.StrictLoad {
			return nil, err
		}
		s.recoverLoad("borrow records", records.Quarantine, err)
	}
	s.records = slices.DeleteFunc(loadedRecords, func(r *domain.BorrowRecord) bool { return r == nil })

	s.logger.Info("library loaded",
		"books", len(s.books),
		"borrow_records", len(s.records),
		"load_failures", len(s.loadFailures),
	)

	return s, nil
}

func (s *LibrarySystem) recoverLoad(storeName string, quarantine func() (string, error), loadErr error) {
	s.loadFailures = append(s.loadFailures, loadErr)

	kept, err := quarantine()
	if err != nil {
		s.logger.Warn("store unreadable, starting empty; could not keep a copy",
			"store", storeName,
			"error", loadErr,
			"copy_error", err,
		)
		return
	}

	s.logger.Warn("store unreadable, starting empty",
		"store", storeName,
		"error", loadErr,
		"kept_copy", kept,
	)
}

// LoadFailures returns the STORE_LOAD errors swallowed at startup.
func (s *LibrarySystem) LoadFailures() []error {
	return slices.Clone(s.loadFailures)
}

// today returns the current calendar date.
func (s *LibrarySystem) today() domain.Date {
	return domain.DateOf(s.now())
}

// Books returns copies of all books in insertion order.
func (s *LibrarySystem) Books() []*domain.Book {
	out := make([]*domain.Book, len(s.books))
	for i, b := range s.books {
		out[i] = b.Clone()
	}
	return out
}

// BorrowRecords returns copies of the whole borrow log, oldest first.
func (s *LibrarySystem) BorrowRecords() []domain.BorrowRecord {
	out := make([]domain.BorrowRecord, len(s.records))
	for i, r := range s.records {
		out[i] = *r
	}
	return out
}

// History returns the borrow records for one ISBN, oldest first.
func (s *LibrarySystem) History(isbn string) []domain.BorrowRecord {
	var out []domain.BorrowRecord
	for _, r := range s.records {
		if r.ISBN == isbn {
			out = append(out, *r)
		}
	}
	return out
}

// FindBook returns a copy of the book with the given ISBN.
func (s *LibrarySystem) FindBook(isbn string) (*domain.Book, error) {
	b, _ := s.findBook(isbn)
	if b == nil {
		return nil, errNotFound(isbn)
	}
	return b.Clone(), nil
}

// ActiveRecord returns the newest open borrow record for isbn.
func (s *LibrarySystem) ActiveRecord(isbn string) (*domain.BorrowRecord, error) {
	r := s.findActiveRecord(isbn)
	if r == nil {
		return nil, errors.NotFoundf("no open loan for ISBN %s", isbn)
	}
	c := *r
	return &c, nil
}

// SuggestUserID proposes an integer-like user id that no borrow record uses yet.
func (s *LibrarySystem) SuggestUserID() (string, error) {
	used := make(map[string]bool, len(s.records))
	for _, r := range s.records {
		used[r.UserID] = true
	}
	return id.SuggestUserID(func(candidate string) bool { return used[candidate] })
}

func (s *LibrarySystem) findBook(isbn string) (*domain.Book, int) {
	for i, b := range s.books {
		if b.ISBN == isbn {
			return b, i
		}
	}
	return nil, -1
}

// findActiveRecord scans the log from the newest entry backwards, so a
// re-borrowed ISBN resolves to its current loan and never an older one.
func (s *LibrarySystem) findActiveRecord(isbn string) *domain.BorrowRecord {
	for i := len(s.records) - 1; i >= 0; i-- {
		r := s.records[i]
		if r.ISBN == isbn && r.Active() {
			return r
		}
	}
	return nil
}

// saveBooks writes the full book snapshot.
func (s *LibrarySystem) saveBooks() error {
	return s.bookStore.Save(s.books)
}

// saveAll writes both snapshots. Both writes are attempted even if the
// first fails; the stores are not updated as one transaction.
func (s *LibrarySystem) saveAll() error {
	booksErr := s.bookStore.Save(s.books)
	recordsErr := s.recordStore.Save(s.records)
	return errors.Join(booksErr, recordsErr)
}

func errNotFound(isbn string) error {
	return errors.NotFoundf("Book not found: no book with ISBN %s", isbn)
}
