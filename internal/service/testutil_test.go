package service

import (
	stderrors "errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/smartlib/smartlib/internal/domain"
	"github.com/smartlib/smartlib/internal/errors"
	"github.com/smartlib/smartlib/internal/store"
)

// clock is a settable time source for the controller.
type clock struct {
	now time.Time
}

func newClock(year int, month time.Month, day int) *clock {
	return &clock{now: time.Date(year, month, day, 10, 30, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time { return c.now }

func (c *clock) advanceDays(n int) { c.now = c.now.AddDate(0, 0, n) }

// testLibrary bundles a controller with the file stores behind it.
type testLibrary struct {
	*LibrarySystem
	clock   *clock
	books   *store.BookStore
	records *store.RecordStore
}

func setupTestLibrary(t *testing.T) *testLibrary {
	t.Helper()
	dir := t.TempDir()
	return openTestLibrary(t,
		filepath.Join(dir, store.DefaultBooksPath),
		filepath.Join(dir, store.DefaultRecordsPath),
		newClock(2025, time.January, 1),
	)
}

func openTestLibrary(t *testing.T, booksPath, recordsPath string, c *clock) *testLibrary {
	t.Helper()

	books := store.NewBookStore(booksPath, nil)
	records := store.NewRecordStore(recordsPath, nil)

	lib, err := NewLibrarySystem(books, records, nil, Options{Now: c.Now})
	require.NoError(t, err)

	return &testLibrary{LibrarySystem: lib, clock: c, books: books, records: records}
}

// reopen loads a fresh controller from the same files.
func (tl *testLibrary) reopen(t *testing.T) *testLibrary {
	t.Helper()
	return openTestLibrary(t, tl.books.Path(), tl.records.Path(), tl.clock)
}

func (tl *testLibrary) mustAdd(t *testing.T, title, author, isbn string) {
	t.Helper()
	_, err := tl.AddBook(title, author, isbn)
	require.NoError(t, err)
}

func (tl *testLibrary) mustBorrow(t *testing.T, isbn string) {
	t.Helper()
	_, err := tl.BorrowBook(isbn, "100200", "Mona Adel", "01012345678")
	require.NoError(t, err)
}

// memBooks is an in-memory BookRepository with injectable failures.
type memBooks struct {
	loaded      []*domain.Book
	loadErr     error
	saveErr     error
	saved       [][]*domain.Book
	quarantined bool
}

func (m *memBooks) Load() ([]*domain.Book, error) { return m.loaded, m.loadErr }

func (m *memBooks) Save(books []*domain.Book) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	snapshot := make([]*domain.Book, len(books))
	for i, b := range books {
		snapshot[i] = b.Clone()
	}
	m.saved = append(m.saved, snapshot)
	return nil
}

func (m *memBooks) Quarantine() (string, error) {
	m.quarantined = true
	return "books.json.corrupt", nil
}

// memRecords is an in-memory RecordRepository with injectable failures.
type memRecords struct {
	loaded      []*domain.BorrowRecord
	loadErr     error
	saveErr     error
	saved       [][]domain.BorrowRecord
	quarantined bool
}

func (m *memRecords) Load() ([]*domain.BorrowRecord, error) { return m.loaded, m.loadErr }

func (m *memRecords) Save(records []*domain.BorrowRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	snapshot := make([]domain.BorrowRecord, len(records))
	for i, r := range records {
		snapshot[i] = *r
	}
	m.saved = append(m.saved, snapshot)
	return nil
}

func (m *memRecords) Quarantine() (string, error) {
	m.quarantined = true
	return "", stderrors.New("nothing to copy")
}

func saveFailure(msg string) error {
	return errors.Wrap(stderrors.New(msg), errors.CodeStoreSave, "write store")
}
