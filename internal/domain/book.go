package domain

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Book is one title in the inventory. ISBN is its identity.
//
// Invariant: IsAvailable is false exactly when BorrowDate and BorrowMan are set.
type Book struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	ISBN        string  `json:"isbn"`
	IsAvailable bool    `json:"is_available"`
	BorrowMan   *string `json:"borrow_man"`
	BorrowDate  *Date   `json:"borrow_date"`
}

// NewBook creates an available book.
func NewBook(title, author, isbn string) *Book {
	return &Book{
		Title:       title,
		Author:      author,
		ISBN:        isbn,
		IsAvailable: true,
	}
}

// Borrower returns the current borrower's name, or "" when the book is on the shelf.
func (b *Book) Borrower() string {
	if b.BorrowMan == nil {
		return ""
	}
	return *b.BorrowMan
}

// MarkBorrowed records a loan to name starting on the given date.
func (b *Book) MarkBorrowed(name string, on Date) {
	b.IsAvailable = false
	b.BorrowMan = &name
	b.BorrowDate = &on
}

// MarkReturned puts the book back on the shelf.
func (b *Book) MarkReturned() {
	b.IsAvailable = true
	b.BorrowMan = nil
	b.BorrowDate = nil
}

// Clone returns a deep copy of b.
func (b *Book) Clone() *Book {
	c := *b
	if b.BorrowMan != nil {
		name := *b.BorrowMan
		c.BorrowMan = &name
	}
	if b.BorrowDate != nil {
		d := *b.BorrowDate
		c.BorrowDate = &d
	}
	return &c
}

// bookJSON mirrors Book with the loosely typed fields a store file may hold.
type bookJSON struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	ISBN        string  `json:"isbn"`
	IsAvailable *bool   `json:"is_available"`
	BorrowMan   *string `json:"borrow_man"`
	BorrowDate  *string `json:"borrow_date"`
}

// UnmarshalJSON decodes a stored book. A borrow_date that is not valid
// YYYY-MM-DD text becomes "no date" rather than an error, and a missing
// is_available defaults to true.
func (b *Book) UnmarshalJSON(data []byte) error {
	var raw bookJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	b.Title = raw.Title
	b.Author = raw.Author
	b.ISBN = raw.ISBN
	b.IsAvailable = raw.IsAvailable == nil || *raw.IsAvailable
	b.BorrowMan = raw.BorrowMan
	b.BorrowDate = nil
	if raw.BorrowDate != nil {
		b.BorrowDate = LenientDate(*raw.BorrowDate)
	}
	return nil
}
