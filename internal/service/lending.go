package service

import (
	"fmt"

	"github.com/smartlib/smartlib/internal/domain"
	"github.com/smartlib/smartlib/internal/errors"
)

// BorrowBook lends an available book to a member. It marks the book
// borrowed today, appends an active borrow record, and persists both stores.
// The caller validates the member fields; see BorrowRequest.
func (s *LibrarySystem) BorrowBook(isbn, userID, name, phone string) (*BorrowResult, error) {
	book, _ := s.findBook(isbn)
	if book == nil {
		return nil, errNotFound(isbn)
	}
	if !book.IsAvailable {
		return nil, errors.AlreadyBorrowedf("Already borrowed: %q is out with %s", book.Title, book.Borrower())
	}

	today := s.today()
	due := domain.DueDate(today)

	book.MarkBorrowed(name, today)
	record := domain.NewBorrowRecord(isbn, userID, name, phone, today)
	s.records = append(s.records, record)

	if err := s.saveAll(); err != nil {
		return nil, err
	}

	s.logger.Info("book borrowed",
		"isbn", isbn,
		"user_id", userID,
		"due", due.String(),
	)

	return &BorrowResult{
		Book:    book.Clone(),
		Record:  *record,
		DueDate: due,
		Message: fmt.Sprintf("Borrowed: %q. Return by: %s", book.Title, due),
	}, nil
}

// ReturnBook puts a borrowed book back on the shelf and charges the fine for
// any days beyond the loan period. It closes the newest active borrow record
// for the ISBN and persists both stores.
func (s *LibrarySystem) ReturnBook(isbn string) (*ReturnResult, error) {
	book, _ := s.findBook(isbn)
	if book == nil {
		return nil, errNotFound(isbn)
	}
	if book.IsAvailable {
		return nil, errors.NotBorrowedf("Not borrowed: %q is on the shelf", book.Title)
	}

	today := s.today()

	var overdue, fine int
	if book.BorrowDate != nil {
		overdue = domain.DaysOverdue(*book.BorrowDate, today)
		fine = overdue * domain.FineRatePerDay
	} else {
		s.logger.Warn("borrowed book has no borrow date, returning without fine", "isbn", isbn)
	}

	book.MarkReturned()

	var closed *domain.BorrowRecord
	if record := s.findActiveRecord(isbn); record != nil {
		record.Close(fine)
		c := *record
		closed = &c
	} else {
		s.logger.Warn("no open borrow record for returned book", "isbn", isbn)
	}

	if err := s.saveAll(); err != nil {
		return nil, err
	}

	result := &ReturnResult{
		Book:        book.Clone(),
		Record:      closed,
		Status:      ReturnedOnTime,
		DaysOverdue: overdue,
		Fine:        fine,
		Message:     fmt.Sprintf("Returned: %q on time", book.Title),
	}
	if fine > 0 {
		result.Status = ReturnedLate
		result.Message = fmt.Sprintf("Late return: %q is %d days overdue. Fine: %d", book.Title, overdue, fine)
	}

	s.logger.Info("book returned",
		"isbn", isbn,
		"status", result.Status.String(),
		"fine", fine,
	)

	return result, nil
}

// LoanStatus projects the due date and fine of a borrowed book as of today.
// It changes nothing; the charged fine is decided by ReturnBook.
func (s *LibrarySystem) LoanStatus(isbn string) (domain.LoanStatus, error) {
	book, _ := s.findBook(isbn)
	if book == nil {
		return domain.LoanStatus{}, errNotFound(isbn)
	}
	if book.IsAvailable {
		return domain.LoanStatus{}, errors.NotBorrowedf("Not borrowed: %q is on the shelf", book.Title)
	}
	if book.BorrowDate == nil {
		return domain.LoanStatus{}, errors.Internal(fmt.Sprintf("borrowed book %s has no borrow date", isbn))
	}
	return domain.ProjectLoan(*book.BorrowDate, s.today()), nil
}

// Loans returns every borrowed book with its projected status, in inventory order.
// Books whose borrow date was lost are skipped.
func (s *LibrarySystem) Loans() []Loan {
	today := s.today()

	var out []Loan
	for _, b := range s.books {
		if b.IsAvailable || b.BorrowDate == nil {
			continue
		}
		out = append(out, Loan{
			Book:   b.Clone(),
			Status: domain.ProjectLoan(*b.BorrowDate, today),
		})
	}
	return out
}

// Overdue returns the loans whose due date has passed.
func (s *LibrarySystem) Overdue() []Loan {
	var out []Loan
	for _, l := range s.Loans() {
		if l.Status.Late() {
			out = append(out, l)
		}
	}
	return out
}
