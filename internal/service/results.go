package service

import (
	"fmt"

	"github.com/smartlib/smartlib/internal/domain"
)

// AddResult describes a book added to the inventory.
type AddResult struct {
	Book    *domain.Book
	Message string
}

func (r *AddResult) String() string { return r.Message }

// DeleteResult describes a book removed from the inventory.
type DeleteResult struct {
	Book    *domain.Book
	Message string
}

func (r *DeleteResult) String() string { return r.Message }

// BorrowResult describes a new loan.
type BorrowResult struct {
	Book    *domain.Book
	Record  domain.BorrowRecord
	DueDate domain.Date
	Message string
}

func (r *BorrowResult) String() string { return r.Message }

// ReturnStatus distinguishes on-time returns from late ones.
type ReturnStatus int

const (
	ReturnedOnTime ReturnStatus = iota
	ReturnedLate
)

func (s ReturnStatus) String() string {
	switch s {
	case ReturnedOnTime:
		return "on-time"
	case ReturnedLate:
		return "late"
	default:
		return fmt.Sprintf("ReturnStatus(%d)", int(s))
	}
}

// ReturnResult describes a closed loan and what it cost.
type ReturnResult struct {
	Book        *domain.Book
	Record      *domain.BorrowRecord // nil when the log had no open loan for the book
	Status      ReturnStatus
	DaysOverdue int
	Fine        int
	Message     string
}

// Late reports whether a fine was charged.
func (r *ReturnResult) Late() bool { return r.Status == ReturnedLate }

func (r *ReturnResult) String() string { return r.Message }

// Outcome collapses an operation's result and error into the (ok, message)
// pair a presentation layer shows to the user.
func Outcome(result fmt.Stringer, err error) (bool, string) {
	if err != nil {
		return false, err.Error()
	}
	return true, result.String()
}

// Stats summarises the inventory.
type Stats struct {
	Total     int
	Available int
	Borrowed  int
}

// Loan pairs an unavailable book with its projected status.
type Loan struct {
	Book   *domain.Book
	Status domain.LoanStatus
}
