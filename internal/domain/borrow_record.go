package domain

import (
	"fmt"

	"github.com/smartlib/smartlib/internal/errors"
)

// BorrowRecord is one loan in the append-only lending log.
// It is closed exactly once, when the book comes back.
type BorrowRecord struct {
	ISBN       string `json:"isbn"`
	UserID     string `json:"user_id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	BorrowDate Date   `json:"borrow_date"`
	Returned   bool   `json:"returned"`
	Fine       int    `json:"fine"`
}

// NewBorrowRecord opens an active loan record.
func NewBorrowRecord(isbn, userID, name, phone string, on Date) *BorrowRecord {
	return &BorrowRecord{
		ISBN:       isbn,
		UserID:     userID,
		Name:       name,
		Phone:      phone,
		BorrowDate: on,
	}
}

// Active reports whether the loan is still open.
func (r *BorrowRecord) Active() bool {
	return !r.Returned
}

// Close marks the loan returned with the fine charged for it.
func (r *BorrowRecord) Close(fine int) {
	r.Returned = true
	r.Fine = fine
}

// borrowRecordJSON mirrors BorrowRecord with the date left as raw text so
// that an absent or null borrow_date can be told apart from a real one.
type borrowRecordJSON struct {
	ISBN       string  `json:"isbn"`
	UserID     string  `json:"user_id"`
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	BorrowDate *string `json:"borrow_date"`
	Returned   bool    `json:"returned"`
	Fine       int     `json:"fine"`
}

// UnmarshalJSON decodes a stored record. A borrow_date that is missing,
// null or not YYYY-MM-DD text fails with a DATE_PARSE error.
func (r *BorrowRecord) UnmarshalJSON(data []byte) error {
	var raw borrowRecordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.BorrowDate == nil {
		return errors.DateParse("null", fmt.Errorf("borrow record for ISBN %q has no borrow_date", raw.ISBN))
	}

	on, err := ParseDate(*raw.BorrowDate)
	if err != nil {
		return err
	}

	*r = BorrowRecord{
		ISBN:       raw.ISBN,
		UserID:     raw.UserID,
		Name:       raw.Name,
		Phone:      raw.Phone,
		BorrowDate: on,
		Returned:   raw.Returned,
		Fine:       raw.Fine,
	}
	return nil
}
