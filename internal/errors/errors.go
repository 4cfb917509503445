// Package errors provides the coded domain errors returned by the lending core.
//
// Usage:
//
//	// In the controller - return typed errors
//	if book != nil {
//	    return errors.DuplicateISBNf("a book with ISBN %s already exists", isbn)
//	}
//
//	// In the presentation layer - check with errors.Is
//	if errors.Is(err, errors.ErrAlreadyBorrowed) {
//	    fmt.Println(err.Error())
//	    return
//	}
//
//	// Or use the Code directly for switch statements
//	var domainErr *errors.Error
//	if errors.As(err, &domainErr) {
//	    switch domainErr.Code {
//	    case errors.CodeNotFound:
//	        ...
//	    }
//	}
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the application.
const (
	CodeDuplicateISBN        Code = "DUPLICATE_ISBN"
	CodeNotFound             Code = "NOT_FOUND"
	CodeAlreadyBorrowed      Code = "ALREADY_BORROWED"
	CodeNotBorrowed          Code = "NOT_BORROWED"
	CodeBorrowedBookConflict Code = "BORROWED_BOOK_CONFLICT"
	CodeDateParse            Code = "DATE_PARSE"
	CodeStoreLoad            Code = "STORE_LOAD"
	CodeStoreSave            Code = "STORE_SAVE"
	CodeValidation           Code = "VALIDATION"
	CodeInternal             Code = "INTERNAL"
)

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// WithDetails returns a new error with additional details.
func (e *Error) WithDetails(details any) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		cause:   e.cause,
	}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		cause:   err,
	}
}

// Sentinel errors for use with errors.Is().
var (
	ErrDuplicateISBN        = &Error{Code: CodeDuplicateISBN, Message: "duplicate isbn"}
	ErrNotFound             = &Error{Code: CodeNotFound, Message: "not found"}
	ErrAlreadyBorrowed      = &Error{Code: CodeAlreadyBorrowed, Message: "already borrowed"}
	ErrNotBorrowed          = &Error{Code: CodeNotBorrowed, Message: "not borrowed"}
	ErrBorrowedBookConflict = &Error{Code: CodeBorrowedBookConflict, Message: "book is borrowed"}
	ErrDateParse            = &Error{Code: CodeDateParse, Message: "invalid date"}
	ErrStoreLoad            = &Error{Code: CodeStoreLoad, Message: "store load failed"}
	ErrStoreSave            = &Error{Code: CodeStoreSave, Message: "store save failed"}
	ErrValidation           = &Error{Code: CodeValidation, Message: "validation error"}
	ErrInternal             = &Error{Code: CodeInternal, Message: "internal error"}
)

// Constructor functions for creating errors with custom messages.

// DuplicateISBNf creates a duplicate ISBN error with formatted message.
func DuplicateISBNf(format string, args ...any) *Error {
	return &Error{Code: CodeDuplicateISBN, Message: fmt.Sprintf(format, args...)}
}

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// NotFoundf creates a not found error with formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// AlreadyBorrowedf creates an already borrowed error with formatted message.
func AlreadyBorrowedf(format string, args ...any) *Error {
	return &Error{Code: CodeAlreadyBorrowed, Message: fmt.Sprintf(format, args...)}
}

// NotBorrowedf creates a not borrowed error with formatted message.
func NotBorrowedf(format string, args ...any) *Error {
	return &Error{Code: CodeNotBorrowed, Message: fmt.Sprintf(format, args...)}
}

// BorrowedBookConflictf creates a conflict error for operations that need an available book.
func BorrowedBookConflictf(format string, args ...any) *Error {
	return &Error{Code: CodeBorrowedBookConflict, Message: fmt.Sprintf(format, args...)}
}

// DateParse creates a date parse error wrapping the parser failure.
func DateParse(value string, err error) *Error {
	return &Error{Code: CodeDateParse, Message: fmt.Sprintf("invalid date %q (want YYYY-MM-DD)", value), cause: err}
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// ValidationWithDetails creates a validation error with details.
func ValidationWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

// Internal creates an internal error.
func Internal(msg string) *Error {
	return &Error{Code: CodeInternal, Message: msg}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// Wrapf wraps an error with a code and formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: err}
}

// CodeOf returns the code carried by err, or CodeInternal for foreign errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
