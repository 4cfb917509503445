package domain

import (
	"strconv"
	"time"

	"github.com/smartlib/smartlib/internal/errors"
)

// DateLayout is the textual form of a Date in both stores.
const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// Date is a calendar date with no time of day or zone.
// The zero value means "no date"; every constructed date, including
// 0001-01-01, is distinct from it.
type Date struct {
	t  time.Time // midnight UTC
	ok bool
}

// NewDate returns the date for the given year, month and day.
func NewDate(year int, month time.Month, dayOfMonth int) Date {
	return Date{t: time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC), ok: true}
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate parses YYYY-MM-DD text.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, errors.DateParse(s, err)
	}
	return Date{t: t, ok: true}, nil
}

// LenientDate parses YYYY-MM-DD text and returns nil instead of failing.
func LenientDate(s string) *Date {
	d, err := ParseDate(s)
	if err != nil {
		return nil
	}
	return &d
}

// IsZero reports whether d is the zero "no date" value.
func (d Date) IsZero() bool {
	return !d.ok
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// AddDays returns the date n days after d (before, for negative n).
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n), ok: d.ok}
}

// DaysSince returns the number of whole days from other to d.
// Both are midnight UTC, so the second difference is an exact multiple of a day.
func (d Date) DaysSince(other Date) int {
	return int((d.t.Unix() - other.t.Unix()) / secondsPerDay)
}

// Equal reports whether d and other are the same calendar date.
func (d Date) Equal(other Date) bool {
	return d.ok == other.ok && d.t.Equal(other.t)
}

// MarshalJSON renders the date as a quoted YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(d.String())), nil
}

// UnmarshalJSON parses a quoted YYYY-MM-DD string and fails on anything else.
func (d *Date) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return errors.DateParse(string(data), err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
