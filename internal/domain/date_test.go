package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartlib/smartlib/internal/errors"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2024, time.February, 29), d)
	assert.Equal(t, "2024-02-29", d.String())
}

func TestParseDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "2024-13-01", "29/02/2024", "2024-02-30", "yesterday"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseDate(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrDateParse))
		})
	}
}

func TestLenientDate(t *testing.T) {
	assert.Nil(t, LenientDate("not a date"))

	d := LenientDate("2025-01-05")
	require.NotNil(t, d)
	assert.Equal(t, NewDate(2025, time.January, 5), *d)
}

func TestDateOf_UsesLocalCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	late := time.Date(2025, time.March, 1, 23, 30, 0, 0, loc)

	assert.Equal(t, NewDate(2025, time.March, 1), DateOf(late))
}

func TestDate_DaysSince(t *testing.T) {
	start := NewDate(2025, time.February, 25)

	assert.Equal(t, 0, start.DaysSince(start))
	assert.Equal(t, 4, NewDate(2025, time.March, 1).DaysSince(start))
	assert.Equal(t, -4, start.DaysSince(NewDate(2025, time.March, 1)))
	assert.Equal(t, 365, NewDate(2026, time.February, 25).DaysSince(start))
}

func TestDate_DaysSinceAcrossCenturies(t *testing.T) {
	start := NewDate(1700, time.January, 1)
	end := NewDate(2100, time.January, 1)

	// One full Gregorian cycle is 146097 days.
	assert.Equal(t, 146097, end.DaysSince(start))
	assert.Equal(t, -146097, start.DaysSince(end))
	assert.Equal(t, 3652058, NewDate(9999, time.December, 31).DaysSince(NewDate(1, time.January, 1)))
}

func TestDate_AddDays(t *testing.T) {
	assert.Equal(t, NewDate(2025, time.January, 1), NewDate(2024, time.December, 25).AddDays(7))
	assert.Equal(t, NewDate(2024, time.December, 25), NewDate(2025, time.January, 1).AddDays(-7))
}

func TestDate_JSON(t *testing.T) {
	d := NewDate(2025, time.June, 9)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-06-09"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Equal(d))
}

func TestDate_JSONRejectsGarbage(t *testing.T) {
	tests := []string{`"09/06/2025"`, `20250609`, `""`}

	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			var d Date
			assert.Error(t, json.Unmarshal([]byte(in), &d))
		})
	}
}

func TestDate_ZeroMarshalsNull(t *testing.T) {
	data, err := json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
	assert.Equal(t, "", Date{}.String())
}

func TestDate_YearOneIsNotZero(t *testing.T) {
	d, err := ParseDate("0001-01-01")
	require.NoError(t, err)

	assert.False(t, d.IsZero())
	assert.True(t, Date{}.IsZero())
	assert.False(t, d.Equal(Date{}))
	assert.False(t, d.AddDays(1).IsZero())

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"0001-01-01"`, string(data))
}
