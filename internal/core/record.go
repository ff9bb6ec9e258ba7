package core

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the canonical calendar-date form used everywhere a date is
// stored or compared. It has no time-of-day component.
const DateLayout = "2006-01-02"

type (
	// Record is a single expense entry. Price carries the numeric value
	// exactly as supplied at the last successful add or update; rounding to
	// two decimals happens only when formatting for display.
	Record struct {
		ID    string  `json:"id"`
		Name  string  `json:"name"`
		Price float64 `json:"price"`
		Date  string  `json:"date"`
	}
)

var (
	ErrEmptyName    = errors.New("empty name")
	ErrInvalidPrice = errors.New("invalid price")
	ErrInvalidDate  = errors.New("invalid date")
)

// Validate checks a record against the creation/update rules: non-empty
// name, price strictly greater than zero, canonical YYYY-MM-DD date.
func (r Record) Validate() error {
	if len(strings.TrimSpace(r.Name)) == 0 {
		return ErrEmptyName
	}
	if r.Price <= 0 {
		return ErrInvalidPrice
	}
	return ValidateDate(r.Date)
}

// ValidateDate reports whether s is a calendar date in canonical form.
// Non-canonical spellings of a valid date (e.g. "2024-1-1") are rejected so
// that date-filter string equality stays meaningful.
func ValidateDate(s string) error {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return ErrInvalidDate
	}
	if t.Format(DateLayout) != s {
		return ErrInvalidDate
	}
	return nil
}

// Today returns the current calendar date in the local timezone, in
// canonical form. Used as the form default.
func Today() string {
	return time.Now().Format(DateLayout)
}

// DateLabel renders a stored date for display: "Today", "Yesterday", or
// dd.MM.yyyy. Unparseable input is returned as-is.
func DateLabel(date string, now time.Time) string {
	t, err := time.ParseInLocation(DateLayout, date, now.Location())
	if err != nil {
		return date
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	switch {
	case t.Equal(today):
		return "Today"
	case t.Equal(today.AddDate(0, 0, -1)):
		return "Yesterday"
	default:
		return t.Format("02.01.2006")
	}
}
