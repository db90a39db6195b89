package domain

import (
	"errors"
	"fmt"
	"time"
)

// githubDateLayout is the date format understood by the GitHub search qualifiers.
const githubDateLayout = "2006-01-02"

// ErrInvalidMonth is returned when a month outside 1-12 is requested.
var ErrInvalidMonth = errors.New("month must be between 1 and 12")

// DateRange is an inclusive calendar month.
type DateRange struct {
	FirstDay time.Time
	Filter   string
}

// NewDateRange resolves the given month of the given year.
func NewDateRange(month, year int) (DateRange, error) {
	if month < 1 || month > 12 {
		return DateRange{}, fmt.Errorf("%w: got %d", ErrInvalidMonth, month)
	}
	if year < 1 {
		return DateRange{}, fmt.Errorf("year must be positive: got %d", year)
	}
	firstDay := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	// Day 0 of the next month normalizes to the last day of this one.
	lastDay := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
	return DateRange{
		FirstDay: firstDay,
		Filter:   fmt.Sprintf("%s..%s", firstDay.Format(githubDateLayout), lastDay.Format(githubDateLayout)),
	}, nil
}

// FilterForMonth returns the search range string for the month, e.g. "2020-02-01..2020-02-29".
func FilterForMonth(month, year int) (string, error) {
	dr, err := NewDateRange(month, year)
	if err != nil {
		return "", err
	}
	return dr.Filter, nil
}
