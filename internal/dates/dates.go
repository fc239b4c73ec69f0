// Package dates handles the calendar identifiers that scope lists:
// ISO dates for daily tasks and year-month strings for monthly goals.
package dates

import (
	"fmt"
	"time"
)

const (
	// DayLayout is the identifier format for daily task groups.
	DayLayout = "2006-01-02"

	// MonthLayout is the identifier format for monthly goal groups.
	MonthLayout = "2006-01"

	// ProjectionDays is how far forward the bulk projector copies a
	// day's tasks.
	ProjectionDays = 30
)

// ParseDay validates a daily identifier and returns its calendar day.
func ParseDay(identifier string) (time.Time, error) {
	t, err := time.Parse(DayLayout, identifier)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day identifier %q: %w", identifier, err)
	}
	return t, nil
}

// ParseMonth validates a monthly identifier.
func ParseMonth(identifier string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, identifier)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month identifier %q: %w", identifier, err)
	}
	return t, nil
}

// Window returns the n day identifiers strictly after anchor, in order
// (anchor+1 .. anchor+n). Offsets are calendar days, so the window walks
// correctly across month and year boundaries and through leap days.
func Window(anchor string, n int) ([]string, error) {
	start, err := ParseDay(anchor)
	if err != nil {
		return nil, err
	}
	days := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		days = append(days, start.AddDate(0, 0, i).Format(DayLayout))
	}
	return days, nil
}
