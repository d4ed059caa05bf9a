package domain

import (
	"fmt"
	"time"
)

// EventDate is a validated reservation date, stored as a calendar day (UTC midnight)
type EventDate struct {
	date time.Time
}

// NewEventDate validates date against now: it must not be in the past and must fall
// between MinLeadDays and MaxLeadDays calendar days ahead.
func NewEventDate(date, now time.Time) (EventDate, error) {
	if date.IsZero() {
		return EventDate{}, &EventDateError{Reason: EventDateNull}
	}

	day := truncateToDay(date)
	today := truncateToDay(now)

	if day.Before(today) {
		return EventDate{}, &EventDateError{Reason: EventDatePast}
	}

	days := daysBetween(today, day)
	if days < MinLeadDays {
		return EventDate{}, &EventDateError{Reason: EventDateTooSoon}
	}
	if days > MaxLeadDays {
		return EventDate{}, &EventDateError{Reason: EventDateTooFar}
	}

	return EventDate{date: day}, nil
}

// RestoreEventDate rebuilds a stored EventDate without lead-time validation
func RestoreEventDate(date time.Time) EventDate {
	return EventDate{date: truncateToDay(date)}
}

// Time returns the date at UTC midnight
func (d EventDate) Time() time.Time {
	return d.date
}

// IsZero returns true for an unset EventDate
func (d EventDate) IsZero() bool {
	return d.date.IsZero()
}

// Equal compares calendar days
func (d EventDate) Equal(other EventDate) bool {
	return d.date.Equal(other.date)
}

// SameDay returns true if t falls on the same calendar day
func (d EventDate) SameDay(t time.Time) bool {
	return d.date.Equal(truncateToDay(t))
}

// String returns the ISO form YYYY-MM-DD
func (d EventDate) String() string {
	return d.date.Format(DateFormat)
}

// Format returns the locale form DD/MM/YYYY
func (d EventDate) Format() string {
	return d.date.Format(LocaleDateFormat)
}

// ParseDate accepts either the ISO (YYYY-MM-DD) or the locale (DD/MM/YYYY) form
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateFormat, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(LocaleDateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: expected %s or %s", s, DateFormat, LocaleDateFormat)
	}
	return t, nil
}

// truncateToDay keeps the calendar day of t in its own location and moves it to UTC midnight
func truncateToDay(t time.Time) time.Time {
	y, m, day := t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
