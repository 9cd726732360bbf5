package tripkit

import (
	"errors"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// ErrInvalidRange is returned when an end date precedes its start date.
// No mutation happens on this path.
var ErrInvalidRange = errors.New("tripkit: end date precedes start date")

// ErrShrinkDeclined is returned when a destructive range shrink was not
// confirmed. It marks a no-op outcome, not a failure: the trip is left
// exactly as it was.
var ErrShrinkDeclined = errors.New("tripkit: destructive shrink declined")

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("tripkit: bad date %q: %w", s, err)
	}
	return t, nil
}

// addDays returns the ISO date n days after date.
func addDays(date string, n int) (string, error) {
	t, err := parseDate(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(dateLayout), nil
}

func weekdayName(date string) string {
	t, err := parseDate(date)
	if err != nil {
		return ""
	}
	return t.Weekday().String()
}

func dayOfMonth(date string) int {
	t, err := parseDate(date)
	if err != nil {
		return 0
	}
	return t.Day()
}

// inclusiveDayCount returns the number of calendar days in [start, end],
// so the same day gives 1. ErrInvalidRange when end precedes start.
func inclusiveDayCount(start, end string) (int, error) {
	s, err := parseDate(start)
	if err != nil {
		return 0, err
	}
	e, err := parseDate(end)
	if err != nil {
		return 0, err
	}
	if e.Before(s) {
		return 0, ErrInvalidRange
	}
	return int(e.Sub(s).Hours()/24) + 1, nil
}

// ResizeDays resizes t's day sequence to the inclusive range
// [newStart, newEnd] and returns the resized trip as a new document;
// t itself is never touched. Day content at a surviving index keeps
// its ID, items and hero/weather fields; date, weekday and day number
// are always recomputed. New indices get blank days. When the range
// shrinks, trailing days and their items are dropped, which must be
// confirmed: confirm is called with the number of days that would be
// lost, and a false answer aborts with ErrShrinkDeclined.
func ResizeDays(t *Trip, newStart, newEnd string, confirm func(lost int) bool) (*Trip, error) {
	target, err := inclusiveDayCount(newStart, newEnd)
	if err != nil {
		return nil, err
	}

	if lost := len(t.Days) - target; lost > 0 {
		if confirm == nil || !confirm(lost) {
			return nil, ErrShrinkDeclined
		}
	}

	next, err := t.Clone()
	if err != nil {
		return nil, err
	}

	days := make([]Day, 0, target)
	for i := 0; i < target; i++ {
		date, err := addDays(newStart, i)
		if err != nil {
			return nil, err
		}
		if i < len(next.Days) {
			d := next.Days[i]
			d.Date = date
			d.Weekday = weekdayName(date)
			d.DayNumber = dayOfMonth(date)
			days = append(days, d)
			continue
		}
		days = append(days, NewDay(date, i))
	}

	next.Days = days
	next.StartDate = newStart
	next.EndDate = newEnd
	return next, nil
}
