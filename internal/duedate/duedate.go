// Package duedate computes the calendar-date keys used to bucket tasks by
// due date. Stored due dates use the canonical YYYY-MM-DD form, so every
// value produced here is directly usable as an equality filter.
package duedate

import (
	"iter"
	"time"
)

// Layout is the canonical due-date form shared with the store.
const Layout = "2006-01-02"

// Clock supplies the current instant. Injectable so bucketing is
// deterministic under test.
type Clock func() time.Time

// Today returns the calendar date of the current instant.
func Today(clock Clock) string {
	return clock().Format(Layout)
}

// Tomorrow returns the calendar date one day after Today, rolling over
// month and year boundaries.
func Tomorrow(clock Clock) string {
	return clock().AddDate(0, 0, 1).Format(Layout)
}

// RemainingWeek yields the dates from today to the end of the current week,
// today included. The week ends on Sunday: with weekday numbered 0 for
// Sunday, exactly 7-weekday dates are produced, strictly increasing.
func RemainingWeek(clock Clock) iter.Seq[string] {
	return func(yield func(string) bool) {
		now := clock()
		days := 7 - int(now.Weekday())
		for i := 0; i < days; i++ {
			if !yield(now.AddDate(0, 0, i).Format(Layout)) {
				return
			}
		}
	}
}
