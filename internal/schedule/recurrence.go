package schedule

import (
	"fmt"
	"time"

	"github.com/adelacruz/timeplan/internal/dates"
)

// Pattern is how often a recurring task repeats.
type Pattern string

const (
	PatternDaily    Pattern = "Daily"
	PatternWeekly   Pattern = "Weekly"
	PatternMonthly  Pattern = "Monthly"
	PatternAnnually Pattern = "Annually"
)

// ParsePattern validates a stored pattern name.
func ParsePattern(s string) (Pattern, error) {
	switch Pattern(s) {
	case PatternDaily, PatternWeekly, PatternMonthly, PatternAnnually:
		return Pattern(s), nil
	}
	return "", fmt.Errorf("unknown recurrence pattern %q", s)
}

// Iterator walks the occurrence dates of a recurring task inside a closed
// window. It is a pure function of its construction inputs; build a new one
// to restart.
type Iterator struct {
	start   dates.Date
	pattern Pattern
	from    dates.Date
	to      dates.Date
	n       int
	done    bool
}

// Occurrences returns an iterator over every occurrence of the pattern,
// anchored at start, that falls within [from, to].
func Occurrences(start dates.Date, pattern Pattern, from, to dates.Date) *Iterator {
	it := &Iterator{start: start, pattern: pattern, from: from, to: to}

	// Daily and weekly steps are uniform, so skip straight to the window
	// instead of stepping one occurrence at a time from the anchor.
	if step := uniformStepDays(pattern); step > 0 && start.Before(from) {
		days := int(from.Time(time.UTC).Sub(start.Time(time.UTC)).Hours() / 24)
		it.n = days / step
	}
	return it
}

// Next returns the next occurrence in the window, or ok=false once the
// window is exhausted.
func (it *Iterator) Next() (dates.Date, bool) {
	for !it.done {
		d := occurrence(it.start, it.pattern, it.n)
		it.n++
		if d.After(it.to) {
			it.done = true
			break
		}
		if !d.Before(it.from) {
			return d, true
		}
	}
	return dates.Date{}, false
}

// Expand collects every occurrence in the window into a slice.
func Expand(start dates.Date, pattern Pattern, from, to dates.Date) []dates.Date {
	var out []dates.Date
	it := Occurrences(start, pattern, from, to)
	for d, ok := it.Next(); ok; d, ok = it.Next() {
		out = append(out, d)
	}
	return out
}

// IsOccurrence reports whether day is a scheduled occurrence of the pattern.
func IsOccurrence(start dates.Date, pattern Pattern, day dates.Date) bool {
	_, ok := Occurrences(start, pattern, day, day).Next()
	return ok
}

func uniformStepDays(pattern Pattern) int {
	switch pattern {
	case PatternDaily:
		return 1
	case PatternWeekly:
		return 7
	}
	return 0
}

// occurrence computes the n'th occurrence (n=0 is the anchor itself).
// Monthly occurrences keep the anchor's day-of-month, clamped to the end of
// shorter months, so Jan 31 yields Feb 28 and then Mar 31 again. Annual
// occurrences clamp Feb 29 to Feb 28 outside leap years.
func occurrence(start dates.Date, pattern Pattern, n int) dates.Date {
	switch pattern {
	case PatternDaily:
		return start.AddDays(n)
	case PatternWeekly:
		return start.AddDays(7 * n)
	case PatternMonthly:
		months := start.Year*12 + int(start.Month) - 1 + n
		year := months / 12
		month := time.Month(months%12 + 1)
		day := start.Day
		if last := dates.DaysIn(year, month); day > last {
			day = last
		}
		return dates.Date{Year: year, Month: month, Day: day}
	case PatternAnnually:
		year := start.Year + n
		day := start.Day
		if start.Month == time.February && day == 29 && dates.DaysIn(year, time.February) < 29 {
			day = 28
		}
		return dates.Date{Year: year, Month: start.Month, Day: day}
	}
	return start
}

// DayStatus is the state of one recurring task on one calendar day.
type DayStatus int

const (
	// StatusNotYetDue means the day is not a scheduled occurrence.
	StatusNotYetDue DayStatus = iota
	// StatusPendingToday means the day is an occurrence not yet marked done.
	StatusPendingToday
	// StatusCompletedToday means the day is an occurrence marked done.
	StatusCompletedToday
)

func (s DayStatus) String() string {
	switch s {
	case StatusPendingToday:
		return "pending"
	case StatusCompletedToday:
		return "completed"
	default:
		return "not-due"
	}
}

// StatusOn derives the state of a recurring task on a given day. Only the
// single most recent completion date is stored, so an occurrence counts as
// completed exactly when it equals lastCompleted.
func StatusOn(start dates.Date, pattern Pattern, lastCompleted *dates.Date, day dates.Date) DayStatus {
	if !IsOccurrence(start, pattern, day) {
		return StatusNotYetDue
	}
	if lastCompleted != nil && lastCompleted.Equal(day) {
		return StatusCompletedToday
	}
	return StatusPendingToday
}
