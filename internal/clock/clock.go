package clock

import (
	"time"

	"github.com/adelacruz/timeplan/internal/dates"
)

// DefaultTimezone is the fixed reference zone the planner runs in.
const DefaultTimezone = "Asia/Manila"

// Clock supplies the current calendar date in a fixed reference timezone.
// Today is recomputed on every call so a long-running process crosses
// midnight correctly.
type Clock interface {
	Today() dates.Date
	Now() time.Time
}

type zoneClock struct {
	loc *time.Location
}

// New returns a Clock anchored to the given location.
func New(loc *time.Location) Clock {
	return &zoneClock{loc: loc}
}

// Load resolves a timezone name and returns a Clock for it.
func Load(name string) (Clock, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, err
	}
	return New(loc), nil
}

func (c *zoneClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c *zoneClock) Today() dates.Date {
	return dates.FromTime(c.Now())
}

// Fixed is a Clock pinned to a single date, for deterministic tests.
type Fixed struct {
	Date dates.Date
}

func (f Fixed) Today() dates.Date { return f.Date }

func (f Fixed) Now() time.Time { return f.Date.Time(time.UTC) }
