// Package session decides whether the market is open. A-share hours:
// Monday to Friday, 09:30-11:30 and 13:00-15:00, endpoints inclusive.
package session

import "time"

// Session boundaries in minutes since midnight.
const (
	morningOpen    = 9*60 + 30
	morningClose   = 11*60 + 30
	afternoonOpen  = 13 * 60
	afternoonClose = 15 * 60
)

// Clock carries the configured market timezone. It is built once per reload
// from Settings and passed around explicitly; nothing mutates a process-wide
// zone.
type Clock struct {
	loc *time.Location
}

// NewClock resolves an IANA zone name. An empty or unknown name falls back
// to the local zone.
func NewClock(timezone string) Clock {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err == nil {
			return Clock{loc: loc}
		}
	}
	return Clock{loc: time.Local}
}

// Now returns the current time in the market timezone.
func (c Clock) Now() time.Time {
	return time.Now().In(c.loc)
}

// IsOpen reports whether t falls inside the trading session.
func (c Clock) IsOpen(t time.Time) bool {
	t = t.In(c.loc)
	if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}
	minute := t.Hour()*60 + t.Minute()
	return (minute >= morningOpen && minute <= morningClose) ||
		(minute >= afternoonOpen && minute <= afternoonClose)
}
