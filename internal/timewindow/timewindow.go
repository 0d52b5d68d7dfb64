// Package timewindow converts between absolute timestamps and the local
// day-window representation the scheduling engine works in: a calendar day
// plus zero-padded 24-hour "HH:MM" clock strings.
package timewindow

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidFormat indicates a clock string or day component that does not
// match the expected format or range.
var ErrInvalidFormat = errors.New("invalid time format")

// Clock is a wall-clock time of day.
type Clock struct {
	Hour   int
	Minute int
}

// String formats the clock as zero-padded 24-hour "HH:MM".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// MinuteOfDay returns minutes elapsed since midnight.
func (c Clock) MinuteOfDay() int {
	return c.Hour*60 + c.Minute
}

// ParseClock parses a strict zero-padded 24-hour "HH:MM" string.
// Hour must be in [0,23] and minute in [0,59]; anything else fails with
// ErrInvalidFormat.
func ParseClock(s string) (Clock, error) {
	if len(s) != 5 || s[2] != ':' {
		return Clock{}, fmt.Errorf("%w: %q is not HH:MM", ErrInvalidFormat, s)
	}
	for i, c := range s {
		if i != 2 && (c < '0' || c > '9') {
			return Clock{}, fmt.Errorf("%w: %q is not HH:MM", ErrInvalidFormat, s)
		}
	}
	hour := int(s[0]-'0')*10 + int(s[1]-'0')
	minute := int(s[3]-'0')*10 + int(s[4]-'0')
	if hour > 23 {
		return Clock{}, fmt.Errorf("%w: hour %d out of range [0,23]", ErrInvalidFormat, hour)
	}
	if minute > 59 {
		return Clock{}, fmt.Errorf("%w: minute %d out of range [0,59]", ErrInvalidFormat, minute)
	}
	return Clock{Hour: hour, Minute: minute}, nil
}

// FormatClock renders a timestamp as "HH:MM" in the given location.
func FormatClock(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format("15:04")
}

// Day identifies one calendar day.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// DayOf extracts the calendar day of a timestamp in the given location.
func DayOf(t time.Time, loc *time.Location) Day {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.In(loc).Date()
	return Day{Year: y, Month: m, Day: d}
}

// ParseDay parses a strict "YYYY-MM-DD" string into a Day.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Day{}, fmt.Errorf("%w: %q is not YYYY-MM-DD", ErrInvalidFormat, s)
	}
	return Day{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// Validate checks that the day denotes a real calendar date.
func (d Day) Validate() error {
	if d.Month < time.January || d.Month > time.December {
		return fmt.Errorf("%w: month %d out of range", ErrInvalidFormat, d.Month)
	}
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	if t.Day() != d.Day || t.Month() != d.Month || t.Year() != d.Year {
		return fmt.Errorf("%w: %04d-%02d-%02d is not a calendar date", ErrInvalidFormat, d.Year, d.Month, d.Day)
	}
	return nil
}

// String formats the day as YYYY-MM-DD.
func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// At composes an absolute timestamp from the day and a clock time in loc.
func (d Day) At(c Clock, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, d.Month, d.Day, c.Hour, c.Minute, 0, 0, loc)
}

// Window returns the local-time boundaries of the day: inclusive start at
// midnight, exclusive end at the next midnight.
func (d Day) Window(loc *time.Location) (start, end time.Time) {
	if loc == nil {
		loc = time.Local
	}
	start = time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
	end = start.AddDate(0, 0, 1)
	return start, end
}

// Intersects reports whether the half-open interval [start, end) touches
// the day's window in loc.
func (d Day) Intersects(start, end time.Time, loc *time.Location) bool {
	dayStart, dayEnd := d.Window(loc)
	return start.Before(dayEnd) && dayStart.Before(end)
}
