package timesplit

import (
	"fmt"
	"time"
)

// Date is a calendar date without time of day.
//
// A Date passed to the time setter is discarded, a Date passed to the date setter is used as-is.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the date part of t, in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// On returns t with year, month and day replaced by d.
func (d Date) On(t time.Time) time.Time {
	return time.Date(d.Year, d.Month, d.Day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// Midnight of d in loc.
func (d Date) Midnight(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}
