package timesplit

import (
	"time"

	"github.com/ncruces/go-strftime"
)

// Reinterpret the clock value of t, as rendered by pattern, as being in Options.InputTimeUtcOffset and convert it to UTC.
//
// Fields not covered by pattern are dropped, e.g., with "%H" only the hour survives.
// t is returned unchanged if InputTimeUtcOffset is not set.
func (s *Splitter[T]) CorrectForOffset(t time.Time, pattern string) (time.Time, error) {
	if s.offsetLoc == nil {
		return t, nil
	}
	rendered := strftime.Format(pattern, t)
	p, err := parsePattern(s.attr, pattern, rendered)
	if err != nil {
		return t, err
	}
	return time.Date(p.Year(), p.Month(), p.Day(), p.Hour(), p.Minute(), p.Second(), p.Nanosecond(), s.offsetLoc).UTC(), nil
}
