package timesplit

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/curtisnewbie/timesplit/util"
	"github.com/curtisnewbie/timesplit/util/utillog"
)

// Positions of the multipart parameters, e.g., "starts_at_time(1i)" is the year.
const (
	PartYear   = 1
	PartMonth  = 2
	PartDay    = 3
	PartHour   = 4
	PartMinute = 5
)

// Compose multipart parameters into a timestamp, nil means absent.
type ComposeFunc func(parts map[int]string) (*time.Time, error)

// CompositeBinder is implemented by hosts that bind multipart form parameters, e.g., "starts_at_time(1i)" to "starts_at_time(5i)",
// to a single timestamp.
type CompositeBinder interface {
	BindComposite(name string, compose ComposeFunc)
}

// Register ComposeParts as "<attr>_time" if host implements CompositeBinder.
//
// Returns false if host doesn't support composite binding, which is not an error.
func (s *Splitter[T]) Register(host any) bool {
	b, ok := host.(CompositeBinder)
	if !ok {
		return false
	}
	b.BindComposite(s.attr+SuffixTime, s.ComposeParts)
	return true
}

/*
Compose multipart parameters into a timestamp.

	1 - year, 2 - month, 3 - day, 4 - hour, 5 - minute

Blank or missing date parts are taken from the default instance, blank or missing hour and minute are zero.
All parts blank composes to nil.
*/
func (s *Splitter[T]) ComposeParts(parts map[int]string) (*time.Time, error) {
	allBlank := true
	for _, v := range parts {
		if !util.IsBlankStr(v) {
			allBlank = false
			break
		}
	}
	if allBlank {
		return nil, nil
	}

	def := s.opts.defaultTime()
	vals := [6]int{0, def.Year(), int(def.Month()), def.Day(), 0, 0}
	for i := PartYear; i <= PartMinute; i++ {
		v, ok := parts[i]
		if !ok || util.IsBlankStr(v) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, ErrParse.Wrapf(err, "invalid value '%s' for '%s'", v, partName(s.attr, i))
		}
		vals[i] = n
	}
	if err := checkRange(partName(s.attr, PartMonth), vals[PartMonth], 1, 12); err != nil {
		return nil, err
	}
	if err := checkRange(partName(s.attr, PartDay), vals[PartDay], 1, 31); err != nil {
		return nil, err
	}
	if err := checkRange(partName(s.attr, PartHour), vals[PartHour], 0, 23); err != nil {
		return nil, err
	}
	if err := checkRange(partName(s.attr, PartMinute), vals[PartMinute], 0, 59); err != nil {
		return nil, err
	}
	t := time.Date(vals[PartYear], time.Month(vals[PartMonth]), vals[PartDay], vals[PartHour], vals[PartMinute], 0, 0, def.Location())
	return &t, nil
}

func partName(attr string, i int) string {
	return fmt.Sprintf("%s%s(%di)", attr, SuffixTime, i)
}

// Get derived value by name, e.g., "starts_at_hour".
//
// Date and time are returned as DateValue and TimeValue do. ok is false if the name is unknown or the base
// attribute is absent.
func (s *Splitter[T]) Get(rec T, name string) (any, bool) {
	suffix, ok := strings.CutPrefix(name, s.attr)
	if !ok {
		return nil, false
	}
	switch suffix {
	case SuffixYear:
		return toAny(s.Year(rec))
	case SuffixMonth:
		return toAny(s.Month(rec))
	case SuffixDay:
		return toAny(s.Day(rec))
	case SuffixHour:
		return toAny(s.Hour(rec))
	case SuffixMinute:
		return toAny(s.Minute(rec))
	case SuffixDate:
		v := s.DateValue(rec)
		return v, v != nil
	case SuffixTime:
		v := s.TimeValue(rec)
		return v, v != nil
	case SuffixOrNew:
		return s.OrNew(rec), true
	}
	return nil, false
}

func toAny(n int, ok bool) (any, bool) {
	if !ok {
		return nil, false
	}
	return n, true
}

// Set derived value by name, e.g., "starts_at_hour".
//
// Returns false if the name is not a derived setter of this Splitter.
func (s *Splitter[T]) Set(rec T, name string, v any) (bool, error) {
	suffix, ok := strings.CutPrefix(name, s.attr)
	if !ok {
		return false, nil
	}
	switch suffix {
	case SuffixYear:
		return true, s.SetYear(rec, v)
	case SuffixMonth:
		return true, s.SetMonth(rec, v)
	case SuffixDay:
		return true, s.SetDay(rec, v)
	case SuffixHour:
		return true, s.SetHour(rec, v)
	case SuffixMinute:
		return true, s.SetMinute(rec, v)
	case SuffixDate:
		return true, s.SetDate(rec, v)
	case SuffixTime:
		return true, s.SetTime(rec, v)
	}
	return false, nil
}

// Order in which Assign applies the derived parameters.
var assignOrder = []string{SuffixDate, SuffixYear, SuffixMonth, SuffixDay, SuffixTime, SuffixHour, SuffixMinute}

/*
Apply the derived form parameters in values to rec, parameters not belonging to this Splitter are ignored.

Multipart parameters ("<attr>_time(1i)" ... "(5i)") are composed and set to the base attribute first, then the
remaining parameters are applied in order: date, year, month, day, time, hour, min.

Assign stops at the first error.
*/
func (s *Splitter[T]) Assign(rec T, values url.Values) error {
	parts := map[int]string{}
	for i := PartYear; i <= PartMinute; i++ {
		if v, ok := values[partName(s.attr, i)]; ok && len(v) > 0 {
			parts[i] = v[len(v)-1]
		}
	}
	if len(parts) > 0 {
		t, err := s.ComposeParts(parts)
		if err != nil {
			return err
		}
		if t != nil {
			s.set(rec, t)
		}
	}

	for _, suffix := range assignOrder {
		name := s.attr + suffix
		v, ok := values[name]
		if !ok {
			continue
		}
		utillog.DebugLog("Assigning '%s': %v", name, v)
		if _, err := s.Set(rec, name, v); err != nil {
			return err
		}
	}
	return nil
}
