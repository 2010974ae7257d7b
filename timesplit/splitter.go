package timesplit

import (
	"time"

	"github.com/curtisnewbie/timesplit/util"
	"github.com/curtisnewbie/timesplit/util/utillog"
	"github.com/ncruces/go-strftime"
)

// Suffixes of the derived accessor names.
const (
	SuffixYear   = "_year"
	SuffixMonth  = "_month"
	SuffixDay    = "_day"
	SuffixHour   = "_hour"
	SuffixMinute = "_min"
	SuffixDate   = "_date"
	SuffixTime   = "_time"
	SuffixOrNew  = "_or_new"
)

// Getter of the base attribute, nil means absent.
type GetFunc[T any] func(rec T) *time.Time

// Setter of the base attribute.
type SetFunc[T any] func(rec T, t *time.Time)

// Splitter holds the derived accessors of one base attribute.
//
// Getters return ok == false when the base attribute is absent. Setters read the current value (or the default),
// replace the targeted fields and write the whole value back through the base setter exactly once.
// Blank input is ignored.
//
// Splitter is immutable after New, it's safe to share it between goroutines.
type Splitter[T any] struct {
	attr      string
	get       GetFunc[T]
	set       SetFunc[T]
	opts      Options
	offsetLoc *time.Location
}

// Create Splitter for the base attribute attr.
func New[T any](attr string, get GetFunc[T], set SetFunc[T], opts Options) (*Splitter[T], error) {
	if util.IsBlankStr(attr) {
		return nil, ErrIllegalArgument.WithInternalMsg("attribute name is blank")
	}
	if get == nil || set == nil {
		return nil, ErrIllegalArgument.WithInternalMsg("getter or setter of '%s' is nil", attr)
	}
	for _, p := range []string{opts.DateFormat, opts.TimeFormat} {
		if p == "" {
			continue
		}
		if _, err := strftime.Layout(p); err != nil {
			return nil, ErrIllegalArgument.Wrapf(err, "unsupported format '%s' for '%s'", p, attr)
		}
	}

	s := &Splitter[T]{attr: attr, get: get, set: set, opts: opts}
	if opts.InputTimeUtcOffset != "" {
		loc, err := util.ParseUtcOffset(opts.InputTimeUtcOffset)
		if err != nil {
			return nil, ErrIllegalArgument.Wrapf(err, "invalid option '%s' for '%s'", OptInputTimeUtcOffset, attr)
		}
		s.offsetLoc = loc
	}
	utillog.DebugLog("Split accessors for '%s': %v", attr, s.Names())
	return s, nil
}

// Same as New but panics on error.
func MustNew[T any](attr string, get GetFunc[T], set SetFunc[T], opts Options) *Splitter[T] {
	s, err := New(attr, get, set, opts)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Splitter[T]) Attr() string {
	return s.attr
}

func (s *Splitter[T]) Options() Options {
	return s.opts
}

// Names of the derived accessors, e.g., "starts_at_year".
func (s *Splitter[T]) Names() []string {
	return []string{
		s.attr + SuffixYear,
		s.attr + SuffixMonth,
		s.attr + SuffixDay,
		s.attr + SuffixHour,
		s.attr + SuffixMinute,
		s.attr + SuffixDate,
		s.attr + SuffixTime,
		s.attr + SuffixOrNew,
	}
}

// Current value of the base attribute, or a fresh default instance if absent.
func (s *Splitter[T]) OrNew(rec T) time.Time {
	if t := s.get(rec); t != nil {
		return *t
	}
	return s.opts.defaultTime()
}

func (s *Splitter[T]) current(rec T) (time.Time, bool) {
	t := s.get(rec)
	if t == nil {
		return time.Time{}, false
	}
	return *t, true
}

func (s *Splitter[T]) write(rec T, t time.Time) {
	s.set(rec, &t)
}

// Readers

// Year of the base attribute. With Options.MonthAsYear, the month is returned instead.
func (s *Splitter[T]) Year(rec T) (int, bool) {
	t, ok := s.current(rec)
	if !ok {
		return 0, false
	}
	if s.opts.MonthAsYear {
		return int(t.Month()), true
	}
	return t.Year(), true
}

func (s *Splitter[T]) Month(rec T) (int, bool) {
	t, ok := s.current(rec)
	if !ok {
		return 0, false
	}
	return int(t.Month()), true
}

func (s *Splitter[T]) Day(rec T) (int, bool) {
	t, ok := s.current(rec)
	if !ok {
		return 0, false
	}
	return t.Day(), true
}

func (s *Splitter[T]) Hour(rec T) (int, bool) {
	t, ok := s.current(rec)
	if !ok {
		return 0, false
	}
	return t.Hour(), true
}

func (s *Splitter[T]) Minute(rec T) (int, bool) {
	t, ok := s.current(rec)
	if !ok {
		return 0, false
	}
	return t.Minute(), true
}

// Date part of the base attribute.
func (s *Splitter[T]) Date(rec T) (Date, bool) {
	t, ok := s.current(rec)
	if !ok {
		return Date{}, false
	}
	return DateOf(t), true
}

// Date part of the base attribute rendered with Options.DateFormat, or a Date if DateFormat is not set.
//
// Returns nil if the base attribute is absent.
func (s *Splitter[T]) DateValue(rec T) any {
	t, ok := s.current(rec)
	if !ok {
		return nil
	}
	d := DateOf(t)
	if s.opts.DateFormat != "" {
		return strftime.Format(s.opts.DateFormat, d.Midnight(t.Location()))
	}
	return d
}

func (s *Splitter[T]) Time(rec T) (time.Time, bool) {
	return s.current(rec)
}

// Base attribute rendered with Options.TimeFormat, or the time.Time itself if TimeFormat is not set.
//
// Returns nil if the base attribute is absent.
func (s *Splitter[T]) TimeValue(rec T) any {
	t, ok := s.current(rec)
	if !ok {
		return nil
	}
	if s.opts.TimeFormat != "" {
		return strftime.Format(s.opts.TimeFormat, t)
	}
	return t
}

// Writers

func (s *Splitter[T]) SetYear(rec T, v any) error {
	n, ok, err := toInt(s.attr+SuffixYear, v)
	if err != nil || !ok {
		return err
	}
	t := s.OrNew(rec)
	s.write(rec, time.Date(n, t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location()))
	return nil
}

func (s *Splitter[T]) SetMonth(rec T, v any) error {
	name := s.attr + SuffixMonth
	n, ok, err := toInt(name, v)
	if err != nil || !ok {
		return err
	}
	if err := checkRange(name, n, 1, 12); err != nil {
		return err
	}
	t := s.OrNew(rec)
	s.write(rec, time.Date(t.Year(), time.Month(n), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location()))
	return nil
}

func (s *Splitter[T]) SetDay(rec T, v any) error {
	name := s.attr + SuffixDay
	n, ok, err := toInt(name, v)
	if err != nil || !ok {
		return err
	}
	if err := checkRange(name, n, 1, 31); err != nil {
		return err
	}
	t := s.OrNew(rec)
	s.write(rec, time.Date(t.Year(), t.Month(), n, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location()))
	return nil
}

// Set minute, seconds are reset to zero. Offset correction is not applied.
func (s *Splitter[T]) SetMinute(rec T, v any) error {
	name := s.attr + SuffixMinute
	n, ok, err := toInt(name, v)
	if err != nil || !ok {
		return err
	}
	if err := checkRange(name, n, 0, 59); err != nil {
		return err
	}
	t := s.OrNew(rec)
	s.write(rec, time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), n, 0, 0, t.Location()))
	return nil
}

// Set year, month and day.
//
// v can be a Date, a time.Time, a util.ETime or a string. Strings are parsed with Options.DateFormat,
// or with the generic date parser if DateFormat is not set.
func (s *Splitter[T]) SetDate(rec T, v any) error {
	name := s.attr + SuffixDate
	v = unwrap(v)
	if isBlank(v) {
		return nil
	}

	d, ok := asDate(v)
	if !ok {
		if t, isTime := asTime(v); isTime {
			d = DateOf(t)
		} else {
			str, isStr := asString(v)
			if !isStr {
				utillog.DebugLog("Discarded value '%#v' for '%s', not a date", v, name)
				return nil
			}
			if s.opts.DateFormat != "" {
				t, err := parsePattern(name, s.opts.DateFormat, str)
				if err != nil {
					return err
				}
				d = DateOf(t)
			} else {
				pd, err := parseAnyDate(name, str)
				if err != nil {
					return err
				}
				d = pd
			}
		}
	}
	s.write(rec, d.On(s.OrNew(rec)))
	return nil
}

// Set hour, the minute is kept, seconds are reset to zero.
//
// v can be a time.Time, a util.ETime or a string in 24-hour format. The hour is offset-corrected if
// Options.InputTimeUtcOffset is set.
func (s *Splitter[T]) SetHour(rec T, v any) error {
	name := s.attr + SuffixHour
	v = unwrap(v)
	if isBlank(v) {
		return nil
	}

	ht, ok := asTime(v)
	if !ok {
		if _, isDate := asDate(v); isDate {
			utillog.DebugLog("Discarded value '%v' for '%s', not an hour", v, name)
			return nil
		}
		str, isStr := asString(v)
		if !isStr {
			utillog.DebugLog("Discarded value '%#v' for '%s', not an hour", v, name)
			return nil
		}
		t, err := parsePattern(name, HourPattern, str)
		if err != nil {
			return err
		}
		ht = t
	}

	ht, err := s.CorrectForOffset(ht, HourPattern)
	if err != nil {
		return err
	}
	t := s.OrNew(rec)
	s.write(rec, time.Date(t.Year(), t.Month(), t.Day(), ht.Hour(), t.Minute(), 0, 0, t.Location()))
	return nil
}

// Set hour and minute, seconds are reset to zero.
//
// A bare Date is discarded. v can be a time.Time, a util.ETime or a string. Strings are parsed with Options.TimeFormat,
// or with the generic time parser if TimeFormat is not set. The time is offset-corrected if
// Options.InputTimeUtcOffset is set.
func (s *Splitter[T]) SetTime(rec T, v any) error {
	name := s.attr + SuffixTime
	v = unwrap(v)
	if isBlank(v) {
		return nil
	}
	if _, isDate := asDate(v); isDate {
		utillog.DebugLog("Discarded date '%v' for '%s'", v, name)
		return nil
	}

	tt, ok := asTime(v)
	if !ok {
		str, isStr := asString(v)
		if !isStr {
			utillog.DebugLog("Discarded value '%#v' for '%s', not a time", v, name)
			return nil
		}
		var err error
		if s.opts.TimeFormat != "" {
			tt, err = parsePattern(name, s.opts.TimeFormat, str)
		} else {
			tt, err = parseAnyTime(name, str)
		}
		if err != nil {
			return err
		}
	}

	tt, err := s.CorrectForOffset(tt, s.opts.timePattern())
	if err != nil {
		return err
	}
	t := s.OrNew(rec)
	s.write(rec, time.Date(t.Year(), t.Month(), t.Day(), tt.Hour(), tt.Minute(), 0, 0, t.Location()))
	return nil
}
