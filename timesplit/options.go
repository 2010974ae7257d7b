package timesplit

import (
	"strings"
	"time"

	"github.com/curtisnewbie/timesplit/util"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Option keys recognized by OptionsFromMap and LoadOptions.
//
// Keys are matched ignoring case, '-' and '_', so "dateFormat", "date-format" and "date_format" are the same key.
const (
	OptDefault            = "default"
	OptDateFormat         = "dateFormat"
	OptTimeFormat         = "timeFormat"
	OptInputTimeUtcOffset = "inputTimeUtcOffset"
	OptMonthAsYear        = "monthAsYear"
)

const (
	// strftime pattern used by the hour setter.
	HourPattern = "%H"

	// strftime pattern used for offset correction by the time setter when TimeFormat is not set.
	DefaultTimePattern = "%H:%M"
)

// Options for the split accessors, all optional.
type Options struct {
	// Produces the value used when the base attribute is absent and a setter is called.
	//
	// Defaults to DefaultTime.
	Default func() time.Time

	// strftime pattern, e.g., "%d/%m/%Y".
	//
	// Used to parse string input to the date setter, and to render the date getter's value as string.
	DateFormat string

	// strftime pattern, e.g., "%H:%M".
	//
	// Used to parse string input to the time setter, and to render the time getter's value as string.
	TimeFormat string

	// Fixed UTC offset, e.g., "+05:00".
	//
	// When set, the hour and time setters read the incoming clock value as being in this offset and convert it to UTC.
	InputTimeUtcOffset string

	// Make the year getter return the month, same as the very first releases did.
	MonthAsYear bool
}

// Year 0, Jan 1, 00:00:00 UTC.
func DefaultTime() time.Time {
	return time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC)
}

func (o Options) defaultTime() time.Time {
	if o.Default == nil {
		return DefaultTime()
	}
	return o.Default()
}

func (o Options) timePattern() string {
	if o.TimeFormat != "" {
		return o.TimeFormat
	}
	return DefaultTimePattern
}

/*
Build Options from a map, unrecognized keys are ignored.

Recognized keys:

	default            - func() time.Time, time.Time, util.ETime or a datetime string
	dateFormat         - strftime pattern
	timeFormat         - strftime pattern
	inputTimeUtcOffset - utc offset, e.g., "+05:00"
	monthAsYear        - bool
*/
func OptionsFromMap(m map[string]any) (Options, error) {
	var o Options
	for k, v := range m {
		switch normKey(k) {
		case normKey(OptDefault):
			f, err := toDefaultFunc(v)
			if err != nil {
				return o, err
			}
			o.Default = f
		case normKey(OptDateFormat):
			s, err := cast.ToStringE(v)
			if err != nil {
				return o, ErrIllegalArgument.Wrapf(err, "invalid option '%s'", k)
			}
			o.DateFormat = s
		case normKey(OptTimeFormat):
			s, err := cast.ToStringE(v)
			if err != nil {
				return o, ErrIllegalArgument.Wrapf(err, "invalid option '%s'", k)
			}
			o.TimeFormat = s
		case normKey(OptInputTimeUtcOffset):
			s, err := cast.ToStringE(v)
			if err != nil {
				return o, ErrIllegalArgument.Wrapf(err, "invalid option '%s'", k)
			}
			o.InputTimeUtcOffset = s
		case normKey(OptMonthAsYear):
			b, err := cast.ToBoolE(v)
			if err != nil {
				return o, ErrIllegalArgument.Wrapf(err, "invalid option '%s'", k)
			}
			o.MonthAsYear = b
		}
	}
	return o, nil
}

// Load Options from the viper sub tree at key, e.g., "timesplit.starts_at".
//
// Missing key yields empty Options.
func LoadOptions(vp *viper.Viper, key string) (Options, error) {
	if vp == nil || !vp.IsSet(key) {
		return Options{}, nil
	}
	return OptionsFromMap(vp.GetStringMap(key))
}

func normKey(k string) string {
	return strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(k))
}

func toDefaultFunc(v any) (func() time.Time, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case func() time.Time:
		return x, nil
	case time.Time:
		return func() time.Time { return x }, nil
	case util.ETime:
		return func() time.Time { return x.ToTime() }, nil
	}
	t, err := cast.ToTimeInDefaultLocationE(v, time.UTC)
	if err != nil {
		return nil, ErrIllegalArgument.Wrapf(err, "invalid option '%s'", OptDefault)
	}
	return func() time.Time { return t }, nil
}
