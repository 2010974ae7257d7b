package timesplit

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/curtisnewbie/timesplit/util"
	"github.com/curtisnewbie/timesplit/util/utillog"
	"github.com/jinzhu/now"
	"github.com/ncruces/go-strftime"
	"github.com/spf13/cast"
)

// Unwrap form values and string pointers. For []string, the last value wins.
func unwrap(v any) any {
	switch x := v.(type) {
	case []string:
		if len(x) < 1 {
			return nil
		}
		return x[len(x)-1]
	case *string:
		if x == nil {
			return nil
		}
		return *x
	case []byte:
		return string(x)
	}
	return v
}

// Check if v represents "no change requested".
func isBlank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return util.IsBlankStr(x)
	case bool:
		return !x
	case time.Time:
		return x.IsZero()
	case *time.Time:
		return x == nil || x.IsZero()
	case util.ETime:
		return x.IsZero()
	case *util.ETime:
		return x == nil || x.IsZero()
	case Date:
		return x.IsZero()
	case *Date:
		return x == nil || x.IsZero()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	case reflect.Slice, reflect.Map:
		return rv.Len() < 1
	}
	return false
}

// Structured timestamp.
func asTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case *time.Time:
		return *x, true
	case util.ETime:
		return x.ToTime(), true
	case *util.ETime:
		return x.ToTime(), true
	}
	return time.Time{}, false
}

// Structured date.
func asDate(v any) (Date, bool) {
	switch x := v.(type) {
	case Date:
		return x, true
	case *Date:
		return *x, true
	}
	return Date{}, false
}

func asString(v any) (string, bool) {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s), true
	}
	if _, ok := v.(bool); ok {
		return "", false
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(s), true
}

// Coerce v to int. ok is false when nothing should be changed.
func toInt(name string, v any) (n int, ok bool, err error) {
	v = unwrap(v)
	if isBlank(v) {
		return 0, false, nil
	}
	switch x := v.(type) {
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, false, ErrParse.Wrapf(err, "invalid value '%v' for '%s'", x, name)
		}
		return n, true, nil
	case bool:
		utillog.DebugLog("Discarded value '%v' for '%s', not an integer", v, name)
		return 0, false, nil
	}
	n, err = cast.ToIntE(v)
	if err != nil {
		utillog.DebugLog("Discarded value '%#v' for '%s', %v", v, name, err)
		return 0, false, nil
	}
	return n, true, nil
}

func checkRange(name string, n int, min int, max int) error {
	if n < min || n > max {
		return ErrIllegalArgument.WithInternalMsg("value %d for '%s' is out of range [%d, %d]", n, name, min, max)
	}
	return nil
}

// Parse string using strftime pattern.
func parsePattern(name string, pattern string, s string) (time.Time, error) {
	t, err := strftime.Parse(pattern, s)
	if err != nil {
		return time.Time{}, ErrParse.Wrapf(err, "value '%s' for '%s' doesn't match '%s'", s, name, pattern)
	}
	return t, nil
}

// Layouts tried by the generic date parser when cast doesn't recognize the value.
//
// Numeric layouts are day first, e.g., "15/03/2020".
var fallbackDateLayouts = []string{
	"2006/1/2",
	"2006-1-2",
	"2006.1.2",
	"20060102",
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
	"2-Jan-2006",
	"Monday, January 2, 2006",
	"Mon, Jan 2, 2006",
	"Mon Jan 2 2006",
}

// Generic date parser, accepts the common date and datetime layouts.
func parseAnyDate(name string, s string) (Date, error) {
	t, err := cast.ToTimeInDefaultLocationE(s, time.UTC)
	if err == nil {
		return DateOf(t), nil
	}
	if ft, ferr := util.FuzzParseTimeLoc(fallbackDateLayouts, s, time.UTC); ferr == nil {
		return DateOf(ft), nil
	}
	return Date{}, ErrParse.Wrapf(err, "invalid date '%s' for '%s'", s, name)
}

// 12-hour layouts tried by the generic time parser, input is upper-cased before parsing.
var twelveHourLayouts = []string{
	"3:04PM",
	"3:04 PM",
	"3:04:05PM",
	"3:04:05 PM",
	"3PM",
	"3 PM",
}

// Generic time-of-day parser, accepts e.g., "14:30", "14:30:05", "2:30pm", "2:30 PM" or a full datetime.
func parseAnyTime(name string, s string) (time.Time, error) {
	t, err := now.With(time.Now().UTC()).Parse(s)
	if err == nil {
		return t, nil
	}
	if ft, ferr := util.FuzzParseTimeLoc(twelveHourLayouts, strings.ToUpper(s), time.UTC); ferr == nil {
		return ft, nil
	}
	return time.Time{}, ErrParse.Wrapf(err, "invalid time '%s' for '%s'", s, name)
}
