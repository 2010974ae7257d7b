package util

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"time"
)

const (
	unixSecPersudoMax = 9999999999 // 2286-11-21, should be enough :D

	SQLDateTimeFormat = "2006/01/02 15:04:05"
)

// ETime, same as time.Time but is serialized/deserialized in forms of unix epoch milliseconds.
//
// This type implements sql.Scanner and driver.Valuer, and thus can be safely used in GORM just like time.Time.
//
// To cast from time.Time to ETime, use ToETime() method. To cast from ETime to time.Time, use ETime.ToTime() method.
type ETime struct {
	time.Time
}

func ToETime(t time.Time) ETime {
	return ETime{t}
}

func (t ETime) ToTime() time.Time {
	return t.Time
}

// Implements driver.Valuer in database/sql.
func (t ETime) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.Time, nil
}

// Implements encoding/json Marshaler
func (t ETime) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(t.UnixMilli(), 10)), nil
}

// Implements encoding/json Unmarshaler.
func (t *ETime) UnmarshalJSON(b []byte) error {
	millisec, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return err
	}
	*t = ToETime(time.UnixMilli(millisec))
	return nil
}

// Implements sql.Scanner in database/sql.
func (et *ETime) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	switch v := value.(type) {
	case time.Time:
		*et = ToETime(v)
	case []byte:
		t, err := ParseClassicDateTime(string(v), time.UTC)
		if err != nil {
			return err
		}
		*et = ToETime(t)
	case string:
		t, err := ParseClassicDateTime(v, time.UTC)
		if err != nil {
			return err
		}
		*et = ToETime(t)
	case int64, int, int32, int16:
		val := reflect.ValueOf(v).Int()
		if val > unixSecPersudoMax {
			*et = ToETime(time.UnixMilli(val)) // in milli-sec
		} else {
			*et = ToETime(time.Unix(val, 0)) // in sec
		}
	default:
		return fmt.Errorf("invalid field type '%v' for ETime, unable to convert, %#v", reflect.TypeOf(value), v)
	}
	return nil
}

func FuzzParseTime(formats []string, value string) (time.Time, error) {
	return FuzzParseTimeLoc(formats, value, time.UTC)
}

func FuzzParseTimeLoc(formats []string, value string, loc *time.Location) (time.Time, error) {
	if len(formats) < 1 {
		return time.Time{}, errors.New("formats is empty")
	}
	if loc == nil {
		loc = time.UTC
	}

	var t time.Time
	var err error
	for _, f := range formats {
		t, err = time.ParseInLocation(f, value, loc)
		if err == nil {
			return t, nil
		}
	}
	return t, fmt.Errorf("failed to parse time '%s'", value)
}

var classicDateTimeFmt = []string{time.DateTime, SQLDateTimeFormat, time.RFC3339Nano}

// Parse classic datetime format using patterns: "2006-01-02 15:04:05", "2006/01/02 15:04:05" and RFC3339.
func ParseClassicDateTime(val string, loc *time.Location) (time.Time, error) {
	return FuzzParseTimeLoc(classicDateTimeFmt, val, loc)
}

var utcOffsetFmt = []string{"Z07:00", "-07:00", "-0700", "-07"}

// Parse UTC offset, e.g., "+05:00", "-0800", "+08" or "Z".
//
// The returned location is a fixed zone named after the offset.
func ParseUtcOffset(offset string) (*time.Location, error) {
	t, err := FuzzParseTime(utcOffsetFmt, offset)
	if err != nil {
		return nil, fmt.Errorf("invalid utc offset '%s'", offset)
	}
	_, sec := t.Zone()
	return time.FixedZone(offset, sec), nil
}
