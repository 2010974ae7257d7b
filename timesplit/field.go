package timesplit

import (
	"database/sql"
	"reflect"
	"time"

	"github.com/curtisnewbie/timesplit/util"
	"github.com/curtisnewbie/timesplit/util/utillog"
	"gorm.io/gorm/schema"
)

var (
	timeType      = reflect.TypeOf(time.Time{})
	timePtrType   = reflect.TypeOf((*time.Time)(nil))
	etimeType     = reflect.TypeOf(util.ETime{})
	etimePtrType  = reflect.TypeOf((*util.ETime)(nil))
	nullTimeType  = reflect.TypeOf(sql.NullTime{})
	defaultNaming = schema.NamingStrategy{}
)

/*
Build the base attribute getter and setter for a struct field, T must be a pointer to struct.

Supported field types:

	time.Time, util.ETime - zero value is treated as absent
	*time.Time, *util.ETime
	sql.NullTime
*/
func ForField[T any](fieldName string) (GetFunc[T], SetFunc[T], error) {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	if rt.Kind() != reflect.Pointer || rt.Elem().Kind() != reflect.Struct {
		return nil, nil, ErrIllegalArgument.WithInternalMsg("%v is not a pointer to struct", rt)
	}
	f, ok := rt.Elem().FieldByName(fieldName)
	if !ok || !f.IsExported() {
		return nil, nil, ErrIllegalArgument.WithInternalMsg("%v has no exported field '%s'", rt.Elem(), fieldName)
	}
	idx := f.Index

	field := func(rec T) (reflect.Value, bool) {
		rv := reflect.ValueOf(rec)
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		return rv.Elem().FieldByIndex(idx), true
	}

	var get GetFunc[T]
	var set SetFunc[T]

	switch f.Type {
	case timeType:
		get = func(rec T) *time.Time {
			fv, ok := field(rec)
			if !ok {
				return nil
			}
			t := fv.Interface().(time.Time)
			if t.IsZero() {
				return nil
			}
			return &t
		}
		set = func(rec T, t *time.Time) {
			if fv, ok := field(rec); ok {
				var v time.Time
				if t != nil {
					v = *t
				}
				fv.Set(reflect.ValueOf(v))
			}
		}
	case timePtrType:
		get = func(rec T) *time.Time {
			fv, ok := field(rec)
			if !ok || fv.IsNil() {
				return nil
			}
			t := *(fv.Interface().(*time.Time))
			return &t
		}
		set = func(rec T, t *time.Time) {
			if fv, ok := field(rec); ok {
				fv.Set(reflect.ValueOf(t))
			}
		}
	case etimeType:
		get = func(rec T) *time.Time {
			fv, ok := field(rec)
			if !ok {
				return nil
			}
			et := fv.Interface().(util.ETime)
			if et.IsZero() {
				return nil
			}
			t := et.ToTime()
			return &t
		}
		set = func(rec T, t *time.Time) {
			if fv, ok := field(rec); ok {
				var v util.ETime
				if t != nil {
					v = util.ToETime(*t)
				}
				fv.Set(reflect.ValueOf(v))
			}
		}
	case etimePtrType:
		get = func(rec T) *time.Time {
			fv, ok := field(rec)
			if !ok || fv.IsNil() {
				return nil
			}
			t := fv.Interface().(*util.ETime).ToTime()
			return &t
		}
		set = func(rec T, t *time.Time) {
			if fv, ok := field(rec); ok {
				var v *util.ETime
				if t != nil {
					et := util.ToETime(*t)
					v = &et
				}
				fv.Set(reflect.ValueOf(v))
			}
		}
	case nullTimeType:
		get = func(rec T) *time.Time {
			fv, ok := field(rec)
			if !ok {
				return nil
			}
			nt := fv.Interface().(sql.NullTime)
			if !nt.Valid {
				return nil
			}
			return &nt.Time
		}
		set = func(rec T, t *time.Time) {
			if fv, ok := field(rec); ok {
				var v sql.NullTime
				if t != nil {
					v = sql.NullTime{Time: *t, Valid: true}
				}
				fv.Set(reflect.ValueOf(v))
			}
		}
	default:
		return nil, nil, ErrIllegalArgument.WithInternalMsg("field '%s' of type %v is not a supported timestamp type", fieldName, f.Type)
	}

	wrappedSet := func(rec T, t *time.Time) {
		if reflect.ValueOf(rec).IsNil() {
			utillog.ErrorLog("Unable to set '%s', record is nil", fieldName)
			return
		}
		set(rec, t)
	}
	return get, wrappedSet, nil
}

// Create Splitter for a struct field, T must be a pointer to struct.
//
// The attribute name is the field's column name, i.e., the `gorm:"column:..."` tag or the snake_case field name.
func SplitField[T any](fieldName string, opts Options) (*Splitter[T], error) {
	get, set, err := ForField[T](fieldName)
	if err != nil {
		return nil, err
	}
	return New(fieldAttrName[T](fieldName), get, set, opts)
}

// Same as SplitField but panics on error.
func MustSplitField[T any](fieldName string, opts Options) *Splitter[T] {
	s, err := SplitField[T](fieldName, opts)
	if err != nil {
		panic(err)
	}
	return s
}

func fieldAttrName[T any](fieldName string) string {
	rt := reflect.TypeOf((*T)(nil)).Elem().Elem()
	if f, ok := rt.FieldByName(fieldName); ok {
		tags := schema.ParseTagSetting(f.Tag.Get("gorm"), ";")
		if col, ok := tags["COLUMN"]; ok && !util.IsBlankStr(col) {
			return col
		}
	}
	return defaultNaming.ColumnName("", fieldName)
}
