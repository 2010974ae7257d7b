package timesplit

import (
	"errors"
	"net/url"
	"testing"
	"time"
)

type fakeFormHost struct {
	composites map[string]ComposeFunc
}

func (f *fakeFormHost) BindComposite(name string, compose ComposeFunc) {
	if f.composites == nil {
		f.composites = map[string]ComposeFunc{}
	}
	f.composites[name] = compose
}

func TestRegisterComposite(t *testing.T) {
	s := newApptSplitter(t, Options{})
	host := &fakeFormHost{}
	if !s.Register(host) {
		t.Fatal("host should support composite binding")
	}
	compose, ok := host.composites["starts_at_time"]
	if !ok {
		t.Fatalf("starts_at_time is not registered, %v", host.composites)
	}
	v, err := compose(map[int]string{1: "2021", 2: "2", 3: "3", 4: "4", 5: "5"})
	if err != nil {
		t.Fatal(err)
	}
	expected := time.Date(2021, 2, 3, 4, 5, 0, 0, time.UTC)
	if v == nil || !v.Equal(expected) {
		t.Fatalf("expected %v, got %v", expected, v)
	}

	if s.Register(&appointment{}) {
		t.Fatal("appointment doesn't support composite binding")
	}
}

func TestComposeParts(t *testing.T) {
	s := newApptSplitter(t, Options{})

	v, err := s.ComposeParts(map[int]string{1: "", 2: " ", 3: ""})
	if err != nil {
		t.Fatal(err)
	}
	if v != nil {
		t.Fatalf("blank parts should compose to nil, got %v", v)
	}

	v, err = s.ComposeParts(map[int]string{1: "2020", 2: "3", 3: "15"})
	if err != nil {
		t.Fatal(err)
	}
	expected := time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC)
	if v == nil || !v.Equal(expected) {
		t.Fatalf("expected %v, got %v", expected, v)
	}

	// date parts default to the default instance
	v, err = s.ComposeParts(map[int]string{4: "10", 5: "45"})
	if err != nil {
		t.Fatal(err)
	}
	expected = time.Date(0, 1, 1, 10, 45, 0, 0, time.UTC)
	if v == nil || !v.Equal(expected) {
		t.Fatalf("expected %v, got %v", expected, v)
	}

	if _, err := s.ComposeParts(map[int]string{1: "abc"}); !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
	if _, err := s.ComposeParts(map[int]string{4: "24"}); !errors.Is(err, ErrIllegalArgument) {
		t.Fatalf("expected ErrIllegalArgument, got %v", err)
	}
}

func TestAssign(t *testing.T) {
	s := newApptSplitter(t, Options{})
	a := &appointment{}
	err := s.Assign(a, url.Values{
		"starts_at_date": {"2020-03-15"},
		"starts_at_time": {"14:30"},
		"title":          {"dentist"},
	})
	if err != nil {
		t.Fatal(err)
	}
	expected := time.Date(2020, 3, 15, 14, 30, 0, 0, time.UTC)
	if a.StartsAt == nil || !a.StartsAt.Equal(expected) {
		t.Fatalf("expected %v, got %v", expected, a.StartsAt)
	}
}

func TestAssignFields(t *testing.T) {
	s := newApptSplitter(t, Options{})
	a := &appointment{}
	err := s.Assign(a, url.Values{
		"starts_at_min":   {"45"},
		"starts_at_hour":  {"10"},
		"starts_at_day":   {"31"},
		"starts_at_month": {"12"},
		"starts_at_year":  {"1999"},
	})
	if err != nil {
		t.Fatal(err)
	}
	expected := time.Date(1999, 12, 31, 10, 45, 0, 0, time.UTC)
	if a.StartsAt == nil || !a.StartsAt.Equal(expected) {
		t.Fatalf("expected %v, got %v", expected, a.StartsAt)
	}
}

func TestAssignComposite(t *testing.T) {
	s := newApptSplitter(t, Options{})
	a := &appointment{}
	err := s.Assign(a, url.Values{
		"starts_at_time(1i)": {"2021"},
		"starts_at_time(2i)": {"2"},
		"starts_at_time(3i)": {"3"},
		"starts_at_time(4i)": {"4"},
		"starts_at_time(5i)": {"5"},
		"starts_at_min":      {"30"},
	})
	if err != nil {
		t.Fatal(err)
	}
	expected := time.Date(2021, 2, 3, 4, 30, 0, 0, time.UTC)
	if a.StartsAt == nil || !a.StartsAt.Equal(expected) {
		t.Fatalf("expected %v, got %v", expected, a.StartsAt)
	}

	b := &appointment{}
	err = s.Assign(b, url.Values{"starts_at_time(1i)": {""}, "starts_at_time(2i)": {""}})
	if err != nil {
		t.Fatal(err)
	}
	if b.StartsAt != nil || b.writes != 0 {
		t.Fatalf("blank composite should not change the attribute, got %v", b.StartsAt)
	}
}

func TestAssignError(t *testing.T) {
	s := newApptSplitter(t, Options{})
	a := &appointment{}
	err := s.Assign(a, url.Values{"starts_at_date": {"garbage"}})
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestGetSetByName(t *testing.T) {
	s := newApptSplitter(t, Options{DateFormat: "%Y/%m/%d"})
	a := &appointment{}

	if _, ok := s.Get(a, "starts_at_hour"); ok {
		t.Fatal("hour should be absent")
	}
	if v, ok := s.Get(a, "starts_at_or_new"); !ok || !v.(time.Time).Equal(DefaultTime()) {
		t.Fatalf("unexpected or_new %v", v)
	}

	ok, err := s.Set(a, "starts_at_date", "2020/03/15")
	if err != nil || !ok {
		t.Fatalf("ok: %v, err: %v", ok, err)
	}
	ok, err = s.Set(a, "starts_at_hour", []string{"9", "11"})
	if err != nil || !ok {
		t.Fatalf("ok: %v, err: %v", ok, err)
	}
	if ok, _ := s.Set(a, "ends_at_hour", "1"); ok {
		t.Fatal("ends_at_hour is not a derived setter of starts_at")
	}
	if ok, _ := s.Set(a, "starts_at_or_new", "1"); ok {
		t.Fatal("starts_at_or_new is read-only")
	}

	if v, ok := s.Get(a, "starts_at_hour"); !ok || v != 11 {
		t.Fatalf("expected 11, got %v", v)
	}
	if v, ok := s.Get(a, "starts_at_date"); !ok || v != "2020/03/15" {
		t.Fatalf("expected 2020/03/15, got %v", v)
	}
	if _, ok := s.Get(a, "starts_at_second"); ok {
		t.Fatal("starts_at_second is not a derived getter")
	}
}
