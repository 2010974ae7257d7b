package timesplit

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/curtisnewbie/timesplit/util"
)

type booking struct {
	StartsAt  *time.Time
	EndsAt    time.Time
	CheckedIn util.ETime
	PaidAt    *util.ETime
	CancelAt  sql.NullTime
	Begin     *time.Time `gorm:"column:begin_at;not null"`
	Note      string
}

func TestSplitFieldNames(t *testing.T) {
	s := MustSplitField[*booking]("StartsAt", Options{})
	if s.Attr() != "starts_at" {
		t.Fatalf("expected starts_at, got %v", s.Attr())
	}
	s = MustSplitField[*booking]("Begin", Options{})
	if s.Attr() != "begin_at" {
		t.Fatalf("expected begin_at, got %v", s.Attr())
	}
	s = MustSplitField[*booking]("CheckedIn", Options{})
	if s.Attr() != "checked_in" {
		t.Fatalf("expected checked_in, got %v", s.Attr())
	}
}

func TestSplitFieldUnsupported(t *testing.T) {
	if _, err := SplitField[*booking]("Note", Options{}); !errors.Is(err, ErrIllegalArgument) {
		t.Fatalf("expected ErrIllegalArgument, got %v", err)
	}
	if _, err := SplitField[*booking]("Missing", Options{}); !errors.Is(err, ErrIllegalArgument) {
		t.Fatalf("expected ErrIllegalArgument, got %v", err)
	}
	if _, err := SplitField[booking]("StartsAt", Options{}); !errors.Is(err, ErrIllegalArgument) {
		t.Fatalf("expected ErrIllegalArgument, got %v", err)
	}
}

func TestSplitFieldTypes(t *testing.T) {
	for _, field := range []string{"StartsAt", "EndsAt", "CheckedIn", "PaidAt", "CancelAt"} {
		s, err := SplitField[*booking](field, Options{})
		if err != nil {
			t.Fatal(err)
		}
		b := &booking{}
		if _, ok := s.Time(b); ok {
			t.Fatalf("%s should be absent", field)
		}
		if err := s.SetDate(b, "2020-03-15"); err != nil {
			t.Fatal(err)
		}
		if err := s.SetTime(b, "14:30"); err != nil {
			t.Fatal(err)
		}
		v, ok := s.Time(b)
		if !ok {
			t.Fatalf("%s should be present", field)
		}
		expected := time.Date(2020, 3, 15, 14, 30, 0, 0, time.UTC)
		if !v.Equal(expected) {
			t.Fatalf("%s: expected %v, got %v", field, expected, v)
		}
		t.Logf("%s: %+v", field, b)
	}
}

func TestSplitFieldETimeKeepsType(t *testing.T) {
	s := MustSplitField[*booking]("PaidAt", Options{})
	b := &booking{}
	if err := s.SetYear(b, 2022); err != nil {
		t.Fatal(err)
	}
	if b.PaidAt == nil || b.PaidAt.Year() != 2022 {
		t.Fatalf("unexpected PaidAt %v", b.PaidAt)
	}

	s = MustSplitField[*booking]("CancelAt", Options{})
	if err := s.SetMonth(b, 2); err != nil {
		t.Fatal(err)
	}
	if !b.CancelAt.Valid || b.CancelAt.Time.Month() != time.February {
		t.Fatalf("unexpected CancelAt %+v", b.CancelAt)
	}
}

func TestSplitFieldNilRecord(t *testing.T) {
	s := MustSplitField[*booking]("StartsAt", Options{})
	var b *booking
	if _, ok := s.Hour(b); ok {
		t.Fatal("nil record should be absent")
	}
	if err := s.SetHour(b, "10"); err != nil {
		t.Fatal(err)
	}
}
