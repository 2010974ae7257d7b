package util

import (
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestLogFormatter(t *testing.T) {
	f := &LogFormatter{}
	e := &logrus.Entry{
		Time:    time.Date(2020, 3, 15, 14, 30, 0, 0, time.Local),
		Level:   logrus.InfoLevel,
		Message: "hello",
		Data:    logrus.Fields{callerField: "timesplit.New"},
	}
	b, err := f.Format(e)
	if err != nil {
		t.Fatal(err)
	}
	s := string(b)
	t.Log(s)
	if !strings.HasPrefix(s, "2020-03-15 14:30:00.000 INFO  timesplit.New") {
		t.Fatalf("unexpected log line '%s'", s)
	}
	if !strings.HasSuffix(s, " : hello\n") {
		t.Fatalf("unexpected log line '%s'", s)
	}
}

func TestParseLogLevel(t *testing.T) {
	if l, ok := ParseLogLevel("debug"); !ok || l != logrus.DebugLevel {
		t.Fatalf("unexpected %v, %v", l, ok)
	}
	if _, ok := ParseLogLevel("verbose"); ok {
		t.Fatal("verbose is not a log level")
	}
}

func TestShortFnName(t *testing.T) {
	if v := shortFnName("github.com/curtisnewbie/timesplit/timesplit.New[...]"); v != "timesplit.New[...]" {
		t.Fatalf("unexpected %v", v)
	}
}
