package errs

import (
	"errors"
	"strings"
	"testing"
)

func TestErrIs(t *testing.T) {
	cause := errors.New("bad input")
	err := ErrParseError.Wrapf(cause, "value '%s'", "abc")
	if !errors.Is(err, ErrParseError) {
		t.Fatal("should be ErrParseError")
	}
	if errors.Is(err, ErrIllegalArgument) {
		t.Fatal("should not be ErrIllegalArgument")
	}
	if !errors.Is(err, cause) {
		t.Fatal("should wrap cause")
	}
	if err.Error() != "Parse Error, value 'abc', bad input" {
		t.Fatalf("unexpected message '%v'", err.Error())
	}

	var me *MisoErr
	if !errors.As(err, &me) || me.Code() != ErrCodeParseError || me.InternalMsg() != "value 'abc'" {
		t.Fatalf("unexpected %#v", me)
	}
	if ErrParseError.InternalMsg() != "" {
		t.Fatal("shared error should not be modified")
	}
}

func TestWrapNil(t *testing.T) {
	if ErrParseError.Wrapf(nil, "x") != nil {
		t.Fatal("wrapping nil should return nil")
	}
	if WrapErr(nil) != nil || WrapErrf(nil, "x") != nil {
		t.Fatal("wrapping nil should return nil")
	}
}

func TestErrorStackTrace(t *testing.T) {
	err := WrapErrf(errors.New("boom"), "failed to do %s", "something")
	st := ErrorStackTrace(err)
	t.Log(st)
	if !strings.Contains(st, "TestErrorStackTrace") {
		t.Fatal("stack trace should include the caller")
	}
	if ErrorStackTrace(nil) != "nil" {
		t.Fatal("unexpected stack trace for nil")
	}
}
