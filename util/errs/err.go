package errs

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
)

const (
	ErrCodeIllegalArgument string = "ILLEGAL_ARGUMENT"
	ErrCodeParseError      string = "PARSE_ERROR"
)

var (
	ErrIllegalArgument *MisoErr = NewErrfCode(ErrCodeIllegalArgument, "Illegal Argument")
	ErrParseError      *MisoErr = NewErrfCode(ErrCodeParseError, "Parse Error")
)

// Coded error with stacktrace.
//
//	Use NewErrfCode(...) to instantiate.
type MisoErr struct {
	code        string // error code.
	msg         string // error message.
	internalMsg string // extra context, e.g., the offending value.
	stack       string
	err         error
}

func (e *MisoErr) InternalMsg() string {
	return e.internalMsg
}

func (e *MisoErr) Msg() string {
	return e.msg
}

func (e *MisoErr) Code() string {
	return e.code
}

func (e *MisoErr) StackTrace() string {
	return e.stack
}

// Create new *MisoErr to wrap the cause error with internal message.
//
// if cause is nil, nil is returned.
func (e *MisoErr) Wrapf(cause error, internalMsg string, args ...any) error {
	if cause == nil {
		return nil
	}
	n := e.copyNew()
	n.err = cause
	n.withStack()
	n.internalMsg = sprintf(internalMsg, args...)
	return n
}

func (e *MisoErr) WithInternalMsg(msg string, args ...any) *MisoErr {
	n := e.copyNew()
	n.withStack()
	n.internalMsg = sprintf(msg, args...)
	return n
}

func (e *MisoErr) copyNew() *MisoErr {
	n := *e
	return &n
}

func (e *MisoErr) Error() string {
	tok := make([]string, 0, 3)
	if e.msg != "" {
		tok = append(tok, e.msg)
	}
	if e.internalMsg != "" {
		tok = append(tok, e.internalMsg)
	}
	if e.err != nil {
		tok = append(tok, e.err.Error())
	}
	return strings.Join(tok, ", ")
}

// Implements *MisoErr Is check.
//
// Returns true, if both are *MisoErr and the code matches, so errors derived from
// the same *MisoErr (via Wrapf or WithInternalMsg) all match it.
//
//	var e1 = ErrParseError.WithInternalMsg(...)
//	errors.Is(e1, ErrParseError) // true
func (e *MisoErr) Is(target error) bool {
	if tme, ok := target.(*MisoErr); ok && e.code != "" && e.code == tme.code {
		return true
	}
	return false
}

func (e *MisoErr) Unwrap() error {
	return e.err
}

func (e *MisoErr) withStack() *MisoErr {
	e.stack = stack(4)
	return e
}

// Create new *MisoErr with message and error code.
func NewErrfCode(code string, msg string, args ...any) *MisoErr {
	me := &MisoErr{msg: sprintf(msg, args...), code: code}
	me.withStack()
	return me
}

// Wrap an error to create new *MisoErr with stacktrace.
//
// If err is nil, nil is returned.
//
// If err is *MisoErr, err is returned directly.
func WrapErr(err error) error {
	if err == nil {
		return nil
	}
	if me, ok := err.(*MisoErr); ok {
		return me
	}
	me := &MisoErr{err: err}
	me.withStack()
	return me
}

// Wrap an error to create new MisoErr with message.
//
// If the wrapped err is nil, nil is returned.
func WrapErrf(err error, msg string, args ...any) error {
	if err == nil {
		return nil
	}
	me := &MisoErr{msg: sprintf(msg, args...), err: err}
	me.withStack()
	return me
}

func UnwrapErrStack(err error) (string, bool) {
	var stack string
	for ue := err; ue != nil; ue = errors.Unwrap(ue) {
		if me, ok := ue.(*MisoErr); ok && me != nil && me.stack != "" {
			stack = me.stack
		}
	}
	return stack, stack != ""
}

func ErrorStackTrace(err error) string {
	if err == nil {
		return "nil"
	}
	m := err.Error()
	if st, ok := UnwrapErrStack(err); ok {
		m += st
	}
	return m
}

func sprintf(msg string, args ...any) string {
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

var stackPool = sync.Pool{
	New: func() any {
		var v []uintptr = make([]uintptr, 50)
		return &v
	},
}

func stack(n int) string {
	stack := stackPool.Get().(*[]uintptr)
	defer func() {
		clear(*stack)
		stackPool.Put(stack)
	}()

	length := runtime.Callers(n, *stack)
	frames := runtime.CallersFrames((*stack)[:length])
	b := strings.Builder{}

	for {
		f, next := frames.Next()
		b.WriteString(fmt.Sprintf("\n\t%v\n\t\t%v:%v", f.Function, f.File, f.Line))
		if !next {
			break
		}
	}
	return b.String()
}
