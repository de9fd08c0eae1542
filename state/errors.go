package state

import "fmt"

// LuaError is a Lua-level error: a Value (usually a string, but
// error() accepts anything) plus the traceback captured at the point
// it was raised. It is carried as a Go panic value between the point
// it's raised and the nearest pcall/xpcall boundary or the top-level
// Resume/Call caller — never used for coroutine yield, which uses the
// distinct unwind type below so a pcall can't accidentally swallow a
// yield signal meant for an enclosing Resume.
type LuaError struct {
	Value     any
	Traceback []string

	// handlerRan/handlerResult record that an xpcall message handler
	// already ran against this error at the error site (see Thread.
	// doError/runErrorHandler); pcallState.resolve consults these
	// instead of invoking the handler a second time once the stack has
	// unwound.
	handlerRan    bool
	handlerResult any
}

func (e *LuaError) Error() string {
	if s, ok := e.Value.(*istring); ok {
		return s.s
	}
	return fmt.Sprintf("%v", e.Value)
}

func newLuaError(val any) *LuaError {
	return &LuaError{Value: val}
}

func runtimeErrorf(format string, a ...any) *LuaError {
	return &LuaError{Value: &istring{s: fmt.Sprintf(format, a...)}}
}

// CompileError describes a chunk the compiler rejects, as a Go error
// distinct from a runtime LuaError. Load does not return it: on a
// rejected chunk Load pushes the message and returns StatusErrSyntax.
type CompileError struct {
	msg string
}

func (e *CompileError) Error() string { return e.msg }

// unwindKind distinguishes the two non-local control-flow signals the
// interpreter ever panics with: a Lua error propagating toward a
// pcall/Resume boundary, and a coroutine yield propagating toward the
// Resume that will suspend. They share the panic/recover plumbing
// the teacher already uses for errors, but pcall's recover must never
// treat a yield as an error it can swallow.
type unwindKind int

const (
	unwindError unwindKind = iota
	unwindYield
)

// unwind is the panic payload used for both kinds. Lua errors could be
// panicked directly as *LuaError, but wrapping both in the same type
// keeps every recover site able to tell "is this mine to catch" with
// one type assertion instead of two.
type unwind struct {
	kind    unwindKind
	err     *LuaError // set when kind == unwindError
	yielded []any     // set when kind == unwindYield
	thread  *Thread   // the Thread this yield/error belongs to
}

func panicError(t *Thread, err *LuaError) {
	if err.Traceback == nil {
		err.Traceback = []string{t.Traceback("", 0)}
	}
	panic(&unwind{kind: unwindError, err: err, thread: t})
}

func panicYield(t *Thread, vals []any) {
	panic(&unwind{kind: unwindYield, yielded: vals, thread: t})
}
