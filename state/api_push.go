package state

import (
	"fmt"

	. "git.lolli.tech/lollipopkit/luacore/api"
)

func (t *Thread) PushNil()          { t.frames.push(nil) }
func (t *Thread) PushBoolean(b bool) { t.frames.push(b) }

// http://www.lua.org/manual/5.2/manual.html#lua_pushinteger
//
// Lua 5.2 values are always float64 (spec Non-goals rule out the 5.3
// integer subtype); PushInteger exists for host convenience and
// stores the float64 conversion.
func (t *Thread) PushInteger(n int64) { t.frames.push(float64(n)) }
func (t *Thread) PushNumber(n float64) { t.frames.push(n) }

func (t *Thread) PushString(s string) {
	t.frames.push(t.ls.intern(s))
}

func (t *Thread) PushFString(format string, a ...any) {
	t.PushString(fmt.Sprintf(format, a...))
}

func (t *Thread) PushGoFunction(f GoFunction) {
	t.frames.push(newGoClosure(f, 0))
}

func (t *Thread) PushGoClosure(f GoFunction, n int) {
	closure := newGoClosure(f, n)
	for i := n; i > 0; i-- {
		v := t.frames.pop()
		closure.upvals[i-1] = &Upvalue{closed: v}
	}
	t.frames.push(closure)
}

func (t *Thread) PushGlobalTable() {
	t.frames.push(t.ls.globals)
}

func (t *Thread) PushThread() bool {
	t.frames.push(t)
	return t.ls.isMainThread(t)
}

// Push is the catch-all host-facing convenience spec §6 asks for: push
// whatever Go value most naturally maps onto a Lua Value.
func (t *Thread) Push(item any) {
	switch v := item.(type) {
	case nil:
		t.PushNil()
	case bool:
		t.PushBoolean(v)
	case int:
		t.PushInteger(int64(v))
	case int64:
		t.PushInteger(v)
	case float64:
		t.PushNumber(v)
	case string:
		t.PushString(v)
	case GoFunction:
		t.PushGoFunction(v)
	default:
		t.frames.push(v)
	}
}
