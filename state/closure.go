package state

import (
	"fmt"

	. "git.lolli.tech/lollipopkit/luacore/api"
	"git.lolli.tech/lollipopkit/luacore/binchunk"
)

// Upvalue is a single closed-over variable, open while the defining
// frame is still live (pointing straight at that frame's register
// slot) and closed when the frame is popped or the loop block that
// declared it exits — spec §3's "upvalue: open while the defining
// frame is live, closed (boxed) once it returns."
type Upvalue struct {
	open   *any
	closed any
}

func (uv *Upvalue) get() any {
	if uv.open != nil {
		return *uv.open
	}
	return uv.closed
}

func (uv *Upvalue) set(v any) {
	if uv.open != nil {
		*uv.open = v
		return
	}
	uv.closed = v
}

func (uv *Upvalue) close() {
	if uv.open != nil {
		uv.closed = *uv.open
		uv.open = nil
	}
}

// Closure is either a Lua closure (proto != nil) or a Go closure
// (goFunc != nil), matching the teacher's single-struct-two-forms
// shape rather than an interface with two implementations — the VM's
// CALL/TAILCALL handlers branch on which field is set exactly once,
// at the call site, instead of paying an interface dispatch per
// instruction.
type Closure struct {
	proto  *binchunk.Prototype
	goFunc GoFunction
	upvals []*Upvalue
	name   string // best-effort, for traceback; set by Register
}

func newLuaClosure(proto *binchunk.Prototype) *Closure {
	c := &Closure{proto: proto}
	if n := len(proto.Upvalues); n > 0 {
		c.upvals = make([]*Upvalue, n)
	}
	return c
}

func newGoClosure(f GoFunction, nUpvals int) *Closure {
	c := &Closure{goFunc: f}
	if nUpvals > 0 {
		c.upvals = make([]*Upvalue, nUpvals)
	}
	return c
}

func (c *Closure) isGo() bool {
	return c.goFunc != nil
}

func (c *Closure) String() string {
	if c.goFunc != nil {
		if c.name != "" {
			return fmt.Sprintf("function: builtin#%s", c.name)
		}
		return fmt.Sprintf("function: builtin: %p", c.goFunc)
	}
	return fmt.Sprintf("function: %p", c.proto)
}
