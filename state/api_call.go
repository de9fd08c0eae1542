package state

import (
	. "git.lolli.tech/lollipopkit/luacore/api"
	"git.lolli.tech/lollipopkit/luacore/binchunk"
	"git.lolli.tech/lollipopkit/luacore/compiler"
)

// http://www.lua.org/manual/5.2/manual.html#lua_load
//
// mode is accepted for API parity with lua_load but ignored: this
// interpreter always compiles text and always accepts a precompiled
// binary chunk, since spec §8 doesn't ask for PUC-Lua's "b"/"t"
// sandboxing knob.
func (t *Thread) Load(chunk []byte, chunkName, mode string) Status {
	var proto *binchunk.Prototype
	if binchunk.IsJSONChunk(chunk) {
		p, err := binchunk.UndumpJSON(chunk)
		if err != nil {
			t.frames.push(t.ls.intern(err.Error()))
			return StatusErrSyntax
		}
		proto = p
	} else if len(chunk) > 0 && chunk[0] == binchunk.Signature[0] {
		p, err := binchunk.Undump(chunk, nil)
		if err != nil {
			t.frames.push(t.ls.intern(err.Error()))
			return StatusErrSyntax
		}
		proto = p
	} else {
		p, err := compiler.Compile(string(chunk), chunkName)
		if err != nil {
			t.frames.push(t.ls.intern(err.Error()))
			return StatusErrSyntax
		}
		proto = p
	}

	c := newLuaClosure(proto)
	t.frames.push(c)
	if len(proto.Upvalues) > 0 {
		c.upvals[0] = &Upvalue{closed: t.ls.globals}
	}
	return StatusOK
}

// http://www.lua.org/manual/5.2/manual.html#lua_call
//
// Call is the synchronous, potentially Go-stack-recursive entry point
// used by host code and by AuxLib wrappers that need a result back
// before continuing their own logic. The CALL/TAILCALL opcode
// handlers do NOT go through here — they push a Frame directly (see
// Thread.callClosure) and let Thread.drive's own loop keep going, the
// flat path that makes yielding from arbitrary script depth possible.
// Call exists for the cases that can't be flat: a host embedding the
// interpreter invoking a Lua function directly, or a metamethod.
func (t *Thread) Call(nArgs, nResults int) {
	val := t.frames.get(-(nArgs + 1))

	c, ok := val.(*Closure)
	if !ok {
		if mf := t.ls.getMetafield(val, "__call"); mf != nil {
			if c, ok = mf.(*Closure); ok {
				t.frames.push(val)
				t.Insert(-(nArgs + 2))
				nArgs++
			}
		}
	}
	if !ok {
		panicError(t, runtimeErrorf("attempt to call a %s value", t.ls.typeNameOf(val)))
	}

	funcAndArgs := t.frames.popN(nArgs + 1)
	args := funcAndArgs[1:]
	caller := t.frames
	t.callClosure(c, args, nResults)
	if t.frames != caller {
		t.runUntilReturnTo(caller)
	}
}

// http://www.lua.org/manual/5.2/manual.html#lua_pcall
//
// PCall is the non-yieldable convenience form: it is built on top of
// Call's synchronous recursion, so — like any metamethod call — a yield
// underneath it is not preserved. Only msgh == 0 is handled: with a
// nonzero msgh no handler runs and the error is not caught; it
// propagates out of PCall. Script-level pcall/xpcall (pcallGo/xpcallGo,
// registered by OpenLibs) use the CPS form in protected_call.go instead
// and are fully yield-transparent; this method exists for host code
// that doesn't need that.
func (t *Thread) PCall(nArgs, nResults, msgh int) (status Status) {
	caller := t.frames
	status = StatusErrRun

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		uw, ok := r.(*unwind)
		if !ok || uw.kind != unwindError {
			panic(r)
		}
		if msgh != 0 {
			panic(r)
		}
		for t.frames != caller {
			t.popFrame()
		}
		t.frames.push(uw.err.Value)
	}()

	t.Call(nArgs, nResults)
	status = StatusOK
	return
}
