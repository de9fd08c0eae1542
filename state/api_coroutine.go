package state

import . "git.lolli.tech/lollipopkit/luacore/api"

// http://www.lua.org/manual/5.2/manual.html#lua_newthread
func (t *Thread) NewThread() State {
	nt := newThread(t.ls, t)
	t.frames.push(nt)
	return nt
}

// http://www.lua.org/manual/5.2/manual.html#lua_resume
//
// Resume runs on the calling goroutine like every other call in this
// interpreter: spec §4.3/§9 rule out a goroutine (or any native stack)
// per coroutine, so "resuming" a suspended thread is just calling
// Thread.drive again on its already-built frame stack — the same
// mechanism an ordinary Lua-to-Lua call uses, just re-entered instead
// of entered for the first time.
func (t *Thread) Resume(from State, nArgs int) Status {
	fromThread, _ := from.(*Thread)
	var args []any
	if fromThread != nil {
		args = fromThread.frames.popN(nArgs)
	}

	if t.status == ThreadInitial {
		val := t.frames.pop()
		c, ok := val.(*Closure)
		if !ok {
			if fromThread != nil {
				fromThread.frames.push(t.ls.intern("cannot start coroutine: not a function"))
			}
			return StatusErrRun
		}
		t.callClosure(c, args, MultiRet)
		args = nil
	}

	results, err := t.resume(fromThread, args)

	if fromThread != nil {
		if err != nil {
			fromThread.frames.push(err.Value)
		} else {
			fromThread.frames.check(len(results))
			fromThread.frames.pushN(results, len(results))
		}
	}
	if err != nil {
		return StatusErrRun
	}
	if t.status == ThreadDead {
		return StatusOK
	}
	return StatusYield
}

// http://www.lua.org/manual/5.2/manual.html#lua_yield
func (t *Thread) Yield(nResults int) Status {
	vals := t.frames.popN(nResults)
	t.yield(vals)
	return StatusYield
}

func (t *Thread) IsYieldable() bool {
	return t.caller != nil
}

// http://www.lua.org/manual/5.2/manual.html#lua_status
func (t *Thread) ThreadStatus() ThreadStatus {
	return t.status
}

func (t *Thread) GetStack() bool {
	return t.frames != nil && t.frames.prev != nil
}
