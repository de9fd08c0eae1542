package state

import (
	. "git.lolli.tech/lollipopkit/luacore/api"
	"git.lolli.tech/lollipopkit/luacore/logger"
	"git.lolli.tech/lollipopkit/luacore/vm"
)

// continuation is how a Go function survives a nested call across a
// yield without recursing the Go stack: instead of calling back into
// Lua directly, it pushes the callee Frame and installs itself as a
// bare continuation Frame underneath it. When that callee eventually
// returns or errors, Thread.drive invokes the continuation instead of
// resuming bytecode dispatch on it. pcall/xpcall (protected_call.go)
// are the only stdlib functions that need this; every other
// GoFunction runs synchronously to completion in its own frame, which
// callClosure pushes before the call and pops after it.
type continuation func(t *Thread, results []any, err *LuaError) contResult

type contResult struct {
	done    bool
	results []any
	err     *LuaError
}

// Thread is a Lua thread: the main thread, or a coroutine created by
// coroutine.create. Its frame stack is a linked list of Frames
// (Frame.prev), never a goroutine — resuming a Thread means
// calling Thread.drive on the calling goroutine and returning when the
// frame stack goes idle (empties, yields, or errors), exactly as if
// resume/yield were an ordinary function call pair. No OS thread, no
// native stack segment, no channel handoff.
type Thread struct {
	ls     *LuaState
	status ThreadStatus

	frames *Frame
	caller *Thread

	pendingOut []any     // values delivered out of drive(): yield args or final return values
	pendingErr *LuaError // set when drive() stopped because of an uncaught error

	hookFn   GoFunction
	hookMask byte
	hookCnt  int
	hookLine int // last line fireHook reported, for suppressing repeats on the same line
	hookLeft int // instructions left before the next HookCount fire
	inHook   bool
}

func newThread(ls *LuaState, creator *Thread) *Thread {
	t := &Thread{ls: ls, status: ThreadInitial, caller: creator}
	return t
}

func (t *Thread) pushFrame(f *Frame) {
	f.prev = t.frames
	t.frames = f
}

func (t *Thread) popFrame() *Frame {
	f := t.frames
	t.frames = f.prev
	f.prev = nil
	return f
}

// pushContinuation installs a bare bookkeeping frame (no closure, no
// code) that drive() recognizes by closure == nil and resolves by
// invoking cont rather than fetching an instruction from it. Used
// when the calling GoFunction's own frame has already been popped
// (see installContinuation) or when a continuation's resolve callback
// chains into another protected sub-call.
func (t *Thread) pushContinuation(cont continuation) *Frame {
	f := &Frame{thread: t, cont: cont}
	t.pushFrame(f)
	return f
}

// installContinuation is called from inside a running GoFunction body
// (pcall/xpcall) that wants to turn itself into a continuation rather
// than return synchronously: it pops its own just-pushed Frame and
// replaces it in the same stack position with a continuation Frame,
// so callClosure's caller sees the frame stack shaped exactly as if
// the GoFunction had never run to completion at all.
func (t *Thread) installContinuation(cont continuation) {
	t.popFrame()
	t.pushContinuation(cont)
}

// callClosure pushes a new activation record for closure over args
// and, for a Go closure, runs it to completion immediately — this is
// the "CALL a function" primitive every CALL/TAILCALL opcode handler
// and every auxlib Call wrapper goes through. A Go closure that calls
// installContinuation instead of returning normally (pcall, xpcall)
// leaves the frame stack rearranged when goFunc returns; callClosure
// detects that by checking whether its own pushed frame is still on
// top and, if not, simply leaves the stack as the GoFunction left it
// for Thread.drive to keep stepping.
func (t *Thread) callClosure(closure *Closure, args []any, nExpected int) {
	if closure.isGo() {
		f := newFrame(len(args)+8, t)
		f.closure = closure
		f.pushN(args, len(args))
		t.pushFrame(f)
		n := closure.goFunc(t)
		if t.frames != f {
			return // rearranged into a continuation; drive() takes over
		}
		results := f.popN(n)
		t.popFrame()
		t.deliver(results, nExpected)
		return
	}

	proto := closure.proto
	nRegs := int(proto.MaxStackSize)
	nParams := int(proto.NumParams)

	f := newFrame(nRegs, t)
	f.closure = closure
	f.nExpected = nExpected
	f.pushN(args, nParams)
	f.top = nRegs
	if len(args) > nParams && proto.IsVararg != 0 {
		f.varargs = args[nParams:]
	}
	t.pushFrame(f)
	t.fireHook(HookCall, "call", -1)
}

// deliver copies results into whatever sits below the frame that just
// produced them — either the caller's registers for an ordinary
// Lua-to-Lua return, or a continuation's input for a protected call.
func (t *Thread) deliver(results []any, nExpected int) {
	if t.frames == nil {
		t.status = ThreadDead
		t.pendingOut = results
		return
	}
	if t.frames.cont != nil {
		t.resolveContinuation(results, nil)
		return
	}
	caller := t.frames
	caller.check(len(results))
	caller.pushN(results, nExpected)
}

// doReturn is called by the RETURN opcode handler: pop the returning
// frame, close any of its upvalues still open, and hand its results
// to whatever is underneath.
func (t *Thread) doReturn(results []any) {
	t.fireHook(HookReturn, "return", -1)
	f := t.popFrame()
	f.closeUpvalues(0)
	nExpected := MultiRet
	if f.nExpected != MultiRet {
		nExpected = f.nExpected
	}
	t.deliver(results, nExpected)
}

// doError is invoked for a Lua-level error: unwind frames until a
// continuation frame catches it (pcall/xpcall) or the stack empties,
// in which case the error escapes this Thread's Resume entirely.
//
// An xpcall's message handler runs before any of that unwinding
// happens: nearestContinuation finds the protected boundary by peeking
// down the frame chain without popping anything, so if it carries an
// errHandler, runErrorHandler invokes it right here, on top of the
// still-fully-intact stack between the error site and the boundary.
// That is what lets debug.traceback (or any other frame-walking call)
// made from inside the handler see the error site, matching
// xpcall's "handler runs before the stack unwinds" contract.
func (t *Thread) doError(err *LuaError) {
	if target := t.nearestContinuation(); target != nil && target.errHandler != nil && !err.handlerRan {
		t.runErrorHandler(target.errHandler, err)
	}
	for t.frames != nil {
		if t.frames.cont != nil {
			t.resolveContinuation(nil, err)
			return
		}
		t.popFrame()
	}
	t.status = ThreadDead
	t.pendingErr = err
}

// nearestContinuation peeks down the frame chain for the nearest
// continuation frame (an installed pcall/xpcall boundary) without
// popping anything.
func (t *Thread) nearestContinuation() *Frame {
	for f := t.frames; f != nil; f = f.prev {
		if f.cont != nil {
			return f
		}
	}
	return nil
}

// runErrorHandler drives handler to completion synchronously, the
// same callMetaFn pattern metamethod.go uses, with the error site's
// frames still stacked below it. A failure inside the handler itself
// (an error, or an attempted yield) is caught here and degrades to
// reporting the handler's own failure as the result, mirroring
// lua_pcall's "error in error handling" surface rather than
// compounding it.
func (t *Thread) runErrorHandler(handler *Closure, err *LuaError) {
	caller := t.frames
	defer func() {
		if r := recover(); r != nil {
			uw, ok := r.(*unwind)
			if !ok {
				panic(r)
			}
			t.frames = caller
			err.handlerRan = true
			err.handlerResult = err.Value
			if uw.kind == unwindError {
				err.handlerResult = uw.err.Value
			}
		}
	}()
	t.callClosure(handler, []any{err.Value}, 1)
	t.runUntilReturnTo(caller)
	err.handlerRan = true
	err.handlerResult = caller.pop()
}

func (t *Thread) resolveContinuation(results []any, err *LuaError) {
	f := t.popFrame()
	res := f.cont(t, results, err)
	if res.done {
		if res.err != nil {
			t.doError(res.err)
			return
		}
		t.deliver(res.results, MultiRet)
		return
	}
	// continuation pushed another protected sub-call; it re-installed
	// itself (or a fresh continuation) as part of producing res.
}

// drive runs bytecode until the thread's frame stack goes idle: the
// stack empties (natural return), a yield unwinds out, or an error
// unwinds past every continuation frame. It never recurses: each
// CALL/TAILCALL pushes a Frame on t.frames and this same loop keeps
// going, so yielding from any depth is just "stop looping," not
// "unwind N Go stack frames."
func (t *Thread) drive() {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		uw, ok := r.(*unwind)
		if !ok {
			panic(r)
		}
		switch uw.kind {
		case unwindYield:
			t.status = ThreadSuspended
			t.pendingOut = uw.yielded
		case unwindError:
			t.doError(uw.err)
		}
	}()

	for {
		f := t.frames
		if f == nil {
			return
		}
		if f.closure == nil {
			// a bare continuation left at top with nothing pending
			// above it: resolve it with no results (shouldn't
			// normally happen — callClosure/doReturn always resolve
			// continuations before leaving one exposed — but staying
			// defensive costs nothing).
			t.resolveContinuation(nil, nil)
			continue
		}
		if f.closure.isGo() {
			// a Go frame only reaches drive's top if callClosure put
			// it there for bookkeeping around a panic; run it now.
			n := f.closure.goFunc(t)
			results := f.popN(n)
			t.popFrame()
			t.deliver(results, MultiRet)
			continue
		}
		if f.pc >= len(f.closure.proto.Code) {
			t.doReturn(nil)
			continue
		}
		if t.hookMask&(HookLine|HookCount) != 0 {
			t.stepHooks(f)
		}
		word := f.closure.proto.Code[f.pc]
		f.pc++
		inst := vm.Instruction(word)
		inst.Execute(t)
		if t.status != ThreadRunning {
			return
		}
	}
}

// resume implements coroutine.resume / lua_resume: start the thread
// if this is its first activation, or continue it from exactly the
// instruction after whatever yielded, delivering args as that call's
// results. The State-facing Resume (api_coroutine.go) wraps this with
// the stack-juggling lua_resume signature expects.
func (t *Thread) resume(from *Thread, args []any) ([]any, *LuaError) {
	if t.status == ThreadDead {
		return nil, runtimeErrorf("cannot resume dead coroutine")
	}
	if t.status == ThreadRunning || t.status == ThreadNormal {
		return nil, runtimeErrorf("cannot resume non-suspended coroutine")
	}

	if from != nil {
		from.status = ThreadNormal
	}
	prevStatus := t.status
	t.status = ThreadRunning
	t.caller = from
	logger.I("resume thread %p (was %s)", t, prevStatus.String())

	if prevStatus == ThreadInitial {
		// entry point frame was already pushed by NewThread's caller
		// via callClosure before the first Resume.
	} else {
		t.deliver(args, MultiRet)
	}

	t.drive()

	if from != nil {
		from.status = ThreadRunning
	}

	out, err := t.pendingOut, t.pendingErr
	t.pendingOut, t.pendingErr = nil, nil
	return out, err
}

// yield implements coroutine.yield: unwind straight back to the
// resume call that's driving this thread, carrying vals out as
// resume's return values. The calling Lua frame's PC already points
// past the CALL that invoked yield, so the next resume's args land
// exactly where that call's results would have.
func (t *Thread) yield(vals []any) {
	if t.caller == nil {
		panicError(t, runtimeErrorf("attempt to yield from outside a coroutine"))
	}
	panicYield(t, vals)
}

func (t *Thread) top() *Frame {
	return t.frames
}

// instExecute decodes and runs a single instruction word; shared by
// drive's main loop and metamethod.go's stepOne (synchronous nested
// calls made outside of drive, e.g. from an AuxLib helper).
func instExecute(word uint32, t *Thread) {
	inst := vm.Instruction(word)
	inst.Execute(t)
}
