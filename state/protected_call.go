package state

import . "git.lolli.tech/lollipopkit/luacore/api"

// protected_call.go is the one fully-worked continuation spec §4.3
// asks for: pcall and xpcall each call back into Lua from a Go
// function and must still survive a yield happening underneath that
// call, without recursing the Go stack the way Thread.Call (and every
// metamethod dispatch) does.
//
// The trick: instead of pcall's GoFunction body calling Call and
// blocking on the result, it pushes the protected callee as an
// ordinary Frame (via Thread.callClosure) and installs ITSELF as a
// continuation Frame underneath it. Thread.drive's own loop then
// keeps stepping bytecode exactly as it would for any other call —
// there is no nested Go call sitting on the stack waiting for a
// result, so a yield from arbitrary depth inside the callee just
// stops drive() and returns, leaving both the callee's frame and the
// pcall continuation frame exactly where they were. The next Resume
// re-enters drive(), which eventually reaches the callee's RETURN (or
// an error), and that is what finally invokes the continuation.

// pcallState is the saved, resumable state of an in-flight
// state.pcall; it is the "frame-resident state machine" spec §4.3
// describes, stored as the continuation's closure instead of as Go
// local variables (which would be lost across a yield).
type pcallState struct {
	isXpcall bool
	handler  *Closure // xpcall's message handler, nil for pcall
}

// pcallGo is coroutine/base-library facing: `pcall(f, ...)`.
func pcallGo(s State) int {
	t := s.(*Thread)
	return startProtectedCall(t, false, nil)
}

// xpcallGo is `xpcall(f, handler, ...)`.
func xpcallGo(s State) int {
	t := s.(*Thread)
	nArgsTotal := t.frames.top
	if nArgsTotal < 2 {
		panicError(t, runtimeErrorf("bad argument #2 to 'xpcall' (value expected)"))
	}
	handlerVal := t.frames.get(2)
	handler, ok := handlerVal.(*Closure)
	if !ok {
		panicError(t, runtimeErrorf("bad argument #2 to 'xpcall' (function expected)"))
	}
	// remove the handler from the argument list before forwarding the
	// rest to the protected function, mirroring pcall's own layout.
	args := make([]any, 0, t.frames.top-2)
	for i := 3; i <= t.frames.top; i++ {
		args = append(args, t.frames.get(i))
	}
	fn := t.frames.get(1)
	return startProtectedCallWith(t, true, handler, fn, args)
}

func startProtectedCall(t *Thread, isXpcall bool, handler *Closure) int {
	if t.frames.top < 1 {
		panicError(t, runtimeErrorf("bad argument #1 to 'pcall' (value expected)"))
	}
	fn := t.frames.get(1)
	args := make([]any, 0, t.frames.top-1)
	for i := 2; i <= t.frames.top; i++ {
		args = append(args, t.frames.get(i))
	}
	return startProtectedCallWith(t, isXpcall, handler, fn, args)
}

func startProtectedCallWith(t *Thread, isXpcall bool, handler *Closure, fn any, args []any) int {
	st := &pcallState{isXpcall: isXpcall, handler: handler}

	callee, ok := fn.(*Closure)
	if !ok {
		if mf := t.ls.getMetafield(fn, "__call"); mf != nil {
			if mc, ok := mf.(*Closure); ok {
				args = append([]any{fn}, args...)
				callee = mc
				ok = true
			}
		}
	}

	t.installContinuation(st.resolve)
	if isXpcall && handler != nil {
		t.frames.errHandler = handler
	}
	if !ok {
		// nothing to call: resolve immediately as a failure, same
		// shape as if the callee had errored synchronously.
		t.resolveContinuation(nil, runtimeErrorf("attempt to call a %s value", t.ls.typeNameOf(fn)))
		return 0
	}
	t.callClosure(callee, args, MultiRetConst)
	return 0 // results arrive later, through st.resolve
}

// MultiRetConst has the same value as api.MultiRet, under its own name
// for the callClosure call above.
const MultiRetConst = -1

// resolve is the continuation itself: drive() calls this once the
// protected callee returns or errors. For plain pcall it just
// prepends true/false. For xpcall, Thread.doError already ran the
// message handler at the error site, before this boundary's frame
// (and everything above it) unwound, and left the handler's result on
// err.handlerResult — see doError/runErrorHandler in thread.go.
func (st *pcallState) resolve(t *Thread, results []any, err *LuaError) contResult {
	if err == nil {
		out := make([]any, 0, len(results)+1)
		out = append(out, true)
		out = append(out, results...)
		return contResult{done: true, results: out}
	}

	if st.isXpcall && st.handler != nil {
		return contResult{done: true, results: []any{false, err.handlerResult}}
	}

	return contResult{done: true, results: []any{false, err.Value}}
}
