package state

import . "git.lolli.tech/lollipopkit/luacore/api"

// resolveCallTarget reads the callee at register a (1-indexed, slot a-1) and
// the nArgs values above it, returning the closure to invoke and its
// argument slice — following __call through one indirection exactly
// like Thread.Call, but without touching anything below register a so
// the caller can just overwrite f.top in place afterwards.
func (t *Thread) resolveCallTarget(f *Frame, a, nArgs int) (*Closure, []any) {
	val := f.slots[a-1]
	args := make([]any, nArgs)
	copy(args, f.slots[a:a+nArgs])

	c, ok := val.(*Closure)
	if !ok {
		if mf := t.ls.getMetafield(val, "__call"); mf != nil {
			if c, ok = mf.(*Closure); ok {
				args = append([]any{val}, args...)
			}
		}
	}
	if !ok {
		panicError(t, runtimeErrorf("attempt to call a %s value", t.ls.typeNameOf(val)))
	}
	return c, args
}

// PushCall implements CALL: R(a), ... := R(a)(R(a+1), ..., R(a+nArgs)).
// b==0 means the arguments run up to the frame's current top (an open
// multi-result call sits immediately below); c==0 requests every
// result. It only pushes the callee's frame — Thread.drive keeps
// stepping and finds it on top next iteration, so an ordinary
// Lua-to-Lua call never recurses the host stack.
func (t *Thread) PushCall(a, b, c int) {
	f := t.top()
	nArgs := b - 1
	if b == 0 {
		nArgs = f.top - a
	}
	cl, args := t.resolveCallTarget(f, a, nArgs)

	nExpected := MultiRet
	if c != 0 {
		nExpected = c - 1
	}
	f.top = a - 1
	t.callClosure(cl, args, nExpected)
}

// TailCall implements TAILCALL: discard the calling frame first, then
// push the callee in its place, so unbounded tail recursion runs in
// constant frame-stack depth instead of growing one Frame per call.
func (t *Thread) TailCall(a, b int) {
	f := t.top()
	nArgs := b - 1
	if b == 0 {
		nArgs = f.top - a
	}
	cl, args := t.resolveCallTarget(f, a, nArgs)
	nExpected := f.nExpected

	t.popFrame()
	f.closeUpvalues(0)
	t.callClosure(cl, args, nExpected)
	if t.frames != nil {
		t.frames.flags |= frameTail
	}
}

// Return implements RETURN: return R(a), ..., R(a+b-2); b==0 means
// "every register up to the frame's current top."
func (t *Thread) Return(a, b int) {
	f := t.top()
	var results []any
	if b == 0 {
		n := f.top - (a - 1)
		results = make([]any, n)
		copy(results, f.slots[a-1:f.top])
	} else {
		n := b - 1
		results = make([]any, n)
		copy(results, f.slots[a-1:a-1+n])
	}
	t.doReturn(results)
}

// Concat implements CONCAT: fold R(a)..R(b) right to left, leaving the
// result in R(a). Each pairwise step goes through Thread.concat, which
// falls back to __concat for non-string, non-number operands.
func (t *Thread) Concat(a, b int) {
	f := t.top()
	result := f.slots[b-1]
	for i := b - 1; i > a-1; i-- {
		result = t.concat(f.slots[i-1], result)
	}
	f.slots[a-1] = result
}
