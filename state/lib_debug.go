package state

import (
	. "git.lolli.tech/lollipopkit/luacore/api"
	"git.lolli.tech/lollipopkit/luacore/binchunk"
)

// lib_debug.go wires debug.traceback/getinfo/sethook directly against
// Thread's frame-walking internals (debug.go), the same reason
// pcall/xpcall (protected_call.go) live here instead of in stdlib:
// package stdlib only ever imports api, and these need more than
// State exposes.
var debugFuncs = FuncReg{
	"traceback": debugTraceback,
	"getinfo":   debugGetInfo,
	"sethook":   debugSetHook,
	"gethook":   debugGetHook,
	"getlocal":  debugGetLocal,
	"snapshot":  debugSnapshot,
}

func debugOpenLib(ls State) int {
	ls.NewLib(debugFuncs)
	return 1
}

// http://www.lua.org/manual/5.2/manual.html#pdf-debug.traceback
//
// Only ever reports the calling thread's own stack. A thread argument
// is not accepted: argument 1 is always the message, so another
// coroutine's stack (coroutine.create and coroutine.running do hand
// out thread values) cannot be traced from here.
func debugTraceback(s State) int {
	t := s.(*Thread)
	msg := t.OptString(1, "")
	level := int(t.OptInteger(2, 1))
	t.PushString(t.Traceback(msg, level))
	return 1
}

// http://www.lua.org/manual/5.2/manual.html#pdf-debug.getinfo
func debugGetInfo(s State) int {
	t := s.(*Thread)
	level := int(t.CheckInteger(1))

	info := newTable(0, 8)
	info.put(t.ls.intern("source"), t.ls.intern(t.GetInfoSource(level)))
	info.put(t.ls.intern("short_src"), t.ls.intern(binchunk.ShortSource(t.GetInfoSource(level))))
	info.put(t.ls.intern("currentline"), float64(t.GetInfoLine(level)))
	info.put(t.ls.intern("linedefined"), float64(t.GetInfoLineDefined(level)))
	info.put(t.ls.intern("what"), t.ls.intern(t.GetInfoWhat(level)))
	info.put(t.ls.intern("name"), t.ls.intern(t.GetInfoName(level)))
	info.put(t.ls.intern("nparams"), float64(t.GetInfoNParams(level)))

	t.frames.push(info)
	return 1
}

// http://www.lua.org/manual/5.2/manual.html#pdf-debug.sethook
//
// sethook() with no arguments clears the hook, matching PUC-Lua.
func debugSetHook(s State) int {
	t := s.(*Thread)
	if t.GetTop() == 0 {
		t.SetHook(nil, 0, 0)
		return 0
	}
	t.CheckType(1, TypeFunction)
	fn := t.frames.get(1).(*Closure)
	maskStr := t.OptString(2, "")
	count := int(t.OptInteger(3, 0))

	var mask byte
	for _, c := range maskStr {
		switch c {
		case 'c':
			mask |= HookCall
		case 'r':
			mask |= HookReturn
		case 'l':
			mask |= HookLine
		}
	}
	if count > 0 {
		mask |= HookCount
	}
	t.SetHook(func(inner State) int {
		it := inner.(*Thread)
		args := it.frames.popN(it.frames.top)
		caller := it.frames
		it.callClosure(fn, args, 0)
		it.runUntilReturnTo(caller)
		return 0
	}, mask, count)
	return 0
}

func debugGetHook(s State) int {
	t := s.(*Thread)
	fn, mask, count := t.GetHook()
	if fn == nil {
		return 0
	}
	var maskStr string
	if mask&HookCall != 0 {
		maskStr += "c"
	}
	if mask&HookReturn != 0 {
		maskStr += "r"
	}
	if mask&HookLine != 0 {
		maskStr += "l"
	}
	t.PushString(maskStr)
	t.PushInteger(int64(count))
	return 2
}

// http://www.lua.org/manual/5.2/manual.html#pdf-debug.getlocal
func debugGetLocal(s State) int {
	t := s.(*Thread)
	level := int(t.CheckInteger(1))
	idx := int(t.CheckInteger(2))
	name, ok := t.LocalName(level, idx)
	if !ok {
		return 0
	}
	t.PushString(name)
	return 1
}

// debug.snapshot() returns the calling thread's entire frame stack as
// a JSON string (state.Snapshot marshaled through jsoniter), a
// structured counterpart to debug.traceback's text for host-side
// tooling that wants to store or ship frame data rather than parse it.
func debugSnapshot(s State) int {
	t := s.(*Thread)
	snap, err := t.Snapshot()
	if err != nil {
		panicError(t, runtimeErrorf("%s", err.Error()))
	}
	data, err := debugJSON.Marshal(snap)
	if err != nil {
		panicError(t, runtimeErrorf("%s", err.Error()))
	}
	t.PushString(string(data))
	return 1
}
