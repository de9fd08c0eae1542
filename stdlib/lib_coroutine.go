package stdlib

import . "git.lolli.tech/lollipopkit/luacore/api"

var coFuncs = FuncReg{
	"create":      coCreate,
	"resume":      coResume,
	"yield":       coYield,
	"status":      coStatus,
	"isyieldable": coYieldable,
	"running":     coRunning,
	"wrap":        coWrap,
}

// lua-5.2's lcorolib.c#luaopen_coroutine
func OpenCoroutineLib(ls State) int {
	ls.NewLib(coFuncs)
	return 1
}

// coroutine.create (f)
// http://www.lua.org/manual/5.2/manual.html#pdf-coroutine.create
func coCreate(ls State) int {
	ls.CheckType(1, TypeFunction)
	co := ls.NewThread()
	ls.PushValue(1)
	ls.XMove(co, 1)
	return 1
}

// coroutine.resume (co [, val1, ···])
// http://www.lua.org/manual/5.2/manual.html#pdf-coroutine.resume
func coResume(ls State) int {
	co := ls.ToThread(1)
	ls.ArgCheck(co != nil, 1, "thread expected")
	n := auxResume(ls, co, ls.GetTop()-1)
	if n < 0 {
		ls.PushBoolean(false)
		ls.Insert(-2)
		return 2
	}
	ls.PushBoolean(true)
	ls.Insert(-(n + 1))
	return n + 1
}

func auxResume(ls, co State, nArg int) int {
	if !ls.CheckStack(nArg) {
		ls.PushString("too many arguments to resume")
		return -1
	}
	if co.ThreadStatus() == ThreadDead {
		ls.PushString("cannot resume dead coroutine")
		return -1
	}
	ls.XMove(co, nArg)
	status := co.Resume(ls, nArg)
	if status == StatusOK || status == StatusYield {
		nRes := co.GetTop()
		if !ls.CheckStack(nRes + 1) {
			co.Pop(nRes)
			ls.PushString("too many results to resume")
			return -1
		}
		co.XMove(ls, nRes)
		return nRes
	}
	co.XMove(ls, 1)
	return -1
}

// coroutine.yield (···)
// http://www.lua.org/manual/5.2/manual.html#pdf-coroutine.yield
func coYield(ls State) int {
	return int(ls.Yield(ls.GetTop()))
}

// coroutine.status (co)
// http://www.lua.org/manual/5.2/manual.html#pdf-coroutine.status
func coStatus(ls State) int {
	co := ls.ToThread(1)
	ls.ArgCheck(co != nil, 1, "thread expected")
	switch co.ThreadStatus() {
	case ThreadInitial, ThreadSuspended:
		ls.PushString("suspended")
	case ThreadRunning:
		ls.PushString("running")
	case ThreadNormal:
		ls.PushString("normal")
	default:
		ls.PushString("dead")
	}
	return 1
}

// coroutine.isyieldable ()
// http://www.lua.org/manual/5.2/manual.html#pdf-coroutine.isyieldable
func coYieldable(ls State) int {
	ls.PushBoolean(ls.IsYieldable())
	return 1
}

// coroutine.running ()
// http://www.lua.org/manual/5.2/manual.html#pdf-coroutine.running
func coRunning(ls State) int {
	isMain := ls.PushThread()
	ls.PushBoolean(isMain)
	return 2
}

// coroutine.wrap (f)
// http://www.lua.org/manual/5.2/manual.html#pdf-coroutine.wrap
//
// Returns a GoFunction closing over the freshly created thread; each
// call resumes it and either forwards its results or re-raises its
// error in the caller, same as PUC-Lua's wrap.
func coWrap(ls State) int {
	ls.CheckType(1, TypeFunction)
	co := ls.NewThread()
	ls.PushValue(1)
	ls.XMove(co, 1)
	ls.PushGoClosure(coWrapCall, 1)
	return 1
}

func coWrapCall(ls State) int {
	co := ls.ToThread(UpvalueIndex(1))
	if co == nil {
		return ls.Error2("coroutine.wrap: bad internal thread upvalue")
	}
	nArg := ls.GetTop()
	n := auxResume(ls, co, nArg)
	if n < 0 {
		return ls.Error()
	}
	return n
}
