package state

import (
	. "git.lolli.tech/lollipopkit/luacore/api"
	"git.lolli.tech/lollipopkit/luacore/logger"
)

// LuaState is the root handle spec §5 calls the "interpreter instance":
// one registry, one set of type-wide metatables, one string intern
// cache, and a main Thread. Every api.State the embedding host sees is
// really a *Thread; LuaState is the shared state all of a main
// thread's coroutines see underneath their own frame stacks.
type LuaState struct {
	registry       *Table
	globals        *Table
	typeMetatables map[LuaType]*Table
	strings        *internCache

	mainThread *Thread

	// allocated is the counter countAlloc adds to. Nothing in the
	// package calls countAlloc or reads the count, so it stays 0.
	allocated int64

	stringLimit int // set by WithStringLimit, read only by checkStringLen; 0 disables
	callDepth   int // set by WithCallDepth; read only by New's startup log
}

// Option configures a LuaState at construction, the functional-options
// idiom the wider example pack reaches for over a long constructor
// argument list or a half-built zero value.
type Option func(*LuaState)

// WithStringLimit sets the string size limit that checkStringLen
// tests against. Nothing in the package calls checkStringLen, so no
// string is rejected and no Lua error is raised, whatever the limit.
// 0 (the default) disables the check.
func WithStringLimit(n int) Option {
	return func(ls *LuaState) { ls.stringLimit = n }
}

// WithCallDepth overrides the default call depth (200). Only New's
// startup log reads the value: metamethod dispatch and the auxiliary
// library's Call wrappers do not check it, so it bounds nothing. The
// interpreter's own Lua-to-Lua calls never recurse the Go stack (see
// thread.go).
func WithCallDepth(n int) Option {
	return func(ls *LuaState) { ls.callDepth = n }
}

const defaultCallDepth = 200

// New creates a fresh interpreter instance with an empty global table
// and a running main thread, mirroring lua_newstate/luaL_newstate.
func New(opts ...Option) *LuaState {
	ls := &LuaState{
		typeMetatables: make(map[LuaType]*Table, 8),
		strings:        newInternCache(),
		callDepth:      defaultCallDepth,
	}
	for _, opt := range opts {
		opt(ls)
	}

	ls.globals = newTable(0, 32)
	ls.registry = newTable(0, 8)
	ls.registry.put(float64(RidxGlobals), ls.globals)

	ls.mainThread = newThread(ls, nil)
	ls.registry.put(float64(RidxMainThread), ls.mainThread)

	logger.I("new LuaState, call depth %d", ls.callDepth)
	return ls
}

// MainThread returns the root Thread created by New.
func (ls *LuaState) MainThread() *Thread {
	return ls.mainThread
}

func (ls *LuaState) isMainThread(t *Thread) bool {
	return t == ls.mainThread
}

func (ls *LuaState) countAlloc(n int64) {
	ls.allocated += n
}

// checkStringLen enforces WithStringLimit; ok is false when the limit
// is set and exceeded.
func (ls *LuaState) checkStringLen(n int) bool {
	return ls.stringLimit == 0 || n <= ls.stringLimit
}
