// Package api defines the embedding surface shared by the interpreter
// (package state), the opcode dispatch table (package vm) and hosts:
// the stack-based API a C Lua embedder would recognize, plus the Go
// types standing in for the C macros and enums.
package api

import "math/bits"

const MinStack = 20
const MaxStack = 1000000
const RegistryIndex = -MaxStack - 1000
const RidxMainThread int64 = 1
const RidxGlobals int64 = 2
const MultiRet = -1

const (
	intBits    = bits.UintSize - 1
	MaxInteger = 1<<intBits - 1
	MinInteger = -1 << intBits
)

// LuaType is the runtime tag of a Value, mirroring lua_type()'s enum.
type LuaType int

const (
	TypeNone LuaType = iota - 1
	TypeNil
	TypeBoolean
	TypeLightUserdata
	TypeNumber
	TypeString
	TypeTable
	TypeFunction
	TypeUserdata
	TypeThread
)

func (t LuaType) String() string {
	switch t {
	case TypeNone:
		return "no value"
	case TypeNil:
		return "nil"
	case TypeBoolean:
		return "boolean"
	case TypeLightUserdata, TypeUserdata:
		return "userdata"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeTable:
		return "table"
	case TypeFunction:
		return "function"
	case TypeThread:
		return "thread"
	default:
		return "unknown"
	}
}

// ArithOp selects the operation performed by State.Arith.
type ArithOp int

const (
	OpAdd ArithOp = iota
	OpSub
	OpMul
	OpMod
	OpPow
	OpDiv
	OpIDiv
	OpBAnd
	OpBOr
	OpBXor
	OpShl
	OpShr
	OpUnm
	OpBNot
)

// CompareOp selects the relational operator for State.Compare.
type CompareOp int

const (
	OpEq CompareOp = iota
	OpLt
	OpLe
)

// Status is the result of Load / Call / PCall / Resume: either success
// or one of the error kinds from spec §7. It is distinct from
// ThreadStatus, which tracks a coroutine's scheduling state.
type Status int

const (
	StatusOK Status = iota
	StatusYield
	StatusErrRun
	StatusErrSyntax
	StatusErrMem
	StatusErrErr
	StatusErrFatal // uncatchable: allocation refusal, interrupt, stack overflow
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusYield:
		return "yield"
	case StatusErrRun:
		return "runtime error"
	case StatusErrSyntax:
		return "syntax error"
	case StatusErrMem:
		return "out of memory"
	case StatusErrErr:
		return "error in error handling"
	case StatusErrFatal:
		return "fatal"
	default:
		return "unknown status"
	}
}

// ThreadStatus is a coroutine's scheduling state, per spec §3 and §4.3.
type ThreadStatus int

const (
	ThreadInitial ThreadStatus = iota
	ThreadRunning
	ThreadSuspended
	ThreadNormal
	ThreadDead
)

func (s ThreadStatus) String() string {
	switch s {
	case ThreadInitial:
		return "initial"
	case ThreadRunning:
		return "running"
	case ThreadSuspended:
		return "suspended"
	case ThreadNormal:
		return "normal"
	case ThreadDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Frame flag bits (DebugFrame.Flags in spec §3).
const (
	FlagTail byte = 1 << iota
	FlagYPCall
	FlagHooked
	FlagError
	FlagFresh
)

// Hook event mask bits, for debug.sethook.
const (
	HookCall byte = 1 << iota
	HookReturn
	HookLine
	HookCount
)
