package api

// GoFunction is a host function bound into a closure. It reads its
// arguments and pushes its results through the stack-based API on the
// State it is given, returning the number of results it pushed.
//
// A GoFunction that needs to call back into Lua across a point that
// might yield (pcall, xpcall) cannot simply call State.Call and block:
// the call stack it runs on belongs to the host, not to the Lua
// thread, and spec §4.3 forbids saving that native stack. Such
// functions are instead written as the frame-resident state machines
// described in state/protected_call.go; an ordinary GoFunction is
// implicitly "noYield" (spec §4.3) unless documented otherwise.
type GoFunction func(State) int

func UpvalueIndex(i int) int {
	return RegistryIndex - i
}

// State is the embedding API (spec §6): the stack-based surface a host
// uses to load chunks, push/pull values, and drive calls, plus the
// coroutine control points (NewThread/Resume/Yield/Status).
type State interface {
	Stack
	Access
	Push
	ArithCompare
	TableAccess
	LoadCall
	Misc
	Coroutine
	AuxLib
}

type Stack interface {
	GetTop() int
	AbsIndex(idx int) int
	CheckStack(n int) bool
	Pop(n int)
	Copy(fromIdx, toIdx int)
	PushValue(idx int)
	Replace(idx int)
	Insert(idx int)
	Remove(idx int)
	Rotate(idx, n int)
	SetTop(idx int)
	XMove(to State, n int)
}

type Access interface {
	TypeName(tp LuaType) string
	Type(idx int) LuaType
	IsNone(idx int) bool
	IsNil(idx int) bool
	IsNoneOrNil(idx int) bool
	IsBoolean(idx int) bool
	IsInteger(idx int) bool
	IsNumber(idx int) bool
	IsString(idx int) bool
	IsTable(idx int) bool
	IsThread(idx int) bool
	IsFunction(idx int) bool
	IsGoFunction(idx int) bool
	ToBoolean(idx int) bool
	ToInteger(idx int) int64
	ToIntegerX(idx int) (int64, bool)
	ToNumber(idx int) float64
	ToNumberX(idx int) (float64, bool)
	ToString(idx int) string
	ToStringX(idx int) (string, bool)
	ToGoFunction(idx int) GoFunction
	ToThread(idx int) State
	ToPointer(idx int) any
}

type Push interface {
	PushNil()
	PushBoolean(b bool)
	PushInteger(n int64)
	PushNumber(n float64)
	PushString(s string)
	PushFString(format string, a ...any)
	PushGoFunction(f GoFunction)
	PushGoClosure(f GoFunction, n int)
	PushGlobalTable()
	PushThread() bool
	Push(item any)
}

type ArithCompare interface {
	Arith(op ArithOp)
	Compare(idx1, idx2 int, op CompareOp) bool
	RawEqual(idx1, idx2 int) bool
}

type TableAccess interface {
	NewTable()
	CreateTable(nArr, nRec int)
	GetTable(idx int) LuaType
	GetField(idx int, k string) LuaType
	GetI(idx int, i int64) LuaType
	RawGet(idx int) LuaType
	RawGetI(idx int, i int64) LuaType
	GetGlobal(name string) LuaType
	SetTable(idx int)
	SetField(idx int, k string)
	SetMetatable(idx int)
	GetMetatable(idx int) bool
	SetI(idx int, i int64)
	RawSet(idx int)
	RawSetI(idx int, i int64)
	SetGlobal(name string)
	Register(name string, f GoFunction)
	Len(idx int)
	RawLen(idx int) int64
	Next(idx int) bool
}

type LoadCall interface {
	Load(chunk []byte, chunkName, mode string) Status
	Call(nArgs, nResults int)
	PCall(nArgs, nResults, msgh int) Status
}

type Misc interface {
	Error() int
	StringToNumber(s string) bool
}

// Coroutine is the subset of the embedding API driving spec §4.3.
type Coroutine interface {
	NewThread() State
	Resume(from State, nArgs int) Status
	Yield(nResults int) Status
	ThreadStatus() ThreadStatus
	IsYieldable() bool
	GetStack() bool
}

type FuncReg map[string]GoFunction

// AuxLib is the higher-level convenience surface built on State,
// mirroring lauxlib.h.
type AuxLib interface {
	Error2(format string, a ...any) int
	ArgError(arg int, extraMsg string) int
	CheckStack2(sz int, msg string)
	ArgCheck(cond bool, arg int, extraMsg string)
	CheckAny(arg int)
	CheckType(arg int, t LuaType)
	CheckInteger(arg int) int64
	CheckNumber(arg int) float64
	CheckString(arg int) string
	CheckBool(arg int) bool
	OptInteger(arg int, d int64) int64
	OptNumber(arg int, d float64) float64
	OptString(arg int, d string) string
	OptBool(arg int, d bool) bool
	TypeName2(idx int) string
	ToString2(idx int) string
	Len2(idx int) int64
	GetSubTable(idx int, fname string) bool
	GetMetafield(obj int, e string) LuaType
	CallMeta(obj int, e string) bool
	OpenLibs()
	Require(modname string, openf GoFunction, glb bool)
	NewLib(l FuncReg)
	NewLibTable(l FuncReg)
	SetFuncs(l FuncReg, nup int)
}

// VM is the opcode-facing extension of State used by package vm's
// instruction handlers: register-window access, the fetch/decode
// helpers and upvalue closing that make sense only while executing a
// Lua closure's bytecode.
type VM interface {
	State
	PC() int
	AddPC(n int)
	Fetch() uint32
	GetConst(idx int)
	GetRK(rk int)
	RegisterCount() int
	LoadVararg(n int)
	LoadProto(idx int)
	CloseUpvalues(a int)

	// PushCall, TailCall and Return are CALL/TAILCALL/RETURN's
	// primitives: unlike State.Call, they never drive the callee to
	// completion themselves. PushCall pushes a new frame and returns
	// immediately; Thread.drive's own loop steps into it on its next
	// iteration, which is what lets a coroutine yield from a call at
	// any depth without recursing the host stack. TailCall does the
	// same but first discards the calling frame, so tail recursion
	// runs in constant frame-stack depth. a is the instruction's A
	// operand, already rebased to a 1-indexed register; b and c are the
	// raw B and C operands.
	PushCall(a, b, c int)
	TailCall(a, b int)
	Return(a, b int)

	// Concat implements CONCAT: fold R(a)..R(b) right to left through
	// string concatenation or __concat, leaving the result in R(a).
	Concat(a, b int)
}
