package state

import (
	"fmt"

	. "git.lolli.tech/lollipopkit/luacore/api"
	"git.lolli.tech/lollipopkit/luacore/stdlib"
)

// auxlib.go is the AuxLib half of the embedding surface: convenience
// wrappers over Stack/Access/TableAccess that stdlib and host code use
// instead of hand-rolling argument checks, grounded on the teacher's
// own auxlib.go (error formatting, CheckXxx/OptXxx pairs, SetFuncs).

// http://www.lua.org/manual/5.2/manual.html#luaL_error
func (t *Thread) Error2(format string, a ...any) int {
	t.PushFString(format, a...)
	return t.Error()
}

// http://www.lua.org/manual/5.2/manual.html#luaL_argerror
func (t *Thread) ArgError(arg int, extraMsg string) int {
	return t.Error2("bad argument #%d (%s)", arg, extraMsg)
}

// http://www.lua.org/manual/5.2/manual.html#luaL_checkstack
func (t *Thread) CheckStack2(sz int, msg string) {
	if !t.CheckStack(sz) {
		if msg != "" {
			t.Error2("stack overflow (%s)", msg)
		} else {
			t.Error2("stack overflow")
		}
	}
}

// http://www.lua.org/manual/5.2/manual.html#luaL_argcheck
func (t *Thread) ArgCheck(cond bool, arg int, extraMsg string) {
	if !cond {
		t.ArgError(arg, extraMsg)
	}
}

// http://www.lua.org/manual/5.2/manual.html#luaL_checkany
func (t *Thread) CheckAny(arg int) {
	if t.Type(arg) == TypeNone {
		t.ArgError(arg, "value expected")
	}
}

// http://www.lua.org/manual/5.2/manual.html#luaL_checktype
func (t *Thread) CheckType(arg int, tp LuaType) {
	if t.Type(arg) != tp {
		t.tagError(arg, tp)
	}
}

// http://www.lua.org/manual/5.2/manual.html#luaL_checkinteger
func (t *Thread) CheckInteger(arg int) int64 {
	i, ok := t.ToIntegerX(arg)
	if !ok {
		t.intError(arg)
	}
	return i
}

// http://www.lua.org/manual/5.2/manual.html#luaL_checknumber
func (t *Thread) CheckNumber(arg int) float64 {
	f, ok := t.ToNumberX(arg)
	if !ok {
		t.tagError(arg, TypeNumber)
	}
	return f
}

// http://www.lua.org/manual/5.2/manual.html#luaL_checklstring
func (t *Thread) CheckString(arg int) string {
	s, ok := t.ToStringX(arg)
	if !ok {
		t.tagError(arg, TypeString)
	}
	return s
}

func (t *Thread) CheckBool(arg int) bool {
	if t.Type(arg) != TypeBoolean {
		t.tagError(arg, TypeBoolean)
	}
	return t.ToBoolean(arg)
}

// http://www.lua.org/manual/5.2/manual.html#luaL_optinteger
func (t *Thread) OptInteger(arg int, def int64) int64 {
	if t.IsNoneOrNil(arg) {
		return def
	}
	return t.CheckInteger(arg)
}

// http://www.lua.org/manual/5.2/manual.html#luaL_optnumber
func (t *Thread) OptNumber(arg int, def float64) float64 {
	if t.IsNoneOrNil(arg) {
		return def
	}
	return t.CheckNumber(arg)
}

// http://www.lua.org/manual/5.2/manual.html#luaL_optstring
func (t *Thread) OptString(arg int, def string) string {
	if t.IsNoneOrNil(arg) {
		return def
	}
	return t.CheckString(arg)
}

func (t *Thread) OptBool(arg int, def bool) bool {
	if t.IsNoneOrNil(arg) {
		return def
	}
	return t.ToBoolean(arg)
}

func (t *Thread) TypeName2(idx int) string {
	return t.TypeName(t.Type(idx))
}

// http://www.lua.org/manual/5.2/manual.html#luaL_len
func (t *Thread) Len2(idx int) int64 {
	t.Len(idx)
	i, isNum := t.ToIntegerX(-1)
	if !isNum {
		t.Error2("object length is not an integer")
	}
	t.Pop(1)
	return i
}

// http://www.lua.org/manual/5.2/manual.html#luaL_tolstring
func (t *Thread) ToString2(idx int) string {
	if t.CallMeta(idx, "__tostring") {
		if !t.IsString(-1) {
			t.Error2("'__tostring' must return a string")
		}
		return t.ToString(-1)
	}
	val := t.frames.get(idx)
	return t.tostringValue(val)
}

// http://www.lua.org/manual/5.2/manual.html#luaL_getsubtable
func (t *Thread) GetSubTable(idx int, fname string) bool {
	if t.GetField(idx, fname) == TypeTable {
		return true
	}
	t.Pop(1)
	idx = t.AbsIndex(idx)
	t.NewTable()
	t.PushValue(-1)
	t.SetField(idx, fname)
	return false
}

// http://www.lua.org/manual/5.2/manual.html#luaL_getmetafield
func (t *Thread) GetMetafield(obj int, event string) LuaType {
	if !t.GetMetatable(obj) {
		return TypeNil
	}
	t.PushString(event)
	tt := t.RawGet(-2)
	if tt == TypeNil {
		t.Pop(2)
	} else {
		t.Remove(-2)
	}
	return tt
}

// http://www.lua.org/manual/5.2/manual.html#luaL_callmeta
func (t *Thread) CallMeta(obj int, event string) bool {
	obj = t.AbsIndex(obj)
	if t.GetMetafield(obj, event) == TypeNil {
		return false
	}
	t.PushValue(obj)
	t.Call(1, 1)
	return true
}

// OpenLibs registers every standard library table this interpreter
// ships into the globals, mirroring luaL_openlibs.
func (t *Thread) OpenLibs() {
	libs := FuncReg{
		"_G":        stdlib.OpenBaseLib,
		"math":      stdlib.OpenMathLib,
		"string":    stdlib.OpenStringLib,
		"table":     stdlib.OpenTableLib,
		"coroutine": stdlib.OpenCoroutineLib,
	}
	for name, openf := range libs {
		t.Require(name, openf, true)
		t.Pop(1)
	}

	// pcall/xpcall need the continuation machinery in
	// protected_call.go, which stdlib can't reach without an import
	// cycle back into this package; wire them in directly instead.
	t.Register("pcall", pcallGo)
	t.Register("xpcall", xpcallGo)
	t.Register("unpack", stdlib.TableUnpack)

	// debug needs the frame-walking internals in debug.go/lib_debug.go,
	// same reason pcall/xpcall are wired directly above.
	t.Require("debug", debugOpenLib, true)
	t.Pop(1)
}

// http://www.lua.org/manual/5.2/manual.html#luaL_requiref
func (t *Thread) Require(modname string, openf GoFunction, glb bool) {
	t.GetSubTable(RegistryIndex, "_LOADED")
	t.GetField(-1, modname)
	if !t.ToBoolean(-1) {
		t.Pop(1)
		t.PushGoFunction(openf)
		t.PushString(modname)
		t.Call(1, 1)
		t.PushValue(-1)
		t.SetField(-3, modname)
	}
	t.Remove(-2)
	if glb {
		t.PushValue(-1)
		t.SetGlobal(modname)
	}
}

// http://www.lua.org/manual/5.2/manual.html#luaL_newlib
func (t *Thread) NewLib(l FuncReg) {
	t.NewLibTable(l)
	t.SetFuncs(l, 0)
}

func (t *Thread) NewLibTable(l FuncReg) {
	t.CreateTable(0, len(l))
}

// http://www.lua.org/manual/5.2/manual.html#luaL_setfuncs
func (t *Thread) SetFuncs(l FuncReg, nup int) {
	t.CheckStack2(nup, "too many upvalues")
	for name, fn := range l {
		for i := 0; i < nup; i++ {
			t.PushValue(-nup)
		}
		t.PushGoClosure(fn, nup)
		t.SetField(-(nup + 2), name)
	}
	t.Pop(nup)
}

func (t *Thread) intError(arg int) {
	if t.IsNumber(arg) {
		t.ArgError(arg, "number has no integer representation")
	} else {
		t.tagError(arg, TypeNumber)
	}
}

func (t *Thread) tagError(arg int, tag LuaType) {
	t.typeError(arg, t.TypeName(tag))
}

func (t *Thread) typeError(arg int, tname string) int {
	var typeArg string
	if t.GetMetafield(arg, "__name") == TypeString {
		typeArg = t.ToString(-1)
	} else {
		typeArg = t.TypeName2(arg)
	}
	msg := fmt.Sprintf("%s expected, got %s", tname, typeArg)
	return t.ArgError(arg, msg)
}
