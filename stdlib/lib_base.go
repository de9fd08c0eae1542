package stdlib

import (
	"strconv"
	"strings"

	. "git.lolli.tech/lollipopkit/luacore/api"
	"git.lolli.tech/lollipopkit/luacore/consts"
)

var baseFuncs = FuncReg{
	"print":        basePrint,
	"type":         baseType,
	"tostring":     baseToString,
	"tonumber":     baseToNumber,
	"pairs":        basePairs,
	"ipairs":       baseIPairs,
	"next":         baseNext,
	"setmetatable": baseSetMetatable,
	"getmetatable": baseGetMetatable,
	"rawget":       baseRawGet,
	"rawset":       baseRawSet,
	"rawequal":     baseRawEqual,
	"rawlen":       baseRawLen,
	"select":       baseSelect,
	"error":        baseError,
	"assert":       baseAssert,
}

// lua-5.2's lbaselib.c#luaopen_base, minus package/require (spec.md's
// Non-goals rule out a module loader).
func OpenBaseLib(ls State) int {
	ls.PushGlobalTable()
	ls.SetFuncs(baseFuncs, 0)
	ls.PushValue(-1)
	ls.SetField(-2, "_G")
	ls.PushString(consts.Version)
	ls.SetField(-2, "_VERSION")
	return 1
}

// print (···)
// http://www.lua.org/manual/5.2/manual.html#pdf-print
func basePrint(ls State) int {
	n := ls.GetTop()
	parts := make([]string, n)
	for i := 1; i <= n; i++ {
		parts[i-1] = ls.ToString2(i)
	}
	println(strings.Join(parts, "\t"))
	return 0
}

// type (v)
// http://www.lua.org/manual/5.2/manual.html#pdf-type
func baseType(ls State) int {
	tp := ls.Type(1)
	ls.ArgCheck(tp != TypeNone, 1, "value expected")
	ls.PushString(ls.TypeName(tp))
	return 1
}

// tostring (v)
// http://www.lua.org/manual/5.2/manual.html#pdf-tostring
func baseToString(ls State) int {
	ls.CheckAny(1)
	ls.PushString(ls.ToString2(1))
	return 1
}

// tonumber (e [, base])
// http://www.lua.org/manual/5.2/manual.html#pdf-tonumber
func baseToNumber(ls State) int {
	if ls.IsNoneOrNil(2) {
		ls.CheckAny(1)
		if ls.Type(1) == TypeNumber {
			ls.SetTop(1)
			return 1
		}
		if s, ok := ls.ToStringX(1); ok {
			if ls.StringToNumber(strings.TrimSpace(s)) {
				return 1
			}
		}
	} else {
		ls.CheckType(1, TypeString)
		s := strings.TrimSpace(ls.ToString(1))
		base := int(ls.CheckInteger(2))
		ls.ArgCheck(2 <= base && base <= 36, 2, "base out of range")
		if n, err := strconv.ParseInt(s, base, 64); err == nil {
			ls.PushInteger(n)
			return 1
		}
	}
	ls.PushNil()
	return 1
}

// ipairs (t)
// http://www.lua.org/manual/5.2/manual.html#pdf-ipairs
func baseIPairs(ls State) int {
	ls.CheckAny(1)
	ls.PushGoFunction(iPairsAux)
	ls.PushValue(1)
	ls.PushInteger(0)
	return 3
}

func iPairsAux(ls State) int {
	i := ls.CheckInteger(2) + 1
	ls.PushInteger(i)
	if ls.GetI(1, i) == TypeNil {
		return 1
	}
	return 2
}

// pairs (t)
// http://www.lua.org/manual/5.2/manual.html#pdf-pairs
func basePairs(ls State) int {
	ls.CheckAny(1)
	if ls.GetMetafield(1, "__pairs") == TypeNil {
		ls.PushGoFunction(baseNext)
		ls.PushValue(1)
		ls.PushNil()
	} else {
		ls.PushValue(1)
		ls.Call(1, 3)
	}
	return 3
}

// next (table [, index])
// http://www.lua.org/manual/5.2/manual.html#pdf-next
func baseNext(ls State) int {
	ls.CheckType(1, TypeTable)
	ls.SetTop(2)
	if ls.Next(1) {
		return 2
	}
	ls.PushNil()
	return 1
}

// setmetatable (table, metatable)
// http://www.lua.org/manual/5.2/manual.html#pdf-setmetatable
func baseSetMetatable(ls State) int {
	ls.CheckType(1, TypeTable)
	if ls.IsNoneOrNil(2) {
		ls.PushNil()
	} else {
		ls.CheckType(2, TypeTable)
	}
	if ls.GetMetafield(1, "__metatable") != TypeNil {
		ls.Error2("cannot change a protected metatable")
	}
	ls.SetTop(2)
	ls.SetMetatable(1)
	return 1
}

// getmetatable (object)
// http://www.lua.org/manual/5.2/manual.html#pdf-getmetatable
func baseGetMetatable(ls State) int {
	if !ls.GetMetatable(1) {
		ls.PushNil()
		return 1
	}
	if ls.GetMetafield(1, "__metatable") == TypeNil {
		return 1
	}
	ls.Replace(-2)
	ls.Pop(1)
	return 1
}

// rawget (table, index)
// http://www.lua.org/manual/5.2/manual.html#pdf-rawget
func baseRawGet(ls State) int {
	ls.CheckType(1, TypeTable)
	ls.CheckAny(2)
	ls.SetTop(2)
	ls.RawGet(1)
	return 1
}

// rawset (table, index, value)
// http://www.lua.org/manual/5.2/manual.html#pdf-rawset
func baseRawSet(ls State) int {
	ls.CheckType(1, TypeTable)
	ls.CheckAny(2)
	ls.CheckAny(3)
	ls.SetTop(3)
	ls.RawSet(1)
	return 1
}

// rawequal (v1, v2)
// http://www.lua.org/manual/5.2/manual.html#pdf-rawequal
func baseRawEqual(ls State) int {
	ls.CheckAny(1)
	ls.CheckAny(2)
	ls.PushBoolean(ls.RawEqual(1, 2))
	return 1
}

// rawlen (v)
// http://www.lua.org/manual/5.2/manual.html#pdf-rawlen
func baseRawLen(ls State) int {
	tp := ls.Type(1)
	ls.ArgCheck(tp == TypeTable || tp == TypeString, 1, "table or string expected")
	ls.PushInteger(ls.RawLen(1))
	return 1
}

// select (index, ···)
// http://www.lua.org/manual/5.2/manual.html#pdf-select
func baseSelect(ls State) int {
	n := ls.GetTop()
	if ls.Type(1) == TypeString && ls.ToString(1) == "#" {
		ls.PushInteger(int64(n - 1))
		return 1
	}
	i := ls.CheckInteger(1)
	if i < 0 {
		i = int64(n) + i
	}
	ls.ArgCheck(i >= 1, 1, "index out of range")
	if int(i) > n-1 {
		return 0
	}
	return n - int(i)
}

// error (message [, level])
// http://www.lua.org/manual/5.2/manual.html#pdf-error
func baseError(ls State) int {
	ls.OptInteger(2, 1)
	ls.SetTop(1)
	return ls.Error()
}

// assert (v [, message])
// http://www.lua.org/manual/5.2/manual.html#pdf-assert
func baseAssert(ls State) int {
	if ls.ToBoolean(1) {
		return ls.GetTop()
	}
	ls.CheckAny(1)
	ls.Remove(1)
	ls.PushString("assertion failed!")
	ls.SetTop(1)
	return baseError(ls)
}

// pcall, xpcall and the table.unpack-mirroring global unpack are not
// registered here. pcall and xpcall need the continuation machinery in
// state/protected_call.go, which this package cannot import without a
// cycle; state.OpenLibs wires them directly after OpenBaseLib runs,
// together with unpack (TableUnpack in lib_table.go).
