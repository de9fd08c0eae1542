package stdlib

import (
	. "git.lolli.tech/lollipopkit/luacore/api"
)

var tableFuncs = FuncReg{
	"insert": tableInsert,
	"remove": tableRemove,
	"concat": tableConcat,
	"pack":   tablePack,
	"unpack": TableUnpack,
	"sort":   tableSort,
}

// lua-5.2's ltablib.c#luaopen_table
func OpenTableLib(ls State) int {
	ls.NewLib(tableFuncs)
	return 1
}

// table.insert (list, [pos,] value)
// http://www.lua.org/manual/5.2/manual.html#pdf-table.insert
func tableInsert(ls State) int {
	ls.CheckType(1, TypeTable)
	n := ls.RawLen(1)
	var pos int64
	switch ls.GetTop() {
	case 2:
		pos = n + 1
	case 3:
		pos = ls.CheckInteger(2)
		ls.ArgCheck(pos >= 1 && pos <= n+1, 2, "position out of bounds")
		for i := n + 1; i > pos; i-- {
			ls.RawGetI(1, i-1)
			ls.RawSetI(1, i)
		}
	default:
		return ls.Error2("wrong number of arguments to 'insert'")
	}
	ls.RawSetI(1, pos)
	return 0
}

// table.remove (list [, pos])
// http://www.lua.org/manual/5.2/manual.html#pdf-table.remove
func tableRemove(ls State) int {
	ls.CheckType(1, TypeTable)
	n := ls.RawLen(1)
	pos := ls.OptInteger(2, n)
	if n == 0 {
		return 0
	}
	ls.ArgCheck(pos >= 1 && pos <= n+1, 2, "position out of bounds")
	ls.RawGetI(1, pos)
	for ; pos < n; pos++ {
		ls.RawGetI(1, pos+1)
		ls.RawSetI(1, pos)
	}
	ls.PushNil()
	ls.RawSetI(1, n)
	return 1
}

// table.concat (list [, sep [, i [, j]]])
// http://www.lua.org/manual/5.2/manual.html#pdf-table.concat
func tableConcat(ls State) int {
	ls.CheckType(1, TypeTable)
	sep := ls.OptString(2, "")
	i := ls.OptInteger(3, 1)
	j := ls.OptInteger(4, ls.RawLen(1))

	var out []byte
	for ; i <= j; i++ {
		ls.RawGetI(1, i)
		if !ls.IsString(-1) {
			return ls.Error2("invalid value (at index %d) in table for 'concat'", i)
		}
		out = append(out, ls.ToString(-1)...)
		ls.Pop(1)
		if i < j {
			out = append(out, sep...)
		}
	}
	ls.PushString(string(out))
	return 1
}

// table.pack (···)
// http://www.lua.org/manual/5.2/manual.html#pdf-table.pack
func tablePack(ls State) int {
	n := ls.GetTop()
	ls.CreateTable(n, 1)
	for i := n; i >= 1; i-- {
		ls.Insert(-2) // move the partial array under the next value
		ls.RawSetI(-2, int64(i))
	}
	ls.PushInteger(int64(n))
	ls.SetField(-2, "n")
	return 1
}

// table.unpack (list [, i [, j]])
// http://www.lua.org/manual/5.2/manual.html#pdf-table.unpack
//
// Exported since this is also the `unpack` global wired by
// state.OpenLibs (pcall/xpcall need the continuation machinery in
// package state, but unpack doesn't, so it lives here like the rest of
// the table library).
func TableUnpack(ls State) int {
	ls.CheckType(1, TypeTable)
	i := ls.OptInteger(2, 1)
	j := ls.OptInteger(3, ls.RawLen(1))
	if i > j {
		return 0
	}
	n := j - i + 1
	ls.CheckStack2(int(n), "too many results to unpack")
	for ; i <= j; i++ {
		ls.RawGetI(1, i)
	}
	return int(n)
}

// table.sort (list [, comp])
// http://www.lua.org/manual/5.2/manual.html#pdf-table.sort
//
// Plain insertion sort driven entirely through the stack: less and
// swap each touch only two slots at a time via RawGetI/RawSetI, so
// neither needs to smuggle a Go-side copy of the element's value.
func tableSort(ls State) int {
	ls.CheckType(1, TypeTable)
	n := int(ls.RawLen(1))
	hasComp := !ls.IsNoneOrNil(2)

	less := func(i, j int) bool {
		ls.RawGetI(1, int64(i))
		ls.RawGetI(1, int64(j))
		if hasComp {
			ls.PushValue(2)
			ls.Insert(-3)
			ls.Call(2, 1)
			result := ls.ToBoolean(-1)
			ls.Pop(1)
			return result
		}
		result := ls.Compare(-2, -1, OpLt)
		ls.Pop(2)
		return result
	}
	swap := func(i, j int) {
		ls.RawGetI(1, int64(i))
		ls.RawGetI(1, int64(j))
		ls.RawSetI(1, int64(i))
		ls.RawSetI(1, int64(j))
	}

	for i := 2; i <= n; i++ {
		for j := i; j > 1 && less(j, j-1); j-- {
			swap(j, j-1)
		}
	}
	return 0
}
