package state

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	. "git.lolli.tech/lollipopkit/luacore/api"
)

// Value is deliberately left as `any`, type-switched at each use site:
// nil, bool, float64, *istring, *Table, *Closure, *Userdata, *Thread.
// A wrapper sum type would cost an allocation (or an interface box of
// its own) for every scalar arithmetic op; the teacher repo avoids
// that the same way, and so do we.
//
// Lua 5.2 has a single number subtype (spec Non-goals explicitly rule
// out the 5.3 integer subtype), so every Lua "number" is a float64.
// Table keys still canonicalize integer-valued floats to an internal
// int64 form — that is a Table implementation detail (§6.1), not a
// second Value tag.

type Userdata struct {
	Data any
	Meta *Table
}

func typeOf(val any) LuaType {
	switch val.(type) {
	case nil:
		return TypeNil
	case bool:
		return TypeBoolean
	case float64:
		return TypeNumber
	case *istring:
		return TypeString
	case *Table:
		return TypeTable
	case *Closure:
		return TypeFunction
	case *Userdata:
		return TypeUserdata
	case *Thread:
		return TypeThread
	default:
		panic(fmt.Sprintf("luacore: invalid internal value %T<%v>", val, val))
	}
}

func convertToBoolean(val any) bool {
	switch v := val.(type) {
	case nil:
		return false
	case bool:
		return v
	default:
		return true
	}
}

// rawEqual implements primitive equality (no __eq): numbers compare by
// value, strings by content (istring interning makes this a pointer
// compare), everything else by identity.
func rawEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	switch x := a.(type) {
	case float64:
		y, ok := b.(float64)
		return ok && x == y
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	case *istring:
		y, ok := b.(*istring)
		return ok && x.equal(y)
	default:
		return a == b
	}
}

// http://www.lua.org/manual/5.2/manual.html#3.4.3
func convertToFloat(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case *istring:
		return parseFloat(v.s)
	default:
		return 0, false
	}
}

// convertToGoInt is used only for table-key canonicalization and
// bytecode operands, never to retag a Value as an "integer".
func convertToGoInt(val any) (int64, bool) {
	f, ok := convertToFloat(val)
	if !ok {
		return 0, false
	}
	return floatToInt(f)
}

func floatToInt(f float64) (int64, bool) {
	i := int64(f)
	if float64(i) == f && !math.IsInf(f, 0) {
		return i, true
	}
	return 0, false
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// numberToString renders a Lua number the way tostring/__tostring and
// CONCAT do: integer-valued floats print without a fractional part,
// everything else uses Lua's %.14g.
func numberToString(f float64) string {
	if math.IsNaN(f) {
		return "nan"
	}
	if math.IsInf(f, 1) {
		return "inf"
	}
	if math.IsInf(f, -1) {
		return "-inf"
	}
	if i, ok := floatToInt(f); ok {
		return strconv.FormatInt(i, 10)
	}
	return strconv.FormatFloat(f, 'g', 14, 64)
}

/* metatables */

func (ls *LuaState) typeMetatable(t LuaType) *Table {
	mt, _ := ls.typeMetatables[t]
	return mt
}

// getMetatable returns the value's own metatable (tables and
// userdata only carry one directly) and the type-wide fallback from
// LuaState.typeMetatables.
func (ls *LuaState) getMetatable(val any) (own, typeWide *Table) {
	switch v := val.(type) {
	case *Table:
		own = v.metatable
	case *Userdata:
		own = v.Meta
	}
	typeWide = ls.typeMetatable(typeOf(val))
	return
}

func (ls *LuaState) setMetatable(val any, mt *Table) {
	switch v := val.(type) {
	case *Table:
		v.metatable = mt
	case *Userdata:
		v.Meta = mt
	default:
		ls.typeMetatables[typeOf(val)] = mt
	}
}

func (ls *LuaState) getMetafield(val any, name string) any {
	own, typeWide := ls.getMetatable(val)
	if own != nil {
		if f := own.get(ls.intern(name)); f != nil {
			return f
		}
	}
	if typeWide != nil {
		return typeWide.get(ls.intern(name))
	}
	return nil
}

func (ls *LuaState) hasMetamethod(val any, name string) bool {
	return ls.getMetafield(val, name) != nil
}

// typeNameOf substitutes a metatable __name for the raw type name on
// tables/userdata, per spec §7's argument-error wording.
func (ls *LuaState) typeNameOf(val any) string {
	if name := ls.getMetafield(val, "__name"); name != nil {
		if s, ok := name.(*istring); ok {
			return s.s
		}
	}
	return typeOf(val).String()
}
