package state

import (
	. "git.lolli.tech/lollipopkit/luacore/api"
)

// http://www.lua.org/manual/5.2/manual.html#lua_typename
func (t *Thread) TypeName(tp LuaType) string {
	return tp.String()
}

// http://www.lua.org/manual/5.2/manual.html#lua_type
func (t *Thread) Type(idx int) LuaType {
	if t.frames.isValid(idx) {
		return typeOf(t.frames.get(idx))
	}
	return TypeNone
}

func (t *Thread) IsNone(idx int) bool        { return t.Type(idx) == TypeNone }
func (t *Thread) IsNil(idx int) bool         { return t.Type(idx) == TypeNil }
func (t *Thread) IsNoneOrNil(idx int) bool   { return t.Type(idx) <= TypeNil }
func (t *Thread) IsBoolean(idx int) bool     { return t.Type(idx) == TypeBoolean }
func (t *Thread) IsTable(idx int) bool       { return t.Type(idx) == TypeTable }
func (t *Thread) IsFunction(idx int) bool    { return t.Type(idx) == TypeFunction }
func (t *Thread) IsThread(idx int) bool      { return t.Type(idx) == TypeThread }

// http://www.lua.org/manual/5.2/manual.html#lua_isstring
func (t *Thread) IsString(idx int) bool {
	tp := t.Type(idx)
	return tp == TypeString || tp == TypeNumber
}

func (t *Thread) IsNumber(idx int) bool {
	_, ok := t.ToNumberX(idx)
	return ok
}

// IsInteger reports whether the value at idx is a number with no
// fractional part. Lua 5.2 has no separate integer subtype (spec
// Non-goals), so this is a predicate on the float64, not a type tag.
func (t *Thread) IsInteger(idx int) bool {
	f, ok := t.ToNumberX(idx)
	if !ok {
		return false
	}
	_, ok = floatToInt(f)
	return ok
}

func (t *Thread) IsGoFunction(idx int) bool {
	if c, ok := t.frames.get(idx).(*Closure); ok {
		return c.isGo()
	}
	return false
}

func (t *Thread) ToBoolean(idx int) bool {
	return convertToBoolean(t.frames.get(idx))
}

func (t *Thread) ToInteger(idx int) int64 {
	i, _ := t.ToIntegerX(idx)
	return i
}

func (t *Thread) ToIntegerX(idx int) (int64, bool) {
	return convertToGoInt(t.frames.get(idx))
}

func (t *Thread) ToNumber(idx int) float64 {
	n, _ := t.ToNumberX(idx)
	return n
}

func (t *Thread) ToNumberX(idx int) (float64, bool) {
	return convertToFloat(t.frames.get(idx))
}

// http://www.lua.org/manual/5.2/manual.html#lua_tostring
func (t *Thread) ToString(idx int) string {
	s, _ := t.ToStringX(idx)
	return s
}

func (t *Thread) ToStringX(idx int) (string, bool) {
	val := t.frames.get(idx)
	switch v := val.(type) {
	case *istring:
		return v.s, true
	case float64:
		s := numberToString(v)
		t.frames.set(idx, t.ls.intern(s))
		return s, true
	default:
		return "", false
	}
}

func (t *Thread) ToGoFunction(idx int) GoFunction {
	if c, ok := t.frames.get(idx).(*Closure); ok {
		return c.goFunc
	}
	return nil
}

func (t *Thread) ToThread(idx int) State {
	if th, ok := t.frames.get(idx).(*Thread); ok {
		return th
	}
	return nil
}

func (t *Thread) ToPointer(idx int) any {
	return t.frames.get(idx)
}
