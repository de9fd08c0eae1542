package state

import . "git.lolli.tech/lollipopkit/luacore/api"

// http://www.lua.org/manual/5.2/manual.html#lua_next
func (t *Thread) Next(idx int) bool {
	tbl, ok := t.frames.get(idx).(*Table)
	if !ok {
		panicError(t, runtimeErrorf("table expected, got %s", t.ls.typeNameOf(t.frames.get(idx))))
	}
	key := t.frames.pop()
	nk, nv, ok := tbl.next(key)
	if !ok {
		panicError(t, runtimeErrorf("invalid key to 'next'"))
	}
	if nk == nil {
		return false
	}
	t.frames.push(nk)
	t.frames.push(nv)
	return true
}

// http://www.lua.org/manual/5.2/manual.html#lua_error
func (t *Thread) Error() int {
	val := t.frames.pop()
	panicError(t, newLuaError(val))
	return 0
}

// http://www.lua.org/manual/5.2/manual.html#lua_stringtonumber
func (t *Thread) StringToNumber(s string) bool {
	if f, ok := parseFloat(s); ok {
		t.PushNumber(f)
		return true
	}
	return false
}
