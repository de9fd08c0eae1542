package state

import . "git.lolli.tech/lollipopkit/luacore/api"

func (t *Thread) NewTable() {
	t.CreateTable(0, 0)
}

func (t *Thread) CreateTable(nArr, nRec int) {
	t.frames.push(newTable(nArr, nRec))
}

func (t *Thread) GetTable(idx int) LuaType {
	tbl := t.frames.get(idx)
	key := t.frames.pop()
	v := t.getIndex(tbl, key, false)
	t.frames.push(v)
	return typeOf(v)
}

func (t *Thread) GetField(idx int, k string) LuaType {
	tbl := t.frames.get(idx)
	v := t.getIndex(tbl, t.ls.intern(k), false)
	t.frames.push(v)
	return typeOf(v)
}

func (t *Thread) GetI(idx int, i int64) LuaType {
	tbl := t.frames.get(idx)
	v := t.getIndex(tbl, float64(i), false)
	t.frames.push(v)
	return typeOf(v)
}

func (t *Thread) RawGet(idx int) LuaType {
	tbl := t.frames.get(idx)
	key := t.frames.pop()
	v := t.getIndex(tbl, key, true)
	t.frames.push(v)
	return typeOf(v)
}

func (t *Thread) RawGetI(idx int, i int64) LuaType {
	tbl := t.frames.get(idx)
	v := t.getIndex(tbl, float64(i), true)
	t.frames.push(v)
	return typeOf(v)
}

func (t *Thread) GetGlobal(name string) LuaType {
	v := t.getIndex(t.ls.globals, t.ls.intern(name), false)
	t.frames.push(v)
	return typeOf(v)
}

// http://www.lua.org/manual/5.2/manual.html#lua_getmetatable
func (t *Thread) GetMetatable(idx int) bool {
	val := t.frames.get(idx)
	own, typeWide := t.ls.getMetatable(val)
	mt := own
	if mt == nil {
		mt = typeWide
	}
	if mt != nil {
		t.frames.push(mt)
		return true
	}
	return false
}
