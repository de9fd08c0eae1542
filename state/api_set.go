package state

import . "git.lolli.tech/lollipopkit/luacore/api"

func (t *Thread) SetTable(idx int) {
	tbl := t.frames.get(idx)
	v := t.frames.pop()
	k := t.frames.pop()
	t.setIndex(tbl, k, v, false)
}

func (t *Thread) SetField(idx int, k string) {
	tbl := t.frames.get(idx)
	v := t.frames.pop()
	t.setIndex(tbl, t.ls.intern(k), v, false)
}

func (t *Thread) SetI(idx int, i int64) {
	tbl := t.frames.get(idx)
	v := t.frames.pop()
	t.setIndex(tbl, float64(i), v, false)
}

func (t *Thread) RawSet(idx int) {
	tbl := t.frames.get(idx)
	v := t.frames.pop()
	k := t.frames.pop()
	t.setIndex(tbl, k, v, true)
}

func (t *Thread) RawSetI(idx int, i int64) {
	tbl := t.frames.get(idx)
	v := t.frames.pop()
	t.setIndex(tbl, float64(i), v, true)
}

func (t *Thread) SetGlobal(name string) {
	v := t.frames.pop()
	t.setIndex(t.ls.globals, t.ls.intern(name), v, false)
}

func (t *Thread) Register(name string, f GoFunction) {
	c := newGoClosure(f, 0)
	c.name = name
	t.frames.push(c)
	t.SetGlobal(name)
}

// http://www.lua.org/manual/5.2/manual.html#lua_setmetatable
func (t *Thread) SetMetatable(idx int) {
	val := t.frames.get(idx)
	mtVal := t.frames.pop()
	mt, _ := mtVal.(*Table)
	t.ls.setMetatable(val, mt)
}
