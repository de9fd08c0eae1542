package state

import . "git.lolli.tech/lollipopkit/luacore/api"

// http://www.lua.org/manual/5.2/manual.html#lua_gettop
func (t *Thread) GetTop() int {
	return t.frames.top
}

// http://www.lua.org/manual/5.2/manual.html#lua_absindex
func (t *Thread) AbsIndex(idx int) int {
	return t.frames.absIndex(idx)
}

// http://www.lua.org/manual/5.2/manual.html#lua_checkstack
func (t *Thread) CheckStack(n int) bool {
	t.frames.check(n)
	return true
}

// http://www.lua.org/manual/5.2/manual.html#lua_pop
func (t *Thread) Pop(n int) {
	for i := 0; i < n; i++ {
		t.frames.pop()
	}
}

// http://www.lua.org/manual/5.2/manual.html#lua_copy
func (t *Thread) Copy(fromIdx, toIdx int) {
	t.frames.set(toIdx, t.frames.get(fromIdx))
}

// http://www.lua.org/manual/5.2/manual.html#lua_pushvalue
func (t *Thread) PushValue(idx int) {
	t.frames.push(t.frames.get(idx))
}

// http://www.lua.org/manual/5.2/manual.html#lua_replace
func (t *Thread) Replace(idx int) {
	t.frames.set(idx, t.frames.pop())
}

// http://www.lua.org/manual/5.2/manual.html#lua_insert
func (t *Thread) Insert(idx int) {
	t.Rotate(idx, 1)
}

// http://www.lua.org/manual/5.2/manual.html#lua_remove
func (t *Thread) Remove(idx int) {
	t.Rotate(idx, -1)
	t.Pop(1)
}

// http://www.lua.org/manual/5.2/manual.html#lua_rotate
func (t *Thread) Rotate(idx, n int) {
	f := t.frames
	top := f.top - 1
	p := f.absIndex(idx) - 1
	var m int
	if n >= 0 {
		m = top - n
	} else {
		m = p - n - 1
	}
	f.reverse(p, m)
	f.reverse(m+1, top)
	f.reverse(p, top)
}

// http://www.lua.org/manual/5.2/manual.html#lua_settop
func (t *Thread) SetTop(idx int) {
	f := t.frames
	newTop := f.absIndex(idx)
	if newTop < 0 {
		panic("stack underflow")
	}
	n := f.top - newTop
	if n > 0 {
		for i := 0; i < n; i++ {
			f.pop()
		}
	} else if n < 0 {
		for i := 0; i > n; i-- {
			f.push(nil)
		}
	}
}

// http://www.lua.org/manual/5.2/manual.html#lua_xmove
func (t *Thread) XMove(to State, n int) {
	dst, ok := to.(*Thread)
	if !ok {
		return
	}
	vals := t.frames.popN(n)
	dst.frames.pushN(vals, n)
}
