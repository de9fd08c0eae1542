package state

import (
	"fmt"
	"math"

	. "git.lolli.tech/lollipopkit/luacore/api"
)

// maxIndexChain bounds __index/__newindex metamethod chasing; spec
// §4.1 asks for a "loop in gettable/settable" error rather than an
// unbounded recursion (which, since this interpreter never recurses
// the Go stack for Lua calls, would otherwise just spin forever on a
// self-referential metatable instead of blowing a native stack).
const maxIndexChain = 2000

type operator struct {
	metamethod string
	fn         func(a, b float64) float64
}

var operators = map[ArithOp]operator{
	OpAdd: {"__add", func(a, b float64) float64 { return a + b }},
	OpSub: {"__sub", func(a, b float64) float64 { return a - b }},
	OpMul: {"__mul", func(a, b float64) float64 { return a * b }},
	OpMod: {"__mod", luaMod},
	OpPow: {"__pow", math.Pow},
	OpDiv: {"__div", func(a, b float64) float64 { return a / b }},
	OpUnm: {"__unm", func(a, _ float64) float64 { return -a }},
}

func luaMod(a, b float64) float64 {
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}

func opSymbol(mm string) string {
	switch mm {
	case "__add":
		return "+"
	case "__sub":
		return "-"
	case "__mul":
		return "*"
	case "__mod":
		return "%"
	case "__pow":
		return "^"
	case "__div":
		return "/"
	case "__unm":
		return "-"
	default:
		return mm
	}
}

// http://www.lua.org/manual/5.2/manual.html#lua_arith
func (t *Thread) Arith(op ArithOp) {
	switch op {
	case OpBAnd, OpBOr, OpBXor, OpShl, OpShr, OpBNot, OpIDiv:
		// Lua 5.2 has no bitwise operators or floor division; these
		// ArithOp values exist only so a host targeting a later
		// dialect gets a clear rejection instead of silent truncation.
		panicError(t, runtimeErrorf("attempt to perform bitwise/idiv operation (not supported in this dialect)"))
	}

	var a, b any
	b = t.frames.pop()
	if op != OpUnm {
		a = t.frames.pop()
	} else {
		a = b
	}

	opr := operators[op]
	if x, ok := convertToFloat(a); ok {
		if y, ok := convertToFloat(b); ok {
			t.frames.push(opr.fn(x, y))
			return
		}
	}

	if result, ok := t.callBinMetamethod(a, b, opr.metamethod); ok {
		t.frames.push(result)
		return
	}

	if op == OpAdd {
		if as, ok := a.(*istring); ok {
			if bs, ok := b.(*istring); ok {
				t.frames.push(t.ls.intern(as.s + bs.s))
				return
			}
		}
	}

	panicError(t, runtimeErrorf("attempt to perform arithmetic (%s) on a %s value",
		opSymbol(opr.metamethod), t.ls.typeNameOf(pickBad(a, b))))
}

func pickBad(a, b any) any {
	if _, ok := convertToFloat(a); !ok {
		return a
	}
	return b
}

func (t *Thread) callBinMetamethod(a, b any, name string) (any, bool) {
	mm := t.ls.getMetafield(a, name)
	if mm == nil {
		mm = t.ls.getMetafield(b, name)
	}
	if mm == nil {
		return nil, false
	}
	return t.callMetaFn(mm, a, b), true
}

// callMetaFn invokes a metamethod function and waits for its single
// result. Metamethod dispatch is the one place besides host-facing
// Call/PCall where this interpreter recurses the Go stack once per
// nesting level (bounded by maxIndexChain): a yield from inside a
// metamethod function is not preserved across this call, the one
// documented gap in an otherwise flat, yield-anywhere design — see
// protected_call.go's doc comment for why pcall gets full CPS
// treatment instead of this shortcut.
func (t *Thread) callMetaFn(fn any, args ...any) any {
	c, ok := fn.(*Closure)
	if !ok {
		panicError(t, runtimeErrorf("attempt to call a %s value", t.ls.typeNameOf(fn)))
	}
	caller := t.frames
	t.callClosure(c, args, 1)
	t.runUntilReturnTo(caller)
	return caller.pop()
}

// runUntilReturnTo steps bytecode until the frame stack unwinds back
// down to (but not including) target, i.e. until whatever was pushed
// above it has fully returned or errored out.
func (t *Thread) runUntilReturnTo(target *Frame) {
	for t.frames != nil && t.frames != target {
		t.stepOne()
	}
}

// stepOne executes exactly one bytecode instruction of the current
// top frame, used by callMetaFn to drive a nested call synchronously
// when we are not already inside Thread.drive's own loop (e.g. a
// metamethod invoked directly from an auxlib helper rather than from
// an executing opcode).
func (t *Thread) stepOne() {
	f := t.frames
	if f.closure == nil {
		t.resolveContinuation(nil, nil)
		return
	}
	if f.closure.isGo() {
		n := f.closure.goFunc(t)
		results := f.popN(n)
		t.popFrame()
		t.deliver(results, MultiRet)
		return
	}
	if f.pc >= len(f.closure.proto.Code) {
		t.doReturn(nil)
		return
	}
	word := f.closure.proto.Code[f.pc]
	f.pc++
	instExecute(word, t)
}

// http://www.lua.org/manual/5.2/manual.html#lua_compare
func (t *Thread) Compare(idx1, idx2 int, op CompareOp) bool {
	a := t.frames.get(idx1)
	b := t.frames.get(idx2)
	switch op {
	case OpEq:
		return t.equals(a, b)
	case OpLt:
		return t.lessThan(a, b, false)
	case OpLe:
		return t.lessThan(a, b, true)
	}
	return false
}

// RawEqual implements rawequal(): primitive equality with no __eq
// dispatch.
func (t *Thread) RawEqual(idx1, idx2 int) bool {
	return rawEqual(t.frames.get(idx1), t.frames.get(idx2))
}

func (t *Thread) equals(a, b any) bool {
	if rawEqual(a, b) {
		return true
	}
	_, aIsTable := a.(*Table)
	_, bIsTable := b.(*Table)
	_, aIsUD := a.(*Userdata)
	_, bIsUD := b.(*Userdata)
	if (aIsTable && bIsTable) || (aIsUD && bIsUD) {
		if result, ok := t.callBinMetamethod(a, b, "__eq"); ok {
			return convertToBoolean(result)
		}
	}
	return false
}

func (t *Thread) lessThan(a, b any, orEqual bool) bool {
	af, aok := convertToFloatStrict(a)
	bf, bok := convertToFloatStrict(b)
	if aok && bok {
		if orEqual {
			return af <= bf
		}
		return af < bf
	}
	as, aok := a.(*istring)
	bs, bok := b.(*istring)
	if aok && bok {
		if orEqual {
			return as.s <= bs.s
		}
		return as.s < bs.s
	}
	name := "__lt"
	if orEqual {
		name = "__le"
	}
	if result, ok := t.callBinMetamethod(a, b, name); ok {
		return convertToBoolean(result)
	}
	panicError(t, runtimeErrorf("attempt to compare two %s values", t.ls.typeNameOf(a)))
	return false
}

// convertToFloatStrict doesn't coerce strings, matching Lua's
// comparison rules (< and <= never string-coerce numbers).
func convertToFloatStrict(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}

// getIndex implements GETTABLE/GETFIELD/GETI and the State-facing
// GetTable/GetField/GetI/RawGet family: spec §4.1's __index chase,
// bounded by maxIndexChain.
func (t *Thread) getIndex(obj, key any, raw bool) any {
	for i := 0; i < maxIndexChain; i++ {
		if tbl, ok := obj.(*Table); ok {
			v := tbl.get(key)
			if v != nil || raw {
				return v
			}
			mf := t.ls.getMetafield(tbl, "__index")
			if mf == nil {
				return nil
			}
			if mfTbl, ok := mf.(*Table); ok {
				obj = mfTbl
				continue
			}
			return t.callMetaFn(mf, obj, key)
		}
		if raw {
			panicError(t, runtimeErrorf("table expected, got %s", t.ls.typeNameOf(obj)))
		}
		mf := t.ls.getMetafield(obj, "__index")
		if mf == nil {
			panicError(t, runtimeErrorf("attempt to index a %s value", t.ls.typeNameOf(obj)))
		}
		if mfTbl, ok := mf.(*Table); ok {
			obj = mfTbl
			continue
		}
		return t.callMetaFn(mf, obj, key)
	}
	panicError(t, runtimeErrorf("'__index' chain too long; possible loop"))
	return nil
}

func (t *Thread) setIndex(obj, key, val any, raw bool) {
	for i := 0; i < maxIndexChain; i++ {
		if tbl, ok := obj.(*Table); ok {
			if raw || tbl.get(key) != nil {
				if errMsg := tbl.put(key, val); errMsg != "" {
					panicError(t, runtimeErrorf("%s", errMsg))
				}
				return
			}
			mf := t.ls.getMetafield(tbl, "__newindex")
			if mf == nil {
				if errMsg := tbl.put(key, val); errMsg != "" {
					panicError(t, runtimeErrorf("%s", errMsg))
				}
				return
			}
			if mfTbl, ok := mf.(*Table); ok {
				obj = mfTbl
				continue
			}
			t.callMetaFn(mf, obj, key, val)
			return
		}
		if raw {
			panicError(t, runtimeErrorf("table expected, got %s", t.ls.typeNameOf(obj)))
		}
		mf := t.ls.getMetafield(obj, "__newindex")
		if mf == nil {
			panicError(t, runtimeErrorf("attempt to index a %s value", t.ls.typeNameOf(obj)))
		}
		if mfTbl, ok := mf.(*Table); ok {
			obj = mfTbl
			continue
		}
		t.callMetaFn(mf, obj, key, val)
		return
	}
	panicError(t, runtimeErrorf("'__newindex' chain too long; possible loop"))
}

// Len implements the `#` operator's metamethod dispatch (__len), used
// by the LEN opcode and the AuxLib Len2 helper.
func (t *Thread) Len(idx int) {
	val := t.frames.get(idx)
	switch v := val.(type) {
	case *istring:
		t.frames.push(float64(len(v.s)))
		return
	case *Table:
		if mf := t.ls.getMetafield(v, "__len"); mf != nil {
			t.frames.push(t.callMetaFn(mf, v))
			return
		}
		t.frames.push(float64(v.rawLen()))
		return
	}
	if mf := t.ls.getMetafield(val, "__len"); mf != nil {
		t.frames.push(t.callMetaFn(mf, val))
		return
	}
	panicError(t, runtimeErrorf("attempt to get length of a %s value", t.ls.typeNameOf(val)))
}

// RawLen implements rawlen(): length without __len dispatch, used by
// rawlen() and the table library.
func (t *Thread) RawLen(idx int) int64 {
	val := t.frames.get(idx)
	switch v := val.(type) {
	case *istring:
		return int64(len(v.s))
	case *Table:
		return v.rawLen()
	}
	panicError(t, runtimeErrorf("table or string expected"))
	return 0
}

// concat implements CONCAT's pairwise reduction with __concat
// fallback, used by the VM's CONCAT opcode handler.
func (t *Thread) concat(a, b any) any {
	as, aok := toConcatString(a)
	bs, bok := toConcatString(b)
	if aok && bok {
		return t.ls.intern(as + bs)
	}
	if result, ok := t.callBinMetamethod(a, b, "__concat"); ok {
		return result
	}
	bad := a
	if aok {
		bad = b
	}
	panicError(t, runtimeErrorf("attempt to concatenate a %s value", t.ls.typeNameOf(bad)))
	return nil
}

func toConcatString(v any) (string, bool) {
	switch x := v.(type) {
	case *istring:
		return x.s, true
	case float64:
		return numberToString(x), true
	default:
		return "", false
	}
}

// tostringValue implements tostring()'s __tostring/__name dispatch,
// shared by the base library and debug.traceback formatting.
func (t *Thread) tostringValue(val any) string {
	if mf := t.ls.getMetafield(val, "__tostring"); mf != nil {
		result := t.callMetaFn(mf, val)
		if s, ok := result.(*istring); ok {
			return s.s
		}
		return fmt.Sprintf("%v", result)
	}
	switch v := val.(type) {
	case nil:
		return "nil"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return numberToString(v)
	case *istring:
		return v.s
	default:
		if name := t.ls.getMetafield(val, "__name"); name != nil {
			if s, ok := name.(*istring); ok {
				return fmt.Sprintf("%s: %p", s.s, val)
			}
		}
		return fmt.Sprintf("%s: %p", typeOf(val).String(), val)
	}
}
