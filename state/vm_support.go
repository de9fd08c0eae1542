package state

// The api.VM sub-interface is the window vm.Instruction.Execute sees
// into the running Thread: program counter, constant pool and upvalue
// access, all scoped to the current frame. Where the teacher's
// lkState.stack was a single recursive activation, t.top() here is the
// head of the explicit frame stack, so these methods need no recursion
// of their own.

func (t *Thread) PC() int {
	return t.top().pc
}

func (t *Thread) AddPC(n int) {
	t.top().pc += n
}

func (t *Thread) Fetch() uint32 {
	f := t.top()
	i := f.closure.proto.Code[f.pc]
	f.pc++
	return i
}

func (t *Thread) GetConst(idx int) {
	f := t.top()
	f.push(f.closure.proto.Constants[idx])
}

func (t *Thread) GetRK(rk int) {
	if rk > 0xFF { // constant
		t.GetConst(rk & 0xFF)
	} else { // register
		t.PushValue(rk + 1)
	}
}

func (t *Thread) RegisterCount() int {
	return int(t.top().closure.proto.MaxStackSize)
}

func (t *Thread) LoadVararg(n int) {
	f := t.top()
	if n < 0 {
		n = len(f.varargs)
	}
	f.check(n)
	f.pushN(f.varargs, n)
}

// LoadProto instantiates the idx'th nested prototype of the running
// closure as a new closure and pushes it, wiring each of its upvalues
// to either a still-open slot in this frame (shared with any sibling
// closure already capturing it) or straight through to this closure's
// own upvalue of the same name.
func (t *Thread) LoadProto(idx int) {
	f := t.top()
	subProto := f.closure.proto.Protos[idx]
	closure := newLuaClosure(subProto)

	for i := range subProto.Upvalues {
		uvIdx := int(subProto.Upvalues[i].Idx)
		if subProto.Upvalues[i].Instack == 1 {
			closure.upvals[i] = f.findOpenUpvalue(uvIdx)
		} else {
			closure.upvals[i] = f.closure.upvals[uvIdx]
		}
	}

	f.push(closure)
}

func (t *Thread) CloseUpvalues(a int) {
	t.top().closeUpvalues(a - 1)
}
