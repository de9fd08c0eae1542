package vm

import . "git.lolli.tech/lollipopkit/luacore/api"

/* arith */

func add(i Instruction, vm VM) { binaryArith(i, vm, OpAdd) } // +
func sub(i Instruction, vm VM) { binaryArith(i, vm, OpSub) } // -
func mul(i Instruction, vm VM) { binaryArith(i, vm, OpMul) } // *
func mod(i Instruction, vm VM) { binaryArith(i, vm, OpMod) } // %
func pow(i Instruction, vm VM) { binaryArith(i, vm, OpPow) } // ^
func div(i Instruction, vm VM) { binaryArith(i, vm, OpDiv) } // /
func unm(i Instruction, vm VM) { unaryArith(i, vm, OpUnm) }  // -

// R(A) := RK(B) op RK(C)
func binaryArith(i Instruction, vm VM, op ArithOp) {
	a, b, c := i.ABC()
	a += 1

	vm.GetRK(b)
	vm.GetRK(c)
	vm.Arith(op)
	vm.Replace(a)
}

// R(A) := op R(B)
func unaryArith(i Instruction, vm VM, op ArithOp) {
	a, b, _ := i.ABC()
	a += 1
	b += 1

	vm.PushValue(b)
	vm.Arith(op)
	vm.Replace(a)
}

/* compare */

func eq(i Instruction, vm VM) { compare(i, vm, OpEq) } // ==
func lt(i Instruction, vm VM) { compare(i, vm, OpLt) } // <
func le(i Instruction, vm VM) { compare(i, vm, OpLe) } // <=

// if ((RK(B) op RK(C)) ~= A) then pc++
func compare(i Instruction, vm VM, op CompareOp) {
	a, b, c := i.ABC()

	vm.GetRK(b)
	vm.GetRK(c)
	if vm.Compare(-2, -1, op) != (a != 0) {
		vm.AddPC(1)
	}
	vm.Pop(2)
}

/* logical */

// R(A) := not R(B)
func not(i Instruction, vm VM) {
	a, b, _ := i.ABC()
	a += 1
	b += 1

	vm.PushBoolean(!vm.ToBoolean(b))
	vm.Replace(a)
}

// if not (R(A) <=> C) then pc++
func test(i Instruction, vm VM) {
	a, _, c := i.ABC()
	a += 1

	if vm.ToBoolean(a) != (c != 0) {
		vm.AddPC(1)
	}
}

// if (R(B) <=> C) then R(A) := R(B) else pc++
func testSet(i Instruction, vm VM) {
	a, b, c := i.ABC()
	a += 1
	b += 1

	if vm.ToBoolean(b) == (c != 0) {
		vm.Copy(b, a)
	} else {
		vm.AddPC(1)
	}
}

/* len & concat */

// R(A) := length of R(B)
func length(i Instruction, vm VM) {
	a, b, _ := i.ABC()
	a += 1
	b += 1

	vm.Len(b)
	vm.Replace(a)
}

// R(A) := R(B).. ... ..R(C)
func concat(i Instruction, vm VM) {
	a, b, c := i.ABC()
	a += 1
	b += 1
	c += 1

	vm.Concat(b, c)
	vm.Copy(b, a)
}
