package vm

import . "git.lolli.tech/lollipopkit/luacore/api"

// R(A) := R(B)
func move(i Instruction, vm VM) {
	a, b, _ := i.ABC()
	a += 1
	b += 1

	vm.Copy(b, a)
}

// pc+=sBx; if (A) close all upvalues >= R(A - 1)
func jmp(i Instruction, vm VM) {
	a, sBx := i.AsBx()

	vm.AddPC(sBx)
	if a != 0 {
		vm.CloseUpvalues(a)
	}
}

// close all upvalues >= R(A)
func closeOp(i Instruction, vm VM) {
	a, _, _ := i.ABC()
	a += 1

	vm.CloseUpvalues(a)
}
