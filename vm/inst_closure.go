package vm

import . "git.lolli.tech/lollipopkit/luacore/api"

// R(A) := closure(KPROTO[Bx])
func closure(i Instruction, vm VM) {
	a, bx := i.ABx()
	a += 1

	vm.LoadProto(bx)
	vm.Replace(a)
}

// R(A), R(A+1), ..., R(A+B-2) = vararg
func vararg(i Instruction, vm VM) {
	a, b, _ := i.ABC()
	a += 1

	if b == 1 {
		return // zero results requested
	}

	top := vm.GetTop()
	vm.LoadVararg(b - 1) // b-1 values, or -1 meaning "all of them"
	n := vm.GetTop() - top
	for k := 0; k < n; k++ {
		vm.Copy(top+1+k, a+k)
	}
	vm.SetTop(top)
}
