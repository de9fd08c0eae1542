package vm

import . "git.lolli.tech/lollipopkit/luacore/api"

// R(A), ... ,R(A+C-2) := R(A)(R(A+1), ... ,R(A+B-1))
//
// PushCall only pushes the callee's frame; it never drives it to
// completion, so this handler returns immediately and the enclosing
// Thread.drive loop picks the new frame up on its next iteration —
// the mechanism that lets a script yield from any call depth without
// recursing the host stack.
func call(i Instruction, vm VM) {
	a, b, c := i.ABC()
	a += 1

	vm.PushCall(a, b, c)
}

// return R(A)(R(A+1), ... ,R(A+B-1))
func tailCall(i Instruction, vm VM) {
	a, b, _ := i.ABC()
	a += 1

	vm.TailCall(a, b)
}

// return R(A), ... ,R(A+B-2)
func _return(i Instruction, vm VM) {
	a, b, _ := i.ABC()
	a += 1

	vm.Return(a, b)
}
