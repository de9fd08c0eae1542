package vm

import . "git.lolli.tech/lollipopkit/luacore/api"

// R(A) -= R(A+2); pc += sBx
//
// Register layout is the standard Lua for-loop quad: R(A) index,
// R(A+1) limit, R(A+2) step, R(A+3) the user-visible loop variable.
// The jump lands exactly on the matching FORLOOP, which does the
// first increment-and-test before the loop body ever runs.
func forPrep(i Instruction, vm VM) {
	a, sBx := i.AsBx()
	a += 1

	vm.PushValue(a)
	vm.PushValue(a + 2)
	vm.Arith(OpSub)
	vm.Replace(a)
	vm.AddPC(sBx)
}

// R(A) += R(A+2); if R(A) <?= R(A+1) then { pc += sBx; R(A+3) = R(A) }
func forLoop(i Instruction, vm VM) {
	a, sBx := i.AsBx()
	a += 1

	vm.PushValue(a + 2)
	vm.PushValue(a)
	vm.Arith(OpAdd)
	vm.Replace(a)

	positiveStep := vm.ToNumber(a+2) >= 0
	value, limit := vm.ToNumber(a), vm.ToNumber(a+1)
	cont := positiveStep && value <= limit || !positiveStep && value >= limit
	if !cont {
		return
	}
	vm.AddPC(sBx)
	vm.Copy(a, a+3)
}

// R(A+3), ..., R(A+2+C) := R(A)(R(A+1), R(A+2))
//
// The iterator, its invariant state and the control variable are
// copied down to a temporary window three registers on, then called
// there, so results land exactly where TFORLOOP expects them — the
// same shuffle PUC-Lua's interpreter does in its CALL handler.
func tForCall(i Instruction, vm VM) {
	a, _, c := i.ABC()
	a += 1

	vm.Copy(a, a+3)
	vm.Copy(a+1, a+4)
	vm.Copy(a+2, a+5)
	vm.PushCall(a+3, 3, c+1)
}

// if R(A+1) ~= nil then { R(A) = R(A+1); pc += sBx }
func tForLoop(i Instruction, vm VM) {
	a, sBx := i.AsBx()
	a += 1

	if !vm.IsNil(a + 1) {
		vm.Copy(a+1, a)
		vm.AddPC(sBx)
	}
}
