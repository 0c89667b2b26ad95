package interp

import (
	"github.com/wqq1991/neo-gui-nel/bigint"
	"github.com/wqq1991/neo-gui-nel/stackitem"
)

func (vm *VM) push(item stackitem.Item) {
	vm.eval = append(vm.eval, item)
	vm.tracer.LogPush(item)
}

// pop removes and returns the top item. It panics on an empty stack;
// StepInto recovers and converts that into a FAULT, since a
// well-formed program never pops past what the limit checker allowed
// onto the stack.
func (vm *VM) pop() stackitem.Item {
	n := len(vm.eval)
	item := vm.eval[n-1]
	vm.eval = vm.eval[:n-1]
	return item
}

func (vm *VM) popInt() *bigint.Int {
	v, _ := vm.pop().AsBigInteger()
	return v
}

func (vm *VM) peek(n int) stackitem.Item {
	return vm.eval[len(vm.eval)-1-n]
}

// removeAt removes and returns the item n slots below the top
// (0 = top), shifting the remainder down.
func (vm *VM) removeAt(n int) stackitem.Item {
	idx := len(vm.eval) - 1 - n
	item := vm.eval[idx]
	vm.eval = append(vm.eval[:idx], vm.eval[idx+1:]...)
	vm.tracer.LogSet(idx, item)
	return item
}

// swapAt exchanges the top item with the item n slots below it
// (0 = top, a no-op).
func (vm *VM) swapAt(n int) {
	top := len(vm.eval) - 1
	idx := top - n
	vm.eval[idx], vm.eval[top] = vm.eval[top], vm.eval[idx]
}

// insertAt inserts item so that n+1 existing items remain above it
// (n=1 inserts just below the current second-to-top item, as TUCK
// requires), shifting the remainder up.
func (vm *VM) insertAt(n int, item stackitem.Item) {
	idx := len(vm.eval) - n - 1
	vm.eval = append(vm.eval[:idx], append([]stackitem.Item{item}, vm.eval[idx:]...)...)
	vm.tracer.LogInsert(idx, item)
}
