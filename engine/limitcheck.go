package engine

import (
	"github.com/wqq1991/neo-gui-nel/bigint"
	"github.com/wqq1991/neo-gui-nel/opcode"
)

// checkItemSize gates opcodes that introduce or enlarge byte-string
// items (§4.1).
func (e *Engine) checkItemSize(op opcode.Op) bool {
	ctx := e.vm.CurrentContext()

	switch op {
	case opcode.PUSHDATA4:
		if ctx.IP+5 > len(ctx.Script) {
			return false
		}
		length := int(ctx.Script[ctx.IP+1]) | int(ctx.Script[ctx.IP+2])<<8 |
			int(ctx.Script[ctx.IP+3])<<16 | int(ctx.Script[ctx.IP+4])<<24
		return length <= MaxItemSize

	case opcode.CAT:
		eval := e.vm.EvaluationStack()
		if len(eval) < 2 {
			return false
		}
		a := eval[len(eval)-1].AsByteArray()
		b := eval[len(eval)-2].AsByteArray()
		return len(a)+len(b) <= MaxItemSize
	}
	return true
}

// checkStackSize bounds |evaluation| + |alt| (§4.1).
func (e *Engine) checkStackSize(op opcode.Op) bool {
	current := len(e.vm.EvaluationStack()) + len(e.vm.AltStack())

	growth := 0
	switch {
	case opcode.IsPushConst(op):
		growth = 1
	case op == opcode.DEPTH, op == opcode.DUP, op == opcode.OVER, op == opcode.TUCK:
		growth = 1
	case op == opcode.UNPACK:
		eval := e.vm.EvaluationStack()
		if len(eval) < 1 || !eval[len(eval)-1].IsArray() {
			return false
		}
		growth = len(eval[len(eval)-1].AsArray())
	}

	return current+growth <= MaxStackSize
}

// checkArraySize requires at least one item on stack and that its
// integer value is within bounds, for PACK/NEWARRAY/NEWSTRUCT (§4.1).
func (e *Engine) checkArraySize(op opcode.Op) bool {
	switch op {
	case opcode.PACK, opcode.NEWARRAY, opcode.NEWSTRUCT:
		eval := e.vm.EvaluationStack()
		if len(eval) < 1 {
			return false
		}
		n, ok := eval[len(eval)-1].AsBigInteger()
		if !ok {
			return false
		}
		return n.Sign() >= 0 && n.Int64() <= MaxArraySize
	}
	return true
}

// checkInvocationStack rejects CALL/APPCALL when the invocation depth
// is already at the ceiling (§4.1).
func (e *Engine) checkInvocationStack(op opcode.Op) bool {
	switch op {
	case opcode.CALL, opcode.APPCALL:
		return len(e.vm.InvocationStack()) < MaxInvocationStack
	}
	return true
}

// checkBigIntegers screens INC/DEC/ADD/SUB/MUL/DIV/MOD's operands
// (and, for INC/ADD/SUB, the hypothetical result) against
// MaxBigIntBytes (§4.1). A null/absent operand decodes as
// zero-length and is treated as not fitting, causing rejection.
func (e *Engine) checkBigIntegers(op opcode.Op) bool {
	eval := e.vm.EvaluationStack()

	operand := func(depth int) (*bigint.Int, bool) {
		idx := len(eval) - 1 - depth
		if idx < 0 {
			return nil, false
		}
		v, _ := eval[idx].AsBigInteger()
		return v, true
	}

	switch op {
	case opcode.INC:
		x, ok := operand(0)
		if !ok {
			return false
		}
		return x.FitsBytes(MaxBigIntBytes) && x.Inc().FitsBytes(MaxBigIntBytes)

	case opcode.DEC:
		x, ok := operand(0)
		if !ok {
			return false
		}
		if !x.FitsBytes(MaxBigIntBytes) {
			return false
		}
		if x.Sign() <= 0 {
			return x.Dec().FitsBytes(MaxBigIntBytes)
		}
		return true

	case opcode.ADD, opcode.SUB:
		b, ok1 := operand(0)
		a, ok2 := operand(1)
		if !ok1 || !ok2 {
			return false
		}
		if !a.FitsBytes(MaxBigIntBytes) || !b.FitsBytes(MaxBigIntBytes) {
			return false
		}
		var result *bigint.Int
		if op == opcode.ADD {
			result = a.Add(b)
		} else {
			result = a.Sub(b)
		}
		return result.FitsBytes(MaxBigIntBytes)

	case opcode.MUL:
		b, ok1 := operand(0)
		a, ok2 := operand(1)
		if !ok1 || !ok2 {
			return false
		}
		if a.Absent() || b.Absent() {
			return false
		}
		return a.ByteLen()+b.ByteLen() <= MaxBigIntBytes

	case opcode.DIV, opcode.MOD:
		b, ok1 := operand(0)
		a, ok2 := operand(1)
		if !ok1 || !ok2 {
			return false
		}
		return a.FitsBytes(MaxBigIntBytes) && b.FitsBytes(MaxBigIntBytes)
	}

	return true
}
