package engine

import (
	"context"

	"github.com/wqq1991/neo-gui-nel/log"
	"github.com/wqq1991/neo-gui-nel/math/checked"
	"github.com/wqq1991/neo-gui-nel/opcode"
	"github.com/wqq1991/neo-gui-nel/trace"
)

// Execute runs the loaded script to completion, implementing §4.5's
// main loop exactly: gas is charged before any rejection and nothing
// is rolled back on FAULT, matching "the harness does not need undo
// logic because nothing observable happens until HALT." An
// instruction is only fetched, priced and checked while the current
// context's ip is still within its script; once ip runs off the end,
// StepInto is still driven (so the implicit ret unwinds the frame),
// but that synthetic ret is never metered or checked.
func (e *Engine) Execute(ctx context.Context) bool {
	for !e.vm.State().Has(trace.VMStateHalt) && !e.vm.State().Has(trace.VMStateFault) {
		frame := e.vm.CurrentContext()
		if frame == nil {
			break
		}
		op := frame.NextInstruction()

		if frame.IP < len(frame.Script) {
			price := e.priceOf(op)
			consumed, ok := checked.AddInt64(e.gasConsumed, price*Ratio)
			if !ok {
				e.fault(FaultMeterOverflow)
				e.haltFault()
				break
			}
			e.gasConsumed = consumed

			if !e.testMode && e.gasConsumed > e.gasAmount {
				e.fault(FaultGasExhausted)
				e.haltFault()
				break
			}

			if !e.checkItemSize(op) {
				e.fault(FaultItemSize)
				e.haltFault()
				break
			}
			if !e.checkStackSize(op) {
				e.fault(FaultStackSize)
				e.haltFault()
				break
			}
			if !e.checkArraySize(op) {
				e.fault(FaultArraySize)
				e.haltFault()
				break
			}
			if !e.checkInvocationStack(op) {
				e.fault(FaultInvocationStack)
				e.haltFault()
				break
			}
			if !e.checkBigIntegers(op) {
				e.fault(FaultBigInteger)
				e.haltFault()
				break
			}
		}

		e.vm.StepInto()

		if e.vm.State().Has(trace.VMStateFault) {
			if e.lastFault == FaultNone {
				e.fault(FaultInterpreter)
			}
		} else {
			e.logResult(op)
		}
	}

	e.tracer.Finish(e.vm.State())
	ok := !e.vm.State().Has(trace.VMStateFault)
	if !ok {
		log.Write(ctx, log.KeyMessage, "fault", "reason", e.lastFault)
	}
	return ok
}

// logResult reports op's effect on the evaluation stack — its new top,
// if any — to the attached tracer, following the interpreter's own
// per-step NextOp notification.
func (e *Engine) logResult(op opcode.Op) {
	eval := e.vm.EvaluationStack()
	if len(eval) == 0 {
		e.tracer.LogResult(op, nil, false)
		return
	}
	e.tracer.LogResult(op, eval[len(eval)-1], true)
}

// haltFault forces the underlying interpreter's state to FAULT when
// the engine itself rejects an instruction before ever handing it to
// StepInto (gas exhaustion, a limit check, meter overflow). The
// interpreter's own State() is the single source of truth Execute's
// loop condition and return value read from.
func (e *Engine) haltFault() {
	e.vm.SetFault()
}
