// Package interp implements a minimal reference bytecode interpreter
// over stackitem.Item, standing in for the underlying opcode
// interpreter the engine drives, so the harness is runnable and
// testable without a second, external VM implementation. It
// implements exactly the methods engine's consumed Interpreter
// interface requires, and nothing else — engine never reaches past
// that interface into VM internals.
package interp

import (
	"github.com/wqq1991/neo-gui-nel/crypto/hash160"
	"github.com/wqq1991/neo-gui-nel/opcode"
	"github.com/wqq1991/neo-gui-nel/stackitem"
	"github.com/wqq1991/neo-gui-nel/trace"
)

// Host is what VM needs from its owner to execute call-family and
// SYSCALL instructions: the dynamic-invoke gate and script resolution
// live in engine, not here, per SPEC_FULL §2.4.
type Host interface {
	AuthorizeCall(callee [20]byte, dynamic bool) bool
	ResolveScript(callee [20]byte) ([]byte, bool)
	Syscall(name string) error
}

// Context is one invocation frame: the script being run, its
// instruction pointer, and the script's hash.
type Context struct {
	Script     []byte
	IP         int
	ScriptHash [20]byte
	PushOnly   bool
}

// NextInstruction reports the opcode at the context's current IP, or
// RET if the IP has run past the end of the script (an implicit
// return, matching real NEO-VM out-of-bounds behaviour).
func (c *Context) NextInstruction() opcode.Op {
	if c.IP >= len(c.Script) {
		return opcode.RET
	}
	return opcode.Op(c.Script[c.IP])
}

// VM is the reference interpreter. The zero value is not usable; use
// New.
type VM struct {
	invocation []*Context
	eval       []stackitem.Item
	alt        []stackitem.Item
	state      trace.VMState
	tracer     trace.Recorder
	host       Host

	lastImmediate []byte
	container     []byte
}

// New returns a VM ready to load a script, delegating call-family and
// SYSCALL instructions to host.
func New(host Host) *VM {
	return &VM{
		tracer: trace.Null{},
		host:   host,
	}
}

// BeginDebug attaches r as the VM's tracer.
func (vm *VM) BeginDebug(r trace.Recorder) {
	vm.tracer = r
}

// CurrentContext returns the top invocation frame, or nil if none is
// loaded.
func (vm *VM) CurrentContext() *Context {
	if len(vm.invocation) == 0 {
		return nil
	}
	return vm.invocation[len(vm.invocation)-1]
}

// EvaluationStack, AltStack and InvocationStack expose sized
// containers of stack items and frames, per §6.1.
func (vm *VM) EvaluationStack() []stackitem.Item { return vm.eval }
func (vm *VM) AltStack() []stackitem.Item        { return vm.alt }
func (vm *VM) InvocationStack() []*Context       { return vm.invocation }

// State returns the machine-state flag set.
func (vm *VM) State() trace.VMState { return vm.state }

// SetFault forces the FAULT flag, used by a driving engine to reject
// an instruction before ever handing it to StepInto (gas exhaustion,
// a limit check, meter overflow).
func (vm *VM) SetFault() { vm.state |= trace.VMStateFault }

// PopEval and PushEval let a SYSCALL's host-side handler pull its own
// operands off, and push its own results onto, the real evaluation
// stack — the same stack StepInto's own opcodes operate on, not a
// copy.
func (vm *VM) PopEval() stackitem.Item          { return vm.pop() }
func (vm *VM) PushEval(item stackitem.Item)     { vm.push(item) }

// LoadScript pushes a new invocation context over script.
func (vm *VM) LoadScript(script []byte, pushOnly bool) {
	hash := hash160.Sum(script)
	ctx := &Context{Script: script, ScriptHash: hash, PushOnly: pushOnly}
	vm.invocation = append(vm.invocation, ctx)
	vm.tracer.ScriptLoaded(hexString(hash[:]))
}

// SetParam records the immediate bytes of the instruction about to
// execute and surfaces them to the tracer. StepInto does not read
// them; it decodes every immediate operand from the script itself.
func (vm *VM) SetParam(op opcode.Op, immediate []byte) {
	vm.lastImmediate = immediate
	vm.tracer.SetParam(op, immediate)
}

func hexString(b []byte) string {
	const digits = "0123456789abcdef"
	out := make([]byte, 2*len(b))
	for i, c := range b {
		out[2*i] = digits[c>>4]
		out[2*i+1] = digits[c&0xf]
	}
	return string(out)
}
