// Package trace implements the optional Debug Tracer (§4.4): a pure
// observer of interpreter execution, disabled by default with zero
// cost, that never influences interpreter behaviour.
package trace

import (
	"github.com/wqq1991/neo-gui-nel/opcode"
	"github.com/wqq1991/neo-gui-nel/stackitem"
)

// VMState is the interpreter's machine-state flag set (§6.1: "state
// flag-set containing at least HALT and FAULT"). It lives here, not in
// engine or interp, so that both can depend on it without depending on
// each other: engine already holds a Recorder field and so imports
// trace; interp reports its State() in this same currency so engine's
// consumed Interpreter interface and interp's concrete VM agree on the
// type without interp importing engine.
type VMState byte

const (
	VMStateNone  VMState = 0
	VMStateHalt  VMState = 1 << 0
	VMStateFault VMState = 1 << 1
	VMStateBreak VMState = 1 << 2
)

// Has reports whether s includes flag.
func (s VMState) Has(flag VMState) bool {
	return s&flag != 0
}

func (s VMState) String() string {
	switch {
	case s.Has(VMStateFault):
		return "FAULT"
	case s.Has(VMStateHalt):
		return "HALT"
	case s.Has(VMStateBreak):
		return "BREAK"
	default:
		return "NONE"
	}
}

// Recorder receives per-step notifications from the interpreter and
// engine. Implementations must not call back into the interpreter or
// engine; they only observe.
type Recorder interface {
	ScriptLoaded(scriptHash string)
	SetParam(op opcode.Op, immediate []byte)
	NextOp(ip uint32, op opcode.Op)
	ClearStackRecord()
	LogPush(item stackitem.Item)
	LogInsert(index int, item stackitem.Item)
	LogSet(index int, item stackitem.Item)
	LogResult(op opcode.Op, effect stackitem.Item, hasEffect bool)
	Finish(state VMState)
}

// Null implements Recorder as a no-op; it is the engine's default
// tracer, costing nothing when debugging is not requested.
type Null struct{}

func (Null) ScriptLoaded(string)                            {}
func (Null) SetParam(opcode.Op, []byte)                      {}
func (Null) NextOp(uint32, opcode.Op)                        {}
func (Null) ClearStackRecord()                               {}
func (Null) LogPush(stackitem.Item)                           {}
func (Null) LogInsert(int, stackitem.Item)                    {}
func (Null) LogSet(int, stackitem.Item)                       {}
func (Null) LogResult(opcode.Op, stackitem.Item, bool)        {}
func (Null) Finish(VMState)                                   {}

var _ Recorder = Null{}
