package trace

import (
	"testing"

	"github.com/wqq1991/neo-gui-nel/opcode"
	"github.com/wqq1991/neo-gui-nel/stackitem"
)

func TestNullIsZeroCost(t *testing.T) {
	var r Recorder = Null{}
	r.ScriptLoaded("deadbeef")
	r.NextOp(0, opcode.NOP)
	r.LogPush(stackitem.Boolean(true))
	r.Finish(VMStateHalt)
}

func TestBufferRecordsSteps(t *testing.T) {
	b := NewBuffer()
	b.ScriptLoaded("abcd")
	b.NextOp(0, opcode.PUSH1)
	b.LogPush(stackitem.Boolean(true))
	b.NextOp(1, opcode.ADD)
	b.LogResult(opcode.ADD, stackitem.Boolean(true), true)
	b.Finish(VMStateHalt)

	if len(b.Steps) != 2 {
		t.Fatalf("len(Steps) = %d, want 2", len(b.Steps))
	}
	if b.Steps[0].Op != opcode.PUSH1 {
		t.Errorf("Steps[0].Op = %v, want PUSH1", b.Steps[0].Op)
	}
	if len(b.Steps[0].Edits) != 1 || b.Steps[0].Edits[0].Kind != "push" {
		t.Errorf("Steps[0].Edits = %+v, want one push edit", b.Steps[0].Edits)
	}
	if !b.Steps[1].HasEffect {
		t.Error("Steps[1] should carry the ADD result's effect")
	}
	if b.Summary.State != VMStateHalt || b.Summary.Steps != 2 {
		t.Errorf("Summary = %+v, want {HALT 2}", b.Summary)
	}
}

func TestBufferClearStackRecord(t *testing.T) {
	b := NewBuffer()
	b.NextOp(0, opcode.DUP)
	b.LogPush(stackitem.Boolean(true))
	b.ClearStackRecord()
	if len(b.Steps[0].Edits) != 0 {
		t.Error("ClearStackRecord should clear the current step's edits")
	}
}
