package trace

import (
	"github.com/wqq1991/neo-gui-nel/opcode"
	"github.com/wqq1991/neo-gui-nel/stackitem"
)

// StackEdit records one mutation the interpreter applied to a stack
// during a single step, in the order it occurred.
type StackEdit struct {
	Kind  string // "push", "insert" or "set"
	Index int    // meaningful for "insert" and "set"
	Item  stackitem.Item
}

// Step is one instruction's worth of recorded activity.
type Step struct {
	IP        uint32
	Op        opcode.Op
	Immediate []byte
	Edits     []StackEdit
	Effect    stackitem.Item
	HasEffect bool
}

// Summary is appended once, when Finish is called.
type Summary struct {
	State VMState
	Steps int
}

// Buffer is a concrete Recorder that accumulates one Step per
// instruction and a Summary on Finish. It is safe to inspect after
// Execute returns regardless of outcome.
type Buffer struct {
	ScriptHashes []string
	Steps        []Step
	Summary      Summary

	current *Step
}

// NewBuffer returns an empty recording buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) ScriptLoaded(scriptHash string) {
	b.ScriptHashes = append(b.ScriptHashes, scriptHash)
}

func (b *Buffer) SetParam(op opcode.Op, immediate []byte) {
	if b.current != nil && b.current.Op == op {
		b.current.Immediate = immediate
	}
}

func (b *Buffer) NextOp(ip uint32, op opcode.Op) {
	b.Steps = append(b.Steps, Step{IP: ip, Op: op})
	b.current = &b.Steps[len(b.Steps)-1]
}

func (b *Buffer) ClearStackRecord() {
	if b.current != nil {
		b.current.Edits = nil
	}
}

func (b *Buffer) LogPush(item stackitem.Item) {
	b.appendEdit(StackEdit{Kind: "push", Item: item})
}

func (b *Buffer) LogInsert(index int, item stackitem.Item) {
	b.appendEdit(StackEdit{Kind: "insert", Index: index, Item: item})
}

func (b *Buffer) LogSet(index int, item stackitem.Item) {
	b.appendEdit(StackEdit{Kind: "set", Index: index, Item: item})
}

func (b *Buffer) appendEdit(e StackEdit) {
	if b.current == nil {
		return
	}
	b.current.Edits = append(b.current.Edits, e)
}

func (b *Buffer) LogResult(op opcode.Op, effect stackitem.Item, hasEffect bool) {
	if b.current == nil || b.current.Op != op {
		return
	}
	b.current.Effect = effect
	b.current.HasEffect = hasEffect
}

func (b *Buffer) Finish(state VMState) {
	b.Summary = Summary{State: state, Steps: len(b.Steps)}
}

var _ Recorder = (*Buffer)(nil)
