package engine

import (
	"github.com/wqq1991/neo-gui-nel/interp"
	"github.com/wqq1991/neo-gui-nel/opcode"
	"github.com/wqq1991/neo-gui-nel/scripttable"
	"github.com/wqq1991/neo-gui-nel/stackitem"
	"github.com/wqq1991/neo-gui-nel/trace"
)

// Interpreter is the consumed interface of §6.1: the underlying
// opcode interpreter the engine drives one step at a time, never
// reaching past it into implementation internals. *interp.VM
// satisfies this exactly.
type Interpreter interface {
	CurrentContext() *interp.Context
	EvaluationStack() []stackitem.Item
	AltStack() []stackitem.Item
	InvocationStack() []*interp.Context
	State() trace.VMState
	LoadScript(script []byte, pushOnly bool)
	StepInto()
	SetParam(op opcode.Op, immediate []byte)
	PopEval() stackitem.Item
	PushEval(item stackitem.Item)
	BeginDebug(r trace.Recorder)
	SetFault()
}

// ScriptTable is the consumed interface of §6.3.
type ScriptTable interface {
	GetContractState(scriptHash [20]byte) (scripttable.ContractState, bool)
}

// Service is the consumed syscall/host interface of §6.2: the engine
// only prices the call; dispatch is this service's responsibility.
type Service interface {
	StorageGet(contract [20]byte, key []byte) ([]byte, bool)
	StoragePut(contract [20]byte, key, value []byte)
	StorageDelete(contract [20]byte, key []byte)
	ContractCreate(scriptHash [20]byte, script []byte, props scripttable.Properties)
	ContractMigrate(oldHash, newHash [20]byte, script []byte, props scripttable.Properties)
	BeginDebug(r trace.Recorder)
}

// Trigger is the enumerated invocation reason, immutable after
// construction.
type Trigger byte

const (
	TriggerApplication Trigger = iota
	TriggerVerification
)

func (t Trigger) String() string {
	if t == TriggerVerification {
		return "Verification"
	}
	return "Application"
}
