// Package engine implements the gas-metered opcode execution harness:
// given an Interpreter, a ScriptTable and a Service, it drives the
// interpreter one step at a time, pricing and charging
// every instruction, enforcing the five pre-execution limit checks,
// and owning the Dynamic-Invoke Gate that the interpreter itself defers
// to the engine for.
package engine

import (
	"github.com/wqq1991/neo-gui-nel/crypto/hash160"
	"github.com/wqq1991/neo-gui-nel/errors"
	"github.com/wqq1991/neo-gui-nel/interp"
	"github.com/wqq1991/neo-gui-nel/scripttable"
	"github.com/wqq1991/neo-gui-nel/stackitem"
	"github.com/wqq1991/neo-gui-nel/trace"
)

// Engine is the zero-allocation-at-rest execution harness. The zero
// value is not usable; use New.
type Engine struct {
	trigger Trigger
	testMode bool

	gasAmount   int64
	gasConsumed int64

	container []byte

	scriptTable ScriptTable
	service     Service
	tracer      trace.Recorder

	vm Interpreter

	lastFault FaultReason
	lastErr   error
}

// New constructs an Engine matching §6.4's signature: (trigger,
// container, script_table, service, gas, test_mode) → Engine. gas is
// the caller-supplied external gas, in the token's fixed-point unit;
// it is converted to meter units (·Ratio) and added to the free
// allowance, per §8's gas_amount = gas_free + gas·Ratio framing.
func New(
	trigger Trigger,
	container []byte,
	scriptTable ScriptTable,
	service Service,
	gas int64,
	testMode bool,
) *Engine {
	e := &Engine{
		trigger:     trigger,
		testMode:    testMode,
		gasAmount:   GasFree + gas*Ratio,
		container:   container,
		scriptTable: scriptTable,
		service:     service,
		tracer:      trace.Null{},
	}
	vm := interp.New(e)
	vm.SetContainer(container)
	e.vm = vm
	return e
}

// BeginDebug attaches r as both the engine's own tracer and the
// underlying interpreter's and service's, so a single call wires
// debug observation end to end (§6.4).
func (e *Engine) BeginDebug(r trace.Recorder) {
	e.tracer = r
	e.vm.BeginDebug(r)
	e.service.BeginDebug(r)
}

// LoadScript loads script as the entry invocation frame.
func (e *Engine) LoadScript(script []byte, pushOnly bool) {
	e.vm.LoadScript(script, pushOnly)
}

// GasConsumed reports the meter units charged so far.
func (e *Engine) GasConsumed() int64 { return e.gasConsumed }

// LastFault reports the reason the most recent Execute faulted, or
// FaultNone if it hasn't (yet) faulted.
func (e *Engine) LastFault() FaultReason { return e.lastFault }

// LastError reports the sentinel error backing the most recent fault,
// wrapped with the detail call sites need to diagnose it, or nil if
// the run hasn't faulted or faulted for a reason with no dedicated
// sentinel.
func (e *Engine) LastError() error { return e.lastErr }

// State exposes the underlying interpreter's current machine state.
func (e *Engine) State() trace.VMState { return e.vm.State() }

func (e *Engine) fault(reason FaultReason) {
	e.lastFault = reason
	e.lastErr = nil
	if sentinel, ok := faultSentinels[reason]; ok {
		e.lastErr = errors.WithDetailf(sentinel, "fault=%s gas_consumed=%d", reason, e.gasConsumed)
	}
}

// AuthorizeCall implements interp.Host's half of the Dynamic-Invoke
// Gate (§5.2): static calls are always authorized; a dynamic call is
// authorized only when the contract currently executing — not the
// callee — carries the HasDynamicInvoke capability.
func (e *Engine) AuthorizeCall(callee [20]byte, dynamic bool) bool {
	if !dynamic {
		return true
	}
	ctx := e.vm.CurrentContext()
	if ctx == nil {
		e.fault(FaultDynamicInvoke)
		return false
	}
	state, ok := e.scriptTable.GetContractState(ctx.ScriptHash)
	if !ok || !state.Properties.Has(scripttable.HasDynamicInvoke) {
		e.fault(FaultDynamicInvoke)
		return false
	}
	return true
}

// ResolveScript implements interp.Host's script lookup: it looks
// callee up in the script table, per §6.3.
func (e *Engine) ResolveScript(callee [20]byte) ([]byte, bool) {
	state, ok := e.scriptTable.GetContractState(callee)
	if !ok {
		e.fault(FaultUnresolvedScript)
		return nil, false
	}
	return state.Script, true
}

// Syscall implements interp.Host's SYSCALL dispatch (§6.2): it maps
// the normalized API name to the Service method it prices, pulling
// and pushing operands on the live evaluation stack via
// PopEval/PushEval so interp itself never needs per-name knowledge.
func (e *Engine) Syscall(name string) error {
	switch normalizeSyscallName(name) {
	case "Storage.Get":
		key := e.vm.PopEval().AsByteArray()
		contract := e.currentScriptHash()
		if v, ok := e.service.StorageGet(contract, key); ok {
			e.vm.PushEval(stackitem.ByteString(v))
		} else {
			e.vm.PushEval(stackitem.Null{})
		}

	case "Storage.Put":
		value := e.vm.PopEval().AsByteArray()
		key := e.vm.PopEval().AsByteArray()
		e.service.StoragePut(e.currentScriptHash(), key, value)

	case "Storage.Delete":
		key := e.vm.PopEval().AsByteArray()
		e.service.StorageDelete(e.currentScriptHash(), key)

	case "Contract.Create":
		propsByte := e.vm.PopEval().AsByteArray()
		script := e.vm.PopEval().AsByteArray()
		props := scripttable.ParseProperties(byte0(propsByte))
		hash := hash160.Sum(script)
		e.service.ContractCreate(hash, script, props)
		e.vm.PushEval(stackitem.InteropInterface{Handle: hash})

	case "Contract.Migrate":
		propsByte := e.vm.PopEval().AsByteArray()
		script := e.vm.PopEval().AsByteArray()
		props := scripttable.ParseProperties(byte0(propsByte))
		oldHash := e.currentScriptHash()
		newHash := hash160.Sum(script)
		e.service.ContractMigrate(oldHash, newHash, script, props)
		e.vm.PushEval(stackitem.InteropInterface{Handle: newHash})

	default:
		// Chain-query and runtime syscalls this harness has no chain or
		// witness context to answer truthfully: no-op success, per the
		// dispatcher's own "not found" stance (§6.2).
		e.vm.PushEval(stackitem.Null{})
	}
	return nil
}

func (e *Engine) currentScriptHash() [20]byte {
	ctx := e.vm.CurrentContext()
	if ctx == nil {
		return [20]byte{}
	}
	return ctx.ScriptHash
}

func byte0(b []byte) byte {
	if len(b) == 0 {
		return 0
	}
	return b[0]
}
