package engine

import (
	"context"
	"testing"

	"github.com/wqq1991/neo-gui-nel/crypto/hash160"
	"github.com/wqq1991/neo-gui-nel/opcode"
	"github.com/wqq1991/neo-gui-nel/scripttable"
	"github.com/wqq1991/neo-gui-nel/syscall"
	"github.com/wqq1991/neo-gui-nel/trace"
)

func newEngine(script []byte, table *scripttable.Table, gas int64, testMode bool) *Engine {
	if table == nil {
		table = scripttable.New()
	}
	dispatcher := syscall.New(nil, nil, nil, nil, table, nil)
	e := New(TriggerApplication, nil, table, dispatcher, gas, testMode)
	e.LoadScript(script, false)
	return e
}

// S1: empty script halts immediately with zero gas consumed.
func TestS1EmptyScript(t *testing.T) {
	e := newEngine(nil, nil, 0, true)
	if ok := e.Execute(context.Background()); !ok {
		t.Fatal("expected true")
	}
	if e.GasConsumed() != 0 {
		t.Fatalf("gas_consumed = %d, want 0", e.GasConsumed())
	}
	if !e.State().Has(trace.VMStateHalt) {
		t.Fatalf("state = %v, want HALT", e.State())
	}
}

// S2: a single NOP is priced at zero and halts true.
func TestS2SingleNOP(t *testing.T) {
	script := []byte{byte(opcode.NOP)}
	e := newEngine(script, nil, 0, true)
	if ok := e.Execute(context.Background()); !ok {
		t.Fatal("expected true")
	}
	if e.GasConsumed() != 0 {
		t.Fatalf("gas_consumed = %d, want 0", e.GasConsumed())
	}
}

// S3: pushing past the stack-size ceiling rejects with zero gas
// consumed, since push prices are all zero.
func TestS3StackOverflow(t *testing.T) {
	script := make([]byte, 0, MaxStackSize+1)
	for i := 0; i < MaxStackSize+1; i++ {
		script = append(script, byte(opcode.PUSH1))
	}
	e := newEngine(script, nil, 0, true)
	if ok := e.Execute(context.Background()); ok {
		t.Fatal("expected false on stack overflow")
	}
	if e.GasConsumed() != 0 {
		t.Fatalf("gas_consumed = %d, want 0", e.GasConsumed())
	}
	if e.LastFault() != FaultStackSize {
		t.Fatalf("fault = %q, want %q", e.LastFault(), FaultStackSize)
	}
}

// S4: adding two 32-byte integers whose sum needs 33 bytes rejects at
// ADD; both pushes cost 0, ADD costs 1·RATIO.
func TestS4AddOverflow(t *testing.T) {
	a := make([]byte, 32)
	a[31] = 0x7F
	b := make([]byte, 32)
	b[31] = 0x7F

	script := append([]byte{32}, a...)
	script = append(script, byte(32))
	script = append(script, b...)
	script = append(script, byte(opcode.ADD))

	e := newEngine(script, nil, 0, true)
	if ok := e.Execute(context.Background()); ok {
		t.Fatal("expected false on big-integer overflow")
	}
	if e.GasConsumed() != 1*Ratio {
		t.Fatalf("gas_consumed = %d, want %d", e.GasConsumed(), 1*Ratio)
	}
	if e.LastFault() != FaultBigInteger {
		t.Fatalf("fault = %q, want %q", e.LastFault(), FaultBigInteger)
	}
}

// S5: SYSCALL Storage.Put with a 100-byte key and 2000-byte value
// prices at ceil(2100/1024)*1000 = 3000 meter units, ·RATIO = 3·10⁸.
func TestS5StoragePutPricing(t *testing.T) {
	key := make([]byte, 100)
	value := make([]byte, 2000)
	name := "Neo.Storage.Put"

	script := pushData(key)
	script = append(script, pushData(value)...)
	script = append(script, byte(opcode.SYSCALL), byte(len(name)))
	script = append(script, []byte(name)...)

	e := newEngine(script, nil, 0, true)
	ok := e.Execute(context.Background())
	if !ok {
		t.Fatalf("expected true, fault=%q", e.LastFault())
	}
	want := int64(3000) * Ratio
	if e.GasConsumed() != want {
		t.Fatalf("gas_consumed = %d, want %d", e.GasConsumed(), want)
	}
}

// S6: a dynamic APPCALL (all-zero target) against a contract with no
// HasDynamicInvoke capability is rejected by the gate; the APPCALL
// price (10·RATIO) is still charged.
func TestS6DynamicAppCallUnauthorized(t *testing.T) {
	script := append([]byte{byte(opcode.PUSH1), byte(opcode.APPCALL)}, make([]byte, 20)...)

	e := newEngine(script, nil, 0, true)
	if ok := e.Execute(context.Background()); ok {
		t.Fatal("expected false: dynamic invoke not authorized")
	}
	want := int64(10) * Ratio
	if e.GasConsumed() != want {
		t.Fatalf("gas_consumed = %d, want %d", e.GasConsumed(), want)
	}
	if e.LastFault() != FaultDynamicInvoke {
		t.Fatalf("fault = %q, want %q", e.LastFault(), FaultDynamicInvoke)
	}
	if e.LastError() == nil {
		t.Fatal("expected a non-nil LastError for a dynamic-invoke fault")
	}
}

// S7: in non-test mode with gas_amount forced to 5·RATIO (the test
// overrides the GasFree allowance New adds — see the explicit
// gas_amount assignment below), a run of single-unit
// DEPTH opcodes exhausts the meter and the offending opcode is never
// dispatched.
func TestS7GasExhaustion(t *testing.T) {
	one := byte(opcode.DEPTH)
	script := []byte{one, one, one, one, one, one}

	table := scripttable.New()
	dispatcher := syscall.New(nil, nil, nil, nil, table, nil)
	e := New(TriggerApplication, nil, table, dispatcher, 0, false)
	// gas_amount = GasFree + 0. Force a tight ceiling by driving the
	// meter directly to isolate the six-step exhaustion shape: disable
	// the free allowance for this scenario.
	e.gasAmount = 5 * Ratio
	e.LoadScript(script, false)

	ok := e.Execute(context.Background())
	if ok {
		t.Fatal("expected false: gas exhausted")
	}
	if e.LastFault() != FaultGasExhausted {
		t.Fatalf("fault = %q, want %q", e.LastFault(), FaultGasExhausted)
	}
	if e.GasConsumed() != 6*Ratio {
		t.Fatalf("gas_consumed = %d, want %d (sixth step charged before rejection)", e.GasConsumed(), 6*Ratio)
	}
}

// A dynamic APPCALL against a contract that does carry
// HasDynamicInvoke resolves and executes the target script.
func TestDynamicAppCallAuthorized(t *testing.T) {
	target := []byte{byte(opcode.NOP), byte(opcode.RET)}
	targetHash := hash160.Sum(target)

	pushTarget := append([]byte{20}, targetHash[:]...)
	callerScript := append(append([]byte{}, pushTarget...), byte(opcode.APPCALL))
	callerScript = append(callerScript, make([]byte, 20)...)
	callerHash := hash160.Sum(callerScript)

	table := scripttable.New()
	table.Put(scripttable.ContractState{ScriptHash: targetHash, Script: target})
	table.Put(scripttable.ContractState{
		ScriptHash: callerHash,
		Script:     callerScript,
		Properties: scripttable.HasDynamicInvoke,
	})

	e := newEngine(callerScript, table, 0, true)
	if ok := e.Execute(context.Background()); !ok {
		t.Fatalf("expected true, fault=%q", e.LastFault())
	}
}

// pushData encodes b as a minimal push instruction: PUSHBYTES for
// lengths up to 75, PUSHDATA1 up to 255, PUSHDATA2 beyond that.
func pushData(b []byte) []byte {
	switch {
	case len(b) <= 75:
		return append([]byte{byte(len(b))}, b...)
	case len(b) <= 255:
		return append([]byte{byte(opcode.PUSHDATA1), byte(len(b))}, b...)
	default:
		out := []byte{byte(opcode.PUSHDATA2), byte(len(b)), byte(len(b) >> 8)}
		return append(out, b...)
	}
}
