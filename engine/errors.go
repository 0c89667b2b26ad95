package engine

import "github.com/wqq1991/neo-gui-nel/errors"

// FaultReason names why a step was rejected. The engine itself still
// returns a single Boolean outcome from Execute; the reason is reported
// through Engine.LastFault and the log line Execute writes when it
// returns false. It is not passed to the tracer, which receives only
// the final state through Finish.
type FaultReason string

const (
	FaultNone              FaultReason = ""
	FaultGasExhausted      FaultReason = "gas"
	FaultItemSize          FaultReason = "item_size"
	FaultStackSize         FaultReason = "stack_size"
	FaultArraySize         FaultReason = "array_size"
	FaultInvocationStack   FaultReason = "invocation_stack"
	FaultBigInteger        FaultReason = "big_integer"
	FaultDynamicInvoke     FaultReason = "dynamic_invoke"
	FaultUnresolvedScript  FaultReason = "unresolved_script"
	FaultMeterOverflow     FaultReason = "meter_overflow"
	FaultInterpreter       FaultReason = "interpreter_fault"
)

var (
	ErrGasExhausted     = errors.New("engine: gas exhausted")
	ErrLimitItemSize    = errors.New("engine: item size limit exceeded")
	ErrLimitStackSize   = errors.New("engine: stack size limit exceeded")
	ErrLimitArraySize   = errors.New("engine: array size limit exceeded")
	ErrLimitInvocation  = errors.New("engine: invocation stack limit exceeded")
	ErrLimitBigInteger  = errors.New("engine: big integer limit exceeded")
	ErrDynamicInvoke    = errors.New("engine: dynamic invoke not authorized")
	ErrMeterOverflow    = errors.New("engine: gas meter overflow")
	ErrUnresolvedScript = errors.New("engine: script hash not found in script table")
)

// faultSentinels maps a fault reason to the sentinel Engine.fault
// wraps with call-specific detail. Reasons with no dedicated sentinel
// (FaultNone, FaultInterpreter — the interpreter's own internal faults
// carry no single cause) leave LastError nil.
var faultSentinels = map[FaultReason]error{
	FaultGasExhausted:     ErrGasExhausted,
	FaultItemSize:         ErrLimitItemSize,
	FaultStackSize:        ErrLimitStackSize,
	FaultArraySize:        ErrLimitArraySize,
	FaultInvocationStack:  ErrLimitInvocation,
	FaultBigInteger:       ErrLimitBigInteger,
	FaultDynamicInvoke:    ErrDynamicInvoke,
	FaultUnresolvedScript: ErrUnresolvedScript,
	FaultMeterOverflow:    ErrMeterOverflow,
}
