package engine

import (
	"strings"

	"github.com/wqq1991/neo-gui-nel/opcode"
)

// syscallPrices is the closed table of §4.2, keyed by the API name
// with its historical/current prefix already stripped by
// normalizeSyscallName. Both "Neo.*" and "AntShares.*" map to the
// same entry here, per §9's "Dual naming" note.
var syscallPrices = map[string]int64{
	"Runtime.CheckWitness":      200,
	"Blockchain.GetHeader":      100,
	"Blockchain.GetBlock":       200,
	"Blockchain.GetTransaction": 100,
	"Blockchain.GetAccount":     100,
	"Blockchain.GetValidators":  200,
	"Blockchain.GetAsset":       100,
	"Blockchain.GetContract":    100,
	"Transaction.GetReferences": 200,
	"Transaction.GetUnspentCoins": 200,
	"Account.SetVotes":          1000,
	"Storage.Get":               100,
	"Storage.Delete":            100,

	// Supplemented (§5): additive, not a repricing of any closed-form
	// entry specified elsewhere in this table.
	"Runtime.Notify": 1,
	"Runtime.Log":    1,
}

// normalizeSyscallName strips the historical AntShares. or current
// Neo. prefix so both map to the same table entry.
func normalizeSyscallName(name string) string {
	if rest := strings.TrimPrefix(name, "AntShares."); rest != name {
		return rest
	}
	if rest := strings.TrimPrefix(name, "Neo."); rest != name {
		return rest
	}
	return name
}

// priceOf computes the meter-unit price of the instruction at the
// current context's IP. It never mutates interpreter state: the
// SYSCALL and CHECKMULTISIG prices peek at the evaluation stack
// without popping.
func (e *Engine) priceOf(op opcode.Op) int64 {
	switch {
	case opcode.IsPushConst(op):
		return 0
	case op == opcode.NOP:
		return 0
	case op == opcode.APPCALL, op == opcode.TAILCALL:
		return 10
	case op == opcode.SYSCALL:
		return e.syscallPrice()
	case op == opcode.SHA1, op == opcode.SHA256:
		return 10
	case op == opcode.HASH160, op == opcode.HASH256:
		return 20
	case op == opcode.CHECKSIG:
		return 100
	case op == opcode.CHECKMULTISIG:
		return e.checkMultisigPrice()
	default:
		return 1
	}
}

func (e *Engine) syscallPrice() int64 {
	ctx := e.vm.CurrentContext()
	name, ok := opcode.SyscallName(ctx.Script, ctx.IP)
	if !ok {
		return 1
	}
	normalized := normalizeSyscallName(name)

	switch normalized {
	case "Storage.Put":
		return e.storagePutPrice()
	case "Validator.Register":
		return 1000 * 100000000 / Ratio
	case "Asset.Create":
		return 5000 * 100000000 / Ratio
	case "Asset.Renew":
		return e.assetRenewPrice()
	case "Contract.Create", "Contract.Migrate":
		return e.contractCreatePrice()
	}

	if price, ok := syscallPrices[normalized]; ok {
		return price
	}
	return 1
}

// storagePutPrice inspects the key and value already on the
// evaluation stack (top two items) without popping them: ⌈(keyLen +
// valueLen)/1024⌉ · 1000.
func (e *Engine) storagePutPrice() int64 {
	eval := e.vm.EvaluationStack()
	if len(eval) < 2 {
		return 1000
	}
	value := eval[len(eval)-1]
	key := eval[len(eval)-2]
	total := len(key.AsByteArray()) + len(value.AsByteArray())
	return (int64(total-1)/1024 + 1) * 1000
}

// assetRenewPrice reads n, the low 8 bits of the integer at stack
// depth 1.
func (e *Engine) assetRenewPrice() int64 {
	eval := e.vm.EvaluationStack()
	if len(eval) < 2 {
		return 1 * 5000 * 100000000 / Ratio
	}
	n, _ := eval[len(eval)-2].AsBigInteger()
	return int64(n.Byte0()) * 5000 * 100000000 / Ratio
}

// contractCreatePrice reads the property-flag byte at stack depth 3:
// fee = 100 + (HasStorage?400:0) + (HasDynamicInvoke?500:0).
func (e *Engine) contractCreatePrice() int64 {
	eval := e.vm.EvaluationStack()
	if len(eval) < 4 {
		return 100 * 100000000 / Ratio
	}
	flags, _ := eval[len(eval)-4].AsBigInteger()
	fee := int64(100)
	b := flags.Byte0()
	if b&1 != 0 {
		fee += 400
	}
	if b&2 != 0 {
		fee += 500
	}
	return fee * 100000000 / Ratio
}

// checkMultisigPrice reads n, the integer at stack top: 100·n, or 1 if
// absent or n<1.
func (e *Engine) checkMultisigPrice() int64 {
	eval := e.vm.EvaluationStack()
	if len(eval) < 1 {
		return 1
	}
	n, ok := eval[len(eval)-1].AsBigInteger()
	if !ok || n.Sign() < 1 {
		return 1
	}
	return 100 * n.Int64()
}
