package opcode

import "testing"

func TestIsPushConst(t *testing.T) {
	cases := []struct {
		op   Op
		want bool
	}{
		{PUSH0, true},
		{PUSH16, true},
		{PUSHM1, true},
		{PUSHBYTES1, true},
		{PUSHBYTES75, true},
		{PUSHDATA1, true},
		{PUSHDATA2, true},
		{PUSHDATA4, true},
		{NOP, false},
		{ADD, false},
	}
	for _, c := range cases {
		if got := IsPushConst(c.op); got != c.want {
			t.Errorf("IsPushConst(%s) = %v, want %v", c.op, got, c.want)
		}
	}
}

func TestStringUnknown(t *testing.T) {
	op := Op(0xFF)
	if got := op.String(); got != "UNKNOWN(0xFF)" {
		t.Errorf("String() = %q, want UNKNOWN(0xFF)", got)
	}
}

func TestOperandSizePushBytes(t *testing.T) {
	script := append([]byte{byte(PUSHBYTES1 + 2)}, []byte{1, 2, 3}...)
	n, ok := OperandSize(Op(script[0]), script, 0)
	if !ok || n != 3 {
		t.Errorf("OperandSize(PUSHBYTES3) = (%d, %v), want (3, true)", n, ok)
	}
}

func TestOperandSizePushData1(t *testing.T) {
	script := []byte{byte(PUSHDATA1), 3, 0xAA, 0xBB, 0xCC}
	n, ok := OperandSize(PUSHDATA1, script, 0)
	if !ok || n != 4 {
		t.Errorf("OperandSize(PUSHDATA1) = (%d, %v), want (4, true)", n, ok)
	}
}

func TestOperandSizePushData4Truncated(t *testing.T) {
	script := []byte{byte(PUSHDATA4), 0, 0, 0}
	_, ok := OperandSize(PUSHDATA4, script, 0)
	if ok {
		t.Error("OperandSize(PUSHDATA4) with 3 length bytes should be truncated")
	}
}

func TestSyscallName(t *testing.T) {
	name := "Neo.Runtime.CheckWitness"
	script := append([]byte{byte(SYSCALL), byte(len(name))}, []byte(name)...)
	got, ok := SyscallName(script, 0)
	if !ok || got != name {
		t.Errorf("SyscallName() = (%q, %v), want (%q, true)", got, ok, name)
	}
}

func TestSyscallNameTruncated(t *testing.T) {
	script := []byte{byte(SYSCALL), 10, 'a', 'b'}
	_, ok := SyscallName(script, 0)
	if ok {
		t.Error("SyscallName() should report truncated when payload runs past end")
	}
}

func TestCallTarget(t *testing.T) {
	script := append([]byte{byte(APPCALL)}, make([]byte, 20)...)
	script[5] = 0x01
	hash, ok := CallTarget(script, 0)
	if !ok {
		t.Fatal("CallTarget() should succeed with 20 bytes present")
	}
	if hash[4] != 0x01 {
		t.Errorf("CallTarget() hash = % X, want nonzero at index 4", hash)
	}
}

func TestDisassemble(t *testing.T) {
	script := []byte{byte(PUSH1), byte(PUSH2), byte(ADD), byte(RET)}
	out, err := Disassemble(script)
	if err != nil {
		t.Fatalf("Disassemble() error: %v", err)
	}
	for _, want := range []string{"PUSH1", "PUSH2", "ADD", "RET"} {
		if !contains(out, want) {
			t.Errorf("Disassemble() output missing %q:\n%s", want, out)
		}
	}
}

func TestDisassembleTruncated(t *testing.T) {
	script := []byte{byte(PUSHDATA1), 5, 1, 2}
	_, err := Disassemble(script)
	if err == nil {
		t.Error("Disassemble() should error on a truncated PUSHDATA1")
	}
}

func contains(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}
