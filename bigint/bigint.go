// Package bigint provides the little-endian two's-complement
// arbitrary-precision integer representation used by stack items, and
// the byte-length ceiling check the limit checker applies to every
// arithmetic opcode.
package bigint

import "math/big"

// Int wraps math/big.Int with the little-endian two's-complement byte
// encoding NEO-style stack integers use, plus the notion of an absent
// (null) operand, which is distinct from an explicit zero.
//
// No third-party arbitrary-precision integer library appears anywhere
// in the retrieved example pack; math/big is the standard-library,
// idiomatic tool for a signed integer of unbounded size, and is used
// here the same way the wider Go ecosystem uses it for this purpose.
type Int struct {
	v      *big.Int
	absent bool
}

// Zero is the integer 0.
var Zero = &Int{v: new(big.Int)}

// FromBytes decodes b as a little-endian two's-complement integer. A
// nil b represents an absent (null) operand: FitsBytes on it always
// reports false, regardless of the requested ceiling, matching the
// rule that a null big-integer operand causes rejection rather than
// being treated as zero.
func FromBytes(b []byte) *Int {
	if b == nil {
		return &Int{v: new(big.Int), absent: true}
	}
	if len(b) == 0 {
		return &Int{v: new(big.Int)}
	}

	be := reversed(b)
	v := new(big.Int).SetBytes(be)
	if b[len(b)-1]&0x80 != 0 {
		// Negative: subtract 2^(8*len(b)).
		mod := new(big.Int).Lsh(big.NewInt(1), uint(8*len(b)))
		v.Sub(v, mod)
	}
	return &Int{v: v}
}

// FromInt64 wraps a plain int64 value.
func FromInt64(n int64) *Int {
	return &Int{v: big.NewInt(n)}
}

// Absent reports whether i was decoded from a nil (null) operand.
func (i *Int) Absent() bool {
	return i != nil && i.absent
}

// Sign returns -1, 0 or 1 depending on the sign of i.
func (i *Int) Sign() int {
	return i.v.Sign()
}

// Add, Sub, Mul, Div and Mod return new Ints holding the hypothetical
// result of the named operation, without mutating i or j. Div and Mod
// assume j is nonzero; callers must check for division by zero
// themselves (§4.1 screens the operands, not the quotient/remainder).
func (i *Int) Add(j *Int) *Int { return &Int{v: new(big.Int).Add(i.v, j.v)} }
func (i *Int) Sub(j *Int) *Int { return &Int{v: new(big.Int).Sub(i.v, j.v)} }
func (i *Int) Mul(j *Int) *Int { return &Int{v: new(big.Int).Mul(i.v, j.v)} }
func (i *Int) Div(j *Int) *Int { return &Int{v: new(big.Int).Quo(i.v, j.v)} }
func (i *Int) Mod(j *Int) *Int { return &Int{v: new(big.Int).Rem(i.v, j.v)} }

// Inc and Dec return i+1 and i-1, respectively.
func (i *Int) Inc() *Int { return i.Add(FromInt64(1)) }
func (i *Int) Dec() *Int { return i.Sub(FromInt64(1)) }

// Bytes returns the minimal little-endian two's-complement encoding
// of i. Zero encodes as an empty, non-nil slice.
func (i *Int) Bytes() []byte {
	if i.v.Sign() == 0 {
		return []byte{}
	}

	var be []byte
	if i.v.Sign() > 0 {
		be = i.v.Bytes()
		// If the top bit of the most-significant byte is set, an extra
		// zero byte is required so the value doesn't read as negative.
		if be[0]&0x80 != 0 {
			be = append([]byte{0}, be...)
		}
	} else {
		// |i|-1 sizes the magnitude, so -128 fits one byte and -129 needs two.
		nbits := new(big.Int).Sub(new(big.Int).Neg(i.v), big.NewInt(1)).BitLen()
		nbytes := nbits/8 + 1
		mod := new(big.Int).Lsh(big.NewInt(1), uint(8*nbytes))
		twos := new(big.Int).Add(i.v, mod)
		be = twos.Bytes()
		for len(be) < nbytes {
			be = append([]byte{0}, be...)
		}
	}
	return reversed(be)
}

// FitsBytes reports whether i's minimal two's-complement encoding is
// no longer than n bytes. An absent (null) operand never fits,
// regardless of n.
func (i *Int) FitsBytes(n int) bool {
	if i.Absent() {
		return false
	}
	return len(i.Bytes()) <= n
}

// ByteLen returns the length, in bytes, of i's minimal
// two's-complement encoding.
func (i *Int) ByteLen() int {
	return len(i.Bytes())
}

// Byte0 returns the low 8 bits of i, used throughout the gas price
// table and the dynamic-invoke gate to decode small flag/count
// operands packed into a stack integer.
func (i *Int) Byte0() byte {
	if i.Absent() {
		return 0
	}
	var b [8]byte
	bs := i.Bytes()
	copy(b[:], bs)
	if len(bs) == 0 {
		return 0
	}
	return bs[0]
}

// Int64 returns i truncated to an int64, analogous to (*big.Int).Int64.
func (i *Int) Int64() int64 {
	return i.v.Int64()
}

// Cmp compares i and j as math/big.Int.Cmp does.
func (i *Int) Cmp(j *Int) int {
	return i.v.Cmp(j.v)
}

func reversed(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = c
	}
	return out
}
