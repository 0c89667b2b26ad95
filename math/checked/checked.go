/*
Package checked implements basic arithmetic operations
with underflow and overflow checks.
*/
package checked

import (
	"errors"
	"math"
)

var ErrOverflow = errors.New("arithmetic overflow")

// AddInt64 returns a + b
// with an integer overflow check.
func AddInt64(a, b int64) (sum int64, ok bool) {
	if (b > 0 && a > math.MaxInt64-b) ||
		(b < 0 && a < math.MinInt64-b) {
		return 0, false
	}
	return a + b, true
}

// SubInt64 returns a - b
// with an integer overflow check.
func SubInt64(a, b int64) (diff int64, ok bool) {
	if (b > 0 && a < math.MinInt64+b) ||
		(b < 0 && a > math.MaxInt64+b) {
		return 0, false
	}
	return a - b, true
}

// MulInt64 returns a * b
// with an integer overflow check.
func MulInt64(a, b int64) (product int64, ok bool) {
	if (a > 0 && b > 0 && a > math.MaxInt64/b) ||
		(a > 0 && b <= 0 && b < math.MinInt64/a) ||
		(a <= 0 && b > 0 && a < math.MinInt64/b) ||
		(a < 0 && b <= 0 && b < math.MaxInt64/a) {
		return 0, false
	}
	return a * b, true
}

// DivInt64 returns a / b
// with an integer overflow check.
func DivInt64(a, b int64) (quotient int64, ok bool) {
	if b == 0 || (a == math.MinInt64 && b == -1) {
		return 0, false
	}
	return a / b, true
}

// ModInt64 returns a % b
// with an integer overflow check.
func ModInt64(a, b int64) (remainder int64, ok bool) {
	if b == 0 || (a == math.MinInt64 && b == -1) {
		return 0, false
	}
	return a % b, true
}

// AddUint64 returns a + b
// with an integer overflow check.
func AddUint64(a, b uint64) (sum uint64, ok bool) {
	if math.MaxUint64-a < b {
		return 0, false
	}
	return a + b, true
}

// SubUint64 returns a - b
// with an integer overflow check.
func SubUint64(a, b uint64) (diff uint64, ok bool) {
	if a < b {
		return 0, false
	}
	return a - b, true
}

// MulUint64 returns a * b
// with an integer overflow check.
func MulUint64(a, b uint64) (product uint64, ok bool) {
	if b > 0 && a > math.MaxUint64/b {
		return 0, false
	}
	return a * b, true
}

// AddUint32 returns a + b
// with an integer overflow check.
func AddUint32(a, b uint32) (sum uint32, ok bool) {
	if math.MaxUint32-a < b {
		return 0, false
	}
	return a + b, true
}

// SubUint32 returns a - b
// with an integer overflow check.
func SubUint32(a, b uint32) (diff uint32, ok bool) {
	if a < b {
		return 0, false
	}
	return a - b, true
}

// MulUint32 returns a * b
// with an integer overflow check.
func MulUint32(a, b uint32) (product uint32, ok bool) {
	if b > 0 && a > math.MaxUint32/b {
		return 0, false
	}
	return a * b, true
}
