package checked

import (
	"math"
	"testing"
)

func TestAddInt64(t *testing.T) {
	cases := []struct {
		a, b   int64
		want   int64
		wantOk bool
	}{
		{1, 2, 3, true},
		{math.MaxInt64, 1, 0, false},
		{math.MinInt64, -1, 0, false},
		{math.MaxInt64, -1, math.MaxInt64 - 1, true},
	}
	for _, c := range cases {
		got, ok := AddInt64(c.a, c.b)
		if ok != c.wantOk || (ok && got != c.want) {
			t.Errorf("AddInt64(%d, %d) = (%d, %v), want (%d, %v)", c.a, c.b, got, ok, c.want, c.wantOk)
		}
	}
}

func TestMulUint64Overflow(t *testing.T) {
	_, ok := MulUint64(math.MaxUint64, 2)
	if ok {
		t.Error("MulUint64 overflow not detected")
	}
}

func TestAddUint32Overflow(t *testing.T) {
	_, ok := AddUint32(math.MaxUint32, 1)
	if ok {
		t.Error("AddUint32 overflow not detected")
	}
}
