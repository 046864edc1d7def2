package conv

import (
	"math"
	"testing"
)

func TestIntToUint32(t *testing.T) {
	tests := []struct {
		name      string
		in        int
		want      uint32
		wantPanic bool
	}{
		{"zero", 0, 0, false},
		{"small", 42, 42, false},
		{"max int32", math.MaxInt32, math.MaxInt32, false},
		{"negative", -1, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); (r != nil) != tt.wantPanic {
					t.Errorf("panic = %v, wantPanic %v", r, tt.wantPanic)
				}
			}()
			if got := IntToUint32(tt.in); got != tt.want {
				t.Errorf("IntToUint32(%d) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestUint64ToInt(t *testing.T) {
	if got := Uint64ToInt(7); got != 7 {
		t.Errorf("Uint64ToInt(7) = %d", got)
	}
	defer func() {
		if recover() == nil {
			t.Error("Uint64ToInt(MaxUint64) did not panic")
		}
	}()
	Uint64ToInt(math.MaxUint64)
}

func TestIntToInt32(t *testing.T) {
	if got := IntToInt32(-5); got != -5 {
		t.Errorf("IntToInt32(-5) = %d", got)
	}
	defer func() {
		if recover() == nil {
			t.Error("IntToInt32(MaxInt32+1) did not panic")
		}
	}()
	big := int64(math.MaxInt32) + 1
	IntToInt32(int(big))
}

func TestRuneToUint32(t *testing.T) {
	if got := RuneToUint32('A'); got != 65 {
		t.Errorf("RuneToUint32('A') = %d", got)
	}
	defer func() {
		if recover() == nil {
			t.Error("RuneToUint32(-1) did not panic")
		}
	}()
	RuneToUint32(-1)
}
