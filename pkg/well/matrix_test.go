package well

import (
	"errors"
	"testing"
)

func TestMatrix_Apply(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		v    uint32
		want uint32
	}{
		{"M0", M0(), 0xffffffff, 0},
		{"M1", M1(), 0x12345678, 0x12345678},
		{"M2 left", M2(-28), 1, 0x10000000},
		{"M2 right", M2(9), 1, 0},
		{"M3", M3(-13), 0x00084000, 0x08084000},
		{"M4 even", M4(0xd3e43ffd), 4, 2},
		{"M4 odd", M4(0xd3e43ffd), 5, 2 ^ 0xd3e43ffd},
		{"M5", M5(-5, 0xda442d24), 0x00018001, 0x00018021},
		{"M6 test bit", M6(9, 0xfbffffff, 0x00020000, 0xb729fcec), 0x00020000, 0xb729fcec},
		{"M6 rotate", M6(9, 0xfbffffff, 0x00020000, 0xb729fcec), 1, 0x200},
		{"M6 wrap", M6(15, 0xffffffef, 0x00200000, 0x86a9d87e), 0x80000000, 0x4000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Apply(tt.v); got != tt.want {
				t.Errorf("%s.Apply(%#x) = %#x, want %#x", tt.m, tt.v, got, tt.want)
			}
		})
	}
}

func TestMatrix_Validate(t *testing.T) {
	for _, m := range []Matrix{M2(32), M3(-32), M5(33, 1), M6(0, 0, 0, 0), {Kind: 42}} {
		if err := m.validate(); !errors.Is(err, ErrBadVariant) {
			t.Errorf("%s.validate() = %v, want ErrBadVariant", m, err)
		}
	}
}

func TestMatrix_String(t *testing.T) {
	tests := []struct {
		m    Matrix
		want string
	}{
		{M0(), "M0"},
		{M3(-16), "M3(-16)"},
		{M4(0x0000001e), "M4(0x0000001e)"},
		{M5(-5, 0xda442d24), "M5(-5,0xda442d24)"},
		{M6(15, 0xfffeffff, 0x00000002, 0x5d6b45cc), "M6(15,0xfffeffff,0x00000002,0x5d6b45cc)"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
