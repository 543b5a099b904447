package well

import (
	"errors"
	"testing"
)

func TestSnapshot_Resume(t *testing.T) {
	g := NewWell23209b()
	if err := g.Seed(ones(726)); err != nil {
		t.Fatal(err)
	}
	g.Discard(3000)

	data, err := g.Snapshot().MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	var s Snapshot
	if err := s.UnmarshalBinary(data); err != nil {
		t.Fatal(err)
	}

	r := NewWell23209b()
	if err := r.Restore(s); err != nil {
		t.Fatal(err)
	}
	if !r.Equal(g) {
		t.Fatal("restored generator differs")
	}
	for i := 0; i < 1000; i++ {
		if a, b := g.Uint32(), r.Uint32(); a != b {
			t.Fatalf("step %d: %#x != %#x", i, a, b)
		}
	}
}

func TestSnapshot_Mismatch(t *testing.T) {
	g := NewWell607b()
	_ = g.Seed(ones(19))
	s := g.Snapshot()

	tests := []struct {
		name string
		s    Snapshot
	}{
		{"variant", Snapshot{Variant: "Well607a", State: s.State}},
		{"length", Snapshot{Variant: s.Variant, State: s.State[:18]}},
		{"cursor", Snapshot{Variant: s.Variant, Cursor: 19, State: s.State}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := NewWell607b().Restore(tt.s); !errors.Is(err, ErrBadSnapshot) {
				t.Errorf("Restore() = %v, want ErrBadSnapshot", err)
			}
		})
	}
}

func TestSnapshot_UnmarshalCorrupt(t *testing.T) {
	good, _ := Snapshot{Variant: "Well512a", State: ones(16)}.MarshalBinary()
	for _, data := range [][]byte{nil, []byte("XXXX"), good[:10], good[:len(good)-1]} {
		var s Snapshot
		if err := s.UnmarshalBinary(data); !errors.Is(err, ErrBadSnapshot) {
			t.Errorf("UnmarshalBinary(%d bytes) = %v", len(data), err)
		}
	}
}
