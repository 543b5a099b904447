package well

import (
	"errors"
	"strconv"
	"testing"
)

func TestVariants_Table(t *testing.T) {
	vs := Variants()
	if len(vs) != 17 {
		t.Fatalf("len(Variants()) = %d, want 17", len(vs))
	}

	seen := make(map[string]bool)
	for _, v := range vs {
		if seen[v.Name] {
			t.Errorf("duplicate variant %s", v.Name)
		}
		seen[v.Name] = true
		if err := v.Validate(); err != nil {
			t.Errorf("%s: %v", v.Name, err)
		}
	}

	tempered := map[string]bool{"Well19937c": true, "Well44497b": true}
	for _, v := range vs {
		if v.Tempered() != tempered[v.Name] {
			t.Errorf("%s.Tempered() = %v", v.Name, v.Tempered())
		}
	}
}

func TestVariants_StateSizes(t *testing.T) {
	want := map[string]int{
		"Well512a": 16, "Well521a": 17, "Well521b": 17, "Well607a": 19, "Well607b": 19,
		"Well800a": 25, "Well800b": 25, "Well1024a": 32, "Well1024b": 32,
		"Well19937a": 624, "Well19937b": 624, "Well19937c": 624, "Well21701a": 679,
		"Well23209a": 726, "Well23209b": 726, "Well44497a": 1391, "Well44497b": 1391,
	}
	for _, v := range Variants() {
		if v.R != want[v.Name] {
			t.Errorf("%s.R = %d, want %d", v.Name, v.R, want[v.Name])
		}
		// 名字里的数字就是 k = 32r - p，周期为 2^k - 1
		k, err := strconv.Atoi(v.Name[len("Well") : len(v.Name)-1])
		if err != nil {
			t.Fatal(err)
		}
		if got := 32*v.R - v.P; got != k {
			t.Errorf("%s: 32r-p = %d, want %d", v.Name, got, k)
		}
	}
}

func TestVariants_Copy(t *testing.T) {
	vs := Variants()
	vs[0].R = 1
	vs[0].T[0] = M0()
	if v, _ := Lookup("Well512a"); v.R != 16 || v.T[0] != M3(-16) {
		t.Errorf("table mutated through Variants(): %+v", v)
	}
}

func TestLookup(t *testing.T) {
	v, err := Lookup("well19937C")
	if err != nil {
		t.Fatal(err)
	}
	if v.Name != "Well19937c" || v.Tag() != "c" {
		t.Errorf("Lookup = %s tag %s", v.Name, v.Tag())
	}

	if _, err := Lookup("Well4096a"); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("Lookup(unknown) err = %v", err)
	}
}

func TestVariant_ValidateDefects(t *testing.T) {
	base, _ := Lookup("Well512a")
	tests := []struct {
		name  string
		patch func(v *Variant)
	}{
		{"offset >= r", func(v *Variant) { v.M2 = 16 }},
		{"zero offset", func(v *Variant) { v.M1 = 0 }},
		{"mask bits", func(v *Variant) { v.P = 32 }},
		{"tiny state", func(v *Variant) { v.R = 2 }},
		{"shift", func(v *Variant) { v.T[4] = M3(-32) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := base
			tt.patch(&v)
			if err := v.Validate(); !errors.Is(err, ErrBadVariant) {
				t.Errorf("Validate() = %v, want ErrBadVariant", err)
			}
		})
	}
}
