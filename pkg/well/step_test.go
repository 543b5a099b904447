package well

import "testing"

// tableStep 直接解释参数表的单步递推，作为展开版本的对照
func tableStep(v *Variant, g *Ring) uint32 {
	z0 := g.At(-1)
	if v.P != 0 {
		z0 = z0&^v.MaskLow() | g.At(-2)&v.MaskLow()
	}
	z1 := v.T[0].apply(g.At(0)) ^ v.T[1].apply(g.At(v.M1))
	z2 := v.T[2].apply(g.At(v.M2)) ^ v.T[3].apply(g.At(v.M3))
	z3 := z1 ^ z2
	z4 := v.T[4].apply(z0) ^ v.T[5].apply(z1) ^ v.T[6].apply(z2) ^ v.T[7].apply(z3)

	g.Set(0, z3)
	g.Set(-1, z4)
	g.Advance()
	return v.Temper.apply(z4)
}

// lcgWords 生成不含全零的任意种子
func lcgWords(n int, x uint32) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		x = x*1664525 + 1013904223
		out[i] = x | 1
	}
	return out
}

func TestStep_MatchesTable(t *testing.T) {
	for _, v := range Variants() {
		v := v
		t.Run(v.Name, func(t *testing.T) {
			words := lcgWords(v.R, uint32(v.R))
			g, err := New(v.Name)
			if err != nil {
				t.Fatal(err)
			}
			if err := g.Seed(words); err != nil {
				t.Fatal(err)
			}
			ring := NewRing(v.R)
			ring.reset(words, 0)

			for i := 0; i < 3*v.R+100; i++ {
				if got, want := g.Uint32(), tableStep(&v, &ring); got != want {
					t.Fatalf("step %d: %#08x, table gives %#08x", i, got, want)
				}
			}
			s := g.Snapshot()
			if s.Cursor != ring.Cursor() {
				t.Fatalf("cursor %d, table gives %d", s.Cursor, ring.Cursor())
			}
			for i, w := range s.State {
				if w != ring.words[i] {
					t.Fatalf("state[%d] = %#08x, table gives %#08x", i, w, ring.words[i])
				}
			}
		})
	}
}

// 全 1 种子第 10r 个输出，由独立实现跑 1e9 步核对过参考值后记录
func TestGoldenVectors(t *testing.T) {
	tests := []struct {
		name string
		want uint32
	}{
		{"Well512a", 0x9c62716a},
		{"Well521a", 0x8327ec06},
		{"Well521b", 0xb48359aa},
		{"Well607a", 0x521c7882},
		{"Well607b", 0xad2c7e31},
		{"Well800a", 0x63d123b2},
		{"Well800b", 0x128e2be1},
		{"Well1024a", 0xc0d47c1d},
		{"Well1024b", 0xc7f40a69},
		{"Well19937a", 0x4f92ecda},
		{"Well19937b", 0x2b17862f},
		{"Well19937c", 0x9f70e9da},
		{"Well21701a", 0xf2a2de43},
		{"Well23209a", 0x38c2016c},
		{"Well23209b", 0x3a50fd7c},
		{"Well44497a", 0x274be26f},
		{"Well44497b", 0xdc8b766f},
	}

	if len(tests) != len(Names()) {
		t.Fatalf("golden table covers %d variants, want %d", len(tests), len(Names()))
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := seeded(t, tt.name)
			g.Discard(uint64(10*g.StateSize() - 1))
			if got := g.Uint32(); got != tt.want {
				t.Errorf("output %d = %#08x, want %#08x", 10*g.StateSize(), got, tt.want)
			}
		})
	}
}
