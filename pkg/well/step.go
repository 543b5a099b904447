package well

// 每个变体的递推都按参数表手工展开：偏移、移位量和常量都是编译期常量，
// 单步不再逐个分派 T0..T7。参数表（variant.go）仍是唯一的描述来源，
// step_test.go 逐步比对两者。
//
// 记号：V[k] = s[(c+k) mod r]，prev 是偏移 -1 处的下标
//
//	z0 = (V[-1] & 高位) | (V[-2] & 低 p 位)
//	z1 = T0·V[0] ^ T1·V[m1]
//	z2 = T2·V[m2] ^ T3·V[m3]
//	z3 = z1 ^ z2
//	z4 = T4·z0 ^ T5·z1 ^ T6·z2 ^ T7·z3
//
// 写回 V[0] = z3、V[-1] = z4，游标移到 prev

func (Well512a) step(g *Ring) uint32 {
	s, c := g.words, g.cursor
	prev := (c + 15) & 15
	z0 := s[prev]
	v0, va, vb := s[c], s[(c+13)&15], s[(c+9)&15]
	z1 := (v0 ^ (v0 << 16)) ^ (va ^ (va << 15))
	z2 := vb ^ (vb >> 11)
	z3 := z1 ^ z2
	z4 := (z0 ^ (z0 << 2)) ^ (z1 ^ (z1 << 18)) ^ (z2 << 28) ^ (z3 ^ ((z3 << 5) & 0xda442d24))
	s[c], s[prev] = z3, z4
	g.cursor = prev
	return z4
}

func (Well521a) step(g *Ring) uint32 {
	s, c := g.words, g.cursor
	prev := wrap(c+16, 17)
	z0 := (s[prev] & 0xff800000) | (s[wrap(c+15, 17)] & 0x007fffff)
	v0, va, vb, vc := s[c], s[wrap(c+13, 17)], s[wrap(c+11, 17)], s[wrap(c+10, 17)]
	z1 := (v0 ^ (v0 << 13)) ^ (va ^ (va << 15))
	z2 := vb ^ (vc << 21)
	z3 := z1 ^ z2
	z4 := (z0 ^ (z0 << 13)) ^ (z1 >> 1) ^ (z3 ^ (z3 >> 11))
	s[c], s[prev] = z3, z4
	g.cursor = prev
	return z4
}

func (Well521b) step(g *Ring) uint32 {
	s, c := g.words, g.cursor
	prev := wrap(c+16, 17)
	z0 := (s[prev] & 0xff800000) | (s[wrap(c+15, 17)] & 0x007fffff)
	v0, va, vc := s[c], s[wrap(c+11, 17)], s[wrap(c+7, 17)]
	z1 := (v0 ^ (v0 << 21)) ^ (va ^ (va >> 6))
	z2 := vc ^ (vc << 13)
	z3 := z1 ^ z2
	z4 := (z0 ^ (z0 >> 13)) ^ (z1 << 10) ^ (z2 << 5) ^ (z3 ^ (z3 >> 13))
	s[c], s[prev] = z3, z4
	g.cursor = prev
	return z4
}

func (Well607a) step(g *Ring) uint32 {
	s, c := g.words, g.cursor
	prev := wrap(c+18, 19)
	z0 := (s[prev] & 0xfffffffe) | (s[wrap(c+17, 19)] & 0x00000001)
	v0, va, vb, vc := s[c], s[wrap(c+16, 19)], s[wrap(c+15, 19)], s[wrap(c+14, 19)]
	z1 := (v0 ^ (v0 >> 19)) ^ (va ^ (va >> 11))
	z2 := (vb ^ (vb << 14)) ^ vc
	z3 := z1 ^ z2
	z4 := (z0 ^ (z0 >> 18)) ^ z1 ^ (z3 ^ (z3 << 5))
	s[c], s[prev] = z3, z4
	g.cursor = prev
	return z4
}

func (Well607b) step(g *Ring) uint32 {
	s, c := g.words, g.cursor
	prev := wrap(c+18, 19)
	z0 := (s[prev] & 0xfffffffe) | (s[wrap(c+17, 19)] & 0x00000001)
	v0, va, vc := s[c], s[wrap(c+16, 19)], s[wrap(c+13, 19)]
	z1 := (v0 ^ (v0 << 18)) ^ (va ^ (va << 14))
	z2 := vc ^ (vc >> 18)
	z3 := z1 ^ z2
	z4 := (z0 ^ (z0 << 24)) ^ (z1 ^ (z1 >> 5)) ^ (z2 ^ (z2 << 1))
	s[c], s[prev] = z3, z4
	g.cursor = prev
	return z4
}

func (Well800a) step(g *Ring) uint32 {
	s, c := g.words, g.cursor
	prev := wrap(c+24, 25)
	z0 := s[prev]
	v0, va, vb, vc := s[c], s[wrap(c+14, 25)], s[wrap(c+18, 25)], s[wrap(c+17, 25)]
	z1 := v0 ^ (va ^ (va << 15))
	z2 := (vb ^ (vb >> 10)) ^ (vc ^ (vc << 11))
	z3 := z1 ^ z2
	z4 := (z0 ^ (z0 >> 16)) ^ (z1 >> 20) ^ z2 ^ (z3 ^ (z3 << 28))
	s[c], s[prev] = z3, z4
	g.cursor = prev
	return z4
}

func (Well800b) step(g *Ring) uint32 {
	s, c := g.words, g.cursor
	prev := wrap(c+24, 25)
	z0 := s[prev]
	v0, va, vb, vc := s[c], s[wrap(c+9, 25)], s[wrap(c+4, 25)], s[wrap(c+22, 25)]
	z1 := (v0 ^ (v0 << 29)) ^ (va << 14)
	z2 := vb ^ (vc >> 19)
	z3 := z1 ^ z2
	z4 := z0 ^ (z1 ^ (z1 >> 10)) ^ twist(z2, 0xd3e43ffd) ^ (z3 ^ (z3 << 25))
	s[c], s[prev] = z3, z4
	g.cursor = prev
	return z4
}

func (Well1024a) step(g *Ring) uint32 {
	s, c := g.words, g.cursor
	prev := (c + 31) & 31
	z0 := s[prev]
	v0, va, vb, vc := s[c], s[(c+3)&31], s[(c+24)&31], s[(c+10)&31]
	z1 := v0 ^ (va ^ (va >> 8))
	z2 := (vb ^ (vb << 19)) ^ (vc ^ (vc << 14))
	z3 := z1 ^ z2
	z4 := (z0 ^ (z0 << 11)) ^ (z1 ^ (z1 << 7)) ^ (z2 ^ (z2 << 13))
	s[c], s[prev] = z3, z4
	g.cursor = prev
	return z4
}

func (Well1024b) step(g *Ring) uint32 {
	s, c := g.words, g.cursor
	prev := (c + 31) & 31
	z0 := s[prev]
	v0, va, vb, vc := s[c], s[(c+22)&31], s[(c+25)&31], s[(c+26)&31]
	z1 := (v0 ^ (v0 << 21)) ^ (va ^ (va >> 17))
	z2 := twist(vb, 0x8bdcb91e) ^ (vc ^ (vc >> 15))
	z3 := z1 ^ z2
	z4 := (z0 ^ (z0 << 14)) ^ (z1 ^ (z1 << 21)) ^ z2
	s[c], s[prev] = z3, z4
	g.cursor = prev
	return z4
}

func (Well19937a) step(g *Ring) uint32 {
	s, c := g.words, g.cursor
	prev := wrap(c+623, 624)
	z0 := (s[prev] & 0x80000000) | (s[wrap(c+622, 624)] & 0x7fffffff)
	v0, va, vb, vc := s[c], s[wrap(c+70, 624)], s[wrap(c+179, 624)], s[wrap(c+449, 624)]
	z1 := (v0 ^ (v0 << 25)) ^ (va ^ (va >> 27))
	z2 := (vb >> 9) ^ (vc ^ (vc >> 1))
	z3 := z1 ^ z2
	z4 := z0 ^ (z1 ^ (z1 << 9)) ^ (z2 ^ (z2 << 21)) ^ (z3 ^ (z3 >> 21))
	s[c], s[prev] = z3, z4
	g.cursor = prev
	return z4
}

func (Well19937b) step(g *Ring) uint32 {
	s, c := g.words, g.cursor
	prev := wrap(c+623, 624)
	z0 := (s[prev] & 0x80000000) | (s[wrap(c+622, 624)] & 0x7fffffff)
	v0, va, vb, vc := s[c], s[wrap(c+203, 624)], s[wrap(c+613, 624)], s[wrap(c+123, 624)]
	z1 := (v0 ^ (v0 >> 7)) ^ va
	z2 := (vb ^ (vb >> 12)) ^ (vc ^ (vc << 10))
	z3 := z1 ^ z2
	z4 := (z0 ^ (z0 << 19)) ^ (z1 << 11) ^ (z2 ^ (z2 >> 4)) ^ (z3 ^ (z3 << 10))
	s[c], s[prev] = z3, z4
	g.cursor = prev
	return z4
}

func (Well19937c) step(g *Ring) uint32 {
	s, c := g.words, g.cursor
	prev := wrap(c+623, 624)
	z0 := (s[prev] & 0x80000000) | (s[wrap(c+622, 624)] & 0x7fffffff)
	v0, va, vb, vc := s[c], s[wrap(c+70, 624)], s[wrap(c+179, 624)], s[wrap(c+449, 624)]
	z1 := (v0 ^ (v0 << 25)) ^ (va ^ (va >> 27))
	z2 := (vb >> 9) ^ (vc ^ (vc >> 1))
	z3 := z1 ^ z2
	z4 := z0 ^ (z1 ^ (z1 << 9)) ^ (z2 ^ (z2 << 21)) ^ (z3 ^ (z3 >> 21))
	s[c], s[prev] = z3, z4
	g.cursor = prev
	return temper(z4, 0xe46e1700, 0x9b868000)
}

func (Well21701a) step(g *Ring) uint32 {
	s, c := g.words, g.cursor
	prev := wrap(c+678, 679)
	z0 := (s[prev] & 0xf8000000) | (s[wrap(c+677, 679)] & 0x07ffffff)
	v0, va, vb := s[c], s[wrap(c+151, 679)], s[wrap(c+327, 679)]
	z1 := v0 ^ (va ^ (va << 26))
	z2 := vb ^ (vb >> 19)
	z3 := z1 ^ z2
	z4 := (z0 ^ (z0 >> 27)) ^ (z1 ^ (z1 << 11)) ^ rotateMask(z2, 15, 0xffffffef, 0x00200000, 0x86a9d87e) ^ (z3 ^ (z3 << 16))
	s[c], s[prev] = z3, z4
	g.cursor = prev
	return z4
}

func (Well23209a) step(g *Ring) uint32 {
	s, c := g.words, g.cursor
	prev := wrap(c+725, 726)
	z0 := (s[prev] & 0xff800000) | (s[wrap(c+724, 726)] & 0x007fffff)
	v0, va, vb, vc := s[c], s[wrap(c+667, 726)], s[wrap(c+43, 726)], s[wrap(c+462, 726)]
	z1 := (v0 ^ (v0 >> 28)) ^ va
	z2 := (vb ^ (vb >> 18)) ^ (vc ^ (vc >> 3))
	z3 := z1 ^ z2
	z4 := (z0 ^ (z0 >> 21)) ^ (z1 ^ (z1 << 17)) ^ (z2 ^ (z2 << 28)) ^ (z3 ^ (z3 << 1))
	s[c], s[prev] = z3, z4
	g.cursor = prev
	return z4
}

func (Well23209b) step(g *Ring) uint32 {
	s, c := g.words, g.cursor
	prev := wrap(c+725, 726)
	z0 := (s[prev] & 0xff800000) | (s[wrap(c+724, 726)] & 0x007fffff)
	v0, va, vb, vc := s[c], s[wrap(c+610, 726)], s[wrap(c+175, 726)], s[wrap(c+662, 726)]
	z1 := twist(v0, 0xa8c296d1) ^ va
	z2 := rotateMask(vb, 15, 0xfffeffff, 0x00000002, 0x5d6b45cc) ^ (vc ^ (vc << 24))
	z3 := z1 ^ z2
	z4 := (z0 ^ (z0 << 26)) ^ z1 ^ (z3 ^ (z3 >> 16))
	s[c], s[prev] = z3, z4
	g.cursor = prev
	return z4
}

func (Well44497a) step(g *Ring) uint32 {
	s, c := g.words, g.cursor
	prev := wrap(c+1390, 1391)
	z0 := (s[prev] & 0xffff8000) | (s[wrap(c+1389, 1391)] & 0x00007fff)
	v0, va, vb, vc := s[c], s[wrap(c+23, 1391)], s[wrap(c+481, 1391)], s[wrap(c+229, 1391)]
	z1 := (v0 ^ (v0 << 24)) ^ (va ^ (va >> 30))
	z2 := (vb ^ (vb << 10)) ^ (vc << 26)
	z3 := z1 ^ z2
	z4 := z0 ^ (z1 ^ (z1 >> 20)) ^ rotateMask(z2, 9, 0xfbffffff, 0x00020000, 0xb729fcec) ^ z3
	s[c], s[prev] = z3, z4
	g.cursor = prev
	return z4
}

func (Well44497b) step(g *Ring) uint32 {
	s, c := g.words, g.cursor
	prev := wrap(c+1390, 1391)
	z0 := (s[prev] & 0xffff8000) | (s[wrap(c+1389, 1391)] & 0x00007fff)
	v0, va, vb, vc := s[c], s[wrap(c+23, 1391)], s[wrap(c+481, 1391)], s[wrap(c+229, 1391)]
	z1 := (v0 ^ (v0 << 24)) ^ (va ^ (va >> 30))
	z2 := (vb ^ (vb << 10)) ^ (vc << 26)
	z3 := z1 ^ z2
	z4 := z0 ^ (z1 ^ (z1 >> 20)) ^ rotateMask(z2, 9, 0xfbffffff, 0x00020000, 0xb729fcec) ^ z3
	s[c], s[prev] = z3, z4
	g.cursor = prev
	return temper(z4, 0x93dd1400, 0xfa118000)
}
