package random

import (
	"math/rand"

	"wellrng/pkg/well"
)

// Source 把 well.Generator 适配成 math/rand 的 Source64
// 与底层生成器一样不是并发安全的
type Source struct {
	g well.Generator
}

var _ rand.Source64 = (*Source)(nil)

// NewSource 用 seed 扩展出的状态给 g 播种
func NewSource(g well.Generator, seed int64) *Source {
	s := &Source{g: g}
	s.Seed(seed)
	return s
}

// Seed 重新播种，seed 经 ExpandSeed 扩展成 r 个字
func (s *Source) Seed(seed int64) {
	// ExpandSeed 返回的长度恰好是 StateSize，不会失败
	_ = s.g.Seed(ExpandSeed(uint64(seed), s.g.StateSize()))
}

// Uint64 由两个连续输出拼成，先出的在高位
func (s *Source) Uint64() uint64 {
	hi := uint64(s.g.Uint32())
	return hi<<32 | uint64(s.g.Uint32())
}

func (s *Source) Int63() int64 {
	return int64(s.Uint64() >> 1)
}

// Generator 返回底层生成器
func (s *Source) Generator() well.Generator {
	return s.g
}
