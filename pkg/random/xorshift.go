package random

// XorShift64Star 是一个快速的伪随机数生成器
// 这里只用来把单个整数种子扩展成 WELL 需要的 r 个字
// 注意：不适用于加密场景
type XorShift64Star struct {
	s uint64
}

// defaultSeed 避免零状态
const defaultSeed = 0x9e3779b97f4a7c15

// NewXorShift64Star 创建一个新的随机数生成器
// seed: 种子值，如果为 0 则使用默认种子
func NewXorShift64Star(seed uint64) *XorShift64Star {
	if seed == 0 {
		seed = defaultSeed
	}
	return &XorShift64Star{s: seed}
}

// Uint64 生成下一个 64 位随机数
func (r *XorShift64Star) Uint64() uint64 {
	x := r.s
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	r.s = x
	return x * 2685821657736338717
}

// Uint32 取高 32 位（xorshift* 的低位质量较差）
func (r *XorShift64Star) Uint32() uint32 {
	return uint32(r.Uint64() >> 32)
}

// Fill 用随机字填满 dst
func (r *XorShift64Star) Fill(dst []uint32) {
	for i := range dst {
		dst[i] = r.Uint32()
	}
}
