package random

import "github.com/cespare/xxhash/v2"

// ExpandSeed 把单个整数种子扩展成 n 个字，可直接传给 well 生成器的 Seed
func ExpandSeed(seed uint64, n int) []uint32 {
	words := make([]uint32, n)
	NewXorShift64Star(seed).Fill(words)
	return words
}

// SeedFromString 把任意标签（用户 ID、场景名等）哈希成 64 位种子
func SeedFromString(label string) uint64 {
	return xxhash.Sum64String(label)
}

// Ones 参考测试使用的种子：n 个 1
func Ones(n int) []uint32 {
	words := make([]uint32, n)
	for i := range words {
		words[i] = 1
	}
	return words
}
