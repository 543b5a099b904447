package well

import "fmt"

// Shift 按符号移位：k > 0 逻辑右移 k 位，k < 0 左移 -k 位，k == 0 原样返回
// |k| >= 32 属于前置条件错误，直接 panic 而不是悄悄截断
func Shift(v uint32, k int) uint32 {
	checkShift(k)
	return shift(v, k)
}

// Mix 返回 v ^ Shift(v, k)
// 注意：k == 0 定义为恒等变换，而不是 v ^ v
func Mix(v uint32, k int) uint32 {
	checkShift(k)
	return mix(v, k)
}

func checkShift(k int) {
	if k <= -32 || k >= 32 {
		panic(fmt.Sprintf("well: shift amount %d out of range (-32, 32)", k))
	}
}

// shift/mix 不做范围检查，只在已通过 Validate 的参数表上调用
func shift(v uint32, k int) uint32 {
	switch {
	case k > 0:
		return v >> uint(k)
	case k < 0:
		return v << uint(-k)
	}
	return v
}

func mix(v uint32, k int) uint32 {
	if k == 0 {
		return v
	}
	return v ^ shift(v, k)
}

func rotl(v uint32, q uint) uint32 {
	return v<<q | v>>(32-q)
}

// twist 即 M4(a)
func twist(v, a uint32) uint32 {
	if v&1 != 0 {
		return v>>1 ^ a
	}
	return v >> 1
}

// rotateMask 即 M6(q, ds, dt, a)
func rotateMask(v uint32, q uint, ds, dt, a uint32) uint32 {
	y := rotl(v, q) & ds
	if v&dt != 0 {
		y ^= a
	}
	return y
}

// temper Matsumoto-Kurita 调和
func temper(x, b, c uint32) uint32 {
	y := x ^ (x<<7)&b
	return y ^ (y<<15)&c
}

// isPowerOf2 对 0 返回 false
// 参数表里 r 最小为 16，调用方不会传 0
func isPowerOf2(v uint32) bool {
	return v != 0 && v&(v-1) == 0
}
