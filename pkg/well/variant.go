package well

import (
	"fmt"
	"strings"
)

// Tempering Matsumoto-Kurita 输出调和：y = x ^ ((x<<7)&B); y ^= (y<<15)&C
// 只作用于输出字，状态数组里保存的仍是未调和的值
type Tempering struct {
	B uint32
	C uint32
}

func (t Tempering) apply(x uint32) uint32 {
	if t == (Tempering{}) {
		return x
	}
	return temper(x, t.B, t.C)
}

// Variant 一个 WELL 变体的全部参数
// 表在包初始化时校验一次，之后只读，所有同类实例共享
type Variant struct {
	Name      string
	R         int // 状态字数
	P         int // 最后一个字中被屏蔽的位数
	M1        int
	M2        int
	M3        int
	T         [8]Matrix
	Temper    Tempering // 零值表示不调和
	Reference uint32    // 全 1 种子运行 1e9 步后的最后输出
}

// Tag 返回变体名的最后一个字母（a/b/c）
func (v *Variant) Tag() string {
	return v.Name[len(v.Name)-1:]
}

// Tempered 是否有输出调和
func (v *Variant) Tempered() bool {
	return v.Temper != (Tempering{})
}

// Validate 检查参数表自身的一致性
func (v *Variant) Validate() error {
	if v.R < 3 {
		return fmt.Errorf("%w: %s state size %d", ErrBadVariant, v.Name, v.R)
	}
	if v.P < 0 || v.P >= 32 {
		return fmt.Errorf("%w: %s mask bits %d", ErrBadVariant, v.Name, v.P)
	}
	for _, m := range []int{v.M1, v.M2, v.M3} {
		if m <= 0 || m >= v.R {
			return fmt.Errorf("%w: %s offset %d not in (0, %d)", ErrBadVariant, v.Name, m, v.R)
		}
	}
	for i, t := range v.T {
		if err := t.validate(); err != nil {
			return fmt.Errorf("%s T%d: %w", v.Name, i, err)
		}
	}
	return nil
}

// MaskLow 最后一个字中参与递推的低 p 位
func (v *Variant) MaskLow() uint32 {
	if v.P == 0 {
		return 0
	}
	return 0xffffffff >> uint(32-v.P)
}

var (
	well512a = Variant{
		Name: "Well512a", R: 16, P: 0, M1: 13, M2: 9, M3: 5,
		T:         [8]Matrix{M3(-16), M3(-15), M3(11), M0(), M3(-2), M3(-18), M2(-28), M5(-5, 0xda442d24)},
		Reference: 0x2b3fe99e,
	}
	well521a = Variant{
		Name: "Well521a", R: 17, P: 23, M1: 13, M2: 11, M3: 10,
		T:         [8]Matrix{M3(-13), M3(-15), M1(), M2(-21), M3(-13), M2(1), M0(), M3(11)},
		Reference: 0xc9878363,
	}
	well521b = Variant{
		Name: "Well521b", R: 17, P: 23, M1: 11, M2: 10, M3: 7,
		T:         [8]Matrix{M3(-21), M3(6), M0(), M3(-13), M3(13), M2(-10), M2(-5), M3(13)},
		Reference: 0xb75867f6,
	}
	well607a = Variant{
		Name: "Well607a", R: 19, P: 1, M1: 16, M2: 15, M3: 14,
		T:         [8]Matrix{M3(19), M3(11), M3(-14), M1(), M3(18), M1(), M0(), M3(-5)},
		Reference: 0x7b5043ea,
	}
	well607b = Variant{
		Name: "Well607b", R: 19, P: 1, M1: 16, M2: 18, M3: 13,
		T:         [8]Matrix{M3(-18), M3(-14), M0(), M3(18), M3(-24), M3(5), M3(-1), M0()},
		Reference: 0xaedee7da,
	}
	well800a = Variant{
		Name: "Well800a", R: 25, P: 0, M1: 14, M2: 18, M3: 17,
		T:         [8]Matrix{M1(), M3(-15), M3(10), M3(-11), M3(16), M2(20), M1(), M3(-28)},
		Reference: 0x2bfe686f,
	}
	well800b = Variant{
		Name: "Well800b", R: 25, P: 0, M1: 9, M2: 4, M3: 22,
		T:         [8]Matrix{M3(-29), M2(-14), M1(), M2(19), M1(), M3(10), M4(0xd3e43ffd), M3(-25)},
		Reference: 0xf009e1bd,
	}
	well1024a = Variant{
		Name: "Well1024a", R: 32, P: 0, M1: 3, M2: 24, M3: 10,
		T:         [8]Matrix{M1(), M3(8), M3(-19), M3(-14), M3(-11), M3(-7), M3(-13), M0()},
		Reference: 0xd07f528c,
	}
	well1024b = Variant{
		Name: "Well1024b", R: 32, P: 0, M1: 22, M2: 25, M3: 26,
		T:         [8]Matrix{M3(-21), M3(17), M4(0x8bdcb91e), M3(15), M3(-14), M3(-21), M1(), M0()},
		Reference: 0x867f7993,
	}
	well19937a = Variant{
		Name: "Well19937a", R: 624, P: 31, M1: 70, M2: 179, M3: 449,
		T:         [8]Matrix{M3(-25), M3(27), M2(9), M3(1), M1(), M3(-9), M3(-21), M3(21)},
		Reference: 0xb33a2cd5,
	}
	well19937b = Variant{
		Name: "Well19937b", R: 624, P: 31, M1: 203, M2: 613, M3: 123,
		T:         [8]Matrix{M3(7), M1(), M3(12), M3(-10), M3(-19), M2(-11), M3(4), M3(-10)},
		Reference: 0x191de86a,
	}
	well19937c = Variant{
		Name: "Well19937c", R: 624, P: 31, M1: 70, M2: 179, M3: 449,
		T:         well19937a.T,
		Temper:    Tempering{B: 0xe46e1700, C: 0x9b868000},
		Reference: 0x243eaed5,
	}
	well21701a = Variant{
		Name: "Well21701a", R: 679, P: 27, M1: 151, M2: 327, M3: 84,
		T: [8]Matrix{M1(), M3(-26), M3(19), M0(), M3(27), M3(-11),
			M6(15, 0xffffffef, 0x00200000, 0x86a9d87e), M3(-16)},
		Reference: 0x7365a269,
	}
	well23209a = Variant{
		Name: "Well23209a", R: 726, P: 23, M1: 667, M2: 43, M3: 462,
		T:         [8]Matrix{M3(28), M1(), M3(18), M3(3), M3(21), M3(-17), M3(-28), M3(-1)},
		Reference: 0x0807dacb,
	}
	well23209b = Variant{
		Name: "Well23209b", R: 726, P: 23, M1: 610, M2: 175, M3: 662,
		T: [8]Matrix{M4(0xa8c296d1), M1(), M6(15, 0xfffeffff, 0x00000002, 0x5d6b45cc),
			M3(-24), M3(-26), M1(), M0(), M3(16)},
		Reference: 0xf1a77751,
	}
	well44497a = Variant{
		Name: "Well44497a", R: 1391, P: 15, M1: 23, M2: 481, M3: 229,
		T: [8]Matrix{M3(-24), M3(30), M3(-10), M2(-26), M1(), M3(20),
			M6(9, 0xfbffffff, 0x00020000, 0xb729fcec), M1()},
		Reference: 0xfdd7c07b,
	}
	well44497b = Variant{
		Name: "Well44497b", R: 1391, P: 15, M1: 23, M2: 481, M3: 229,
		T:         well44497a.T,
		Temper:    Tempering{B: 0x93dd1400, C: 0xfa118000},
		Reference: 0x9406547b,
	}

	table = []*Variant{
		&well512a, &well521a, &well521b, &well607a, &well607b,
		&well800a, &well800b, &well1024a, &well1024b,
		&well19937a, &well19937b, &well19937c, &well21701a,
		&well23209a, &well23209b, &well44497a, &well44497b,
	}
)

func init() {
	for _, v := range table {
		if err := v.Validate(); err != nil {
			panic(err)
		}
	}
}

// Variants 返回全部 17 个变体的副本，顺序与状态大小一致
func Variants() []Variant {
	out := make([]Variant, len(table))
	for i, v := range table {
		out[i] = *v
	}
	return out
}

// Names 返回全部变体名
func Names() []string {
	out := make([]string, len(table))
	for i, v := range table {
		out[i] = v.Name
	}
	return out
}

// Lookup 按名字查找变体（忽略大小写）
func Lookup(name string) (Variant, error) {
	v := lookup(name)
	if v == nil {
		return Variant{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	return *v, nil
}

func lookup(name string) *Variant {
	for _, v := range table {
		if strings.EqualFold(v.Name, name) {
			return v
		}
	}
	return nil
}
