package well

import "fmt"

// MatrixKind 递推中 T0..T7 使用的 GF(2) 线性变换种类
type MatrixKind uint8

const (
	KindZero         MatrixKind = iota // M0: 0
	KindIdentity                       // M1: v
	KindShift                          // M2(t): Shift(v, t)
	KindShiftXor                       // M3(t): v ^ Shift(v, t)
	KindTwist                          // M4(a): v&1 ? (v>>1)^a : v>>1
	KindShiftXorMask                   // M5(t, b): v ^ (Shift(v, t) & b)
	KindRotateMask                     // M6(q, ds, dt, a): (rotl(v, q) & ds) ^ (v&dt ? a : 0)
)

// Matrix 单个变换的参数，零值就是 M0
type Matrix struct {
	Kind MatrixKind
	T    int    // 移位量（M2/M3/M5），或循环左移量 q（M6）
	A    uint32 // M4/M6 的异或常量
	B    uint32 // M5 的掩码
	DS   uint32 // M6 的结果掩码
	DT   uint32 // M6 的测试位
}

// M0..M6 对应 WELL 论文里的七种基本变换
func M0() Matrix                { return Matrix{Kind: KindZero} }
func M1() Matrix                { return Matrix{Kind: KindIdentity} }
func M2(t int) Matrix           { return Matrix{Kind: KindShift, T: t} }
func M3(t int) Matrix           { return Matrix{Kind: KindShiftXor, T: t} }
func M4(a uint32) Matrix        { return Matrix{Kind: KindTwist, A: a} }
func M5(t int, b uint32) Matrix { return Matrix{Kind: KindShiftXorMask, T: t, B: b} }

func M6(q int, ds, dt, a uint32) Matrix {
	return Matrix{Kind: KindRotateMask, T: q, A: a, DS: ds, DT: dt}
}

// Apply 计算 M·v，移位量越界时 panic
func (m Matrix) Apply(v uint32) uint32 {
	if err := m.validate(); err != nil {
		panic(err)
	}
	return m.apply(v)
}

func (m Matrix) apply(v uint32) uint32 {
	switch m.Kind {
	case KindIdentity:
		return v
	case KindShift:
		return shift(v, m.T)
	case KindShiftXor:
		return mix(v, m.T)
	case KindTwist:
		return twist(v, m.A)
	case KindShiftXorMask:
		return v ^ shift(v, m.T)&m.B
	case KindRotateMask:
		return rotateMask(v, uint(m.T), m.DS, m.DT, m.A)
	}
	return 0
}

func (m Matrix) validate() error {
	switch m.Kind {
	case KindZero, KindIdentity, KindTwist:
		return nil
	case KindShift, KindShiftXor, KindShiftXorMask:
		if m.T <= -32 || m.T >= 32 {
			return fmt.Errorf("%w: %s shift out of range", ErrBadVariant, m)
		}
		return nil
	case KindRotateMask:
		if m.T <= 0 || m.T >= 32 {
			return fmt.Errorf("%w: %s rotation out of range", ErrBadVariant, m)
		}
		return nil
	}
	return fmt.Errorf("%w: unknown matrix kind %d", ErrBadVariant, m.Kind)
}

func (m Matrix) String() string {
	switch m.Kind {
	case KindZero:
		return "M0"
	case KindIdentity:
		return "M1"
	case KindShift:
		return fmt.Sprintf("M2(%d)", m.T)
	case KindShiftXor:
		return fmt.Sprintf("M3(%d)", m.T)
	case KindTwist:
		return fmt.Sprintf("M4(%#08x)", m.A)
	case KindShiftXorMask:
		return fmt.Sprintf("M5(%d,%#08x)", m.T, m.B)
	case KindRotateMask:
		return fmt.Sprintf("M6(%d,%#08x,%#08x,%#08x)", m.T, m.DS, m.DT, m.A)
	}
	return fmt.Sprintf("M?(%d)", m.Kind)
}
