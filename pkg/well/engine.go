// Package well 实现 WELL（Well Equidistributed Long-period Linear）伪随机数生成器族
// 注意：不适用于加密场景；单个实例不是并发安全的
package well

import (
	"fmt"
	"math"
	"strings"
)

const (
	// MinValue 输出下界
	MinValue uint32 = 0
	// MaxValue 输出上界（含）
	MaxValue uint32 = math.MaxUint32
)

// Marker 变体标记类型，每个 WELL 变体对应一个零大小类型
// step 是该变体展开后的单步递推（见 step.go）
type Marker interface {
	variant() *Variant
	step(g *Ring) uint32
}

type (
	Well512a   struct{}
	Well521a   struct{}
	Well521b   struct{}
	Well607a   struct{}
	Well607b   struct{}
	Well800a   struct{}
	Well800b   struct{}
	Well1024a  struct{}
	Well1024b  struct{}
	Well19937a struct{}
	Well19937b struct{}
	Well19937c struct{}
	Well21701a struct{}
	Well23209a struct{}
	Well23209b struct{}
	Well44497a struct{}
	Well44497b struct{}
)

func (Well512a) variant() *Variant   { return &well512a }
func (Well521a) variant() *Variant   { return &well521a }
func (Well521b) variant() *Variant   { return &well521b }
func (Well607a) variant() *Variant   { return &well607a }
func (Well607b) variant() *Variant   { return &well607b }
func (Well800a) variant() *Variant   { return &well800a }
func (Well800b) variant() *Variant   { return &well800b }
func (Well1024a) variant() *Variant  { return &well1024a }
func (Well1024b) variant() *Variant  { return &well1024b }
func (Well19937a) variant() *Variant { return &well19937a }
func (Well19937b) variant() *Variant { return &well19937b }
func (Well19937c) variant() *Variant { return &well19937c }
func (Well21701a) variant() *Variant { return &well21701a }
func (Well23209a) variant() *Variant { return &well23209a }
func (Well23209b) variant() *Variant { return &well23209b }
func (Well44497a) variant() *Variant { return &well44497a }
func (Well44497b) variant() *Variant { return &well44497b }

// Generator 运行时选择变体时使用的接口
type Generator interface {
	Name() string
	Seed(words []uint32) error
	Seeded() bool
	Uint32() uint32
	Discard(n uint64)
	StateSize() int
	Min() uint32
	Max() uint32
	StateEqual(other Generator) bool
	Snapshot() Snapshot
	Restore(s Snapshot) error
}

// Engine 变体 V 的生成器
// 构造后处于未播种状态（全零状态、游标 0），必须先 Seed
type Engine[V Marker] struct {
	v      *Variant
	ring   Ring
	seeded bool
}

var _ Generator = (*Engine[Well512a])(nil)

// NewEngine 创建变体 V 的未播种生成器
func NewEngine[V Marker]() *Engine[V] {
	var m V
	v := m.variant()
	return &Engine[V]{v: v, ring: NewRing(v.R)}
}

func NewWell512a() *Engine[Well512a]     { return NewEngine[Well512a]() }
func NewWell521a() *Engine[Well521a]     { return NewEngine[Well521a]() }
func NewWell521b() *Engine[Well521b]     { return NewEngine[Well521b]() }
func NewWell607a() *Engine[Well607a]     { return NewEngine[Well607a]() }
func NewWell607b() *Engine[Well607b]     { return NewEngine[Well607b]() }
func NewWell800a() *Engine[Well800a]     { return NewEngine[Well800a]() }
func NewWell800b() *Engine[Well800b]     { return NewEngine[Well800b]() }
func NewWell1024a() *Engine[Well1024a]   { return NewEngine[Well1024a]() }
func NewWell1024b() *Engine[Well1024b]   { return NewEngine[Well1024b]() }
func NewWell19937a() *Engine[Well19937a] { return NewEngine[Well19937a]() }
func NewWell19937b() *Engine[Well19937b] { return NewEngine[Well19937b]() }
func NewWell19937c() *Engine[Well19937c] { return NewEngine[Well19937c]() }
func NewWell21701a() *Engine[Well21701a] { return NewEngine[Well21701a]() }
func NewWell23209a() *Engine[Well23209a] { return NewEngine[Well23209a]() }
func NewWell23209b() *Engine[Well23209b] { return NewEngine[Well23209b]() }
func NewWell44497a() *Engine[Well44497a] { return NewEngine[Well44497a]() }
func NewWell44497b() *Engine[Well44497b] { return NewEngine[Well44497b]() }

var factories = map[string]func() Generator{
	"well512a":   func() Generator { return NewWell512a() },
	"well521a":   func() Generator { return NewWell521a() },
	"well521b":   func() Generator { return NewWell521b() },
	"well607a":   func() Generator { return NewWell607a() },
	"well607b":   func() Generator { return NewWell607b() },
	"well800a":   func() Generator { return NewWell800a() },
	"well800b":   func() Generator { return NewWell800b() },
	"well1024a":  func() Generator { return NewWell1024a() },
	"well1024b":  func() Generator { return NewWell1024b() },
	"well19937a": func() Generator { return NewWell19937a() },
	"well19937b": func() Generator { return NewWell19937b() },
	"well19937c": func() Generator { return NewWell19937c() },
	"well21701a": func() Generator { return NewWell21701a() },
	"well23209a": func() Generator { return NewWell23209a() },
	"well23209b": func() Generator { return NewWell23209b() },
	"well44497a": func() Generator { return NewWell44497a() },
	"well44497b": func() Generator { return NewWell44497b() },
}

// New 按变体名（忽略大小写）创建未播种的生成器
func New(name string) (Generator, error) {
	v := lookup(name)
	if v == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	return factories[strings.ToLower(v.Name)](), nil
}

// Variant 返回该生成器的参数表副本
func (e *Engine[V]) Variant() Variant {
	return *e.v
}

func (e *Engine[V]) Name() string {
	return e.v.Name
}

// StateSize 返回 r
func (e *Engine[V]) StateSize() int {
	return e.v.R
}

func (e *Engine[V]) Min() uint32 {
	return MinValue
}

func (e *Engine[V]) Max() uint32 {
	return MaxValue
}

// Seed 按顺序拷贝前 r 个字作为状态并把游标归零，可以随时重新播种
func (e *Engine[V]) Seed(words []uint32) error {
	if len(words) < e.v.R {
		return fmt.Errorf("%w: %s needs %d words, got %d", ErrShortSeed, e.v.Name, e.v.R, len(words))
	}
	e.ring.reset(words[:e.v.R], 0)
	e.seeded = true
	return nil
}

func (e *Engine[V]) Seeded() bool {
	return e.seeded
}

// Uint32 执行一步递推并返回（调和后的）输出
// 未播种时 panic(ErrUnseeded)
func (e *Engine[V]) Uint32() uint32 {
	if !e.seeded {
		panic(ErrUnseeded)
	}
	var m V
	return m.step(&e.ring)
}

// Discard 跳过 n 个输出
func (e *Engine[V]) Discard(n uint64) {
	for ; n > 0; n-- {
		e.Uint32()
	}
}

// Equal 状态数组和游标逐字相等
func (e *Engine[V]) Equal(o *Engine[V]) bool {
	if e == o {
		return true
	}
	if o == nil {
		return false
	}
	return e.seeded == o.seeded && e.ring.equal(&o.ring)
}

// StateEqual 与 Equal 相同，但接受任意 Generator；变体不同时返回 false
func (e *Engine[V]) StateEqual(other Generator) bool {
	o, ok := other.(*Engine[V])
	if !ok {
		return false
	}
	return e.Equal(o)
}

// Clone 返回一个状态完全相同的独立副本
func (e *Engine[V]) Clone() *Engine[V] {
	c := NewEngine[V]()
	c.ring.reset(e.ring.words, e.ring.cursor)
	c.seeded = e.seeded
	return c
}
