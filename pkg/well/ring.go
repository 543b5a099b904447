package well

// Ring 固定长度的环形状态数组
// 所有下标都是相对游标的偏移量，允许为负（例如 -1 表示游标前一个字）
type Ring struct {
	words  []uint32
	cursor int
	mask   int // r 为 2 的幂时是 r-1，否则为 0
}

// NewRing 创建长度为 r 的全零状态环
func NewRing(r int) Ring {
	g := Ring{words: make([]uint32, r)}
	if isPowerOf2(uint32(r)) {
		g.mask = r - 1
	}
	return g
}

// index 把相对偏移换算成物理下标
// 要求 |k| < r，因此 cursor+k 落在 (-r, 2r) 内，一次加减即可归一化
func (g *Ring) index(k int) int {
	i := g.cursor + k
	if g.mask != 0 {
		return i & g.mask
	}
	n := len(g.words)
	if i >= n {
		i -= n
	} else if i < 0 {
		i += n
	}
	return i
}

// wrap 把 [0, 2r) 内的下标归一化到 [0, r)
func wrap(i, r int) int {
	if i >= r {
		return i - r
	}
	return i
}

// At 读取 (cursor + k) mod r 处的字
func (g *Ring) At(k int) uint32 {
	return g.words[g.index(k)]
}

// Set 写入 (cursor + k) mod r 处的字
func (g *Ring) Set(k int, v uint32) {
	g.words[g.index(k)] = v
}

// Advance 把游标移动一步
// WELL 递推每步把新字写到偏移 r-1（即 -1）处，下一步从那里开始，所以游标向 -1 方向走
func (g *Ring) Advance() {
	g.cursor = g.index(-1)
}

// Len 返回 r
func (g *Ring) Len() int {
	return len(g.words)
}

// Cursor 返回当前游标的物理下标
func (g *Ring) Cursor() int {
	return g.cursor
}

// reset 按顺序拷贝 words 并把游标归零
func (g *Ring) reset(words []uint32, cursor int) {
	copy(g.words, words)
	g.cursor = cursor
}

// equal 逐字比较状态和游标
func (g *Ring) equal(o *Ring) bool {
	if g.cursor != o.cursor || len(g.words) != len(o.words) {
		return false
	}
	for i := range g.words {
		if g.words[i] != o.words[i] {
			return false
		}
	}
	return true
}
