package well

import (
	"encoding/binary"
	"fmt"
)

// Snapshot 生成器状态的值拷贝，用于断点续跑
type Snapshot struct {
	Variant string
	Cursor  int
	State   []uint32
}

const snapshotMagic = "WELL"

// Snapshot 导出当前状态（未播种时 State 为全零）
func (e *Engine[V]) Snapshot() Snapshot {
	state := make([]uint32, len(e.ring.words))
	copy(state, e.ring.words)
	return Snapshot{Variant: e.v.Name, Cursor: e.ring.cursor, State: state}
}

// Restore 从快照恢复状态，恢复后处于已播种状态
func (e *Engine[V]) Restore(s Snapshot) error {
	if s.Variant != e.v.Name {
		return fmt.Errorf("%w: variant %q, want %q", ErrBadSnapshot, s.Variant, e.v.Name)
	}
	if len(s.State) != e.v.R || s.Cursor < 0 || s.Cursor >= e.v.R {
		return fmt.Errorf("%w: %d words at cursor %d", ErrBadSnapshot, len(s.State), s.Cursor)
	}
	e.ring.reset(s.State, s.Cursor)
	e.seeded = true
	return nil
}

// MarshalBinary 编码格式：
// "WELL" | uint8 名字长度 | 名字 | uint32 游标 | uint32 字数 | 字（小端）
func (s Snapshot) MarshalBinary() ([]byte, error) {
	if len(s.Variant) > 255 {
		return nil, fmt.Errorf("%w: variant name too long", ErrBadSnapshot)
	}
	buf := make([]byte, 0, len(snapshotMagic)+1+len(s.Variant)+8+4*len(s.State))
	buf = append(buf, snapshotMagic...)
	buf = append(buf, byte(len(s.Variant)))
	buf = append(buf, s.Variant...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(s.Cursor))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(s.State)))
	for _, w := range s.State {
		buf = binary.LittleEndian.AppendUint32(buf, w)
	}
	return buf, nil
}

func (s *Snapshot) UnmarshalBinary(data []byte) error {
	if len(data) < len(snapshotMagic)+1 || string(data[:len(snapshotMagic)]) != snapshotMagic {
		return fmt.Errorf("%w: bad header", ErrBadSnapshot)
	}
	data = data[len(snapshotMagic):]
	n := int(data[0])
	data = data[1:]
	if len(data) < n+8 {
		return fmt.Errorf("%w: truncated", ErrBadSnapshot)
	}
	name := string(data[:n])
	data = data[n:]
	cursor := binary.LittleEndian.Uint32(data)
	count := binary.LittleEndian.Uint32(data[4:])
	data = data[8:]
	if uint64(len(data)) != 4*uint64(count) {
		return fmt.Errorf("%w: want %d words, have %d bytes", ErrBadSnapshot, count, len(data))
	}
	state := make([]uint32, count)
	for i := range state {
		state[i] = binary.LittleEndian.Uint32(data[4*i:])
	}
	s.Variant, s.Cursor, s.State = name, int(cursor), state
	return nil
}
