package well

import "errors"

var (
	// ErrShortSeed 种子字数少于 r
	ErrShortSeed = errors.New("well: seed shorter than state size")
	// ErrUnseeded 未调用 Seed 就生成，作为 panic 值抛出
	ErrUnseeded = errors.New("well: generator used before seeding")
	// ErrBadSnapshot 快照与生成器的变体或长度不符
	ErrBadSnapshot = errors.New("well: snapshot does not match generator")
	// ErrUnknownVariant 变体名不存在
	ErrUnknownVariant = errors.New("well: unknown variant")
	// ErrBadVariant 参数表自相矛盾
	ErrBadVariant = errors.New("well: inconsistent variant descriptor")
)
