package data

import (
	"context"
	"encoding/binary"

	"wellrng/internal/biz"

	"github.com/cespare/xxhash/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

type runIDGenerator struct {
	log *log.Helper
}

// NewRunIDGenerator 创建运行 ID 生成器
func NewRunIDGenerator(logger log.Logger) biz.RunIDGenerator {
	return &runIDGenerator{
		log: log.NewHelper(logger),
	}
}

// Generate 优先使用 UUIDv7（按时间有序），失败时退回 v4
func (g *runIDGenerator) Generate(ctx context.Context) string {
	id, err := uuid.NewV7()
	if err != nil {
		g.log.Warnf("uuid v7 failed, falling back to v4: %v", err)
		return uuid.NewString()
	}
	return id.String()
}

// Fingerprint 结构：[0(1位)][xxhash(variant|iterations|seed) 低 63 位]
// 最高位为 0，保证为正数
func (g *runIDGenerator) Fingerprint(variant string, iterations, seed uint64) int64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], iterations)
	binary.LittleEndian.PutUint64(buf[8:], seed)

	d := xxhash.New()
	_, _ = d.WriteString(variant)
	_, _ = d.Write(buf[:])
	return int64(d.Sum64() & 0x7FFFFFFFFFFFFFFF)
}
