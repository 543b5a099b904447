package data

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"wellrng/internal/biz"
	"wellrng/pkg/well"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/redis/go-redis/v9"
)

// 断点 7 天后过期
const checkpointTTL = 7 * 24 * time.Hour

func checkpointKey(variant string, iterations, seed uint64) string {
	return fmt.Sprintf("well:checkpoint:%s:%d:%d", variant, iterations, seed)
}

type checkpointRepo struct {
	rdb *redis.Client
	log *log.Helper
}

// NewCheckpointRepo 创建断点仓储；未配置 Redis 时不保存断点
func NewCheckpointRepo(data *Data, logger log.Logger) biz.CheckpointRepo {
	helper := log.NewHelper(log.With(logger, "module", "data/checkpoint"))
	if data.Redis() == nil {
		helper.Warn("redis not configured, checkpoints disabled")
		return noopCheckpointRepo{}
	}
	return &checkpointRepo{rdb: data.Redis(), log: helper}
}

// Load 值格式：[done uint64 LE][snapshot]
func (r *checkpointRepo) Load(ctx context.Context, variant string, iterations, seed uint64) (*biz.Checkpoint, error) {
	b, err := r.rdb.Get(ctx, checkpointKey(variant, iterations, seed)).Bytes()
	if err == redis.Nil {
		return nil, biz.ErrCheckpointNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeCheckpoint(variant, iterations, b)
}

func (r *checkpointRepo) Save(ctx context.Context, cp *biz.Checkpoint, seed uint64) error {
	b, err := encodeCheckpoint(cp)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, checkpointKey(cp.Variant, cp.Iterations, seed), b, checkpointTTL).Err()
}

func (r *checkpointRepo) Delete(ctx context.Context, variant string, iterations, seed uint64) error {
	return r.rdb.Del(ctx, checkpointKey(variant, iterations, seed)).Err()
}

func encodeCheckpoint(cp *biz.Checkpoint) ([]byte, error) {
	snap, err := cp.Snapshot.MarshalBinary()
	if err != nil {
		return nil, err
	}
	b := make([]byte, 8, 8+len(snap))
	binary.LittleEndian.PutUint64(b, cp.Done)
	return append(b, snap...), nil
}

func decodeCheckpoint(variant string, iterations uint64, b []byte) (*biz.Checkpoint, error) {
	if len(b) < 8 {
		return nil, fmt.Errorf("checkpoint %s: %w", variant, well.ErrBadSnapshot)
	}
	cp := &biz.Checkpoint{
		Variant:    variant,
		Iterations: iterations,
		Done:       binary.LittleEndian.Uint64(b),
	}
	if err := cp.Snapshot.UnmarshalBinary(b[8:]); err != nil {
		return nil, err
	}
	if cp.Done >= iterations {
		return nil, fmt.Errorf("checkpoint %s: done %d >= %d: %w", variant, cp.Done, iterations, well.ErrBadSnapshot)
	}
	return cp, nil
}

type noopCheckpointRepo struct{}

func (noopCheckpointRepo) Load(context.Context, string, uint64, uint64) (*biz.Checkpoint, error) {
	return nil, biz.ErrCheckpointNotFound
}

func (noopCheckpointRepo) Save(context.Context, *biz.Checkpoint, uint64) error { return nil }

func (noopCheckpointRepo) Delete(context.Context, string, uint64, uint64) error { return nil }
