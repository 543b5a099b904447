package data

import (
	"context"
	"strconv"

	"wellrng/internal/biz"
	"wellrng/internal/conf"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/redis/go-redis/v9"
)

type jobQueue struct {
	rdb    *redis.Client
	stream string
	log    *log.Helper
}

// NewJobQueue 基于 Redis Stream 的任务队列
func NewJobQueue(data *Data, c *conf.Verify, logger log.Logger) biz.JobQueue {
	return &jobQueue{
		rdb:    data.Redis(),
		stream: c.GetStream().GetKey(),
		log:    log.NewHelper(log.With(logger, "module", "data/job_queue")),
	}
}

// Enqueue XADD 一条任务
func (q *jobQueue) Enqueue(ctx context.Context, variant string, iterations uint64) (string, error) {
	if q.rdb == nil {
		return "", biz.ErrQueueUnavailable
	}
	id, err := q.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: q.stream,
		Values: map[string]interface{}{
			biz.JobFieldVariant:    variant,
			biz.JobFieldIterations: strconv.FormatUint(iterations, 10),
		},
	}).Result()
	if err != nil {
		q.log.Errorf("xadd failed: stream=%s err=%v", q.stream, err)
		return "", err
	}
	return id, nil
}
