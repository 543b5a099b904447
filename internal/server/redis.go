package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"wellrng/internal/biz"
	"wellrng/internal/conf"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport"
	"github.com/redis/go-redis/v9"
)

// RedisServer Redis 客户端包装，随应用生命周期关闭
type RedisServer struct {
	client *redis.Client
	log    *log.Helper
}

// NewRedisServer 创建 Redis 服务器实例，未配置或连接失败时返回 nil
func NewRedisServer(c *conf.Data, logger log.Logger) *RedisServer {
	helper := log.NewHelper(log.With(logger, "module", "server/redis"))

	if c.GetRedis().GetAddr() == "" {
		helper.Warn("redis configuration is missing, redis server not initialized")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         c.GetRedis().GetAddr(),
		Password:     c.GetRedis().GetPassword(),
		DB:           int(c.GetRedis().GetDb()),
		ReadTimeout:  c.GetRedis().GetReadTimeout(),
		WriteTimeout: c.GetRedis().GetWriteTimeout(),
	})

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		helper.Errorf("failed to connect to redis: %v", err)
		_ = client.Close()
		return nil
	}

	helper.Info("redis client initialized successfully")
	return &RedisServer{
		client: client,
		log:    helper,
	}
}

// Start 实现 Kratos Server 接口
func (s *RedisServer) Start(ctx context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	s.log.Info("redis server started")
	return nil
}

// Stop 实现 Kratos Server 接口
func (s *RedisServer) Stop(ctx context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	s.log.Info("redis server stopping")
	return s.client.Close()
}

// Client 获取 Redis 客户端
func (s *RedisServer) Client() *redis.Client {
	if s == nil {
		return nil
	}
	return s.client
}

// ============================================================================
// Verify Stream Server 校验任务消费
// ============================================================================

// VerifyStreamHandler 校验任务处理器接口
type VerifyStreamHandler interface {
	// HandleVerify 处理一条校验任务，返回 nil 时消息被确认
	HandleVerify(ctx context.Context, streamID, variant string, iterations uint64) error
}

// VerifyStreamServer 校验任务 Stream 消费服务器
type VerifyStreamServer struct {
	rdb       *redis.Client
	stream    string
	group     string
	consumer  string
	block     time.Duration
	count     int64
	claimIdle time.Duration
	handler   VerifyStreamHandler
	log       *log.Helper
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

var _ transport.Server = (*VerifyStreamServer)(nil)

// NewVerifyStreamServer 创建校验任务 Stream 服务器
func NewVerifyStreamServer(
	rdb *redis.Client,
	c *conf.Verify_Stream,
	handler VerifyStreamHandler,
	logger log.Logger,
) *VerifyStreamServer {
	host, _ := os.Hostname()
	return &VerifyStreamServer{
		rdb:       rdb,
		stream:    c.GetKey(),
		group:     c.GetGroup(),
		consumer:  fmt.Sprintf("wellverify-%s-%d", host, os.Getpid()),
		block:     c.GetBlock(),
		count:     1,                // 单条任务可能运行数十秒
		claimIdle: 10 * time.Minute, // 超过 10 分钟未确认则重新认领
		handler:   handler,
		log:       log.NewHelper(log.With(logger, "module", "server/verify_stream")),
	}
}

func (s *VerifyStreamServer) Start(ctx context.Context) error {
	if s.handler == nil {
		return fmt.Errorf("verify handler is nil")
	}

	// 确保消费者组存在
	if err := s.ensureGroup(ctx); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	// 启动消费循环
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.consumeLoop(runCtx)
	}()

	// 启动重新认领循环
	if s.claimIdle > 0 {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.reclaimLoop(runCtx)
		}()
	}

	s.log.Infof("verify stream server started: stream=%s group=%s consumer=%s",
		s.stream, s.group, s.consumer)
	return nil
}

func (s *VerifyStreamServer) Stop(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.wg.Wait()
	}()

	select {
	case <-done:
		s.log.Info("verify stream server stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ensureGroup 确保消费者组存在，XGroupCreateMkStream 会顺带创建 Stream
func (s *VerifyStreamServer) ensureGroup(ctx context.Context) error {
	err := s.rdb.XGroupCreateMkStream(ctx, s.stream, s.group, "0").Err()
	if err != nil {
		if strings.HasPrefix(err.Error(), "BUSYGROUP") {
			s.log.Infof("consumer group already exists: stream=%s group=%s", s.stream, s.group)
			return nil
		}
		s.log.Errorf("failed to create consumer group: %v", err)
		return err
	}
	s.log.Infof("consumer group created: stream=%s group=%s", s.stream, s.group)
	return nil
}

// parseJob 解析任务字段；iterations 缺省为 0，由用例取配置默认值
func parseJob(values map[string]interface{}) (string, uint64, error) {
	variant, _ := values[biz.JobFieldVariant].(string)
	if variant == "" {
		return "", 0, fmt.Errorf("missing %s field", biz.JobFieldVariant)
	}
	raw, _ := values[biz.JobFieldIterations].(string)
	if raw == "" {
		return variant, 0, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("bad %s field %q: %w", biz.JobFieldIterations, raw, err)
	}
	return variant, n, nil
}

// process 处理单条消息，成功或无法解析时确认
func (s *VerifyStreamServer) process(ctx context.Context, msg redis.XMessage) {
	variant, iterations, err := parseJob(msg.Values)
	if err != nil {
		s.log.Warnf("dropping malformed job: msgID=%s values=%v err=%v", msg.ID, msg.Values, err)
	} else if err := s.handler.HandleVerify(ctx, msg.ID, variant, iterations); err != nil {
		s.log.Errorf("handle failed, keep pending: streamID=%s variant=%s err=%v", msg.ID, variant, err)
		return
	}

	// 确认消息
	if _, err := s.rdb.XAck(ctx, s.stream, s.group, msg.ID).Result(); err != nil {
		s.log.Errorf("XAck failed: msgID=%s err=%v", msg.ID, err)
	}
}

// consumeLoop 消费循环
func (s *VerifyStreamServer) consumeLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := s.rdb.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    s.group,
			Consumer: s.consumer,
			Streams:  []string{s.stream, ">"},
			Count:    s.count,
			Block:    s.block,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
				continue
			}
			s.log.Errorf("XReadGroup error: %v", err)
			time.Sleep(200 * time.Millisecond)
			continue
		}

		for _, strm := range res {
			for _, msg := range strm.Messages {
				s.process(ctx, msg)
			}
		}
	}
}

// reclaimLoop 重新认领超时消息
func (s *VerifyStreamServer) reclaimLoop(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	start := "0-0"
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		msgs, next, err := s.rdb.XAutoClaim(ctx, &redis.XAutoClaimArgs{
			Stream:   s.stream,
			Group:    s.group,
			Consumer: s.consumer,
			MinIdle:  s.claimIdle,
			Start:    start,
			Count:    s.count,
		}).Result()

		if err != nil && !errors.Is(err, redis.Nil) {
			s.log.Errorf("XAutoClaim error: %v", err)
			continue
		}

		start = next
		if len(msgs) == 0 {
			start = "0-0"
			continue
		}

		for _, msg := range msgs {
			s.process(ctx, msg)
		}
	}
}
