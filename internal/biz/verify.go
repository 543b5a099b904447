package biz

import (
	"context"
	"runtime"
	"strconv"
	"time"

	"wellrng/internal/conf"
	"wellrng/pkg/random"
	"wellrng/pkg/well"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"golang.org/x/sync/errgroup"
)

const (
	// ReferenceIterations 参考值对应的步数
	ReferenceIterations uint64 = 1000000000
	defaultCheckpoint   uint64 = 100000000
	defaultSyncMax      uint64 = 100000000
)

// Result 一次校验的结果（聚合根）
type Result struct {
	RunID       string        // 本次运行 ID
	Fingerprint int64         // (变体, 步数, 种子) 的哈希，用于查重
	Variant     string        // 变体名
	StateSize   int           // r
	Iterations  uint64        // 运行步数
	Seed        uint64        // 0 表示全 1 参考种子
	Last        uint32        // 最后一个输出
	Expected    uint32        // 参考值（仅 Reference 为 true 时有意义）
	Reference   bool          // 是否与公开参考值比较
	Passed      bool          // 参考值、范围、自反相等是否全部通过
	Resumed     bool          // 是否从断点恢复
	Elapsed     time.Duration // 本次实际运行耗时
	CreatedAt   time.Time
}

// Checkpoint 长时间运行的断点
type Checkpoint struct {
	Variant    string
	Iterations uint64        // 目标步数
	Done       uint64        // 已完成步数
	Snapshot   well.Snapshot // 完成 Done 步之后的状态
}

// ResultRepo 结果仓储接口
type ResultRepo interface {
	// SaveResult 保存一次校验结果
	SaveResult(ctx context.Context, r *Result) error

	// ListResults 按变体查询最近的结果，variant 为空表示全部
	ListResults(ctx context.Context, variant string, limit int) ([]*Result, error)
}

// CheckpointRepo 断点仓储接口
type CheckpointRepo interface {
	// Load 读取断点，不存在时返回 ErrCheckpointNotFound
	Load(ctx context.Context, variant string, iterations, seed uint64) (*Checkpoint, error)

	// Save 覆盖保存断点
	Save(ctx context.Context, cp *Checkpoint, seed uint64) error

	// Delete 运行完成后删除断点
	Delete(ctx context.Context, variant string, iterations, seed uint64) error
}

// ResultPublisher 结果事件发布器接口
type ResultPublisher interface {
	// PublishVerified 发布校验完成事件
	PublishVerified(ctx context.Context, r *Result) error
}

// JobQueue 异步校验任务队列
type JobQueue interface {
	// Enqueue 投递一个校验任务，返回消息 ID
	Enqueue(ctx context.Context, variant string, iterations uint64) (string, error)
}

// RunIDGenerator 运行 ID 生成器接口
type RunIDGenerator interface {
	// Generate 生成运行 ID
	Generate(ctx context.Context) string

	// Fingerprint 计算 (变体, 步数, 种子) 的指纹
	Fingerprint(variant string, iterations, seed uint64) int64
}

// VerifyUsecase 参考序列校验用例
type VerifyUsecase struct {
	results     ResultRepo
	checkpoints CheckpointRepo
	publisher   ResultPublisher
	queue       JobQueue
	ids         RunIDGenerator

	iterations  uint64
	parallelism int
	checkpoint  uint64 // 0 表示不存断点
	syncMax     uint64
	seed        uint64
	variants    []string

	log *log.Helper
}

// NewVerifyUsecase 创建校验用例
func NewVerifyUsecase(
	c *conf.Verify,
	results ResultRepo,
	checkpoints CheckpointRepo,
	publisher ResultPublisher,
	queue JobQueue,
	ids RunIDGenerator,
	logger log.Logger,
) *VerifyUsecase {
	uc := &VerifyUsecase{
		results:     results,
		checkpoints: checkpoints,
		publisher:   publisher,
		queue:       queue,
		ids:         ids,
		iterations:  c.GetIterations(),
		parallelism: c.GetParallelism(),
		syncMax:     c.GetSyncMaxIter(),
		seed:        c.GetSeed(),
		variants:    c.GetVariants(),
		log:         log.NewHelper(log.With(logger, "module", "biz/verify")),
	}
	// 设置默认参数
	if uc.iterations == 0 {
		uc.iterations = ReferenceIterations
	}
	if uc.parallelism <= 0 {
		uc.parallelism = runtime.GOMAXPROCS(0)
	}
	switch n := c.GetCheckpointEvery(); {
	case n == 0:
		uc.checkpoint = defaultCheckpoint
	case n > 0:
		uc.checkpoint = uint64(n)
	}
	if uc.syncMax == 0 {
		uc.syncMax = defaultSyncMax
	}
	if len(uc.variants) == 0 {
		uc.variants = well.Names()
	}
	return uc
}

// Variants 返回全部变体描述
func (uc *VerifyUsecase) Variants() []well.Variant {
	return well.Variants()
}

// DefaultVariants 配置中要校验的变体
func (uc *VerifyUsecase) DefaultVariants() []string {
	return uc.variants
}

// seedWords 生成初始状态：seed 为 0 时使用全 1 参考种子
func (uc *VerifyUsecase) seedWords(r int) []uint32 {
	if uc.seed == 0 {
		return random.Ones(r)
	}
	return random.ExpandSeed(uc.seed, r)
}

// Verify 校验单个变体
// 1. 恢复断点或播种
// 2. 分段推进，每段之间保存断点并检查 ctx
// 3. 对比参考值、范围与相等契约
// 4. 保存结果并发布事件
func (uc *VerifyUsecase) Verify(ctx context.Context, name string, iterations uint64) (*Result, error) {
	if iterations == 0 {
		iterations = uc.iterations
	}
	v, err := well.Lookup(name)
	if err != nil {
		return nil, ErrVariantNotFound.WithCause(err)
	}
	g, err := well.New(v.Name)
	if err != nil {
		return nil, ErrVariantNotFound.WithCause(err)
	}

	// 1. 断点恢复
	var done uint64
	resumed := false
	cp, err := uc.checkpoints.Load(ctx, v.Name, iterations, uc.seed)
	switch {
	case err == nil:
		if rerr := g.Restore(cp.Snapshot); rerr != nil {
			uc.log.Warnf("discarding bad checkpoint: variant=%s err=%v", v.Name, rerr)
		} else {
			done, resumed = cp.Done, true
			uc.log.Infof("resuming from checkpoint: variant=%s done=%d/%d", v.Name, done, iterations)
		}
	case errors.Is(err, ErrCheckpointNotFound):
	default:
		uc.log.Warnf("load checkpoint failed: variant=%s err=%v", v.Name, err)
	}
	if !resumed {
		if err := g.Seed(uc.seedWords(v.R)); err != nil {
			return nil, err
		}
	}

	// 2. 分段推进
	chunk := uc.checkpoint
	if chunk == 0 || chunk > iterations {
		chunk = iterations
	}
	start := time.Now()
	var last uint32
	for done < iterations {
		step := chunk
		if rest := iterations - done; rest < step {
			step = rest
		}
		for i := uint64(0); i < step; i++ {
			last = g.Uint32()
		}
		done += step

		if done < iterations && uc.checkpoint > 0 {
			cp := &Checkpoint{Variant: v.Name, Iterations: iterations, Done: done, Snapshot: g.Snapshot()}
			if err := uc.checkpoints.Save(ctx, cp, uc.seed); err != nil {
				uc.log.Warnf("save checkpoint failed: variant=%s done=%d err=%v", v.Name, done, err)
			}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
	}

	// 3. 校验
	res := &Result{
		RunID:       uc.ids.Generate(ctx),
		Fingerprint: uc.ids.Fingerprint(v.Name, iterations, uc.seed),
		Variant:     v.Name,
		StateSize:   g.StateSize(),
		Iterations:  iterations,
		Seed:        uc.seed,
		Last:        last,
		Expected:    v.Reference,
		Reference:   iterations == ReferenceIterations && uc.seed == 0,
		Resumed:     resumed,
		Elapsed:     time.Since(start),
		CreatedAt:   time.Now(),
	}
	res.Passed = (!res.Reference || last == v.Reference) &&
		g.Min() == well.MinValue && g.Max() == well.MaxValue && g.StateEqual(g)

	if res.Passed {
		uc.log.Infof("verified: variant=%s iterations=%d last=%#08x elapsed=%s", v.Name, iterations, last, res.Elapsed)
	} else {
		uc.log.Errorf("verification failed: variant=%s iterations=%d last=%#08x expected=%#08x", v.Name, iterations, last, v.Reference)
	}

	// 4. 保存与发布
	if err := uc.results.SaveResult(ctx, res); err != nil {
		uc.log.Errorf("save result failed: variant=%s err=%v", v.Name, err)
		return nil, err
	}
	if err := uc.checkpoints.Delete(ctx, v.Name, iterations, uc.seed); err != nil {
		uc.log.Warnf("delete checkpoint failed: variant=%s err=%v", v.Name, err)
	}
	if err := uc.publisher.PublishVerified(ctx, res); err != nil {
		uc.log.Warnf("publish result failed: variant=%s err=%v", v.Name, err)
	}
	return res, nil
}

// VerifySync 供同步接口调用：超过 syncMax 的运行应改走任务队列
func (uc *VerifyUsecase) VerifySync(ctx context.Context, name string, iterations uint64) (*Result, error) {
	if iterations == 0 {
		iterations = uc.iterations
	}
	if iterations > uc.syncMax {
		return nil, ErrTooManyIterations.WithMetadata(map[string]string{
			"max":  strconv.FormatUint(uc.syncMax, 10),
			"hint": "enqueue long runs with POST /v1/jobs/{name}",
		})
	}
	return uc.Verify(ctx, name, iterations)
}

// VerifyAll 并发校验多个变体，每个 goroutine 持有自己的生成器实例
// names 为空时使用配置中的变体列表；结果顺序与 names 一致
func (uc *VerifyUsecase) VerifyAll(ctx context.Context, names []string, iterations uint64) ([]*Result, error) {
	if len(names) == 0 {
		names = uc.variants
	}
	for _, name := range names {
		if _, err := well.Lookup(name); err != nil {
			return nil, ErrVariantNotFound.WithCause(err)
		}
	}

	results := make([]*Result, len(names))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(uc.parallelism)
	for i, name := range names {
		i, name := i, name
		eg.Go(func() error {
			res, err := uc.Verify(ctx, name, iterations)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Enqueue 投递异步校验任务
func (uc *VerifyUsecase) Enqueue(ctx context.Context, name string, iterations uint64) (string, error) {
	v, err := well.Lookup(name)
	if err != nil {
		return "", ErrVariantNotFound.WithCause(err)
	}
	if iterations == 0 {
		iterations = uc.iterations
	}
	id, err := uc.queue.Enqueue(ctx, v.Name, iterations)
	if err != nil {
		uc.log.Errorf("enqueue verify job failed: variant=%s err=%v", v.Name, err)
		return "", err
	}
	uc.log.Infof("verify job enqueued: variant=%s iterations=%d id=%s", v.Name, iterations, id)
	return id, nil
}

// ListResults 查询最近的校验结果
func (uc *VerifyUsecase) ListResults(ctx context.Context, variant string, limit int) ([]*Result, error) {
	if variant != "" {
		v, err := well.Lookup(variant)
		if err != nil {
			return nil, ErrVariantNotFound.WithCause(err)
		}
		variant = v.Name
	}
	// 设置默认分页参数
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return uc.results.ListResults(ctx, variant, limit)
}
