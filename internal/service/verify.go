package service

import (
	"context"
	"fmt"
	"time"

	"wellrng/internal/biz"
	"wellrng/pkg/well"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
)

// VariantInfo 变体描述
type VariantInfo struct {
	Name           string `json:"name"`
	StateSize      int    `json:"state_size"`
	PeriodExponent int    `json:"period_exponent"` // 周期为 2^k - 1
	Tempered       bool   `json:"tempered"`
	Reference      string `json:"reference"`
}

// ResultInfo 校验结果
type ResultInfo struct {
	RunID      string `json:"run_id"`
	Variant    string `json:"variant"`
	Iterations uint64 `json:"iterations"`
	Seed       uint64 `json:"seed"`
	Last       string `json:"last"`
	Expected   string `json:"expected,omitempty"`
	Passed     bool   `json:"passed"`
	Resumed    bool   `json:"resumed"`
	ElapsedMs  int64  `json:"elapsed_ms"`
	CreatedAt  string `json:"created_at"`
}

// JobInfo 异步任务
type JobInfo struct {
	ID         string `json:"id"`
	Variant    string `json:"variant"`
	Iterations uint64 `json:"iterations"`
}

// VerifyService 参考序列校验服务，同时作为 Stream 任务处理器
type VerifyService struct {
	uc  *biz.VerifyUsecase
	log *log.Helper
}

// NewVerifyService 创建校验服务
func NewVerifyService(uc *biz.VerifyUsecase, logger log.Logger) *VerifyService {
	return &VerifyService{
		uc:  uc,
		log: log.NewHelper(log.With(logger, "module", "service/verify")),
	}
}

func hex32(x uint32) string {
	return fmt.Sprintf("%#08x", x)
}

func toVariantInfo(v well.Variant) *VariantInfo {
	return &VariantInfo{
		Name:           v.Name,
		StateSize:      v.R,
		PeriodExponent: 32*v.R - v.P,
		Tempered:       v.Tempered(),
		Reference:      hex32(v.Reference),
	}
}

func toResultInfo(r *biz.Result) *ResultInfo {
	info := &ResultInfo{
		RunID:      r.RunID,
		Variant:    r.Variant,
		Iterations: r.Iterations,
		Seed:       r.Seed,
		Last:       hex32(r.Last),
		Passed:     r.Passed,
		Resumed:    r.Resumed,
		ElapsedMs:  r.Elapsed.Milliseconds(),
		CreatedAt:  r.CreatedAt.UTC().Format(time.RFC3339),
	}
	if r.Reference {
		info.Expected = hex32(r.Expected)
	}
	return info
}

// ListVariants 列出全部 17 个变体
func (s *VerifyService) ListVariants(ctx context.Context) []*VariantInfo {
	vs := s.uc.Variants()
	out := make([]*VariantInfo, 0, len(vs))
	for _, v := range vs {
		out = append(out, toVariantInfo(v))
	}
	return out
}

// ListResults 查询最近的校验结果
func (s *VerifyService) ListResults(ctx context.Context, variant string, limit int) ([]*ResultInfo, error) {
	results, err := s.uc.ListResults(ctx, variant, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*ResultInfo, 0, len(results))
	for _, r := range results {
		out = append(out, toResultInfo(r))
	}
	return out, nil
}

// Verify 同步校验，步数受 sync_max_iterations 限制
func (s *VerifyService) Verify(ctx context.Context, name string, iterations uint64) (*ResultInfo, error) {
	res, err := s.uc.VerifySync(ctx, name, iterations)
	if err != nil {
		return nil, err
	}
	return toResultInfo(res), nil
}

// Enqueue 投递异步校验任务
func (s *VerifyService) Enqueue(ctx context.Context, name string, iterations uint64) (*JobInfo, error) {
	v, err := well.Lookup(name)
	if err != nil {
		return nil, biz.ErrVariantNotFound.WithCause(err)
	}
	id, err := s.uc.Enqueue(ctx, v.Name, iterations)
	if err != nil {
		return nil, err
	}
	return &JobInfo{ID: id, Variant: v.Name, Iterations: iterations}, nil
}

// HandleVerify 处理 Stream 中的校验任务
// 变体不存在的消息直接确认丢弃，其余错误保留在 pending 中等待重新认领
func (s *VerifyService) HandleVerify(ctx context.Context, streamID, variant string, iterations uint64) error {
	s.log.Infof("verify job received: streamID=%s variant=%s iterations=%d", streamID, variant, iterations)

	res, err := s.uc.Verify(ctx, variant, iterations)
	if err != nil {
		if errors.IsNotFound(err) {
			s.log.Warnf("dropping job with unknown variant: streamID=%s variant=%s", streamID, variant)
			return nil
		}
		return err
	}
	if !res.Passed {
		s.log.Errorf("verify job failed: streamID=%s variant=%s last=%s expected=%s",
			streamID, res.Variant, hex32(res.Last), hex32(res.Expected))
	}
	return nil
}
