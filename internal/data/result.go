package data

import (
	"context"
	"sync"
	"time"

	"wellrng/internal/biz"

	"github.com/go-kratos/kratos/v2/log"
)

// resultPO 校验结果表
type resultPO struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	RunID       string `gorm:"column:run_id;type:varchar(36);uniqueIndex"`
	Fingerprint int64  `gorm:"column:fingerprint;index"`
	Variant     string `gorm:"column:variant;type:varchar(16);index"`
	StateSize   int    `gorm:"column:state_size"`
	Iterations  int64  `gorm:"column:iterations"`
	Seed        int64  `gorm:"column:seed"`
	Last        int64  `gorm:"column:last_output"`
	Expected    int64  `gorm:"column:expected"`
	Reference   bool   `gorm:"column:reference"`
	Passed      bool   `gorm:"column:passed"`
	Resumed     bool   `gorm:"column:resumed"`
	ElapsedMs   int64  `gorm:"column:elapsed_ms"`
	CreatedAt   time.Time
}

func (resultPO) TableName() string {
	return "well_results"
}

func toResultPO(r *biz.Result) *resultPO {
	return &resultPO{
		RunID:       r.RunID,
		Fingerprint: r.Fingerprint,
		Variant:     r.Variant,
		StateSize:   r.StateSize,
		Iterations:  int64(r.Iterations),
		Seed:        int64(r.Seed),
		Last:        int64(r.Last),
		Expected:    int64(r.Expected),
		Reference:   r.Reference,
		Passed:      r.Passed,
		Resumed:     r.Resumed,
		ElapsedMs:   r.Elapsed.Milliseconds(),
		CreatedAt:   r.CreatedAt,
	}
}

func (po *resultPO) toBiz() *biz.Result {
	return &biz.Result{
		RunID:       po.RunID,
		Fingerprint: po.Fingerprint,
		Variant:     po.Variant,
		StateSize:   po.StateSize,
		Iterations:  uint64(po.Iterations),
		Seed:        uint64(po.Seed),
		Last:        uint32(po.Last),
		Expected:    uint32(po.Expected),
		Reference:   po.Reference,
		Passed:      po.Passed,
		Resumed:     po.Resumed,
		Elapsed:     time.Duration(po.ElapsedMs) * time.Millisecond,
		CreatedAt:   po.CreatedAt,
	}
}

type resultRepo struct {
	data *Data
	log  *log.Helper
}

// NewResultRepo 创建结果仓储；未配置数据库时退化为进程内存储
func NewResultRepo(data *Data, logger log.Logger) biz.ResultRepo {
	helper := log.NewHelper(log.With(logger, "module", "data/result"))
	if data == nil || data.db == nil {
		return newMemResultRepo(helper)
	}
	return &resultRepo{
		data: data,
		log:  helper,
	}
}

// SaveResult 写入一条结果
func (r *resultRepo) SaveResult(ctx context.Context, res *biz.Result) error {
	po := toResultPO(res)
	if err := r.data.db.WithContext(ctx).Create(po).Error; err != nil {
		r.log.Errorf("insert result failed: run_id=%s err=%v", res.RunID, err)
		return err
	}
	return nil
}

// ListResults 按创建时间倒序
func (r *resultRepo) ListResults(ctx context.Context, variant string, limit int) ([]*biz.Result, error) {
	q := r.data.db.WithContext(ctx).Model(&resultPO{})
	if variant != "" {
		q = q.Where("variant = ?", variant)
	}
	var rows []resultPO
	if err := q.Order("created_at DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*biz.Result, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toBiz())
	}
	return out, nil
}

// memResultRepo 内存实现，只保留最近 maxMemResults 条
type memResultRepo struct {
	mu   sync.RWMutex
	rows []*biz.Result
	log  *log.Helper
}

const maxMemResults = 1024

func newMemResultRepo(helper *log.Helper) *memResultRepo {
	return &memResultRepo{log: helper}
}

func (r *memResultRepo) SaveResult(ctx context.Context, res *biz.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *res
	r.rows = append(r.rows, &cp)
	if n := len(r.rows); n > maxMemResults {
		r.rows = append(r.rows[:0:0], r.rows[n-maxMemResults:]...)
	}
	return nil
}

func (r *memResultRepo) ListResults(ctx context.Context, variant string, limit int) ([]*biz.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*biz.Result, 0, limit)
	for i := len(r.rows) - 1; i >= 0 && len(out) < limit; i-- {
		if variant == "" || r.rows[i].Variant == variant {
			cp := *r.rows[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}
