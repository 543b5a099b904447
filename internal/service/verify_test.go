package service

import (
	"context"
	"io"
	"testing"

	"wellrng/internal/biz"
	"wellrng/internal/conf"
	"wellrng/internal/data"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
)

func newTestService(t *testing.T, c *conf.Verify) *VerifyService {
	t.Helper()
	logger := log.NewStdLogger(io.Discard)
	d, cleanup, err := data.NewData(nil, logger)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(cleanup)
	pub, pubCleanup, err := data.NewResultPublisher(nil, logger)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(pubCleanup)

	uc := biz.NewVerifyUsecase(c,
		data.NewResultRepo(d, logger),
		data.NewCheckpointRepo(d, logger),
		pub,
		data.NewJobQueue(d, c, logger),
		data.NewRunIDGenerator(logger),
		logger,
	)
	return NewVerifyService(uc, logger)
}

func TestListVariants(t *testing.T) {
	s := newTestService(t, nil)
	vs := s.ListVariants(context.Background())
	if len(vs) != 17 {
		t.Fatalf("len = %d", len(vs))
	}
	first := vs[0]
	if first.Name != "Well512a" || first.StateSize != 16 || first.PeriodExponent != 512 || first.Tempered {
		t.Errorf("first = %+v", first)
	}
	if first.Reference != "0x2b3fe99e" {
		t.Errorf("reference = %s", first.Reference)
	}
	for _, v := range vs {
		if want := v.Name == "Well19937c" || v.Name == "Well44497b"; v.Tempered != want {
			t.Errorf("%s tempered = %v", v.Name, v.Tempered)
		}
	}
}

func TestVerifyAndList(t *testing.T) {
	s := newTestService(t, &conf.Verify{})
	ctx := context.Background()

	res, err := s.Verify(ctx, "well512a", 1)
	if err != nil {
		t.Fatal(err)
	}
	if res.Last != "0x10000024" || !res.Passed || res.Expected != "" {
		t.Errorf("res = %+v", res)
	}

	list, err := s.ListResults(ctx, "Well512a", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].RunID != res.RunID {
		t.Errorf("list = %+v", list)
	}

	if _, err := s.ListResults(ctx, "Well9a", 10); !errors.IsNotFound(err) {
		t.Errorf("unknown variant err = %v", err)
	}
}

func TestEnqueueWithoutRedis(t *testing.T) {
	s := newTestService(t, &conf.Verify{})
	_, err := s.Enqueue(context.Background(), "Well512a", 10)
	if errors.Code(err) != 503 {
		t.Errorf("err = %v, want 503", err)
	}
	if _, err := s.Enqueue(context.Background(), "Well1a", 10); !errors.IsNotFound(err) {
		t.Errorf("unknown variant err = %v", err)
	}
}

func TestHandleVerify(t *testing.T) {
	s := newTestService(t, &conf.Verify{})
	ctx := context.Background()

	if err := s.HandleVerify(ctx, "1-0", "Well19937a", 100); err != nil {
		t.Errorf("HandleVerify = %v", err)
	}
	// 未知变体确认丢弃
	if err := s.HandleVerify(ctx, "2-0", "bogus", 100); err != nil {
		t.Errorf("unknown variant should be dropped, got %v", err)
	}

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	if err := s.HandleVerify(cctx, "3-0", "Well512a", 10); err == nil {
		t.Error("cancelled job returned nil")
	}
}
