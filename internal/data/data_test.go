package data

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"wellrng/internal/biz"
	"wellrng/pkg/random"
	"wellrng/pkg/well"

	"github.com/go-kratos/kratos/v2/log"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var discard = log.NewStdLogger(io.Discard)

func TestCheckpointCodec(t *testing.T) {
	g := well.NewWell800b()
	if err := g.Seed(random.ExpandSeed(7, 25)); err != nil {
		t.Fatal(err)
	}
	g.Discard(1234)
	cp := &biz.Checkpoint{Variant: "Well800b", Iterations: 10000, Done: 1234, Snapshot: g.Snapshot()}

	b, err := encodeCheckpoint(cp)
	if err != nil {
		t.Fatal(err)
	}
	got, err := decodeCheckpoint("Well800b", 10000, b)
	if err != nil {
		t.Fatal(err)
	}
	if got.Done != 1234 || got.Snapshot.Cursor != cp.Snapshot.Cursor {
		t.Fatalf("decoded %+v", got)
	}

	h := well.NewWell800b()
	if err := h.Restore(got.Snapshot); err != nil {
		t.Fatal(err)
	}
	if !h.Equal(g) {
		t.Error("restored engine differs")
	}
}

func TestCheckpointCodec_Rejects(t *testing.T) {
	if _, err := decodeCheckpoint("Well512a", 10, []byte{1, 2}); !errors.Is(err, well.ErrBadSnapshot) {
		t.Errorf("short value err = %v", err)
	}

	g := well.NewWell512a()
	_ = g.Seed(random.Ones(16))
	b, _ := encodeCheckpoint(&biz.Checkpoint{Variant: "Well512a", Iterations: 10, Done: 10, Snapshot: g.Snapshot()})
	if _, err := decodeCheckpoint("Well512a", 10, b); !errors.Is(err, well.ErrBadSnapshot) {
		t.Errorf("finished checkpoint err = %v", err)
	}
}

func TestCheckpointKey(t *testing.T) {
	if got := checkpointKey("Well19937c", 1000000000, 0); got != "well:checkpoint:Well19937c:1000000000:0" {
		t.Errorf("key = %s", got)
	}
}

func TestNoopRepos(t *testing.T) {
	ctx := context.Background()
	d := &Data{}

	cps := NewCheckpointRepo(d, discard)
	if _, err := cps.Load(ctx, "Well512a", 1, 0); !errors.Is(err, biz.ErrCheckpointNotFound) {
		t.Errorf("noop Load err = %v", err)
	}
	if err := cps.Save(ctx, &biz.Checkpoint{}, 0); err != nil {
		t.Error(err)
	}

	q := NewJobQueue(d, nil, discard)
	if _, err := q.Enqueue(ctx, "Well512a", 1); !errors.Is(err, biz.ErrQueueUnavailable) {
		t.Errorf("Enqueue without redis err = %v", err)
	}

	pub, cleanup, err := NewResultPublisher(nil, discard)
	if err != nil {
		t.Fatal(err)
	}
	defer cleanup()
	if err := pub.PublishVerified(ctx, &biz.Result{RunID: "x"}); err != nil {
		t.Error(err)
	}
}

func TestMemResultRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewResultRepo(&Data{}, discard)

	for i, name := range []string{"Well512a", "Well607a", "Well512a", "Well512a"} {
		if err := repo.SaveResult(ctx, &biz.Result{RunID: string(rune('a' + i)), Variant: name}); err != nil {
			t.Fatal(err)
		}
	}

	got, err := repo.ListResults(ctx, "Well512a", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].RunID != "d" || got[1].RunID != "c" {
		t.Errorf("got %+v", got)
	}

	all, _ := repo.ListResults(ctx, "", 10)
	if len(all) != 4 {
		t.Errorf("len(all) = %d", len(all))
	}
}

func TestMemResultRepo_Bounded(t *testing.T) {
	repo := newMemResultRepo(log.NewHelper(discard))
	for i := 0; i < maxMemResults+10; i++ {
		_ = repo.SaveResult(context.Background(), &biz.Result{Iterations: uint64(i)})
	}
	if len(repo.rows) != maxMemResults {
		t.Fatalf("len = %d", len(repo.rows))
	}
	if repo.rows[0].Iterations != 10 {
		t.Errorf("oldest kept = %d, want 10", repo.rows[0].Iterations)
	}
}

func TestResultPO(t *testing.T) {
	r := &biz.Result{
		RunID: "run", Variant: "Well44497b", StateSize: 1391, Iterations: 1000000000,
		Last: 0xfdcc9a34, Expected: 0xfdcc9a34, Reference: true, Passed: true,
		Elapsed: 1500 * time.Millisecond, CreatedAt: time.Unix(1700000000, 0),
	}
	got := toResultPO(r).toBiz()
	if *got != *r {
		t.Errorf("got %+v\nwant %+v", got, r)
	}
}

func TestEncodeVerified(t *testing.T) {
	body, err := encodeVerified(&biz.Result{
		RunID: "run-1", Variant: "Well1024a", StateSize: 32, Iterations: 1000,
		Last: 0x08084801, Passed: true, CreatedAt: time.Unix(0, 0),
	})
	if err != nil {
		t.Fatal(err)
	}

	var ev structpb.Struct
	if err := proto.Unmarshal(body, &ev); err != nil {
		t.Fatal(err)
	}
	f := ev.GetFields()
	if f["variant"].GetStringValue() != "Well1024a" || f["run_id"].GetStringValue() != "run-1" {
		t.Errorf("fields = %v", f)
	}
	if f["last"].GetNumberValue() != float64(0x08084801) || !f["passed"].GetBoolValue() {
		t.Errorf("last=%v passed=%v", f["last"], f["passed"])
	}
	if f["timestamp"].GetStringValue() != "1970-01-01T00:00:00Z" {
		t.Errorf("timestamp = %v", f["timestamp"])
	}
}

func TestRunIDGenerator(t *testing.T) {
	g := NewRunIDGenerator(discard)
	a, b := g.Generate(context.Background()), g.Generate(context.Background())
	if a == b || len(a) != 36 {
		t.Errorf("ids %q %q", a, b)
	}

	f1 := g.Fingerprint("Well512a", 1000, 0)
	if f1 < 0 {
		t.Errorf("fingerprint negative: %d", f1)
	}
	if f1 != g.Fingerprint("Well512a", 1000, 0) {
		t.Error("fingerprint not deterministic")
	}
	if f1 == g.Fingerprint("Well512a", 1000, 1) || f1 == g.Fingerprint("Well512b", 1000, 0) {
		t.Error("fingerprint collision on distinct inputs")
	}
}

func TestMigrateFailureClosesPool(t *testing.T) {
	// 端口 1 上没有数据库，连接池惰性创建，建表时才失败
	db, err := gorm.Open(postgres.Open("postgres://well@127.0.0.1:1/well?sslmode=disable&connect_timeout=1"),
		&gorm.Config{DisableAutomaticPing: true})
	if err != nil {
		t.Fatal(err)
	}
	if err := migrate(db, log.NewHelper(discard)); err == nil {
		t.Fatal("migrate succeeded without a database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	if err := sqlDB.Ping(); err == nil || err.Error() != "sql: database is closed" {
		t.Errorf("ping after failed migrate = %v, want closed pool", err)
	}
}
