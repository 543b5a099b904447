package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"wellrng/internal/biz"
	"wellrng/internal/conf"
	"wellrng/internal/data"
	"wellrng/internal/service"

	"github.com/go-kratos/kratos/v2/log"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

var discard = log.NewStdLogger(io.Discard)

func TestParseJob(t *testing.T) {
	tests := []struct {
		name       string
		values     map[string]interface{}
		variant    string
		iterations uint64
		wantErr    bool
	}{
		{"full", map[string]interface{}{"variant": "Well512a", "iterations": "1000"}, "Well512a", 1000, false},
		{"default iterations", map[string]interface{}{"variant": "Well1024b"}, "Well1024b", 0, false},
		{"missing variant", map[string]interface{}{"iterations": "5"}, "", 0, true},
		{"bad iterations", map[string]interface{}{"variant": "Well512a", "iterations": "-1"}, "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, n, err := parseJob(tt.values)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if v != tt.variant || n != tt.iterations {
				t.Errorf("got (%s, %d), want (%s, %d)", v, n, tt.variant, tt.iterations)
			}
		})
	}
}

func TestNewVerifyStreamServer_Defaults(t *testing.T) {
	s := NewVerifyStreamServer(nil, nil, nil, discard)
	if s.stream != "stream:well:verify" || s.group != "wellverify" || s.count != 1 {
		t.Errorf("stream=%s group=%s count=%d", s.stream, s.group, s.count)
	}
	if err := s.Start(context.Background()); err == nil {
		t.Error("Start with nil handler succeeded")
	}
	if got := NewVerifyStreamServers(nil, nil, nil, discard); got != nil {
		t.Errorf("servers without redis = %v", got)
	}
}

func TestNewGRPCServer_Health(t *testing.T) {
	srv := NewGRPCServer(&conf.Server{}, discard)
	if _, ok := srv.GetServiceInfo()[healthpb.Health_ServiceDesc.ServiceName]; !ok {
		t.Errorf("health service not registered: %v", srv.GetServiceInfo())
	}
}

func newTestHTTP(t *testing.T) http.Handler {
	t.Helper()
	d, cleanup, err := data.NewData(nil, discard)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(cleanup)
	pub, pubCleanup, _ := data.NewResultPublisher(nil, discard)
	t.Cleanup(pubCleanup)

	vc := &conf.Verify{}
	uc := biz.NewVerifyUsecase(vc,
		data.NewResultRepo(d, discard),
		data.NewCheckpointRepo(d, discard),
		pub,
		data.NewJobQueue(d, vc, discard),
		data.NewRunIDGenerator(discard),
		discard,
	)
	return NewHTTPServer(&conf.Server{}, service.NewVerifyService(uc, discard), discard)
}

func do(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestHTTPRoutes(t *testing.T) {
	h := newTestHTTP(t)

	rec := do(t, h, http.MethodGet, "/v1/variants")
	if rec.Code != http.StatusOK {
		t.Fatalf("variants status = %d body=%s", rec.Code, rec.Body)
	}
	var variants []service.VariantInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &variants); err != nil {
		t.Fatal(err)
	}
	if len(variants) != 17 {
		t.Errorf("len(variants) = %d", len(variants))
	}

	rec = do(t, h, http.MethodPost, "/v1/verify/Well1024a?iterations=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("verify status = %d body=%s", rec.Code, rec.Body)
	}
	var res service.ResultInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Last != "0x08084801" || !res.Passed {
		t.Errorf("verify = %+v", res)
	}

	rec = do(t, h, http.MethodGet, "/v1/results?variant=Well1024a")
	var results []service.ResultInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &results); err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].RunID != res.RunID {
		t.Errorf("results = %+v", results)
	}
}

func TestHTTPErrors(t *testing.T) {
	h := newTestHTTP(t)
	tests := []struct {
		method, target string
		code           int
	}{
		{http.MethodGet, "/v1/results?variant=nope", http.StatusNotFound},
		{http.MethodGet, "/v1/results?limit=x", http.StatusBadRequest},
		{http.MethodPost, "/v1/verify/Well512a?iterations=abc", http.StatusBadRequest},
		{http.MethodPost, "/v1/verify/Well512a", http.StatusBadRequest},
		{http.MethodPost, "/v1/verify/Well512a?iterations=100000001", http.StatusBadRequest},
		{http.MethodPost, "/v1/verify/Well9999z?iterations=1", http.StatusNotFound},
		{http.MethodPost, "/v1/jobs/Well512a", http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		if rec := do(t, h, tt.method, tt.target); rec.Code != tt.code {
			t.Errorf("%s %s = %d, want %d (%s)", tt.method, tt.target, rec.Code, tt.code, rec.Body)
		}
	}
}
