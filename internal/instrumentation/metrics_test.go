package instrumentation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordUpstream(t *testing.T) {
	m := NewMetrics()

	m.RecordUpstream("clob", "price", 200, 12*time.Millisecond)
	m.RecordUpstream("clob", "price", 200, 8*time.Millisecond)
	m.RecordUpstream("gamma", "markets", 0, time.Second)

	if got := testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("clob", "price", "200")); got != 2 {
		t.Errorf("clob price 200 = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("gamma", "markets", "transport_error")); got != 1 {
		t.Errorf("gamma transport_error = %v, want 1", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	// 不应 panic
	m.RecordUpstream("clob", "book", 500, time.Millisecond)
	m.RecordToolCall("get_orderbook", "ok")
	m.RecordHTTPRequest("GET", "/health", 200)
	m.RecordDegraded()
}

func TestIndependentRegistries(t *testing.T) {
	// 每个实例独立 registry，重复创建不会触发重复注册 panic
	a := NewMetrics()
	b := NewMetrics()
	a.RecordDegraded()

	if got := testutil.ToFloat64(a.DegradedRecords); got != 1 {
		t.Errorf("a.DegradedRecords = %v, want 1", got)
	}
	if got := testutil.ToFloat64(b.DegradedRecords); got != 0 {
		t.Errorf("b.DegradedRecords = %v, want 0", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := NewMetrics()
	m.RecordToolCall("list_markets", "ok")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `mcp_tool_calls_total{outcome="ok",tool="list_markets"} 1`) {
		t.Errorf("metrics output missing tool counter:\n%s", rec.Body.String())
	}
}
