package instrumentation

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 服务的 Prometheus 指标集合。nil *Metrics 上的记录方法为空操作
type Metrics struct {
	registry *prometheus.Registry

	UpstreamRequests *prometheus.CounterVec
	UpstreamLatency  *prometheus.HistogramVec
	ToolCalls        *prometheus.CounterVec
	HTTPRequests     *prometheus.CounterVec
	DegradedRecords  prometheus.Counter
}

// NewMetrics 创建独立 registry 并注册全部指标
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		UpstreamRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "polymarket_upstream_requests_total",
			Help: "Outbound requests to Polymarket APIs by api, endpoint and status code",
		}, []string{"api", "endpoint", "status"}),

		UpstreamLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "polymarket_upstream_latency_ms",
			Help:    "Latency of outbound Polymarket requests in milliseconds",
			Buckets: []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"api", "endpoint"}),

		ToolCalls: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mcp_tool_calls_total",
			Help: "MCP tool invocations by tool and outcome",
		}, []string{"tool", "outcome"}),

		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Inbound HTTP requests by method, route and status code",
		}, []string{"method", "route", "status"}),

		DegradedRecords: f.NewCounter(prometheus.CounterOpts{
			Name: "polymarket_degraded_markets_total",
			Help: "Market records whose token fields could not be parsed",
		}),
	}
}

// Handler /metrics 处理器
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry 暴露 registry，便于测试读取
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordUpstream 记录一次上游请求；status 为 0 表示传输层失败
func (m *Metrics) RecordUpstream(api, endpoint string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	label := strconv.Itoa(status)
	if status == 0 {
		label = "transport_error"
	}
	m.UpstreamRequests.WithLabelValues(api, endpoint, label).Inc()
	m.UpstreamLatency.WithLabelValues(api, endpoint).Observe(float64(elapsed.Milliseconds()))
}

// RecordToolCall 记录工具调用结果（ok / upstream_error / invalid / error）
func (m *Metrics) RecordToolCall(tool, outcome string) {
	if m == nil {
		return
	}
	m.ToolCalls.WithLabelValues(tool, outcome).Inc()
}

// RecordHTTPRequest 记录入站请求
func (m *Metrics) RecordHTTPRequest(method, route string, status int) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// RecordDegraded 记录 token 字段解析失败的市场记录
func (m *Metrics) RecordDegraded() {
	if m == nil {
		return
	}
	m.DegradedRecords.Inc()
}
