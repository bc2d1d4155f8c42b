package polymarket

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"PolymarketMCP/internal/instrumentation"
)

// requester 两个上游客户端共用的请求逻辑：单次请求、不重试
type requester struct {
	source     string
	baseURL    string
	httpClient *http.Client
	metrics    *instrumentation.Metrics
}

// getJSON GET 并把 JSON 响应解码到 out
func (r *requester) getJSON(ctx context.Context, endpoint, path string, header http.Header, out interface{}) error {
	return r.do(ctx, http.MethodGet, endpoint, path, header, out)
}

func (r *requester) do(ctx context.Context, method, endpoint, path string, header http.Header, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", r.source, err)
	}
	req.Header.Set("Accept", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	start := time.Now()
	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.metrics.RecordUpstream(r.source, endpoint, 0, time.Since(start))
		return fmt.Errorf("请求 %s %s 失败: %w", r.source, endpoint, err)
	}
	defer resp.Body.Close()
	r.metrics.RecordUpstream(r.source, endpoint, resp.StatusCode, time.Since(start))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("读取 %s %s 响应失败: %w", r.source, endpoint, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(r.source, resp.StatusCode, body)
	}
	if out == nil {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("解析 %s %s 响应失败: %w", r.source, endpoint, err)
	}
	return nil
}
