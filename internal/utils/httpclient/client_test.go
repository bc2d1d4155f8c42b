package httpclient

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"PolymarketMCP/internal/config"
)

func TestNewHTTPClientTimeout(t *testing.T) {
	c := NewHTTPClient(&config.PolymarketConfig{Timeout: 3}, nil)
	if c.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v, want 3s", c.Timeout)
	}

	c = NewHTTPClient(nil, nil)
	if c.Timeout != 15*time.Second {
		t.Errorf("default Timeout = %v, want 15s", c.Timeout)
	}
}

func TestNewHTTPClientBadProxy(t *testing.T) {
	// 非法代理地址不应导致构建失败
	c := NewHTTPClient(&config.PolymarketConfig{Proxy: "://bad"}, nil)
	if c == nil {
		t.Fatal("NewHTTPClient() returned nil")
	}
}

func TestGzipResponseIsDecoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept-Encoding") != "gzip" {
			t.Errorf("Accept-Encoding = %q, want gzip", r.Header.Get("Accept-Encoding"))
		}
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		_, _ = gz.Write([]byte(`{"ok":true}`))
		_ = gz.Close()
	}))
	defer srv.Close()

	c := NewHTTPClient(&config.PolymarketConfig{Timeout: 5}, nil)
	resp, err := c.Get(srv.URL)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(body) != `{"ok":true}` {
		t.Errorf("body = %q, want decoded JSON", body)
	}
	if resp.Header.Get("Content-Encoding") != "" {
		t.Error("Content-Encoding header should be removed after decoding")
	}
}
