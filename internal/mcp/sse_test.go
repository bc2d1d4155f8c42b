package mcp

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSSEWriterSendResult(t *testing.T) {
	rec := httptest.NewRecorder()
	w := NewSSEWriter(rec)

	if err := w.SendResult(1, map[string]interface{}{}); err != nil {
		t.Fatalf("SendResult() error = %v", err)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !rec.Flushed {
		t.Error("response not flushed")
	}
	want := "event: message\ndata: {\"jsonrpc\":\"2.0\",\"id\":1,\"result\":{}}\n\n"
	if rec.Body.String() != want {
		t.Errorf("body = %q, want %q", rec.Body.String(), want)
	}
}

func TestSSEWriterSendError(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := NewSSEWriter(rec).SendError("x", InvalidParams, "bad", nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(rec.Body.String(), `"error":{"code":-32602,"message":"bad"}`) {
		t.Errorf("body = %q", rec.Body.String())
	}
}
