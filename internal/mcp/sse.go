package mcp

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// SSEWriter 以 SSE 事件形式写出 JSON-RPC 响应
type SSEWriter struct {
	w http.ResponseWriter
}

// NewSSEWriter 设置 SSE 响应头
func NewSSEWriter(w http.ResponseWriter) *SSEWriter {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	return &SSEWriter{w: w}
}

// SendEvent 写出一个 message 事件并立即 flush
func (s *SSEWriter) SendEvent(data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal SSE data: %w", err)
	}
	if _, err := fmt.Fprintf(s.w, "event: message\ndata: %s\n\n", jsonData); err != nil {
		return fmt.Errorf("failed to write SSE event: %w", err)
	}
	// ResponseController 可穿透中间件包装的 ResponseWriter
	if err := http.NewResponseController(s.w).Flush(); err != nil {
		return fmt.Errorf("failed to flush SSE event: %w", err)
	}
	return nil
}

// SendError 写出 JSON-RPC 错误事件
func (s *SSEWriter) SendError(id interface{}, code int, message string, data interface{}) error {
	return s.SendEvent(NewJSONRPCError(id, code, message, data))
}

// SendResult 写出 JSON-RPC 结果事件
func (s *SSEWriter) SendResult(id interface{}, result interface{}) error {
	return s.SendEvent(NewJSONRPCResult(id, result))
}
