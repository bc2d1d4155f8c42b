package polymarket

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// 上游来源
const (
	SourceCLOB  = "clob"
	SourceGamma = "gamma"
)

var (
	// ErrReadOnlyMode 只读模式下访问需要签名的能力
	ErrReadOnlyMode = errors.New("client is in read-only mode: no signing key configured")
	// ErrCredentialsUnavailable 签名模式下 API 凭证未就绪
	ErrCredentialsUnavailable = errors.New("api credentials are not available")
	// ErrInvalidSide side 只能是 buy / sell
	ErrInvalidSide = errors.New("side must be 'buy' or 'sell'")
)

// APIError 上游返回非 2xx 时的错误，携带上游状态码与消息
type APIError struct {
	Source     string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s api returned %d: %s", e.Source, e.StatusCode, e.Message)
}

// AsAPIError 从错误链中取出 APIError
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// newAPIError 从响应体中提取 error/message 字段作为错误消息，取不到则用原始响应体
func newAPIError(source string, status int, body []byte) *APIError {
	msg := strings.TrimSpace(string(body))
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Error != "":
			msg = payload.Error
		case payload.Message != "":
			msg = payload.Message
		}
	}
	if msg == "" {
		msg = fmt.Sprintf("status %d", status)
	}
	const maxLen = 512
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return &APIError{Source: source, StatusCode: status, Message: msg}
}
