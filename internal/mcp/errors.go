package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// FormatMCPError 任意错误转为 JSON-RPC 错误对象
func FormatMCPError(err error) *RPCError {
	var rpcErr *RPCError
	if errors.As(err, &rpcErr) {
		return rpcErr
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return ErrorFromValidation(ve)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &RPCError{
			Code:    TimeoutExceeded,
			Message: "Request timeout",
		}
	}

	return &RPCError{
		Code:    InternalError,
		Message: fmt.Sprintf("Internal error: %s", err.Error()),
	}
}

// ErrorFromValidation 参数校验失败统一映射为 -32602
func ErrorFromValidation(err error) *RPCError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return &RPCError{
			Code:    InvalidParams,
			Message: "Parameter validation failed",
			Data: map[string]interface{}{
				"field":   ve.Field,
				"message": ve.Message,
			},
		}
	}
	return &RPCError{
		Code:    InvalidParams,
		Message: fmt.Sprintf("Validation failed: %s", err.Error()),
	}
}

// HTTPStatusFromError 无法关联请求 ID 的错误（解析失败等）对应的 HTTP 状态码
func HTTPStatusFromError(rpcErr *RPCError) int {
	if rpcErr == nil {
		return http.StatusOK
	}
	switch rpcErr.Code {
	case ParseError, InvalidRequest, InvalidParams:
		return http.StatusBadRequest
	case MethodNotFound:
		return http.StatusNotFound
	case TimeoutExceeded:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
