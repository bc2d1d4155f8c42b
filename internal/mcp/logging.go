package mcp

import (
	"github.com/sirupsen/logrus"
)

// LogMCPRequest 记录工具调用请求
func LogMCPRequest(logger *logrus.Logger, tool, requestID string, args map[string]interface{}) {
	logger.WithFields(logrus.Fields{
		"component":  "mcp",
		"tool_name":  tool,
		"request_id": requestID,
		"arguments":  args,
	}).Info("mcp_request")
}

// LogMCPSuccess 记录工具调用成功及耗时
func LogMCPSuccess(logger *logrus.Logger, tool, requestID string, latencyMS int64) {
	logger.WithFields(logrus.Fields{
		"component":  "mcp",
		"tool_name":  tool,
		"request_id": requestID,
		"latency_ms": latencyMS,
	}).Info("mcp_success")
}

// LogMCPError 记录工具调用失败
func LogMCPError(logger *logrus.Logger, tool, requestID string, errorCode int, errorMsg string) {
	logger.WithFields(logrus.Fields{
		"component":     "mcp",
		"tool_name":     tool,
		"request_id":    requestID,
		"error_code":    errorCode,
		"error_message": errorMsg,
	}).Error("mcp_error")
}
