package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"PolymarketMCP/internal/instrumentation"
	"PolymarketMCP/internal/interfaces"

	"github.com/sirupsen/logrus"
)

// DefaultProtocolVersion 客户端未声明协议版本时使用
const DefaultProtocolVersion = "2025-03-26"

// ServerVersion initialize 返回的版本号
const ServerVersion = "1.0.0"

// Server MCP 方法分发（与传输无关）
type Server struct {
	name        string
	invoker     *ToolInvoker
	toolTimeout time.Duration
	logger      *logrus.Logger
	metrics     *instrumentation.Metrics
}

// NewServer service 为 nil 时工具调用统一返回 "Client not initialized"
func NewServer(name string, service interfaces.MarketDataService, toolTimeout time.Duration, logger *logrus.Logger, metrics *instrumentation.Metrics) (*Server, error) {
	invoker, err := NewToolInvoker(NewToolExecutor(service))
	if err != nil {
		return nil, err
	}
	return &Server{
		name:        name,
		invoker:     invoker,
		toolTimeout: toolTimeout,
		logger:      logger,
		metrics:     metrics,
	}, nil
}

// Handle 处理单个请求。通知返回 nil
func (s *Server) Handle(ctx context.Context, req *JSONRPCRequest, requestID string) *JSONRPCResponse {
	if req.IsNotification() {
		s.logger.WithFields(logrus.Fields{"method": req.Method, "request_id": requestID}).Debug("收到 MCP 通知")
		return nil
	}

	switch req.Method {
	case "initialize":
		return NewJSONRPCResult(req.ID, s.initialize(req.Params))
	case "ping":
		return NewJSONRPCResult(req.ID, map[string]interface{}{})
	case "tools/list", "list_tools":
		return NewJSONRPCResult(req.ID, ListToolsResult{Tools: Tools()})
	case "tools/call", "call_tool":
		return s.callTool(ctx, req, requestID)
	default:
		return NewJSONRPCError(req.ID, MethodNotFound, "Method not found", req.Method)
	}
}

func (s *Server) initialize(params json.RawMessage) InitializeResult {
	version := DefaultProtocolVersion
	var p InitializeParams
	if len(params) > 0 && json.Unmarshal(params, &p) == nil && strings.TrimSpace(p.ProtocolVersion) != "" {
		version = p.ProtocolVersion
	}
	return InitializeResult{
		ProtocolVersion: version,
		Capabilities: map[string]interface{}{
			"tools": map[string]interface{}{"listChanged": false},
		},
		ServerInfo: ServerInfo{Name: s.name, Version: ServerVersion},
	}
}

func (s *Server) callTool(ctx context.Context, req *JSONRPCRequest, requestID string) *JSONRPCResponse {
	start := time.Now()

	toolParams, err := ParseCallToolParams(req.Params)
	if err != nil {
		rpcErr := FormatMCPError(err)
		return NewJSONRPCError(req.ID, rpcErr.Code, rpcErr.Message, rpcErr.Data)
	}
	LogMCPRequest(s.logger, toolParams.Name, requestID, argsForLog(toolParams.Arguments))

	if s.toolTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.toolTimeout)
		defer cancel()
	}

	result, err := s.invoker.InvokeTool(ctx, toolParams.Name, toolParams.Arguments)
	if err != nil {
		rpcErr := FormatMCPError(err)
		outcome := "error"
		if rpcErr.Code == InvalidParams {
			outcome = "invalid"
		}
		s.metrics.RecordToolCall(toolParams.Name, outcome)
		LogMCPError(s.logger, toolParams.Name, requestID, rpcErr.Code, rpcErr.Message)
		return NewJSONRPCError(req.ID, rpcErr.Code, rpcErr.Message, rpcErr.Data)
	}

	if result.IsError {
		s.metrics.RecordToolCall(toolParams.Name, "upstream_error")
		msg := ""
		if len(result.Content) > 0 {
			msg = result.Content[0].Text
		}
		LogMCPError(s.logger, toolParams.Name, requestID, 0, msg)
	} else {
		s.metrics.RecordToolCall(toolParams.Name, "ok")
		LogMCPSuccess(s.logger, toolParams.Name, requestID, time.Since(start).Milliseconds())
	}
	return NewJSONRPCResult(req.ID, result)
}

func argsForLog(raw json.RawMessage) map[string]interface{} {
	args, err := decodeArguments(raw)
	if err != nil {
		return nil
	}
	return args
}
