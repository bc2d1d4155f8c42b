package mcp

import "encoding/json"

// Tool MCP 工具定义
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// TextContent 文本内容块（type 固定为 text）
type TextContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// JSONRPCRequest JSON-RPC 2.0 请求；ID 缺失即为通知
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// IsNotification 通知不需要响应
func (r *JSONRPCRequest) IsNotification() bool {
	return r.ID == nil
}

// JSONRPCResponse JSON-RPC 2.0 响应
type JSONRPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *RPCError   `json:"error,omitempty"`
}

// RPCError JSON-RPC 错误对象
type RPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return e.Message
}

// 标准 JSON-RPC 错误码
const (
	ParseError     = -32700
	InvalidRequest = -32600
	MethodNotFound = -32601
	InvalidParams  = -32602
	InternalError  = -32603
)

// 服务端自定义错误码
const (
	TimeoutExceeded = -32004
)

// CallToolParams tools/call 参数；arguments 保留原始 JSON，按 UseNumber 解码
type CallToolParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// ListToolsResult tools/list 结果
type ListToolsResult struct {
	Tools []Tool `json:"tools"`
}

// CallToolResult tools/call 结果；上游失败时 IsError=true
type CallToolResult struct {
	Content []TextContent `json:"content"`
	IsError bool          `json:"isError,omitempty"`
}

// InitializeParams initialize 请求参数（只关心协议版本）
type InitializeParams struct {
	ProtocolVersion string `json:"protocolVersion"`
}

// ServerInfo initialize 返回的服务信息
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// InitializeResult initialize 结果
type InitializeResult struct {
	ProtocolVersion string                 `json:"protocolVersion"`
	Capabilities    map[string]interface{} `json:"capabilities"`
	ServerInfo      ServerInfo             `json:"serverInfo"`
}
