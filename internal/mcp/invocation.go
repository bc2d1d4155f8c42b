package mcp

import (
	"context"
	"encoding/json"
	"fmt"
)

// ToolInvoker 参数校验 + 分发
type ToolInvoker struct {
	executor   *ToolExecutor
	validators map[string]*SchemaValidator
}

// NewToolInvoker 为每个工具编译参数 schema
func NewToolInvoker(executor *ToolExecutor) (*ToolInvoker, error) {
	validators := make(map[string]*SchemaValidator)
	for _, tool := range Tools() {
		v, err := NewSchemaValidator(tool.Name, tool.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("compile schema for %s: %w", tool.Name, err)
		}
		validators[tool.Name] = v
	}
	return &ToolInvoker{
		executor:   executor,
		validators: validators,
	}, nil
}

// InvokeTool 校验参数后执行。未知工具或参数不合法返回 -32602
func (ti *ToolInvoker) InvokeTool(ctx context.Context, toolName string, rawArgs json.RawMessage) (*CallToolResult, error) {
	validator, ok := ti.validators[toolName]
	if !ok {
		return nil, &RPCError{
			Code:    InvalidParams,
			Message: "Unknown tool",
			Data:    toolName,
		}
	}

	args, err := decodeArguments(rawArgs)
	if err != nil {
		return nil, err
	}
	if err := validator.Validate(args); err != nil {
		return nil, ErrorFromValidation(err)
	}
	return ti.executor.Execute(ctx, toolName, args)
}
