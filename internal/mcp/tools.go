package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"PolymarketMCP/internal/adapter/polymarket"
	"PolymarketMCP/internal/interfaces"
	"PolymarketMCP/internal/model"
)

// ErrClientNotInitialized 启动时客户端构建失败
const ErrClientNotInitialized = "Client not initialized"

// ToolExecutor 执行已通过校验的工具调用
type ToolExecutor struct {
	service interfaces.MarketDataService
}

// NewToolExecutor service 可为 nil（客户端未初始化）
func NewToolExecutor(service interfaces.MarketDataService) *ToolExecutor {
	return &ToolExecutor{service: service}
}

// Execute 执行工具。上游失败以 isError 结果返回，不作为 JSON-RPC 错误
func (te *ToolExecutor) Execute(ctx context.Context, tool string, args map[string]interface{}) (*CallToolResult, error) {
	if te.service == nil {
		return errorResult(map[string]interface{}{"error": ErrClientNotInitialized}), nil
	}

	var (
		result interface{}
		err    error
	)
	switch tool {
	case ToolListMarkets:
		params := model.ListMarketsParams{
			Limit:  argInt(args, "limit", model.DefaultListLimit),
			Closed: argBool(args, "closed"),
			Slug:   argString(args, "slug"),
			Search: argString(args, "search"),
		}
		result, err = te.service.ListMarkets(ctx, params)
	case ToolGetMarketDetails:
		result, err = te.service.GetMarket(ctx, argString(args, "condition_id"))
	case ToolGetMarketPrice:
		result, err = te.service.GetPrice(ctx, argString(args, "token_id"), argString(args, "side"))
	case ToolGetOrderbook:
		result, err = te.service.GetOrderBook(ctx, argString(args, "token_id"))
	case ToolGetMarketMidpoint:
		result, err = te.service.GetMidpoint(ctx, argString(args, "token_id"))
	case ToolGetMarketBySlug:
		var m *model.Market
		m, err = te.service.GetMarketBySlug(ctx, argString(args, "slug"))
		if m != nil {
			result = m
		}
	case ToolListSimplifiedMarkets:
		result, err = te.service.ListSimplifiedMarkets(ctx, argString(args, "next_cursor"))
	default:
		return nil, &RPCError{Code: InvalidParams, Message: "Unknown tool", Data: tool}
	}

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return errorResult(upstreamErrorBody(err)), nil
	}
	return textResult(result)
}

func upstreamErrorBody(err error) map[string]interface{} {
	body := map[string]interface{}{"error": err.Error()}
	if apiErr, ok := polymarket.AsAPIError(err); ok {
		body["error"] = apiErr.Message
		body["status"] = apiErr.StatusCode
		body["source"] = apiErr.Source
	}
	if errors.Is(err, polymarket.ErrInvalidSide) {
		body["status"] = 400
	}
	return body
}

func textResult(v interface{}) (*CallToolResult, error) {
	text, err := json.Marshal(v)
	if err != nil {
		return nil, &RPCError{Code: InternalError, Message: "Failed to serialize tool result", Data: err.Error()}
	}
	return &CallToolResult{Content: []TextContent{{Type: "text", Text: string(text)}}}, nil
}

func errorResult(body map[string]interface{}) *CallToolResult {
	text, _ := json.Marshal(body)
	return &CallToolResult{
		Content: []TextContent{{Type: "text", Text: string(text)}},
		IsError: true,
	}
}

func argString(args map[string]interface{}, key string) string {
	switch v := args[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func argBool(args map[string]interface{}, key string) bool {
	b, _ := args[key].(bool)
	return b
}

func argInt(args map[string]interface{}, key string, def int) int {
	switch v := args[key].(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
		// 5.0 这类整数值浮点
		if f, err := v.Float64(); err == nil {
			return int(f)
		}
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
