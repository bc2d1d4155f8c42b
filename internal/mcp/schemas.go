package mcp

// 工具名称
const (
	ToolListMarkets           = "list_markets"
	ToolGetMarketDetails      = "get_market_details"
	ToolGetMarketPrice        = "get_market_price"
	ToolGetOrderbook          = "get_orderbook"
	ToolGetMarketMidpoint     = "get_market_midpoint"
	ToolGetMarketBySlug       = "get_market_by_slug"
	ToolListSimplifiedMarkets = "list_simplified_markets"
)

func objectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	s := map[string]interface{}{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func nonEmptyString(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"minLength":   1,
		"description": description,
	}
}

func tokenIDSchema() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"token_id": nonEmptyString("CLOB token id of one outcome"),
	}, "token_id")
}

// Tools 全部工具定义，顺序即 tools/list 返回顺序
func Tools() []Tool {
	return []Tool{
		{
			Name:        ToolListMarkets,
			Description: "List Polymarket markets. With slug or search, matching events are searched and their markets returned with the event title.",
			InputSchema: objectSchema(map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "integer",
					"minimum":     1,
					"maximum":     1000,
					"description": "Maximum number of markets (default 100)",
				},
				"closed": map[string]interface{}{
					"type":        "boolean",
					"description": "Include closed markets (default false)",
				},
				"slug":   map[string]interface{}{"type": "string", "description": "Event slug filter"},
				"search": map[string]interface{}{"type": "string", "description": "Event title substring filter"},
			}),
		},
		{
			Name:        ToolGetMarketDetails,
			Description: "Get details for a specific market by condition ID.",
			InputSchema: objectSchema(map[string]interface{}{
				"condition_id": nonEmptyString("Market condition id (0x-prefixed hex)"),
			}, "condition_id"),
		},
		{
			Name:        ToolGetMarketPrice,
			Description: "Get the current price for a specific token.",
			InputSchema: objectSchema(map[string]interface{}{
				"token_id": nonEmptyString("CLOB token id of one outcome"),
				"side": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"buy", "sell", "BUY", "SELL"},
					"description": "Order side (default buy)",
				},
			}, "token_id"),
		},
		{
			Name:        ToolGetOrderbook,
			Description: "Get the orderbook for a specific token.",
			InputSchema: tokenIDSchema(),
		},
		{
			Name:        ToolGetMarketMidpoint,
			Description: "Get the midpoint between best bid and best ask for a specific token.",
			InputSchema: tokenIDSchema(),
		},
		{
			Name:        ToolGetMarketBySlug,
			Description: "Get the first market of the event with the given slug, or null when none matches.",
			InputSchema: objectSchema(map[string]interface{}{
				"slug": nonEmptyString("Event slug"),
			}, "slug"),
		},
		{
			Name:        ToolListSimplifiedMarkets,
			Description: "Page through CLOB simplified markets. Pass next_cursor from the previous page to continue.",
			InputSchema: objectSchema(map[string]interface{}{
				"next_cursor": map[string]interface{}{"type": "string", "description": "Cursor returned by the previous page"},
			}),
		},
	}
}
