package interfaces

import (
	"context"
	"encoding/json"

	"PolymarketMCP/internal/model"
)

// MarketDataService 对外暴露的行情查询能力（REST 与 MCP 共用）
type MarketDataService interface {
	ListMarkets(ctx context.Context, params model.ListMarketsParams) ([]model.Market, error)
	GetMarketBySlug(ctx context.Context, slug string) (*model.Market, error)
	GetMarket(ctx context.Context, conditionID string) (json.RawMessage, error)
	GetPrice(ctx context.Context, tokenID, side string) (*model.PriceResponse, error)
	GetMidpoint(ctx context.Context, tokenID string) (*model.MidpointResponse, error)
	GetOrderBook(ctx context.Context, tokenID string) (*model.OrderBook, error)
	ListSimplifiedMarkets(ctx context.Context, nextCursor string) (*model.SimplifiedMarketsPage, error)
	Status() model.ClientStatus
}
