package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"PolymarketMCP/internal/adapter/polymarket"
	"PolymarketMCP/internal/instrumentation"
	"PolymarketMCP/internal/model"

	"github.com/sirupsen/logrus"
)

// GammaReader Gamma 元数据读取
type GammaReader interface {
	ListMarkets(ctx context.Context, limit int, closed bool) ([]model.RawMarket, error)
	SearchEvents(ctx context.Context, query polymarket.EventQuery) ([]model.GammaEvent, error)
}

// ClobReader CLOB 行情读取 + 客户端状态
type ClobReader interface {
	GetMarket(ctx context.Context, conditionID string) (json.RawMessage, error)
	GetPrice(ctx context.Context, tokenID, side string) (*model.PriceResponse, error)
	GetMidpoint(ctx context.Context, tokenID string) (*model.MidpointResponse, error)
	GetOrderBook(ctx context.Context, tokenID string) (*model.OrderBook, error)
	GetSimplifiedMarkets(ctx context.Context, nextCursor string) (*model.SimplifiedMarketsPage, error)
	Status() model.ClientStatus
}

// MarketService 行情门面：列表/搜索走 Gamma 并归一化，价格/盘口/详情透传 CLOB。
// 构建后只读，REST 与 MCP 共用同一实例
type MarketService struct {
	gamma   GammaReader
	clob    ClobReader
	logger  *logrus.Logger
	metrics *instrumentation.Metrics
}

// NewMarketService 创建 MarketService
func NewMarketService(gamma GammaReader, clob ClobReader, logger *logrus.Logger, metrics *instrumentation.Metrics) *MarketService {
	return &MarketService{
		gamma:   gamma,
		clob:    clob,
		logger:  logger,
		metrics: metrics,
	}
}

// ListMarkets 市场列表。指定 slug 或 search 时走事件搜索并展开事件内市场（注入事件标题），
// 否则直接拉取市场列表。每次调用只发起一次上游请求，保持上游顺序
func (s *MarketService) ListMarkets(ctx context.Context, params model.ListMarketsParams) ([]model.Market, error) {
	if params.Limit <= 0 {
		params.Limit = model.DefaultListLimit
	}
	slug := strings.TrimSpace(params.Slug)
	search := strings.TrimSpace(params.Search)

	if slug != "" || search != "" {
		events, err := s.gamma.SearchEvents(ctx, polymarket.EventQuery{
			Limit:         params.Limit,
			Closed:        params.Closed,
			TitleContains: search,
			Slug:          slug,
		})
		if err != nil {
			return nil, fmt.Errorf("搜索事件失败: %w", err)
		}
		markets := make([]model.Market, 0, len(events))
		for _, ev := range events {
			for _, raw := range ev.Markets {
				markets = append(markets, s.normalize(raw, ev.Title))
			}
		}
		return markets, nil
	}

	raws, err := s.gamma.ListMarkets(ctx, params.Limit, params.Closed)
	if err != nil {
		return nil, fmt.Errorf("拉取市场列表失败: %w", err)
	}
	markets := make([]model.Market, 0, len(raws))
	for _, raw := range raws {
		markets = append(markets, s.normalize(raw, ""))
	}
	return markets, nil
}

func (s *MarketService) normalize(raw model.RawMarket, eventTitle string) model.Market {
	m := polymarket.NormalizeMarket(raw, eventTitle)
	if m.Degraded {
		s.metrics.RecordDegraded()
		s.logger.WithFields(logrus.Fields{
			"market_id":    m.ID,
			"condition_id": m.ConditionID,
		}).Debug("市场 token 字段解析失败，已置空")
	}
	return m
}

// GetMarketBySlug 按 slug 取单个市场，无结果返回 nil
func (s *MarketService) GetMarketBySlug(ctx context.Context, slug string) (*model.Market, error) {
	markets, err := s.ListMarkets(ctx, model.ListMarketsParams{Limit: 1, Slug: slug})
	if err != nil {
		return nil, err
	}
	if len(markets) == 0 {
		return nil, nil
	}
	return &markets[0], nil
}

// GetMarket 按 condition_id 取市场详情（CLOB 原样透传）
func (s *MarketService) GetMarket(ctx context.Context, conditionID string) (json.RawMessage, error) {
	return s.clob.GetMarket(ctx, conditionID)
}

// GetPrice 取 token 价格，side 为空时默认 buy
func (s *MarketService) GetPrice(ctx context.Context, tokenID, side string) (*model.PriceResponse, error) {
	if side == "" {
		side = "buy"
	}
	return s.clob.GetPrice(ctx, tokenID, side)
}

func (s *MarketService) GetMidpoint(ctx context.Context, tokenID string) (*model.MidpointResponse, error) {
	return s.clob.GetMidpoint(ctx, tokenID)
}

func (s *MarketService) GetOrderBook(ctx context.Context, tokenID string) (*model.OrderBook, error) {
	return s.clob.GetOrderBook(ctx, tokenID)
}

// ListSimplifiedMarkets CLOB 精简市场分页
func (s *MarketService) ListSimplifiedMarkets(ctx context.Context, nextCursor string) (*model.SimplifiedMarketsPage, error) {
	return s.clob.GetSimplifiedMarkets(ctx, nextCursor)
}

// Status 客户端凭证状态
func (s *MarketService) Status() model.ClientStatus {
	return s.clob.Status()
}
