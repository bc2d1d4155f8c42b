package polymarket

import (
	"context"
	"net/url"
	"strconv"

	"PolymarketMCP/internal/config"
	"PolymarketMCP/internal/instrumentation"
	"PolymarketMCP/internal/model"
	"PolymarketMCP/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

// GammaAdapter Gamma 元数据 API（市场列表、事件搜索）
type GammaAdapter struct {
	req    requester
	logger *logrus.Logger
}

// EventQuery /events 搜索条件
type EventQuery struct {
	Limit         int
	Closed        bool
	TitleContains string
	Slug          string
}

// NewGammaAdapter 创建 Gamma 适配器
func NewGammaAdapter(cfg *config.PolymarketConfig, logger *logrus.Logger, metrics *instrumentation.Metrics) *GammaAdapter {
	return &GammaAdapter{
		req: requester{
			source:     SourceGamma,
			baseURL:    cfg.GammaBaseURL,
			httpClient: httpclient.NewHTTPClient(cfg, logger),
			metrics:    metrics,
		},
		logger: logger,
	}
}

// ListMarkets GET /markets?limit=&closed=&active=true
func (g *GammaAdapter) ListMarkets(ctx context.Context, limit int, closed bool) ([]model.RawMarket, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("closed", strconv.FormatBool(closed))
	q.Set("active", "true")

	var markets []model.RawMarket
	if err := g.req.getJSON(ctx, "markets", "/markets?"+q.Encode(), nil, &markets); err != nil {
		return nil, err
	}
	g.logger.WithField("count", len(markets)).Debug("Gamma 市场列表拉取完成")
	return markets, nil
}

// SearchEvents GET /events?title_contains=&slug=，每个事件内嵌其市场
func (g *GammaAdapter) SearchEvents(ctx context.Context, query EventQuery) ([]model.GammaEvent, error) {
	q := url.Values{}
	if query.Limit > 0 {
		q.Set("limit", strconv.Itoa(query.Limit))
	}
	q.Set("closed", strconv.FormatBool(query.Closed))
	if query.TitleContains != "" {
		q.Set("title_contains", query.TitleContains)
	}
	if query.Slug != "" {
		q.Set("slug", query.Slug)
	}

	var events []model.GammaEvent
	if err := g.req.getJSON(ctx, "events", "/events?"+q.Encode(), nil, &events); err != nil {
		return nil, err
	}
	g.logger.WithFields(logrus.Fields{
		"count":          len(events),
		"slug":           query.Slug,
		"title_contains": query.TitleContains,
	}).Debug("Gamma 事件搜索完成")
	return events, nil
}
