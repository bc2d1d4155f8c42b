package polymarket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"PolymarketMCP/internal/config"
	"PolymarketMCP/internal/instrumentation"
	"PolymarketMCP/internal/model"
	"PolymarketMCP/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

// ClobClient CLOB 公共行情读取（无需凭证）与 L1 认证的 API Key 管理
type ClobClient struct {
	req    requester
	logger *logrus.Logger
}

// NewClobClient 创建 CLOB 客户端
func NewClobClient(cfg *config.PolymarketConfig, logger *logrus.Logger, metrics *instrumentation.Metrics) *ClobClient {
	return &ClobClient{
		req: requester{
			source:     SourceCLOB,
			baseURL:    cfg.ClobBaseURL,
			httpClient: httpclient.NewHTTPClient(cfg, logger),
			metrics:    metrics,
		},
		logger: logger,
	}
}

// GetMarket GET /markets/{condition_id}，结构原样透传
func (c *ClobClient) GetMarket(ctx context.Context, conditionID string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.req.getJSON(ctx, "market", "/markets/"+url.PathEscape(conditionID), nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// GetPrice GET /price?token_id=&side=BUY|SELL
func (c *ClobClient) GetPrice(ctx context.Context, tokenID, side string) (*model.PriceResponse, error) {
	normalized, err := NormalizeSide(side)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("token_id", tokenID)
	q.Set("side", normalized)

	var resp model.PriceResponse
	if err := c.req.getJSON(ctx, "price", "/price?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetMidpoint GET /midpoint?token_id=
func (c *ClobClient) GetMidpoint(ctx context.Context, tokenID string) (*model.MidpointResponse, error) {
	q := url.Values{}
	q.Set("token_id", tokenID)

	var resp model.MidpointResponse
	if err := c.req.getJSON(ctx, "midpoint", "/midpoint?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetOrderBook GET /book?token_id=
func (c *ClobClient) GetOrderBook(ctx context.Context, tokenID string) (*model.OrderBook, error) {
	q := url.Values{}
	q.Set("token_id", tokenID)

	var book model.OrderBook
	if err := c.req.getJSON(ctx, "book", "/book?"+q.Encode(), nil, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// GetSimplifiedMarkets GET /simplified-markets?next_cursor=
func (c *ClobClient) GetSimplifiedMarkets(ctx context.Context, nextCursor string) (*model.SimplifiedMarketsPage, error) {
	path := "/simplified-markets"
	if nextCursor != "" {
		path += "?" + url.Values{"next_cursor": {nextCursor}}.Encode()
	}

	var page model.SimplifiedMarketsPage
	if err := c.req.getJSON(ctx, "simplified_markets", path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateAPIKey POST /auth/api-key（L1 认证）
func (c *ClobClient) CreateAPIKey(ctx context.Context, l1Headers http.Header) (*model.APICredentials, error) {
	var creds model.APICredentials
	if err := c.req.do(ctx, http.MethodPost, "create_api_key", "/auth/api-key", l1Headers, &creds); err != nil {
		return nil, err
	}
	return validCredentials(&creds)
}

// DeriveAPIKey GET /auth/derive-api-key（L1 认证）
func (c *ClobClient) DeriveAPIKey(ctx context.Context, l1Headers http.Header) (*model.APICredentials, error) {
	var creds model.APICredentials
	if err := c.req.getJSON(ctx, "derive_api_key", "/auth/derive-api-key", l1Headers, &creds); err != nil {
		return nil, err
	}
	return validCredentials(&creds)
}

func validCredentials(creds *model.APICredentials) (*model.APICredentials, error) {
	if creds.APIKey == "" || creds.Secret == "" || creds.Passphrase == "" {
		return nil, fmt.Errorf("clob returned incomplete api credentials")
	}
	return creds, nil
}

// NormalizeSide buy/sell（大小写不敏感，空值默认 buy）转为 CLOB 使用的 BUY/SELL
func NormalizeSide(side string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(side)) {
	case "", "buy":
		return "BUY", nil
	case "sell":
		return "SELL", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSide, side)
	}
}
