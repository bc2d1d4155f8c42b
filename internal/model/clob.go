package model

import "encoding/json"

// OrderSummary 订单簿单档价格与数量（CLOB 原样返回字符串）
type OrderSummary struct {
	Price string `json:"price"`
	Size  string `json:"size"`
}

// OrderBook CLOB /book 返回的订单簿，不做重排
type OrderBook struct {
	Market         string         `json:"market"`
	AssetID        string         `json:"asset_id"`
	Timestamp      string         `json:"timestamp"`
	Hash           string         `json:"hash"`
	Bids           []OrderSummary `json:"bids"`
	Asks           []OrderSummary `json:"asks"`
	MinOrderSize   string         `json:"min_order_size,omitempty"`
	TickSize       string         `json:"tick_size,omitempty"`
	NegRisk        bool           `json:"neg_risk,omitempty"`
	LastTradePrice string         `json:"last_trade_price,omitempty"`
}

// PriceResponse CLOB /price 返回
type PriceResponse struct {
	Price string `json:"price"`
}

// MidpointResponse CLOB /midpoint 返回
type MidpointResponse struct {
	Mid string `json:"mid"`
}

// SimplifiedMarketsPage CLOB /simplified-markets 分页结果，data 原样透传
type SimplifiedMarketsPage struct {
	Limit      int               `json:"limit"`
	Count      int               `json:"count"`
	NextCursor string            `json:"next_cursor"`
	Data       []json.RawMessage `json:"data"`
}

// APICredentials CLOB L2 API 凭证
type APICredentials struct {
	APIKey     string `json:"apiKey"`
	Secret     string `json:"secret"`
	Passphrase string `json:"passphrase"`
}
