package model

// RawMarket Gamma 返回的原始市场记录（字段不固定，按 key 取值）
// clobTokenIds / outcomes / outcomePrices 为伪JSON数组字符串，如 "[\"Yes\",\"No\"]"
type RawMarket map[string]interface{}

// GammaEvent Gamma /events 返回的事件，内嵌若干市场
type GammaEvent struct {
	ID      string      `json:"id"`
	Title   string      `json:"title"`
	Slug    string      `json:"slug"`
	Active  bool        `json:"active"`
	Closed  bool        `json:"closed"`
	Markets []RawMarket `json:"markets"`
}
