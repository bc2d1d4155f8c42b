package model

// Token 单个结果（outcome）的可交易份额
type Token struct {
	TokenID string   `json:"token_id"`
	Outcome string   `json:"outcome"`
	Price   *float64 `json:"price"` // 无价格或无法解析时为 null
}

// Market 归一化后的市场记录
type Market struct {
	ID          string  `json:"id"`
	ConditionID string  `json:"condition_id"`
	Question    string  `json:"question"`
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	Slug        string  `json:"slug"`
	Active      bool    `json:"active"`
	Closed      bool    `json:"closed"`
	Tokens      []Token `json:"tokens"`
	// Degraded 为 true 表示该记录的 token 字段解析失败，tokens 已置空
	Degraded bool `json:"degraded,omitempty"`
}

// ListMarketsParams 市场列表/搜索参数
type ListMarketsParams struct {
	Limit  int
	Closed bool
	Slug   string
	Search string
}

// DefaultListLimit 未指定 limit 时的默认条数
const DefaultListLimit = 100

// ClientStatus 交易客户端状态（/health 使用）
type ClientStatus struct {
	Mode             string `json:"mode"`
	CredentialsReady bool   `json:"credentials_ready"`
}
