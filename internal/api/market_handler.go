package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"PolymarketMCP/internal/adapter/polymarket"
	"PolymarketMCP/internal/interfaces"
	"PolymarketMCP/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const errClientNotInitialized = "Client not initialized"

// MarketHandler REST 行情接口
type MarketHandler struct {
	service interfaces.MarketDataService // 启动时客户端构建失败则为 nil
	logger  *logrus.Logger
}

// NewMarketHandler 创建 MarketHandler
func NewMarketHandler(service interfaces.MarketDataService, logger *logrus.Logger) *MarketHandler {
	return &MarketHandler{
		service: service,
		logger:  logger,
	}
}

// Health 健康检查
// GET /health
func (h *MarketHandler) Health(c *gin.Context) {
	resp := gin.H{
		"status":             "ok",
		"client_initialized": h.service != nil,
	}
	if h.service != nil {
		st := h.service.Status()
		resp["mode"] = st.Mode
		resp["credentials_ready"] = st.CredentialsReady
	}
	c.JSON(http.StatusOK, resp)
}

// ListMarkets 市场列表 / 搜索
// GET /api/markets?limit=100&closed=false&slug=&search=
func (h *MarketHandler) ListMarkets(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	params := model.ListMarketsParams{
		Limit:  model.DefaultListLimit,
		Slug:   c.Query("slug"),
		Search: c.Query("search"),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		params.Limit = limit
	}
	if raw := c.Query("closed"); raw != "" {
		closed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "closed must be a boolean"})
			return
		}
		params.Closed = closed
	}

	markets, err := h.service.ListMarkets(c.Request.Context(), params)
	if err != nil {
		h.writeError(c, "ListMarkets", err)
		return
	}
	c.JSON(http.StatusOK, markets)
}

// GetPrice token 价格
// GET /api/markets/:token_id/price?side=buy
func (h *MarketHandler) GetPrice(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	resp, err := h.service.GetPrice(c.Request.Context(), c.Param("token_id"), c.Query("side"))
	if err != nil {
		h.writeError(c, "GetPrice", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetOrderBook token 订单簿
// GET /api/markets/:token_id/orderbook
func (h *MarketHandler) GetOrderBook(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	book, err := h.service.GetOrderBook(c.Request.Context(), c.Param("token_id"))
	if err != nil {
		h.writeError(c, "GetOrderBook", err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// GetMidpoint GET /api/markets/:token_id/midpoint
func (h *MarketHandler) GetMidpoint(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	mid, err := h.service.GetMidpoint(c.Request.Context(), c.Param("token_id"))
	if err != nil {
		h.writeError(c, "GetMidpoint", err)
		return
	}
	c.JSON(http.StatusOK, mid)
}

// GetCondition 按 condition_id 查询市场详情（CLOB 原样返回）
// GET /api/conditions/:condition_id
func (h *MarketHandler) GetCondition(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	raw, err := h.service.GetMarket(c.Request.Context(), c.Param("condition_id"))
	if err != nil {
		h.writeError(c, "GetCondition", err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

// GetMarketBySlug GET /api/slugs/:slug，无匹配返回 404
func (h *MarketHandler) GetMarketBySlug(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	slug := c.Param("slug")
	m, err := h.service.GetMarketBySlug(c.Request.Context(), slug)
	if err != nil {
		h.writeError(c, "GetMarketBySlug", err)
		return
	}
	if m == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "market not found", "slug": slug})
		return
	}
	c.JSON(http.StatusOK, m)
}

// ListSimplifiedMarkets GET /api/simplified-markets?next_cursor=
func (h *MarketHandler) ListSimplifiedMarkets(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	page, err := h.service.ListSimplifiedMarkets(c.Request.Context(), c.Query("next_cursor"))
	if err != nil {
		h.writeError(c, "ListSimplifiedMarkets", err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *MarketHandler) ready(c *gin.Context) bool {
	if h.service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": errClientNotInitialized})
		return false
	}
	return true
}

// writeError 上游 APIError 透传状态码与消息，其余上游失败返回 502
func (h *MarketHandler) writeError(c *gin.Context, op string, err error) {
	status := http.StatusBadGateway
	msg := err.Error()
	if apiErr, ok := polymarket.AsAPIError(err); ok {
		status = apiErr.StatusCode
		msg = apiErr.Message
	} else if errors.Is(err, polymarket.ErrInvalidSide) {
		status = http.StatusBadRequest
	} else if errors.Is(err, context.DeadlineExceeded) {
		status = http.StatusGatewayTimeout
	}

	h.logger.WithError(err).WithFields(logrus.Fields{
		"op":         op,
		"status":     status,
		"request_id": c.GetString(requestIDKey),
	}).Error("上游请求失败")
	c.JSON(status, gin.H{"error": msg})
}
