package api

import (
	"PolymarketMCP/internal/config"
	"PolymarketMCP/internal/instrumentation"
	"PolymarketMCP/internal/interfaces"
	"PolymarketMCP/internal/mcp"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewRouter 注册 REST、MCP、/metrics 与可选 pprof 路由。
// service 为 nil 时服务仍可启动：REST 返回 503，MCP 工具返回 "Client not initialized"
func NewRouter(cfg *config.Config, service interfaces.MarketDataService, logger *logrus.Logger, metrics *instrumentation.Metrics) (*gin.Engine, error) {
	mcpServer, err := mcp.NewServer(cfg.MCP.ServerName, service, cfg.MCP.ToolTimeoutDuration(), logger, metrics)
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(logger), Metrics(metrics))

	if cfg.Server.EnablePprof {
		pprof.Register(r)
	}
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	marketHandler := NewMarketHandler(service, logger)
	r.GET("/health", marketHandler.Health)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/markets", marketHandler.ListMarkets)
		apiGroup.GET("/markets/:token_id/price", marketHandler.GetPrice)
		apiGroup.GET("/markets/:token_id/orderbook", marketHandler.GetOrderBook)
		apiGroup.GET("/markets/:token_id/midpoint", marketHandler.GetMidpoint)
		apiGroup.GET("/conditions/:condition_id", marketHandler.GetCondition)
		apiGroup.GET("/slugs/:slug", marketHandler.GetMarketBySlug)
		apiGroup.GET("/simplified-markets", marketHandler.ListSimplifiedMarkets)
	}

	mcpHandler := NewMCPHandler(mcpServer, logger)
	r.POST(cfg.MCP.Path, mcpHandler.Post)
	r.GET(cfg.MCP.Path, mcpHandler.NotAllowed)
	r.DELETE(cfg.MCP.Path, mcpHandler.NotAllowed)

	return r, nil
}
