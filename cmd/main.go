package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"PolymarketMCP/internal/adapter/polymarket"
	"PolymarketMCP/internal/api"
	"PolymarketMCP/internal/config"
	"PolymarketMCP/internal/instrumentation"
	"PolymarketMCP/internal/interfaces"
	"PolymarketMCP/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func newLogger(cfg config.LogConfig) *logrus.Logger {
	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}

// buildService 构建行情门面；客户端构建失败返回 nil（不是带类型的 nil），服务照常启动
func buildService(cfg *config.Config, logger *logrus.Logger, metrics *instrumentation.Metrics) interfaces.MarketDataService {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Duration(cfg.Polymarket.Timeout)*time.Second)
	defer cancel()

	trading, err := polymarket.NewTradingClient(ctx, &cfg.Polymarket, logger, metrics)
	if err != nil {
		logger.WithError(err).Error("Polymarket 客户端初始化失败，所有接口将返回 Client not initialized")
		return nil
	}
	gamma := polymarket.NewGammaAdapter(&cfg.Polymarket, logger, metrics)
	return service.NewMarketService(gamma, trading, logger, metrics)
}

func main() {
	// 1. 加载配置（.env + config/config.yaml + 环境变量）
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("加载配置文件失败: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("配置校验失败: %v", err)
	}

	// 2. 初始化日志与指标
	logger := newLogger(cfg.Log)
	metrics := instrumentation.NewMetrics()
	logger.WithFields(logrus.Fields{
		"clob":     cfg.Polymarket.ClobBaseURL,
		"gamma":    cfg.Polymarket.GammaBaseURL,
		"chain_id": cfg.Polymarket.ChainID,
		"mode":     polymarket.ResolveMode(&cfg.Polymarket),
	}).Info("配置文件加载成功")

	// 3. 构建 Polymarket 客户端与行情门面
	svc := buildService(cfg, logger, metrics)

	// 4. 路由
	gin.SetMode(cfg.Server.Mode)
	r, err := api.NewRouter(cfg, svc, logger, metrics)
	if err != nil {
		logger.Fatalf("初始化路由失败: %v", err)
	}
	logger.Infof("Gin运行模式: %s，MCP 挂载于 %s", cfg.Server.Mode, cfg.MCP.Path)

	// 5. 启动服务，收到信号后优雅退出
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.MCP.ToolTimeoutDuration() + 10*time.Second,
	}
	go func() {
		logger.Infof("服务启动成功，端口：%d", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("启动服务失败: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logger.WithField("signal", sig.String()).Info("收到退出信号，开始关闭服务")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("服务关闭失败")
	}
	logger.Info("服务已停止")
}
