package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// DefaultClobBaseURL Polymarket CLOB 交易 API
	DefaultClobBaseURL = "https://clob.polymarket.com"
	// DefaultGammaBaseURL Polymarket Gamma 元数据 API
	DefaultGammaBaseURL = "https://gamma-api.polymarket.com"
	// DefaultChainID Polygon 主网
	DefaultChainID = 137
)

// Config 全局配置结构体（匹配 config/config.yaml，可被环境变量覆盖）
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`     // 服务器配置
	Log        LogConfig        `mapstructure:"log"`        // 日志配置
	Polymarket PolymarketConfig `mapstructure:"polymarket"` // Polymarket 上游配置
	MCP        MCPConfig        `mapstructure:"mcp"`        // MCP 工具接口配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port        int    `mapstructure:"port"`         // 服务端口
	Mode        string `mapstructure:"mode"`         // Gin运行模式：debug/release/test
	EnablePprof bool   `mapstructure:"enable_pprof"` // 是否注册 /debug/pprof
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug/info/warn/error
	Format string `mapstructure:"format"` // text/json
}

// PolymarketConfig 上游 API 与签名配置
type PolymarketConfig struct {
	ClobBaseURL  string `mapstructure:"clob_base_url"`  // CLOB API 基础地址
	GammaBaseURL string `mapstructure:"gamma_base_url"` // Gamma API 基础地址
	PrivateKey   string `mapstructure:"private_key"`    // 签名私钥（为空则只读）
	ProxyAddress string `mapstructure:"proxy_address"`  // 代理钱包/funder 地址
	ChainID      int64  `mapstructure:"chain_id"`       // 链 ID
	Timeout      int    `mapstructure:"timeout"`        // 请求超时（秒）
	Proxy        string `mapstructure:"proxy"`          // HTTP 代理地址
}

// MCPConfig MCP 挂载配置
type MCPConfig struct {
	Path        string `mapstructure:"path"`         // 挂载路径
	ServerName  string `mapstructure:"server_name"`  // initialize 返回的服务名
	ToolTimeout int    `mapstructure:"tool_timeout"` // 单次工具调用超时（秒）
}

// ToolTimeoutDuration 工具调用超时
func (m MCPConfig) ToolTimeoutDuration() time.Duration {
	return time.Duration(m.ToolTimeout) * time.Second
}

// HasSigningKey 是否配置了签名私钥
func (p PolymarketConfig) HasSigningKey() bool {
	return strings.TrimSpace(p.PrivateKey) != ""
}

// LoadConfig 加载配置文件（config/config.yaml，可不存在），敏感项从 .env / 环境变量覆盖
func LoadConfig() (*Config, error) {
	// .env 可不存在
	_ = godotenv.Load()
	return LoadConfigFrom("./config")
}

// LoadConfigFrom 从指定目录读取 config.yaml，并叠加默认值与环境变量
func LoadConfigFrom(dirs ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, d := range dirs {
		v.AddConfigPath(d)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	v.SetTypeByDefaultValue(true)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	overrideFromEnv(&cfg)
	cfg.Polymarket.ClobBaseURL = strings.TrimSuffix(cfg.Polymarket.ClobBaseURL, "/")
	cfg.Polymarket.GammaBaseURL = strings.TrimSuffix(cfg.Polymarket.GammaBaseURL, "/")
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.enable_pprof", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("polymarket.clob_base_url", DefaultClobBaseURL)
	v.SetDefault("polymarket.gamma_base_url", DefaultGammaBaseURL)
	v.SetDefault("polymarket.private_key", "")
	v.SetDefault("polymarket.proxy_address", "")
	v.SetDefault("polymarket.chain_id", DefaultChainID)
	v.SetDefault("polymarket.timeout", 15)
	v.SetDefault("polymarket.proxy", "")
	v.SetDefault("mcp.path", "/mcp")
	v.SetDefault("mcp.server_name", "Polymarket MCP Server")
	v.SetDefault("mcp.tool_timeout", 30)
}

// bindEnv 非敏感项的环境变量映射
func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("server.port", "SERVER_PORT")
	_ = v.BindEnv("server.mode", "SERVER_MODE")
	_ = v.BindEnv("server.enable_pprof", "SERVER_ENABLE_PPROF")
	_ = v.BindEnv("log.level", "LOG_LEVEL")
	_ = v.BindEnv("log.format", "LOG_FORMAT")
	_ = v.BindEnv("polymarket.clob_base_url", "POLYMARKET_CLOB_URL")
	_ = v.BindEnv("polymarket.gamma_base_url", "POLYMARKET_GAMMA_URL")
	_ = v.BindEnv("polymarket.chain_id", "POLYMARKET_CHAIN_ID")
	_ = v.BindEnv("polymarket.timeout", "POLYMARKET_TIMEOUT")
	_ = v.BindEnv("mcp.path", "MCP_PATH")
}

// overrideFromEnv 用环境变量覆盖敏感配置（优先级 env > yaml）
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("POLYMARKET_PRIVATE_KEY"); v != "" {
		cfg.Polymarket.PrivateKey = v
	}
	if v := os.Getenv("POLYMARKET_PROXY_ADDRESS"); v != "" {
		cfg.Polymarket.ProxyAddress = v
	}
	if v := os.Getenv("POLYMARKET_HTTP_PROXY"); v != "" {
		cfg.Polymarket.Proxy = v
	}
}

// Validate 校验配置
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("invalid server mode: %s", c.Server.Mode)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	if c.Polymarket.ChainID <= 0 {
		return fmt.Errorf("invalid chain id: %d", c.Polymarket.ChainID)
	}
	if c.Polymarket.Timeout <= 0 {
		return fmt.Errorf("invalid polymarket timeout: %d", c.Polymarket.Timeout)
	}
	if c.MCP.ToolTimeout <= 0 {
		return fmt.Errorf("invalid mcp tool timeout: %d", c.MCP.ToolTimeout)
	}
	if c.Polymarket.ClobBaseURL == "" || c.Polymarket.GammaBaseURL == "" {
		return fmt.Errorf("clob_base_url 与 gamma_base_url 不能为空")
	}
	if !strings.HasPrefix(c.MCP.Path, "/") {
		return fmt.Errorf("mcp path must start with '/': %q", c.MCP.Path)
	}
	return nil
}
