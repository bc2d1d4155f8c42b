package polymarket

import (
	"context"
	"fmt"
	"strings"
	"time"

	"PolymarketMCP/internal/config"
	"PolymarketMCP/internal/instrumentation"
	"PolymarketMCP/internal/model"

	"github.com/GoPolymarket/polymarket-go-sdk"
	"github.com/GoPolymarket/polymarket-go-sdk/pkg/auth"
	"github.com/GoPolymarket/polymarket-go-sdk/pkg/clob"
	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
)

// Mode 客户端凭证模式，启动时确定，之后不再变化
type Mode string

const (
	ModeReadOnly Mode = "read_only" // 未配置私钥：仅行情读取
	ModeProxy    Mode = "proxy"     // 私钥 + 代理钱包（邮箱/Magic 登录），funder 为代理地址
	ModeEOA      Mode = "eoa"       // 私钥直签（EOA）
)

// 订单签名类型，取值与 SDK 的 auth.SignatureType 一致
const (
	SignatureTypeEOA       = int(auth.SignatureEOA)
	SignatureTypePolyProxy = int(auth.SignatureProxy)
)

// ResolveMode 根据配置确定凭证模式
func ResolveMode(cfg *config.PolymarketConfig) Mode {
	switch {
	case !cfg.HasSigningKey():
		return ModeReadOnly
	case strings.TrimSpace(cfg.ProxyAddress) != "":
		return ModeProxy
	default:
		return ModeEOA
	}
}

// TradingClient 交易所客户端句柄：行情读取走 ClobClient；签名模式下额外持有签名器与 API 凭证。
// 构建后只读，可在请求间共享
type TradingClient struct {
	*ClobClient

	mode          Mode
	chainID       int64
	signatureType int
	funder        string

	signer     auth.Signer
	creds      *model.APICredentials
	authedCLOB clob.Client // 凭证就绪后的 SDK 客户端（下单等写操作）
	logger     *logrus.Logger
}

// NewTradingClient 按凭证模式构建客户端。
// 签名模式下会立即尝试创建/派生 API 凭证；失败仅记录告警，客户端仍可用于只读操作。
// 私钥无法解析时返回错误。
func NewTradingClient(ctx context.Context, cfg *config.PolymarketConfig, logger *logrus.Logger, metrics *instrumentation.Metrics) (*TradingClient, error) {
	t := &TradingClient{
		ClobClient: NewClobClient(cfg, logger, metrics),
		mode:       ResolveMode(cfg),
		chainID:    cfg.ChainID,
		logger:     logger,
	}

	if t.mode == ModeReadOnly {
		logger.Info("未配置 POLYMARKET_PRIVATE_KEY，以只读模式运行")
		return t, nil
	}

	signer, err := auth.NewPrivateKeySigner(strings.TrimSpace(cfg.PrivateKey), cfg.ChainID)
	if err != nil {
		return nil, fmt.Errorf("Polymarket 私钥解析失败: %w", err)
	}
	t.signer = signer

	if t.mode == ModeProxy {
		t.signatureType = SignatureTypePolyProxy
		t.funder = strings.TrimSpace(cfg.ProxyAddress)
	} else {
		t.signatureType = SignatureTypeEOA
		t.funder = signer.Address().Hex()
	}

	fields := logrus.Fields{
		"mode":           t.mode,
		"address":        signer.Address().Hex(),
		"funder":         t.Funder(),
		"chain_id":       t.ChainID(),
		"signature_type": t.SignatureType(),
	}

	creds, err := t.CreateOrDeriveAPICredentials(ctx)
	if err != nil {
		logger.WithError(err).WithFields(fields).Warn("派生 API 凭证失败，仅支持只读操作")
		return t, nil
	}
	t.creds = creds

	sdkCfg := polymarket.DefaultConfig()
	sdkCfg.BaseURLs.CLOB = cfg.ClobBaseURL
	client := polymarket.NewClient(polymarket.WithConfig(sdkCfg)).WithAuth(signer, &auth.APIKey{
		Key:        creds.APIKey,
		Secret:     creds.Secret,
		Passphrase: creds.Passphrase,
	})
	t.authedCLOB = t.bindSigningIdentity(client.CLOB)

	logger.WithFields(fields).Info("Polymarket 交易客户端初始化完成，API 凭证已就绪")
	return t, nil
}

// CreateOrDeriveAPICredentials 先尝试创建 API Key，失败则派生已有的 Key
func (t *TradingClient) CreateOrDeriveAPICredentials(ctx context.Context) (*model.APICredentials, error) {
	if t.signer == nil {
		return nil, ErrReadOnlyMode
	}

	headers, err := auth.BuildL1Headers(t.signer, time.Now().Unix(), 0)
	if err != nil {
		return nil, err
	}
	creds, createErr := t.CreateAPIKey(ctx, headers)
	if createErr == nil {
		return creds, nil
	}
	t.logger.WithError(createErr).Debug("创建 API Key 失败，尝试派生")

	headers, err = auth.BuildL1Headers(t.signer, time.Now().Unix(), 0)
	if err != nil {
		return nil, err
	}
	creds, deriveErr := t.DeriveAPIKey(ctx, headers)
	if deriveErr != nil {
		return nil, fmt.Errorf("create api key: %v; derive api key: %w", createErr, deriveErr)
	}
	return creds, nil
}

// bindSigningIdentity 把签名类型与资金地址带到 SDK 客户端，下单时据此决定 maker 与签名方式
func (t *TradingClient) bindSigningIdentity(c clob.Client) clob.Client {
	return c.WithSignatureType(auth.SignatureType(t.SignatureType())).
		WithFunder(common.HexToAddress(t.Funder()))
}

// Mode 凭证模式
func (t *TradingClient) Mode() Mode {
	return t.mode
}

// CredentialsReady API 凭证是否已就绪
func (t *TradingClient) CredentialsReady() bool {
	return t.creds != nil && t.authedCLOB != nil
}

// SignatureType 订单签名类型（仅签名模式有意义）
func (t *TradingClient) SignatureType() int {
	return t.signatureType
}

// Funder 资金地址：代理模式为代理钱包，EOA 模式为签名地址
func (t *TradingClient) Funder() string {
	return t.funder
}

// ChainID 链 ID
func (t *TradingClient) ChainID() int64 {
	return t.chainID
}

// Status 供健康检查使用
func (t *TradingClient) Status() model.ClientStatus {
	return model.ClientStatus{Mode: string(t.mode), CredentialsReady: t.CredentialsReady()}
}

// AuthenticatedCLOB 返回可执行写操作的 SDK 客户端；只读模式或凭证未就绪时返回错误
func (t *TradingClient) AuthenticatedCLOB() (clob.Client, error) {
	if t.mode == ModeReadOnly {
		return nil, ErrReadOnlyMode
	}
	if t.authedCLOB == nil {
		return nil, ErrCredentialsUnavailable
	}
	return t.authedCLOB, nil
}
