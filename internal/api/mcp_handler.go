package api

import (
	"net/http"
	"strings"

	"PolymarketMCP/internal/mcp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const sessionIDHeader = "Mcp-Session-Id"

// MCPHandler MCP JSON-RPC over HTTP POST。Accept 含 text/event-stream 时以单个 SSE 事件返回，否则返回 JSON
type MCPHandler struct {
	server *mcp.Server
	logger *logrus.Logger
}

func NewMCPHandler(server *mcp.Server, logger *logrus.Logger) *MCPHandler {
	return &MCPHandler{
		server: server,
		logger: logger,
	}
}

// Post POST {mcp.path}
func (h *MCPHandler) Post(c *gin.Context) {
	requestID := c.GetString(requestIDKey)
	stream := wantsEventStream(c.GetHeader("Accept"))

	req, err := mcp.ParseJSONRPCRequest(c.Request.Body)
	if err != nil {
		rpcErr := mcp.FormatMCPError(err)
		h.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"code":       rpcErr.Code,
		}).Warn("MCP 请求解析失败")
		h.write(c, stream, mcp.HTTPStatusFromError(rpcErr), mcp.NewJSONRPCError(nil, rpcErr.Code, rpcErr.Message, rpcErr.Data))
		return
	}

	resp := h.server.Handle(c.Request.Context(), req, requestID)
	if resp == nil {
		c.Status(http.StatusAccepted)
		return
	}
	if req.Method == "initialize" && resp.Error == nil {
		c.Header(sessionIDHeader, uuid.NewString())
	}
	h.write(c, stream, http.StatusOK, resp)
}

// NotAllowed 不提供服务端推送流与会话删除
func (h *MCPHandler) NotAllowed(c *gin.Context) {
	c.Header("Allow", http.MethodPost)
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
}

func (h *MCPHandler) write(c *gin.Context, stream bool, status int, resp *mcp.JSONRPCResponse) {
	if !stream {
		c.JSON(status, resp)
		return
	}
	c.Status(status)
	sse := mcp.NewSSEWriter(c.Writer)
	var err error
	if resp.Error != nil {
		err = sse.SendError(resp.ID, resp.Error.Code, resp.Error.Message, resp.Error.Data)
	} else {
		err = sse.SendResult(resp.ID, resp.Result)
	}
	if err != nil {
		h.logger.WithError(err).WithField("request_id", c.GetString(requestIDKey)).Error("SSE 写出失败")
	}
}

func wantsEventStream(accept string) bool {
	return strings.Contains(accept, "text/event-stream")
}
