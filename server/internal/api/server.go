package api

import (
	"errors"
	"net/http"
	"strconv"

	"tiger-talk/server/internal/chat"
	"tiger-talk/server/internal/config"
	"tiger-talk/server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type Server struct {
	config       *config.Config
	orchestrator *chat.Orchestrator

	// hub 管理各会话的 WebSocket 订阅者，轮次完成后推送结果。
	hub *streamHub

	upgrader websocket.Upgrader
}

func NewServer(cfg *config.Config, orchestrator *chat.Orchestrator) *Server {
	return &Server{
		config:       cfg,
		orchestrator: orchestrator,
		hub:          newStreamHub(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// 开发期允许本地跨域，生产环境应改为白名单
				origin := r.Header.Get("Origin")
				return origin == "" || origin == "http://localhost:5173" || origin == "http://127.0.0.1:5173"
			},
		},
	}
}

func (s *Server) Routes() http.Handler {
	// Gin 统一承载中间件与路由，便于扩展日志/鉴权/限流等能力。
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), s.corsMiddleware())
	engine.GET("/healthz", s.handleHealthz)
	engine.POST("/api/chat/conversations", s.handleCreateConversation)
	engine.GET("/api/chat/conversations", s.handleListConversations)
	engine.GET("/api/chat/conversations/:id/messages", s.handleListMessages)
	engine.POST("/api/chat/conversations/:id/messages", s.handleSendMessage)
	engine.DELETE("/api/chat/conversations/:id", s.handleDeleteConversation)
	engine.GET("/api/chat/conversations/:id/stream", s.handleStream)
	return engine
}

// handleHealthz 返回服务健康状态。
func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type createConversationRequest struct {
	UserID     int64  `json:"user_id"`
	Scenario   string `json:"scenario"`
	Difficulty string `json:"difficulty"`
}

// handleCreateConversation 创建一个场景会话。
func (s *Server) handleCreateConversation(c *gin.Context) {
	var req createConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.UserID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id required"})
		return
	}

	summary, err := s.orchestrator.CreateConversation(c.Request.Context(), req.UserID, req.Scenario, req.Difficulty)
	if err != nil {
		s.writeError(c, err, "create conversation failed")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// handleListConversations 返回某个用户的会话列表。
func (s *Server) handleListConversations(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id required"})
		return
	}

	summaries, err := s.orchestrator.ListConversations(c.Request.Context(), userID)
	if err != nil {
		s.writeError(c, err, "list conversations failed")
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// handleListMessages 返回会话的全部消息。
func (s *Server) handleListMessages(c *gin.Context) {
	id, ok := s.conversationID(c)
	if !ok {
		return
	}

	views, err := s.orchestrator.ListMessages(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err, "list messages failed")
		return
	}
	c.JSON(http.StatusOK, views)
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

// handleSendMessage 处理一轮对话，返回 (用户消息, 生成消息+译文) 对。
func (s *Server) handleSendMessage(c *gin.Context) {
	id, ok := s.conversationID(c)
	if !ok {
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content required"})
		return
	}

	pair, err := s.orchestrator.SendMessage(c.Request.Context(), id, req.Content)
	if err != nil {
		s.writeError(c, err, "send message failed")
		return
	}

	// 推给该会话的 WebSocket 订阅者（如果有）。
	s.hub.Publish(id, pair)

	c.JSON(http.StatusOK, pair)
}

// handleDeleteConversation 删除会话及其消息。
func (s *Server) handleDeleteConversation(c *gin.Context) {
	id, ok := s.conversationID(c)
	if !ok {
		return
	}

	if err := s.orchestrator.DeleteConversation(c.Request.Context(), id); err != nil {
		s.writeError(c, err, "delete conversation failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) conversationID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
		return 0, false
	}
	return id, true
}

// writeError 统一错误映射：缺失 ID → 404，其余 → 500。
// 详细错误只进服务端日志，返回给前端的信息保持简洁，避免误泄漏。
func (s *Server) writeError(c *gin.Context, err error, msg string) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

func (s *Server) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		// 开发期：允许本地 Vite；线上应改为白名单或同源。
		if origin == "http://localhost:5173" || origin == "http://127.0.0.1:5173" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
