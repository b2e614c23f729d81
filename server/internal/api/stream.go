package api

import (
	"errors"
	"log"
	"net/http"
	"sync"

	"tiger-talk/server/internal/model"
	"tiger-talk/server/internal/store"

	"github.com/gin-gonic/gin"
)

// streamHub 维护各会话的 WebSocket 订阅者。
// 推送的是完整的轮次结果，不是逐 token 流。
type streamHub struct {
	mu   sync.RWMutex
	subs map[int64]map[chan model.GeneratedPair]struct{}
}

func newStreamHub() *streamHub {
	return &streamHub{subs: make(map[int64]map[chan model.GeneratedPair]struct{})}
}

// Subscribe 订阅某个会话的轮次推送，返回接收通道与退订函数。
func (h *streamHub) Subscribe(conversationID int64) (<-chan model.GeneratedPair, func()) {
	ch := make(chan model.GeneratedPair, 8)

	h.mu.Lock()
	if h.subs[conversationID] == nil {
		h.subs[conversationID] = make(map[chan model.GeneratedPair]struct{})
	}
	h.subs[conversationID][ch] = struct{}{}
	h.mu.Unlock()

	return ch, func() {
		h.mu.Lock()
		if set, ok := h.subs[conversationID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(h.subs, conversationID)
			}
		}
		h.mu.Unlock()
	}
}

// Publish 把完成的轮次推给该会话的所有订阅者。
// 订阅者通道已满则丢弃，绝不阻塞编排路径。
func (h *streamHub) Publish(conversationID int64, pair model.GeneratedPair) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs[conversationID] {
		select {
		case ch <- pair:
		default:
		}
	}
}

// handleStream 升级为 WebSocket，把该会话后续完成的轮次实时推给客户端。
func (s *Server) handleStream(c *gin.Context) {
	id, ok := s.conversationID(c)
	if !ok {
		return
	}

	// 先验证会话存在，再升级连接。
	if _, err := s.orchestrator.ListMessages(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load conversation failed"})
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[API] upgrade websocket failed: %v", err)
		return
	}
	defer conn.Close()

	pairs, unsubscribe := s.hub.Subscribe(id)
	defer unsubscribe()
	log.Printf("[API] stream subscribed: conversation=%d", id)

	// 读泵只用于感知客户端断开。
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case pair := <-pairs:
			if err := conn.WriteJSON(pair); err != nil {
				log.Printf("[API] stream write failed: conversation=%d err=%v", id, err)
				return
			}
		case <-closed:
			log.Printf("[API] stream closed: conversation=%d", id)
			return
		}
	}
}
