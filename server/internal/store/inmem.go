package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"tiger-talk/server/internal/model"
)

// InMemoryStore 是一个基于内存的 Store 实现。
// 第一阶段用内存存储：实现简单、调试方便。
// 注意：重启即丢数据；多实例部署需要替换为 DB 实现。
type InMemoryStore struct {
	mu            sync.RWMutex
	users         map[int64]model.User
	conversations map[int64]model.Conversation
	turns         map[int64][]model.Turn
	nextConvID    int64
	nextTurnID    int64
	now           func() time.Time
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		users:         make(map[int64]model.User),
		conversations: make(map[int64]model.Conversation),
		turns:         make(map[int64][]model.Turn),
		now:           time.Now,
	}
}

// SetClock 替换时间源，仅测试使用。
func (s *InMemoryStore) SetClock(now func() time.Time) {
	s.now = now
}

// PutUser 注册一个用户。身份体系由外部负责，这里只提供种子数据入口。
func (s *InMemoryStore) PutUser(u model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.UserID] = u
}

// GetUser 根据 UserID 获取用户。
func (s *InMemoryStore) GetUser(_ context.Context, userID int64) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return u, nil
}

// CreateConversation 创建一个会话并分配单调递增的 ID。
func (s *InMemoryStore) CreateConversation(_ context.Context, userID int64, scenario, difficulty, title string) (model.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return model.Conversation{}, ErrNotFound
	}

	s.nextConvID++
	conv := model.Conversation{
		ConversationID: s.nextConvID,
		UserID:         userID,
		Title:          title,
		Scenario:       scenario,
		Difficulty:     difficulty,
		CreatedAt:      s.now(),
	}
	s.conversations[conv.ConversationID] = conv
	return conv, nil
}

// GetConversation 根据 ID 获取会话。
func (s *InMemoryStore) GetConversation(_ context.Context, id int64) (model.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.conversations[id]
	if !ok {
		return model.Conversation{}, ErrNotFound
	}
	return conv, nil
}

// ListConversations 返回某个用户的全部会话，按创建时间倒序（新的在前）。
func (s *InMemoryStore) ListConversations(_ context.Context, userID int64) ([]model.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Conversation
	for _, conv := range s.conversations {
		if conv.UserID == userID {
			out = append(out, conv)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ConversationID > out[j].ConversationID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// DeleteConversation 删除会话及其全部消息。
func (s *InMemoryStore) DeleteConversation(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conversations[id]; !ok {
		return ErrNotFound
	}
	delete(s.conversations, id)
	delete(s.turns, id)
	return nil
}

// SaveTurn 追加一条消息。时间戳取存储侧时钟，保证同一会话内单调不减。
func (s *InMemoryStore) SaveTurn(_ context.Context, conversationID int64, content, role string) (model.Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conversations[conversationID]; !ok {
		return model.Turn{}, ErrNotFound
	}

	s.nextTurnID++
	turn := model.Turn{
		TurnID:         s.nextTurnID,
		ConversationID: conversationID,
		Content:        content,
		Role:           role,
		CreatedAt:      s.now(),
	}
	s.turns[conversationID] = append(s.turns[conversationID], turn)
	return turn, nil
}

// ListTurns 返回某个会话的全部消息（按插入顺序）。
// 兼容性：返回切片副本，避免调用方修改内部数据。
func (s *InMemoryStore) ListTurns(_ context.Context, conversationID int64) ([]model.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.conversations[conversationID]; !ok {
		return nil, ErrNotFound
	}

	turns := s.turns[conversationID]
	out := make([]model.Turn, len(turns))
	copy(out, turns)
	return out, nil
}

// CountTurns 返回某个会话的消息数。
func (s *InMemoryStore) CountTurns(_ context.Context, conversationID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.conversations[conversationID]; !ok {
		return 0, ErrNotFound
	}
	return len(s.turns[conversationID]), nil
}
