package store

import (
	"context"
	"errors"

	"tiger-talk/server/internal/model"
)

// ErrNotFound 表示按 ID 查找的用户/会话不存在。
var ErrNotFound = errors.New("not found")

// Store 是会话与消息的持久化协作方。
// 契约：
// - ListTurns 按插入顺序返回，SaveTurn 的时间戳在同一会话内单调递增。
// - 所有按 ID 的查找在目标不存在时返回 ErrNotFound。
// - 返回的切片是副本，调用方可以随意修改。
type Store interface {
	GetUser(ctx context.Context, userID int64) (model.User, error)

	CreateConversation(ctx context.Context, userID int64, scenario, difficulty, title string) (model.Conversation, error)
	GetConversation(ctx context.Context, id int64) (model.Conversation, error)
	ListConversations(ctx context.Context, userID int64) ([]model.Conversation, error)
	DeleteConversation(ctx context.Context, id int64) error

	SaveTurn(ctx context.Context, conversationID int64, content, role string) (model.Turn, error)
	ListTurns(ctx context.Context, conversationID int64) ([]model.Turn, error)
	CountTurns(ctx context.Context, conversationID int64) (int, error)
}
