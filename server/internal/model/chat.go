package model

import "time"

// 消息角色常量。生成侧在持久层统一存 "ai"（沿用前端既有的线上格式），
// 只有在拼接 LLM 上下文时才映射为 "assistant"。
const (
	RoleUser = "user"
	RoleAI   = "ai"
)

// 场景与难度的取值集合。未识别的值不报错，走各自的默认档。
const (
	ScenarioRestaurant   = "restaurant"
	ScenarioShopping     = "shopping"
	ScenarioDirection    = "direction"
	ScenarioIntroduction = "introduction"
	ScenarioDaily        = "daily"

	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// User 表示一个学习者账号。身份体系由外部负责，这里只保留查找所需的最小字段。
type User struct {
	UserID   int64  `json:"user_id"`
	Nickname string `json:"nickname"`
}

// Conversation 表示一次场景会话。Scenario/Difficulty 一经创建不再变化。
type Conversation struct {
	ConversationID int64     `json:"conversation_id"`
	UserID         int64     `json:"user_id"`
	Title          string    `json:"title"`
	Scenario       string    `json:"scenario"`
	Difficulty     string    `json:"difficulty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Turn 表示会话中的一条消息。创建后不可变；
// 同一会话内 CreatedAt 单调递增，排序即插入序。
type Turn struct {
	TurnID         int64     `json:"turn_id"`
	ConversationID int64     `json:"conversation_id"`
	Content        string    `json:"content"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}

// ConversationSummary 是返回给前端的会话列表项。
type ConversationSummary struct {
	ConversationID int64     `json:"conversation_id"`
	UserID         int64     `json:"user_id"`
	Title          string    `json:"title"`
	Scenario       string    `json:"scenario"`
	Difficulty     string    `json:"difficulty"`
	CreatedAt      time.Time `json:"created_at"`
	MessageCount   int       `json:"message_count"`
}

// MessageView 是返回给前端的消息视图。
// Translation 恒定序列化：没有译文时输出 null，而不是省略字段，
// 前端据此区分“没有译文”和“旧版本没有该字段”。
type MessageView struct {
	MessageID      int64     `json:"message_id"`
	ConversationID int64     `json:"conversation_id"`
	Content        string    `json:"content"`
	Role           string    `json:"role"`
	Timestamp      time.Time `json:"timestamp"`
	Translation    *string   `json:"translation"`
}

// GeneratedPair 是一次完整轮次的产出：刚保存的用户消息 + 生成的回复（含译文）。
type GeneratedPair struct {
	UserMessage MessageView `json:"user_message"`
	AIMessage   MessageView `json:"ai_message"`
}

// ViewOf 把持久化的 Turn 转成前端视图。译文由调用方按策略补上。
func ViewOf(t Turn, translation *string) MessageView {
	return MessageView{
		MessageID:      t.TurnID,
		ConversationID: t.ConversationID,
		Content:        t.Content,
		Role:           t.Role,
		Timestamp:      t.CreatedAt,
		Translation:    translation,
	}
}
