package chat

import (
	"tiger-talk/server/internal/llm"
	"tiger-talk/server/internal/model"
)

// windowSize 是送入生成能力的历史窗口上限。
const windowSize = 10

// historyWindow 把会话的完整消息序列整形为发给 LLM 的历史窗口。
// 约定：turns 的最后一条是刚保存的当前用户消息，必须排除；
// 剩余部分取最近 windowSize 条，保持原有顺序，不足不补。
// 角色归一：持久层的 "user" 保持不变，其余（"ai"）映射为 "assistant"。
func historyWindow(turns []model.Turn) []llm.Message {
	if len(turns) <= 1 {
		return nil
	}

	prior := turns[:len(turns)-1]
	if len(prior) > windowSize {
		prior = prior[len(prior)-windowSize:]
	}

	out := make([]llm.Message, 0, len(prior))
	for _, t := range prior {
		role := "assistant"
		if t.Role == model.RoleUser {
			role = "user"
		}
		out = append(out, llm.Message{Role: role, Content: t.Content})
	}
	return out
}
