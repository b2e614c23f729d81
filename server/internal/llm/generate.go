package llm

import (
	"context"

	"tiger-talk/server/internal/prompt"
)

// historyLimit 是单次请求允许携带的历史消息上限。
// 编排器在取窗口时已经裁剪过一次，这里再裁一次，
// 保证即使调用方传入超长历史，出站请求也是有界的。
const historyLimit = 10

// PlaceholderRepeat 在响应形状不符（没有补全内容）时作为回复兜底。
const PlaceholderRepeat = "죄송해요, 다시 말해 주세요."

// 生成回复的采样配置。可调常量，不是行为契约。
var generateOptions = Options{
	Temperature: 0.7,
	TopP:        0.85,
	MaxTokens:   120,
}

// Generator 负责把用户输入、场景指令与历史窗口拼成消息序列并发起生成。
type Generator struct {
	client Client
}

func NewGenerator(client Client) *Generator {
	return &Generator{client: client}
}

// Generate 生成一条韩语回复。
// 消息顺序固定：system 指令 → 历史（最多 10 条，保持原序）→ 当前用户输入。
// 失败返回包装了 ErrUnavailable 的错误，由编排器决定是否兜底。
func (g *Generator) Generate(ctx context.Context, userText, scenario, difficulty string, history []Message) (string, error) {
	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{Role: "system", Content: prompt.Compose(scenario, difficulty)})

	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}
	messages = append(messages, history...)
	messages = append(messages, Message{Role: "user", Content: userText})

	text, err := g.client.Complete(ctx, messages, generateOptions)
	if err != nil {
		return "", err
	}
	if text == "" {
		return PlaceholderRepeat, nil
	}
	return text, nil
}
