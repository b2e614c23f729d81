package llm

import (
	"context"
	"log"
)

// PlaceholderNoTranslation 在翻译失败时返回给前端的占位文案。
const PlaceholderNoTranslation = "(Không dịch được)"

const translateInstruction = "Dịch câu tiếng Hàn sau sang tiếng Việt tự nhiên, chỉ trả về bản dịch, không giải thích:\n\n"

// 翻译要求准确而非多样，采样比生成更保守。
var translateOptions = Options{
	Temperature: 0.2,
	MaxTokens:   150,
}

// Translator 把已生成的韩语文本二次送入同一生成能力做越南语翻译。
type Translator struct {
	client Client
}

func NewTranslator(client Client) *Translator {
	return &Translator{client: client}
}

// Translate 翻译一段韩语文本。翻译失败不致命：
// 任何错误或空响应都折叠为固定占位文案，绝不向上传播。
func (t *Translator) Translate(ctx context.Context, koreanText string) string {
	messages := []Message{
		{Role: "user", Content: translateInstruction + koreanText},
	}

	result, err := t.client.Complete(ctx, messages, translateOptions)
	if err != nil {
		log.Printf("[Translator] translate failed: %v", err)
		return PlaceholderNoTranslation
	}
	if result == "" {
		return PlaceholderNoTranslation
	}
	return result
}
