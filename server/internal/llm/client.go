package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"tiger-talk/server/internal/config"
)

// ErrUnavailable 表示生成能力不可用：网络、鉴权、超时或响应不可解析。
// 编排器据此切换到本地兜底回复，绝不把该错误暴露给调用方。
var ErrUnavailable = errors.New("generation unavailable")

// Client LLM 客户端接口
type Client interface {
	// Complete 完成一次对话补全。
	// 响应可解析但没有 choices / content 为空时返回 ("", nil)，
	// 由上层决定各自的占位文案；传输层失败一律包装 ErrUnavailable。
	Complete(ctx context.Context, messages []Message, opts Options) (string, error)
}

// Message 消息结构
type Message struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// Options 单次调用的采样配置。TopP 为 0 时不下发该字段。
type Options struct {
	Temperature float64
	TopP        float64
	MaxTokens   int
}

// GroqClient 调用 Groq 的 OpenAI 兼容 chat/completions 接口。
type GroqClient struct {
	config     config.GroqConfig
	httpClient *http.Client
}

// NewGroqClient 创建 Groq 客户端
func NewGroqClient(cfg config.GroqConfig) *GroqClient {
	return &GroqClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Complete 完成文本生成（Groq）
func (c *GroqClient) Complete(ctx context.Context, messages []Message, opts Options) (string, error) {
	reqBody := map[string]any{
		"model":       c.config.Model,
		"messages":    messages,
		"temperature": opts.Temperature,
		"max_tokens":  opts.MaxTokens,
	}
	if opts.TopP > 0 {
		reqBody["top_p"] = opts.TopP
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %v", ErrUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.config.APIURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: create request: %v", ErrUnavailable, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: API error (status %d): %s", ErrUnavailable, resp.StatusCode, string(respBody))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("%w: unmarshal response: %v", ErrUnavailable, err)
	}

	// 形状不符（没有 choices）不算失败，交给上层出占位文案。
	if len(result.Choices) == 0 {
		return "", nil
	}
	return result.Choices[0].Message.Content, nil
}
