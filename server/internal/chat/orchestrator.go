package chat

import (
	"context"
	"fmt"
	"log"

	"tiger-talk/server/internal/llm"
	"tiger-talk/server/internal/model"
	"tiger-talk/server/internal/prompt"
	"tiger-talk/server/internal/sanitize"
	"tiger-talk/server/internal/store"
)

// Orchestrator 负责一轮对话的端到端编排。
//
// 职责与契约：
// - 用户消息先落库，再做任何生成；落库失败整个操作失败，下游不执行。
// - 生成能力的一切失败（网络/鉴权/超时/形状）都在这里吸收：
//   静默切换到本地兜底回复，调用方只会看到保真度较低的回复，不会看到错误。
// - 同一会话同一时刻至多一个在途编排，避免历史窗口读到并发写入的中间态。
type Orchestrator struct {
	store      store.Store
	generator  *llm.Generator
	translator *llm.Translator
	mock       *llm.MockResponder
	// mockOnly 为 true 时无条件走兜底回复（生成被管理性关闭）。
	mockOnly bool
	locks    *keyedMutex
}

func NewOrchestrator(st store.Store, generator *llm.Generator, translator *llm.Translator, mock *llm.MockResponder, mockOnly bool) *Orchestrator {
	return &Orchestrator{
		store:      st,
		generator:  generator,
		translator: translator,
		mock:       mock,
		mockOnly:   mockOnly,
		locks:      newKeyedMutex(),
	}
}

// CreateConversation 为用户创建一个场景会话，标题由场景与难度推导。
func (o *Orchestrator) CreateConversation(ctx context.Context, userID int64, scenario, difficulty string) (model.ConversationSummary, error) {
	user, err := o.store.GetUser(ctx, userID)
	if err != nil {
		return model.ConversationSummary{}, err
	}

	title := prompt.Title(scenario, difficulty)
	conv, err := o.store.CreateConversation(ctx, user.UserID, scenario, difficulty, title)
	if err != nil {
		return model.ConversationSummary{}, fmt.Errorf("create conversation: %w", err)
	}
	return summaryOf(conv, 0), nil
}

// SendMessage 处理一轮对话：
// 保存用户消息 → 取历史窗口 → 生成（或兜底）→ 清理 → 翻译 → 保存生成消息。
func (o *Orchestrator) SendMessage(ctx context.Context, conversationID int64, content string) (model.GeneratedPair, error) {
	unlock := o.locks.Lock(conversationID)
	defer unlock()

	conv, err := o.store.GetConversation(ctx, conversationID)
	if err != nil {
		return model.GeneratedPair{}, err
	}

	userTurn, err := o.store.SaveTurn(ctx, conversationID, content, model.RoleUser)
	if err != nil {
		return model.GeneratedPair{}, fmt.Errorf("save user turn: %w", err)
	}

	turns, err := o.store.ListTurns(ctx, conversationID)
	if err != nil {
		return model.GeneratedPair{}, fmt.Errorf("load history: %w", err)
	}
	history := historyWindow(turns)

	// 生成或兜底。兜底对调用方静默：不产生部分结果，也不暴露错误。
	raw, genuine := o.generate(ctx, content, conv, history)
	clean := sanitize.Clean(raw)

	// 翻译只跑在真实生成的输出上；兜底回复的译文字段为显式 null。
	var translation *string
	if genuine {
		v := o.translator.Translate(ctx, clean)
		translation = &v
	}

	aiTurn, err := o.store.SaveTurn(ctx, conversationID, clean, model.RoleAI)
	if err != nil {
		return model.GeneratedPair{}, fmt.Errorf("save generated turn: %w", err)
	}

	return model.GeneratedPair{
		UserMessage: model.ViewOf(userTurn, nil),
		AIMessage:   model.ViewOf(aiTurn, translation),
	}, nil
}

// generate 返回原始回复文本与是否来自真实生成。
func (o *Orchestrator) generate(ctx context.Context, content string, conv model.Conversation, history []llm.Message) (string, bool) {
	if o.mockOnly {
		return o.mock.Respond(ctx, content, conv.Scenario, conv.Difficulty), false
	}

	raw, err := o.generator.Generate(ctx, content, conv.Scenario, conv.Difficulty, history)
	if err != nil {
		log.Printf("[Chat] generation failed for conversation %d, falling back: %v", conv.ConversationID, err)
		return o.mock.Respond(ctx, content, conv.Scenario, conv.Difficulty), false
	}
	return raw, true
}

// ListMessages 返回会话的全部消息视图（按时间顺序）。
// 译文不持久化，历史消息的 translation 恒为 null。
func (o *Orchestrator) ListMessages(ctx context.Context, conversationID int64) ([]model.MessageView, error) {
	turns, err := o.store.ListTurns(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	out := make([]model.MessageView, 0, len(turns))
	for _, t := range turns {
		out = append(out, model.ViewOf(t, nil))
	}
	return out, nil
}

// ListConversations 返回用户的会话列表（新的在前），带消息数。
func (o *Orchestrator) ListConversations(ctx context.Context, userID int64) ([]model.ConversationSummary, error) {
	if _, err := o.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	convs, err := o.store.ListConversations(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]model.ConversationSummary, 0, len(convs))
	for _, conv := range convs {
		count, err := o.store.CountTurns(ctx, conv.ConversationID)
		if err != nil {
			return nil, fmt.Errorf("count turns: %w", err)
		}
		out = append(out, summaryOf(conv, count))
	}
	return out, nil
}

// DeleteConversation 删除会话及其消息。
func (o *Orchestrator) DeleteConversation(ctx context.Context, conversationID int64) error {
	return o.store.DeleteConversation(ctx, conversationID)
}

func summaryOf(conv model.Conversation, messageCount int) model.ConversationSummary {
	return model.ConversationSummary{
		ConversationID: conv.ConversationID,
		UserID:         conv.UserID,
		Title:          conv.Title,
		Scenario:       conv.Scenario,
		Difficulty:     conv.Difficulty,
		CreatedAt:      conv.CreatedAt,
		MessageCount:   messageCount,
	}
}
