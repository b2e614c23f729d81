package llm

import (
	"context"
	"math/rand"
	"strings"
	"time"
)

// mockRule 是一条关键词匹配规则，按声明顺序尝试。
type mockRule struct {
	keywords []string
	reply    string
}

// mockRules 按场景固定的关键词应答表。与 prompt 的场景表一样，
// 新增场景只是加一条数据。
var mockRules = map[string][]mockRule{
	"restaurant": {
		{keywords: []string{"메뉴", "추천"}, reply: "오늘 김치찌개가 정말 맛있어요! 매운 거 괜찮으세요? 😊"},
		{keywords: []string{"안녕"}, reply: "어서오세요! 몇 분이세요? 😊"},
		{keywords: []string{"주문"}, reply: "네, 뭘 드시고 싶으세요?"},
	},
	"shopping": {
		{keywords: []string{"얼마"}, reply: "3만 5천원이에요. 지금 30% 할인 중이에요! 👕"},
		{keywords: []string{"안녕"}, reply: "어서오세요! 구경하세요. 😊"},
	},
	"direction": {
		{keywords: []string{"어디", "가"}, reply: "지하철로 20분 정도 걸려요! 🚇"},
		{keywords: []string{"안녕"}, reply: "네, 어디 가시려고요? 😊"},
	},
	"introduction": {
		{keywords: []string{"안녕"}, reply: "안녕하세요! 만나서 반가워요. 이름이 어떻게 되세요? 😊"},
		{keywords: []string{"이름"}, reply: "저는 지혜예요. 반가워요! 😊"},
	},
	"daily": {
		{keywords: []string{"안녕"}, reply: "안녕하세요! 오늘 어때요? 😊"},
		{keywords: []string{"날씨"}, reply: "네, 오늘 날씨 정말 좋아요! 🌤️"},
	},
}

// mockDefaults 是各场景关键词都不命中时的通用应答。
var mockDefaults = map[string]string{
	"restaurant":   "네, 말씀하세요! 😊",
	"shopping":     "네, 도와드릴게요! 😊",
	"direction":    "어디로 가시려고 하세요? 😊",
	"introduction": "그렇군요! 한국은 어때요? 😊",
	"daily":        "그렇군요! 재미있어요. 😊",
}

// mockGenericReply 在场景未识别时兜底。
const mockGenericReply = "네, 그렇군요! 😊"

// MockResponder 是生成能力关闭或失败时的本地确定性兜底。
// 回复只由 (userText, scenario) 决定；difficulty 参与签名以对齐生成路径的契约，
// 当前应答表不区分难度。
type MockResponder struct {
	// 人为延迟区间，模拟调用方观察到的网络时延。测试可置零。
	MinDelay time.Duration
	MaxDelay time.Duration
}

func NewMockResponder() *MockResponder {
	return &MockResponder{
		MinDelay: 800 * time.Millisecond,
		MaxDelay: 2000 * time.Millisecond,
	}
}

// Respond 返回关键词驱动的确定性回复。
// 延迟用 select 挂起而不是 time.Sleep，ctx 取消即提前返回，
// 不占用 worker、也不会拖慢其它会话的编排。
func (m *MockResponder) Respond(ctx context.Context, userText, scenario, difficulty string) string {
	_ = difficulty

	if d := m.delay(); d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
		}
	}

	message := strings.ToLower(userText)
	for _, rule := range mockRules[scenario] {
		for _, kw := range rule.keywords {
			if strings.Contains(message, kw) {
				return rule.reply
			}
		}
	}
	if reply, ok := mockDefaults[scenario]; ok {
		return reply
	}
	return mockGenericReply
}

func (m *MockResponder) delay() time.Duration {
	if m.MaxDelay <= m.MinDelay {
		return m.MinDelay
	}
	return m.MinDelay + time.Duration(rand.Int63n(int64(m.MaxDelay-m.MinDelay)))
}
