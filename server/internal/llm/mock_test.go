package llm

import (
	"context"
	"testing"
	"time"
)

// zeroDelayMock 返回关闭人为延迟的兜底应答器，测试专用。
func zeroDelayMock() *MockResponder {
	return &MockResponder{MinDelay: 0, MaxDelay: 0}
}

// TestMockResponderKeywordTable 验证各场景的关键词命中与通用应答。
func TestMockResponderKeywordTable(t *testing.T) {
	m := zeroDelayMock()
	ctx := context.Background()

	cases := []struct {
		scenario string
		text     string
		want     string
	}{
		{"restaurant", "메뉴 추천해 주세요", "오늘 김치찌개가 정말 맛있어요! 매운 거 괜찮으세요? 😊"},
		{"restaurant", "안녕하세요", "어서오세요! 몇 분이세요? 😊"},
		{"restaurant", "주문할게요", "네, 뭘 드시고 싶으세요?"},
		{"restaurant", "화장실이 어디예요", "네, 말씀하세요! 😊"},
		{"shopping", "이거 얼마예요?", "3만 5천원이에요. 지금 30% 할인 중이에요! 👕"},
		{"shopping", "멋지네요", "네, 도와드릴게요! 😊"},
		{"direction", "강남역은 어디예요", "지하철로 20분 정도 걸려요! 🚇"},
		{"introduction", "안녕하세요!", "안녕하세요! 만나서 반가워요. 이름이 어떻게 되세요? 😊"},
		{"introduction", "이름이 뭐예요", "저는 지혜예요. 반가워요! 😊"},
		{"daily", "오늘 날씨 어때요", "네, 오늘 날씨 정말 좋아요! 🌤️"},
		{"daily", "심심해요", "그렇군요! 재미있어요. 😊"},
	}

	for _, tc := range cases {
		if got := m.Respond(ctx, tc.text, tc.scenario, "beginner"); got != tc.want {
			t.Fatalf("Respond(%s, %q) = %q, want %q", tc.scenario, tc.text, got, tc.want)
		}
	}
}

// TestMockResponderIsDeterministic 验证相同输入产出相同回复。
func TestMockResponderIsDeterministic(t *testing.T) {
	m := zeroDelayMock()
	ctx := context.Background()

	a := m.Respond(ctx, "안녕", "restaurant", "beginner")
	b := m.Respond(ctx, "안녕", "restaurant", "advanced")
	if a != b {
		t.Fatalf("expected deterministic reply, got %q vs %q", a, b)
	}
}

// TestMockResponderUnknownScenarioFallsBack 验证未识别场景返回通用应答。
func TestMockResponderUnknownScenarioFallsBack(t *testing.T) {
	m := zeroDelayMock()
	if got := m.Respond(context.Background(), "안녕", "space-station", "beginner"); got != mockGenericReply {
		t.Fatalf("expected generic reply, got %q", got)
	}
}

// TestMockResponderDelayHonorsContext 验证延迟挂起可被 ctx 取消提前打断。
// 场景：延迟配置为 10s，取消 ctx 后应立刻返回而不是等满延迟。
func TestMockResponderDelayHonorsContext(t *testing.T) {
	m := &MockResponder{MinDelay: 10 * time.Second, MaxDelay: 10 * time.Second}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_ = m.Respond(ctx, "안녕", "daily", "beginner")
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("expected immediate return on cancelled ctx, took %v", elapsed)
	}
}
