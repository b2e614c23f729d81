package prompt

import (
	"strings"
	"testing"
)

// TestComposeOrdersBlocks 验证指令由规则块、场景块、难度块三段按序组成。
// 场景：restaurant + beginner，三段都应出现且顺序正确。
func TestComposeOrdersBlocks(t *testing.T) {
	out := Compose("restaurant", "beginner")

	rulesIdx := strings.Index(out, "핵심 규칙")
	scenarioIdx := strings.Index(out, "한국 레스토랑 직원")
	levelIdx := strings.Index(out, "난이도: 초급")

	if rulesIdx < 0 || scenarioIdx < 0 || levelIdx < 0 {
		t.Fatalf("missing block: rules=%d scenario=%d level=%d", rulesIdx, scenarioIdx, levelIdx)
	}
	if !(rulesIdx < scenarioIdx && scenarioIdx < levelIdx) {
		t.Fatalf("blocks out of order: rules=%d scenario=%d level=%d", rulesIdx, scenarioIdx, levelIdx)
	}
}

// TestComposeIsDeterministic 验证相同输入产出逐字节相同的文本。
func TestComposeIsDeterministic(t *testing.T) {
	a := Compose("shopping", "advanced")
	b := Compose("shopping", "advanced")
	if a != b {
		t.Fatalf("expected identical output for identical inputs")
	}
}

// TestComposeUnknownScenarioFallsBack 验证未识别场景落到通用对话块而非报错。
func TestComposeUnknownScenarioFallsBack(t *testing.T) {
	out := Compose("space-station", "beginner")
	if !strings.Contains(out, "한국인과 일반 대화") {
		t.Fatalf("expected generic scenario block, got:\n%s", out)
	}
}

// TestComposeUnknownDifficultyFallsBackToIntermediate 验证未识别难度默认中级。
func TestComposeUnknownDifficultyFallsBackToIntermediate(t *testing.T) {
	out := Compose("daily", "impossible")
	if !strings.Contains(out, "난이도: 중급") {
		t.Fatalf("expected intermediate difficulty block, got:\n%s", out)
	}
}

// TestComposeRulesIdenticalAcrossInputs 验证规则块不随场景/难度变化。
func TestComposeRulesIdenticalAcrossInputs(t *testing.T) {
	a := Compose("restaurant", "beginner")
	b := Compose("direction", "advanced")

	rulesA := a[:strings.Index(a, "\n\n상황:")]
	rulesB := b[:strings.Index(b, "\n\n상황:")]
	if rulesA != rulesB {
		t.Fatalf("rules block should be identical across scenarios")
	}
}

// TestTitleComposition 验证标题由场景名与难度标注组成。
func TestTitleComposition(t *testing.T) {
	if got := Title("restaurant", "beginner"); got != "식당에서 주문하기 (초급)" {
		t.Fatalf("unexpected title: %q", got)
	}
	if got := Title("nope", "intermediate"); got != "한국어 대화 (중급)" {
		t.Fatalf("unexpected fallback title: %q", got)
	}
	if got := Title("daily", "nope"); got != "일상 대화" {
		t.Fatalf("unexpected title without difficulty label: %q", got)
	}
}
