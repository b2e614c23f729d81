// Package sanitize 清理 LLM 原始输出中的生成痕迹：
// 括号内的旁白、方括号舞台提示、泄漏的角色前缀。
package sanitize

import (
	"regexp"
	"strings"
)

var (
	parenthetical = regexp.MustCompile(`\([^)]*\)`)
	bracketed     = regexp.MustCompile(`\[[^\]]*\]`)
	// rolePrefix 只匹配行首的角色标签，正文里出现的冒号不受影响。
	rolePrefix = regexp.MustCompile(`^(AI|User|당신|상대방):\s*`)
)

// fallback 在清理后内容为空时兜底，绝不返回空串。
const fallback = "네!"

// Clean 移除生成痕迹并裁剪空白。幂等：对已清理文本再次调用是无操作。
func Clean(text string) string {
	cleaned := parenthetical.ReplaceAllString(text, "")
	cleaned = bracketed.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)
	for {
		next := rolePrefix.ReplaceAllString(cleaned, "")
		if next == cleaned {
			break
		}
		cleaned = strings.TrimSpace(next)
	}
	if cleaned == "" {
		return fallback
	}
	return cleaned
}
