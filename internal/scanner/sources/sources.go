package sources

import (
	"strings"

	"github.com/aihub/storescan-go/internal/scanner"
)

// joinSections 拼接非空文本段落
func joinSections(sections ...string) string {
	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, "\n\n")
}

// itemLanguage 内容自带语言标签时优先使用，否则用解析器的当前语言
func itemLanguage(own string, lang scanner.LanguageResolver) string {
	if own != "" {
		return own
	}
	return lang.CurrentLanguage()
}
