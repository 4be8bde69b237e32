package llm

import "strings"

const fence = "```"

// StripCodeFences 去掉模型回复外层的 ``` 代码块标记（含 ```json 之类的语言标注）
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, fence) {
		return s
	}
	s = s[len(fence):]
	if end := strings.Index(s, fence); end >= 0 {
		s = s[:end]
	}
	// 首行若只有语言标注则丢弃
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		first := strings.TrimSpace(s[:nl])
		if first != "" && !strings.ContainsAny(first, "{[\"") {
			s = s[nl+1:]
		}
	}
	return strings.TrimSpace(s)
}
