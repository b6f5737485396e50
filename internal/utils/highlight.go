package utils

import (
	"html/template"
	"sort"
	"strings"
)

// Highlighter 把文本中命中的搜索关键词用 span 标签包裹，
// 前端据 class 设置高亮样式。对长文本只保留首个命中处附近的片段。
type Highlighter struct {
	terms     []string
	maxLength int
	cssClass  string
}

func NewHighlighter(query string) *Highlighter {
	return &Highlighter{
		terms:     strings.Fields(strings.ToLower(query)),
		maxLength: 200,
		cssClass:  "highlighted",
	}
}

type match struct {
	start, end int
}

// Highlight 返回高亮后的 HTML 片段，原文会先做 HTML 转义
func (h *Highlighter) Highlight(text string) string {
	runes := []rune(text)
	lower := []rune(strings.ToLower(text))
	if len(lower) != len(runes) {
		// 个别字符大小写转换后长度不一致，放弃大小写折叠
		lower = runes
	}

	matches := h.findMatches(lower)
	if len(matches) == 0 {
		return template.HTMLEscapeString(h.truncate(string(runes)))
	}

	// 片段从第一处命中开始，限制最大长度
	start := matches[0].start
	end := len(runes)
	if end-start > h.maxLength {
		end = start + h.maxLength
	}

	var sb strings.Builder
	if start > 0 {
		sb.WriteString("...")
	}
	pos := start
	for _, m := range matches {
		if m.start >= end {
			break
		}
		if m.end > end {
			m.end = end
		}
		sb.WriteString(template.HTMLEscapeString(string(runes[pos:m.start])))
		sb.WriteString(`<span class="` + h.cssClass + `">`)
		sb.WriteString(template.HTMLEscapeString(string(runes[m.start:m.end])))
		sb.WriteString(`</span>`)
		pos = m.end
	}
	sb.WriteString(template.HTMLEscapeString(string(runes[pos:end])))
	if end < len(runes) {
		sb.WriteString("...")
	}
	return sb.String()
}

func (h *Highlighter) truncate(s string) string {
	runes := []rune(s)
	if len(runes) > h.maxLength {
		return string(runes[:h.maxLength]) + "..."
	}
	return s
}

// findMatches 收集全部命中的区间并合并重叠部分
func (h *Highlighter) findMatches(lower []rune) []match {
	text := string(lower)
	var all []match
	for _, term := range h.terms {
		if term == "" {
			continue
		}
		offset := 0
		rest := text
		for {
			i := strings.Index(rest, term)
			if i < 0 {
				break
			}
			start := offset + len([]rune(rest[:i]))
			all = append(all, match{start: start, end: start + len([]rune(term))})
			rest = rest[i+len(term):]
			offset = start + len([]rune(term))
		}
	}
	if len(all) == 0 {
		return nil
	}
	sort.Slice(all, func(i, j int) bool { return all[i].start < all[j].start })

	merged := all[:1]
	for _, m := range all[1:] {
		last := &merged[len(merged)-1]
		if m.start <= last.end {
			if m.end > last.end {
				last.end = m.end
			}
			continue
		}
		merged = append(merged, m)
	}
	return merged
}
