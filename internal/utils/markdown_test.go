package utils

import (
	"strings"
	"testing"
)

func TestRenderMarkdownSanitizes(t *testing.T) {
	body := RenderMarkdown("hello <script>alert(1)</script> world")
	if strings.Contains(string(body), "<script>") {
		t.Errorf("script tag survived sanitization: %s", body)
	}
}

func TestRenderMarkdownWithTOC(t *testing.T) {
	src := "# 标题一\n\n正文\n\n## 小节\n\n更多正文"
	body, toc := RenderMarkdownWithTOC(src)

	if !strings.Contains(string(body), "<h1") || !strings.Contains(string(body), "<h2") {
		t.Fatalf("headings missing from body: %s", body)
	}
	if !strings.Contains(toc, "<li") {
		t.Fatalf("toc entries should be wrapped in li tags: %s", toc)
	}
	if !strings.Contains(toc, `href="#`) {
		t.Errorf("toc entries should link to heading anchors: %s", toc)
	}
	if !strings.Contains(toc, "标题一") || !strings.Contains(toc, "小节") {
		t.Errorf("toc missing heading titles: %s", toc)
	}
}

func TestExcerpt(t *testing.T) {
	got := Excerpt("# Title\n\n"+strings.Repeat("word ", 100), 20)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected truncated excerpt, got %q", got)
	}
	if strings.Contains(got, "<") {
		t.Errorf("excerpt should be plain text, got %q", got)
	}
	if len([]rune(got)) != 23 {
		t.Errorf("expected 20 runes plus ellipsis, got %d", len([]rune(got)))
	}
}
