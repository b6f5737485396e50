package utils

import (
	"strings"
	"testing"
)

func TestHighlightWrapsKeyword(t *testing.T) {
	h := NewHighlighter("golang")
	got := h.Highlight("Learning Golang the hard way")
	want := `Learning <span class="highlighted">Golang</span> the hard way`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestHighlightMultipleTermsAndOccurrences(t *testing.T) {
	h := NewHighlighter("go web")
	got := h.Highlight("go go gadget web")
	if strings.Count(got, `<span class="highlighted">`) != 3 {
		t.Errorf("expected 3 highlighted spans, got %q", got)
	}
}

func TestHighlightEscapesHTML(t *testing.T) {
	h := NewHighlighter("script")
	got := h.Highlight(`<script>alert(1)</script>`)
	if strings.Contains(got, "<script>") {
		t.Errorf("raw HTML leaked through: %q", got)
	}
	if !strings.Contains(got, `<span class="highlighted">script</span>`) {
		t.Errorf("keyword not highlighted: %q", got)
	}
}

func TestHighlightFragmentStartsAtFirstMatch(t *testing.T) {
	body := strings.Repeat("填充内容", 30) + "关键词出现在很靠后的位置" + strings.Repeat("尾部", 200)
	h := NewHighlighter("关键词")
	got := h.Highlight(body)
	if !strings.HasPrefix(got, "...") {
		t.Errorf("expected leading ellipsis, got %q", got[:30])
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected trailing ellipsis")
	}
	if !strings.Contains(got, `<span class="highlighted">关键词</span>`) {
		t.Errorf("keyword not highlighted: %q", got)
	}
}

func TestHighlightNoMatchTruncates(t *testing.T) {
	h := NewHighlighter("missing")
	long := strings.Repeat("a", 500)
	got := h.Highlight(long)
	if len(got) > 210 {
		t.Errorf("expected truncated output, got len %d", len(got))
	}
}
