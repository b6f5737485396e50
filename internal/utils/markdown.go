package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

var (
	mdParser = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)
	policy = bluemonday.UGCPolicy()
)

func init() {
	// Allow images
	policy.AllowImages()
	// 标题上的 id 用作目录锚点
	policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	// Force links to open in new tab
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	// Add noopener or noreferrer and follow security best practices
	policy.RequireNoReferrerOnLinks(true)
}

// RenderMarkdown 渲染 Markdown 正文为净化后的 HTML
func RenderMarkdown(source string) template.HTML {
	body, _ := RenderMarkdownWithTOC(source)
	return body
}

// RenderMarkdownWithTOC 渲染正文并同时抽取目录。
// 目录为 HTML 片段，每个条目由 li 标签包裹并链接到标题锚点。
func RenderMarkdownWithTOC(source string) (template.HTML, string) {
	src := []byte(source)
	reader := text.NewReader(src)
	doc := mdParser.Parser().Parse(reader)

	var buf bytes.Buffer
	if err := mdParser.Renderer().Render(&buf, src, doc); err != nil {
		return template.HTML(source), "" // Fallback
	}

	// Sanitize HTML
	sanitized := policy.SanitizeBytes(buf.Bytes())

	return EnhanceHTMLContent(string(sanitized)), buildTOC(doc, src)
}

// buildTOC 遍历 AST 中的标题节点，生成 li 列表
func buildTOC(doc ast.Node, src []byte) string {
	var sb strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		title := string(heading.Text(src))
		id := ""
		if v, found := heading.AttributeString("id"); found {
			if b, ok := v.([]byte); ok {
				id = string(b)
			}
		}
		sb.WriteString(fmt.Sprintf(`<li class="toc-h%d"><a href="#%s">%s</a></li>`,
			heading.Level, template.HTMLEscapeString(id), template.HTMLEscapeString(title)))
		sb.WriteString("\n")
		return ast.WalkSkipChildren, nil
	})
	return strings.TrimSuffix(sb.String(), "\n")
}

// Excerpt 从 Markdown 正文提取纯文本摘要，长度以 rune 计
func Excerpt(source string, limit int) string {
	body, _ := RenderMarkdownWithTOC(source)
	plain := strings.TrimSpace(bluemonday.StrictPolicy().Sanitize(string(body)))
	plain = strings.Join(strings.Fields(plain), " ")
	runes := []rune(plain)
	if len(runes) > limit {
		return string(runes[:limit]) + "..."
	}
	return plain
}
