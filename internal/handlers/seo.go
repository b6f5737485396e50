package handlers

import (
	"fmt"
	"html"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"shulin/internal/db"
	"shulin/internal/models"
	"shulin/internal/utils"

	"github.com/gin-gonic/gin"
)

type SEOHandler struct{}

func NewSEOHandler() *SEOHandler {
	return &SEOHandler{}
}

// getSiteURL 从环境变量获取网站URL,如果未设置则使用默认值
func getSiteURL() string {
	siteURL := os.Getenv("SITE_URL")
	if siteURL == "" {
		siteURL = "http://localhost:8000"
	}
	return siteURL
}

// RobotsTxt 返回robots.txt内容
func (h *SEOHandler) RobotsTxt(c *gin.Context) {
	siteURL := getSiteURL()
	content := fmt.Sprintf(`User-agent: *
Allow: /

# 禁止爬取管理后台
Disallow: /admin/

# 禁止爬取API端点
Disallow: /api/

# Sitemap位置
Sitemap: %s/sitemap.xml

# 爬取延迟(可选,避免服务器压力)
Crawl-delay: 1
`, siteURL)

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.String(http.StatusOK, content)
}

// SitemapXML 动态生成sitemap.xml
func (h *SEOHandler) SitemapXML(c *gin.Context) {
	siteURL := getSiteURL()
	now := time.Now().Format("2006-01-02")

	xml := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
`

	// 1. 首页 - 最高优先级,每天更新
	xml += fmt.Sprintf(`  <url>
    <loc>%s/</loc>
    <lastmod>%s</lastmod>
    <changefreq>daily</changefreq>
    <priority>1.0</priority>
  </url>
`, siteURL, now)

	// 2. 关于页
	xml += fmt.Sprintf(`  <url>
    <loc>%s/about</loc>
    <lastmod>%s</lastmod>
    <changefreq>monthly</changefreq>
    <priority>0.6</priority>
  </url>
`, siteURL, now)

	// 3. 所有分类页面
	var categories []models.Category
	db.DB.Find(&categories)
	for _, cate := range categories {
		xml += fmt.Sprintf(`  <url>
    <loc>%s/categories/%d</loc>
    <lastmod>%s</lastmod>
    <changefreq>weekly</changefreq>
    <priority>0.7</priority>
  </url>
`, siteURL, cate.ID, now)
	}

	// 4. 所有标签页面
	var tags []models.Tag
	db.DB.Find(&tags)
	for _, tag := range tags {
		xml += fmt.Sprintf(`  <url>
    <loc>%s/tags/%d</loc>
    <lastmod>%s</lastmod>
    <changefreq>weekly</changefreq>
    <priority>0.6</priority>
  </url>
`, siteURL, tag.ID, now)
	}

	// 5. 最近的文章详情页(限制500篇,避免sitemap过大)
	var posts []models.Post
	db.DB.Order("created_at DESC").Limit(500).Find(&posts)
	for _, post := range posts {
		lastmod := post.UpdatedAt.Format("2006-01-02")
		// 根据文章新旧程度调整优先级
		daysSinceCreated := time.Since(post.CreatedAt).Hours() / 24
		priority := 0.6
		changefreq := "weekly"

		if daysSinceCreated < 7 {
			priority = 0.8
			changefreq = "daily"
		} else if daysSinceCreated < 30 {
			priority = 0.7
			changefreq = "weekly"
		}

		xml += fmt.Sprintf(`  <url>
    <loc>%s/posts/%d</loc>
    <lastmod>%s</lastmod>
    <changefreq>%s</changefreq>
    <priority>%.1f</priority>
  </url>
`, siteURL, post.ID, lastmod, changefreq, priority)
	}

	xml += `</urlset>`

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.String(http.StatusOK, xml)
}

// RSSFeed 生成RSS 2.0 feed
func (h *SEOHandler) RSSFeed(c *gin.Context) {
	siteURL := getSiteURL()
	now := time.Now()

	// 查询最新20篇文章
	var posts []models.Post
	db.DB.Preload("Author").Preload("Category").Order("created_at DESC").Limit(20).Find(&posts)

	rss := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">
  <channel>
    <title>书林</title>
    <link>` + siteURL + `</link>
    <description>记录技术与生活的个人博客</description>
    <language>zh-CN</language>
    <lastBuildDate>` + now.Format(time.RFC1123Z) + `</lastBuildDate>
    <atom:link href="` + siteURL + `/feed.xml" rel="self" type="application/rss+xml"/>
`

	for _, post := range posts {
		link := fmt.Sprintf("%s/posts/%d", siteURL, post.ID)

		// 按段落截取HTML内容（前3个块级元素）
		content := truncateByParagraph(string(utils.RenderMarkdown(post.Body)), 3)
		content += fmt.Sprintf(`<p><br><a href="%s">点击查看完整内容与评论 →</a></p>`, link)

		title := escapeXML(post.Title)
		author := escapeXML(post.Author.Username)

		// 使用CDATA包装HTML内容
		rss += `    <item>
      <title>` + title + `</title>
      <link>` + link + `</link>
      <description><![CDATA[` + content + `]]></description>
      <author>` + author + `</author>
      <category>` + escapeXML(post.Category.Name) + `</category>
      <pubDate>` + post.CreatedAt.Format(time.RFC1123Z) + `</pubDate>
      <guid isPermaLink="true">` + link + `</guid>
    </item>
`
	}

	rss += `  </channel>
</rss>`

	c.Header("Content-Type", "application/rss+xml; charset=utf-8")
	c.String(http.StatusOK, rss)
}

// escapeXML 转义XML特殊字符
func escapeXML(s string) string {
	// 使用html.EscapeString处理XML转义,它能正确处理中文
	return html.EscapeString(s)
}

// truncateByParagraph 按段落截取HTML，保留前几个完整块级元素
func truncateByParagraph(content string, maxBlocks int) string {
	re := regexp.MustCompile(`(?s)(<(?:p|div|h[1-6]|ul|ol|blockquote|pre)[^>]*>.*?</(?:p|div|h[1-6]|ul|ol|blockquote|pre)>)`)
	matches := re.FindAllString(content, maxBlocks)

	if len(matches) == 0 {
		// 没有匹配到块级元素，回退到纯文本截取
		runes := []rune(stripHTML(content))
		if len(runes) > 300 {
			return string(runes[:300]) + "..."
		}
		return content
	}

	return strings.Join(matches, "\n")
}

// stripHTML 去除HTML标签
func stripHTML(s string) string {
	re := regexp.MustCompile(`<[^>]*>`)
	return re.ReplaceAllString(s, "")
}
