package handlers

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	"shulin/internal/db"
	"shulin/internal/models"
	"shulin/internal/tree"
	"shulin/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PageHandler 服务端渲染的兜底页面
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

const pagePerPage = 10

// listPage 渲染文章列表页，首页/分类页/标签页/归档页共用
func (h *PageHandler) listPage(c *gin.Context, query *gorm.DB, title string) {
	page := 1
	if p := utils.StringToInt(c.Query("page")); p > 0 {
		page = p
	}

	var total int64
	query.Count(&total)
	totalPages := int((total + pagePerPage - 1) / pagePerPage)
	if totalPages == 0 {
		totalPages = 1
	}

	var posts []models.Post
	query.Preload("Category").Preload("Author").Preload("Tags").
		Order("created_at DESC").
		Limit(pagePerPage).
		Offset((page - 1) * pagePerPage).
		Find(&posts)

	Render(c, http.StatusOK, "blog/index.html", gin.H{
		"Posts":       posts,
		"Title":       title,
		"CurrentPage": page,
		"TotalPages":  totalPages,
	})
}

// Index 首页
func (h *PageHandler) Index(c *gin.Context) {
	h.listPage(c, db.DB.Model(&models.Post{}), "首页")
}

// Category 分类下的文章列表
func (h *PageHandler) Category(c *gin.Context) {
	var cate models.Category
	if err := db.DB.First(&cate, utils.StringToInt(c.Param("id"))).Error; err != nil {
		RenderError(c, http.StatusNotFound, "分类不存在")
		return
	}
	h.listPage(c, db.DB.Model(&models.Post{}).Where("category_id = ?", cate.ID), cate.Name)
}

// Tag 标签下的文章列表
func (h *PageHandler) Tag(c *gin.Context) {
	var tag models.Tag
	if err := db.DB.First(&tag, utils.StringToInt(c.Param("id"))).Error; err != nil {
		RenderError(c, http.StatusNotFound, "标签不存在")
		return
	}
	query := db.DB.Model(&models.Post{}).
		Joins("JOIN post_tags ON post_tags.post_id = posts.id").
		Where("post_tags.tag_id = ?", tag.ID)
	h.listPage(c, query, tag.Name)
}

// Archive 某年某月的文章列表
func (h *PageHandler) Archive(c *gin.Context) {
	year := utils.StringToInt(c.Param("year"))
	month := utils.StringToInt(c.Param("month"))
	if year < 1 || month < 1 || month > 12 {
		RenderError(c, http.StatusNotFound, "归档不存在")
		return
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0)
	query := db.DB.Model(&models.Post{}).Where("created_at >= ? AND created_at < ?", start, end)
	h.listPage(c, query, fmt.Sprintf("%d 年 %d 月归档", year, month))
}

// commentView 页面上嵌套展示用的评论节点
type commentView struct {
	ID          uint
	Name        string
	URL         string
	ContentHTML template.HTML
	CreatedAt   time.Time
	ParentID    *uint
	Children    []*commentView
}

// Detail 文章详情页，评论树状展示
func (h *PageHandler) Detail(c *gin.Context) {
	id := utils.StringToInt(c.Param("id"))

	var post models.Post
	err := db.DB.Preload("Category").Preload("Author").Preload("Tags").
		First(&post, id).Error
	if err != nil {
		RenderError(c, http.StatusNotFound, "文章不存在")
		return
	}

	// 每访问一次，阅读量 +1
	db.DB.Model(&post).UpdateColumn("views", gorm.Expr("views + 1"))
	post.Views++

	bodyHTML, toc := utils.RenderMarkdownWithTOC(post.Body)

	// Load comments
	var comments []models.Comment
	db.DB.Where("post_id = ?", post.ID).Order("created_at ASC").Find(&comments)

	views := make([]*commentView, 0, len(comments))
	for _, com := range comments {
		views = append(views, &commentView{
			ID:          com.ID,
			Name:        com.Name,
			URL:         com.URL,
			ContentHTML: utils.RenderMarkdown(com.Content),
			CreatedAt:   com.CreatedAt,
			ParentID:    com.ParentID,
			Children:    []*commentView{},
		})
	}
	forest := tree.Build(views, maxCommentDepth(),
		func(n *commentView) uint { return n.ID },
		func(n *commentView) *uint { return n.ParentID },
		func(parent, child *commentView) { parent.Children = append(parent.Children, child) },
	)

	Render(c, http.StatusOK, "blog/detail.html", gin.H{
		"Post":        post,
		"PostContent": bodyHTML,
		"TOC":         template.HTML(toc),
		"Comments":    forest,
		"Title":       post.Title,
	})
}

// CreateComment 页面评论表单提交
func (h *PageHandler) CreateComment(c *gin.Context) {
	id := utils.StringToInt(c.Param("id"))

	var post models.Post
	if err := db.DB.First(&post, id).Error; err != nil {
		RenderError(c, http.StatusNotFound, "文章不存在")
		return
	}

	name := c.PostForm("name")
	email := c.PostForm("email")
	url := c.PostForm("url")
	content := c.PostForm("content")
	parentIDStr := c.PostForm("parent_id")

	if name == "" || email == "" || content == "" {
		Flash(c, "评论发表失败！请填写名字、邮箱和内容后重新提交。")
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", post.ID))
		return
	}

	var parentID *uint
	if parentIDStr != "" {
		pid := uint(utils.StringToInt(parentIDStr))
		var parent models.Comment
		if err := db.DB.First(&parent, pid).Error; err != nil || parent.PostID != post.ID {
			Flash(c, "评论发表失败！被回复的评论不存在。")
			c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", post.ID))
			return
		}
		parentID = &pid
	}

	comment := models.Comment{
		Name:     name,
		Email:    email,
		URL:      url,
		Content:  content,
		PostID:   post.ID,
		ParentID: parentID,
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		Flash(c, "评论发表失败！请稍后重试。")
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", post.ID))
		return
	}

	db.DB.Model(&post).UpdateColumn("comment_count", gorm.Expr("comment_count + 1"))
	utils.GetCache().TouchComments()
	utils.GetCache().TouchPosts()

	Flash(c, "评论发表成功！")
	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d#comment-%d", post.ID, comment.ID))
}
