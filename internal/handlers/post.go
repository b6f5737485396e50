package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"shulin/internal/db"
	"shulin/internal/dto"
	"shulin/internal/models"
	"shulin/internal/services"
	"shulin/internal/tree"
	"shulin/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PostHandler struct{}

func NewPostHandler() *PostHandler {
	return &PostHandler{}
}

// maxCommentDepth 评论树最大嵌套层级，可通过环境变量调整
func maxCommentDepth() int {
	if v := utils.StringToInt(os.Getenv("COMMENT_MAX_DEPTH")); v > 0 {
		return v
	}
	return 10
}

// pageURL 构造某一页的绝对地址，页码越界时返回 nil
func pageURL(c *gin.Context, page, totalPages int) *string {
	if page < 1 || page > totalPages {
		return nil
	}
	q := url.Values{}
	for k, vs := range c.Request.URL.Query() {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("page", fmt.Sprintf("%d", page))
	u := fmt.Sprintf("%s%s?%s", getSiteURL(), c.Request.URL.Path, q.Encode())
	return &u
}

// orderingColumns 允许排序的字段白名单
var orderingColumns = map[string]string{
	"comment_count": "comment_count",
	"like_count":    "like_count",
	"views":         "views",
}

// List 文章列表，支持分类/标签过滤与排序
func (h *PostHandler) List(c *gin.Context) {
	cacheKey := utils.GetCache().PostKey("list:" + c.Request.URL.RawQuery)
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if page, ok := cached.(dto.Page); ok {
			c.JSON(http.StatusOK, page)
			return
		}
	}

	page := 1
	if p := utils.StringToInt(c.Query("page")); p > 0 {
		page = p
	}
	perPage := 10
	if s := utils.StringToInt(c.Query("page_size")); s > 0 && s <= 100 {
		perPage = s
	}

	query := db.DB.Model(&models.Post{})
	if cate := utils.StringToInt(c.Query("category")); cate > 0 {
		query = query.Where("category_id = ?", cate)
	}
	if tag := utils.StringToInt(c.Query("tag")); tag > 0 {
		query = query.
			Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Where("post_tags.tag_id = ?", tag)
	}

	var total int64
	query.Count(&total)
	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	if totalPages == 0 {
		totalPages = 1
	}

	// 排序，前缀 - 表示倒序
	order := "created_at DESC"
	if raw := c.Query("ordering"); raw != "" {
		dir := "ASC"
		col := raw
		if raw[0] == '-' {
			dir = "DESC"
			col = raw[1:]
		}
		if dbCol, ok := orderingColumns[col]; ok {
			order = dbCol + " " + dir
		}
	}

	var posts []models.Post
	query.Preload("Category").Preload("Author").Preload("Tags").
		Order(order).
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&posts)

	envelope := dto.Page{
		Count:    total,
		Next:     pageURL(c, page+1, totalPages),
		Previous: pageURL(c, page-1, totalPages),
		Results:  dto.NewPostListResponses(posts),
	}

	// 写入缓存，有效期 5 分钟；文章一有变更 key 位就失效
	utils.GetCache().Set(cacheKey, envelope, 5*time.Minute)

	c.JSON(http.StatusOK, envelope)
}

// Retrieve 文章详情，附带目录和渲染后的正文
func (h *PostHandler) Retrieve(c *gin.Context) {
	id := utils.StringToInt(c.Param("id"))

	cacheKey := utils.GetCache().PostKey(fmt.Sprintf("detail:%d", id))
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if resp, ok := cached.(dto.PostRetrieveResponse); ok {
			// 命中缓存也要累加阅读量
			services.GetViewService().Increase(uint(id))
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	var post models.Post
	err := db.DB.Preload("Category").Preload("Author").Preload("Tags").
		First(&post, id).Error
	if err != nil {
		NotFoundJSON(c)
		return
	}

	services.GetViewService().Increase(post.ID)
	post.Views++

	bodyHTML, toc := utils.RenderMarkdownWithTOC(post.Body)
	resp := dto.NewPostRetrieveResponse(post, string(bodyHTML), toc)

	utils.GetCache().Set(cacheKey, resp, 5*time.Minute)

	c.JSON(http.StatusOK, resp)
}

// Like 点赞文章
func (h *PostHandler) Like(c *gin.Context) {
	id := utils.StringToInt(c.Param("id"))

	var post models.Post
	if err := db.DB.Preload("Category").Preload("Author").Preload("Tags").
		First(&post, id).Error; err != nil {
		NotFoundJSON(c)
		return
	}

	db.DB.Model(&post).UpdateColumn("like_count", gorm.Expr("like_count + 1"))
	post.LikeCount++
	utils.GetCache().TouchPosts()

	c.JSON(http.StatusOK, dto.NewPostListResponse(post))
}

// ArchiveDates 归档日期列表，时间倒序，如 ["2020-08", "2020-06"]
func (h *PostHandler) ArchiveDates(c *gin.Context) {
	var dates []string
	db.DB.Raw(
		"SELECT DISTINCT to_char(created_at, 'YYYY-MM') AS month FROM posts ORDER BY month DESC",
	).Scan(&dates)
	if dates == nil {
		dates = []string{}
	}
	c.JSON(http.StatusOK, dates)
}

// Archives 按年月分组的归档视图
func (h *PostHandler) Archives(c *gin.Context) {
	var posts []models.Post
	db.DB.Select("id, title, created_at").Order("created_at DESC").Find(&posts)

	buckets := tree.BucketByMonth(posts, func(p models.Post) time.Time { return p.CreatedAt })

	out := make([]tree.MonthBucket[dto.ArchiveItemResponse], 0, len(buckets))
	for _, b := range buckets {
		items := make([]dto.ArchiveItemResponse, 0, len(b.Items))
		for _, p := range b.Items {
			items = append(items, dto.ArchiveItemResponse{
				ID:          p.ID,
				Title:       p.Title,
				CreatedTime: p.CreatedAt.Format(dto.TimeLayout),
			})
		}
		out = append(out, tree.MonthBucket[dto.ArchiveItemResponse]{Month: b.Month, Items: items})
	}

	c.JSON(http.StatusOK, out)
}

// ListComments 文章下的评论列表，limit/offset 分页
func (h *PostHandler) ListComments(c *gin.Context) {
	id := utils.StringToInt(c.Param("id"))

	cacheKey := utils.GetCache().CommentKey(fmt.Sprintf("post:%d:%s", id, c.Request.URL.RawQuery))
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if page, ok := cached.(dto.Page); ok {
			c.JSON(http.StatusOK, page)
			return
		}
	}

	var post models.Post
	if err := db.DB.First(&post, id).Error; err != nil {
		NotFoundJSON(c)
		return
	}

	limit := 10
	if l := utils.StringToInt(c.Query("limit")); l > 0 && l <= 100 {
		limit = l
	}
	offset := utils.StringToInt(c.Query("offset"))
	if offset < 0 {
		offset = 0
	}

	var total int64
	db.DB.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&total)

	var comments []models.Comment
	db.DB.Where("post_id = ?", post.ID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&comments)

	envelope := dto.Page{
		Count:    total,
		Next:     offsetURL(c, offset+limit, limit, total),
		Previous: offsetURL(c, offset-limit, limit, total),
		Results:  dto.NewCommentResponses(comments),
	}

	utils.GetCache().Set(cacheKey, envelope, 5*time.Minute)

	c.JSON(http.StatusOK, envelope)
}

// offsetURL 构造 limit/offset 分页地址，越界时返回 nil
func offsetURL(c *gin.Context, offset, limit int, total int64) *string {
	if offset < 0 || int64(offset) >= total {
		return nil
	}
	q := url.Values{}
	for k, vs := range c.Request.URL.Query() {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("offset", fmt.Sprintf("%d", offset))
	u := fmt.Sprintf("%s%s?%s", getSiteURL(), c.Request.URL.Path, q.Encode())
	return &u
}

// ListCommentsAll 文章下的全部评论，树状数据结构
func (h *PostHandler) ListCommentsAll(c *gin.Context) {
	id := utils.StringToInt(c.Param("id"))

	var post models.Post
	if err := db.DB.First(&post, id).Error; err != nil {
		NotFoundJSON(c)
		return
	}

	var comments []models.Comment
	db.DB.Where("post_id = ?", post.ID).
		Order("created_at DESC").
		Find(&comments)

	nodes := dto.NewCommentNodes(comments)
	forest := tree.Build(nodes, maxCommentDepth(),
		func(n *dto.CommentNode) uint { return n.ID },
		func(n *dto.CommentNode) *uint { return n.ParentID },
		func(parent, child *dto.CommentNode) { parent.Children = append(parent.Children, child) },
	)

	c.JSON(http.StatusOK, forest)
}
