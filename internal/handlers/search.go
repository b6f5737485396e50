package handlers

import (
	"net/http"

	"shulin/internal/db"
	"shulin/internal/dto"
	"shulin/internal/models"
	"shulin/internal/utils"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct{}

func NewSearchHandler() *SearchHandler {
	return &SearchHandler{}
}

// Search 关键词搜索，标题和摘要里的命中词会被高亮标签包裹
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("text")
	if query == "" {
		BadRequestJSON(c, "text query parameter is required")
		return
	}

	// 搜索标题和正文
	searchPattern := "%" + query + "%"
	var posts []models.Post
	db.DB.Preload("Category").Preload("Author").
		Where("title ILIKE ? OR body ILIKE ?", searchPattern, searchPattern).
		Order("created_at DESC").
		Limit(50).
		Find(&posts)

	highlighter := utils.NewHighlighter(query)

	results := make([]dto.SearchResultResponse, 0, len(posts))
	for _, p := range posts {
		results = append(results, dto.SearchResultResponse{
			ID:          p.ID,
			Title:       highlighter.Highlight(p.Title),
			Summary:     highlighter.Highlight(p.Body),
			CreatedTime: p.CreatedAt.Format(dto.TimeLayout),
			Excerpt:     p.Excerpt,
			Category:    dto.NewCategoryResponse(p.Category),
			Author:      dto.AuthorResponse{ID: p.Author.ID, Username: p.Author.Username},
			Views:       p.Views,
		})
	}

	c.JSON(http.StatusOK, results)
}
