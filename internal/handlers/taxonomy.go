package handlers

import (
	"net/http"

	"shulin/internal/db"
	"shulin/internal/dto"
	"shulin/internal/models"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct{}

func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// List 返回全部分类，按名称排序，不分页
func (h *CategoryHandler) List(c *gin.Context) {
	var categories []models.Category
	db.DB.Order("name ASC").Find(&categories)

	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, cate := range categories {
		out = append(out, dto.CategoryResponse{ID: cate.ID, Name: cate.Name})
	}
	c.JSON(http.StatusOK, out)
}

// ListWithCount 返回有文章的分类及其文章数
func (h *CategoryHandler) ListWithCount(c *gin.Context) {
	var results []dto.CategoryWithCountResponse
	db.DB.Model(&models.Category{}).
		Select("categories.id, categories.name, COUNT(posts.id) AS num_posts").
		Joins("JOIN posts ON posts.category_id = categories.id").
		Group("categories.id, categories.name").
		Order("categories.name ASC").
		Scan(&results)

	if results == nil {
		results = []dto.CategoryWithCountResponse{}
	}
	c.JSON(http.StatusOK, results)
}

type TagHandler struct{}

func NewTagHandler() *TagHandler {
	return &TagHandler{}
}

// List 返回全部标签，按名称排序，不分页
func (h *TagHandler) List(c *gin.Context) {
	var tags []models.Tag
	db.DB.Order("name ASC").Find(&tags)

	out := make([]dto.TagResponse, 0, len(tags))
	for _, tag := range tags {
		out = append(out, dto.TagResponse{ID: tag.ID, Name: tag.Name})
	}
	c.JSON(http.StatusOK, out)
}

// ListWithCount 返回有文章的标签及其文章数
func (h *TagHandler) ListWithCount(c *gin.Context) {
	var results []dto.TagWithCountResponse
	db.DB.Model(&models.Tag{}).
		Select("tags.id, tags.name, COUNT(post_tags.post_id) AS num_posts").
		Joins("JOIN post_tags ON post_tags.tag_id = tags.id").
		Group("tags.id, tags.name").
		Order("tags.name ASC").
		Scan(&results)

	if results == nil {
		results = []dto.TagWithCountResponse{}
	}
	c.JSON(http.StatusOK, results)
}
