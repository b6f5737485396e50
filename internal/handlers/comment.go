package handlers

import (
	"net/http"

	"shulin/internal/db"
	"shulin/internal/dto"
	"shulin/internal/logger"
	"shulin/internal/models"
	"shulin/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CommentHandler struct{}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{}
}

// Create 创建博客评论，同步累加文章评论数
func (h *CommentHandler) Create(c *gin.Context) {
	var req dto.CreateCommentRequest
	if err := c.ShouldBind(&req); err != nil {
		BadRequestJSON(c, err.Error())
		return
	}

	var post models.Post
	if err := db.DB.First(&post, req.Post).Error; err != nil {
		NotFoundJSON(c)
		return
	}

	// 父评论必须存在且属于同一篇文章
	if req.Parent != nil {
		var parent models.Comment
		if err := db.DB.First(&parent, *req.Parent).Error; err != nil || parent.PostID != post.ID {
			BadRequestJSON(c, "parent comment does not exist")
			return
		}
	}

	comment := models.Comment{
		Name:     req.Name,
		Email:    req.Email,
		URL:      req.URL,
		Content:  req.Content,
		PostID:   post.ID,
		ParentID: req.Parent,
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		logger.S().Errorf("failed to create comment on post %d: %v", post.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to create comment"})
		return
	}

	db.DB.Model(&post).UpdateColumn("comment_count", gorm.Expr("comment_count + 1"))

	// 评论变更，发出缓存失效信号
	utils.GetCache().TouchComments()
	utils.GetCache().TouchPosts()

	c.JSON(http.StatusCreated, dto.NewCommentResponse(comment))
}

// Like 点赞评论
func (h *CommentHandler) Like(c *gin.Context) {
	h.bumpCounter(c, "like_count")
}

// Dislike 点踩评论
func (h *CommentHandler) Dislike(c *gin.Context) {
	h.bumpCounter(c, "dislike_count")
}

func (h *CommentHandler) bumpCounter(c *gin.Context, column string) {
	id := utils.StringToInt(c.Param("id"))

	var comment models.Comment
	if err := db.DB.First(&comment, id).Error; err != nil {
		NotFoundJSON(c)
		return
	}

	db.DB.Model(&comment).UpdateColumn(column, gorm.Expr(column+" + 1"))
	if column == "like_count" {
		comment.LikeCount++
	} else {
		comment.DislikeCount++
	}
	utils.GetCache().TouchComments()

	c.JSON(http.StatusOK, dto.NewCommentResponse(comment))
}
