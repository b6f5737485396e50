package dto

import (
	"shulin/internal/models"
)

// CreateCommentRequest 评论创建入参，post 字段仅写入
type CreateCommentRequest struct {
	Name    string `json:"name" form:"name" binding:"required,max=50"`
	Email   string `json:"email" form:"email" binding:"required,email"`
	URL     string `json:"url" form:"url"`
	Content string `json:"content" form:"content" binding:"required"`
	Post    uint   `json:"post" form:"post" binding:"required"`
	Parent  *uint  `json:"parent" form:"parent"`
}

type CommentResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	URL          string `json:"url"`
	Content      string `json:"content"`
	CreatedTime  string `json:"created_time"`
	Parent       *uint  `json:"parent"`
	LikeCount    int    `json:"like_count"`
	DislikeCount int    `json:"dislike_count"`
}

// CommentNode 物化后的评论树节点
type CommentNode struct {
	models.Comment
	Children []*CommentNode `json:"children"`
}

func NewCommentResponse(c models.Comment) CommentResponse {
	return CommentResponse{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		URL:          c.URL,
		Content:      c.Content,
		CreatedTime:  c.CreatedAt.Format(TimeLayout),
		Parent:       c.ParentID,
		LikeCount:    c.LikeCount,
		DislikeCount: c.DislikeCount,
	}
}

func NewCommentResponses(comments []models.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, NewCommentResponse(c))
	}
	return out
}

// NewCommentNodes 把评论模型包装成树节点，children 初始化为空序列
func NewCommentNodes(comments []models.Comment) []*CommentNode {
	out := make([]*CommentNode, 0, len(comments))
	for _, c := range comments {
		out = append(out, &CommentNode{Comment: c, Children: []*CommentNode{}})
	}
	return out
}
