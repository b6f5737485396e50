package dto

import (
	"shulin/internal/models"
)

type CreateTreeHoleRequest struct {
	Content string `json:"content" binding:"required"`
	Parent  *uint  `json:"parent"`
}

type TreeHoleResponse struct {
	ID           uint   `json:"id"`
	Content      string `json:"content"`
	CreatedTime  string `json:"created_time"`
	ModifiedTime string `json:"modified_time"`
	Parent       *uint  `json:"parent"`
}

// TreeHoleNode 物化后的树洞节点
type TreeHoleNode struct {
	models.TreeHole
	Children []*TreeHoleNode `json:"children"`
}

func NewTreeHoleResponse(t models.TreeHole) TreeHoleResponse {
	return TreeHoleResponse{
		ID:           t.ID,
		Content:      t.Content,
		CreatedTime:  t.CreatedAt.Format(TimeLayout),
		ModifiedTime: t.UpdatedAt.Format(TimeLayout),
		Parent:       t.ParentID,
	}
}

func NewTreeHoleResponses(holes []models.TreeHole) []TreeHoleResponse {
	out := make([]TreeHoleResponse, 0, len(holes))
	for _, t := range holes {
		out = append(out, NewTreeHoleResponse(t))
	}
	return out
}

func NewTreeHoleNodes(holes []models.TreeHole) []*TreeHoleNode {
	out := make([]*TreeHoleNode, 0, len(holes))
	for _, t := range holes {
		out = append(out, &TreeHoleNode{TreeHole: t, Children: []*TreeHoleNode{}})
	}
	return out
}
