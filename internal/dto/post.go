package dto

import (
	"shulin/internal/models"
)

// TimeLayout 接口中时间字段的统一格式
const TimeLayout = "2006-01-02 15:04:05"

type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type CategoryWithCountResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	NumPosts int    `json:"num_posts"`
}

type TagResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type TagWithCountResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	NumPosts int    `json:"num_posts"`
}

type AuthorResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type PostListResponse struct {
	ID           uint             `json:"id"`
	Title        string           `json:"title"`
	CreatedTime  string           `json:"created_time"`
	Excerpt      string           `json:"excerpt"`
	Category     CategoryResponse `json:"category"`
	Author       AuthorResponse   `json:"author"`
	Views        int              `json:"views"`
	LikeCount    int              `json:"like_count"`
	CommentCount int              `json:"comment_count"`
	Tags         []TagResponse    `json:"tags"`
}

type PostRetrieveResponse struct {
	ID           uint             `json:"id"`
	Title        string           `json:"title"`
	Body         string           `json:"body"`
	CreatedTime  string           `json:"created_time"`
	ModifiedTime string           `json:"modified_time"`
	Excerpt      string           `json:"excerpt"`
	Views        int              `json:"views"`
	Category     CategoryResponse `json:"category"`
	Author       AuthorResponse   `json:"author"`
	Tags         []TagResponse    `json:"tags"`
	TOC          string           `json:"toc"`
	BodyHTML     string           `json:"body_html"`
	LikeCount    int              `json:"like_count"`
	CommentCount int              `json:"comment_count"`
}

// SearchResultResponse 搜索结果，标题和摘要已做关键词高亮
type SearchResultResponse struct {
	ID          uint             `json:"id"`
	Title       string           `json:"title"`
	Summary     string           `json:"summary"`
	CreatedTime string           `json:"created_time"`
	Excerpt     string           `json:"excerpt"`
	Category    CategoryResponse `json:"category"`
	Author      AuthorResponse   `json:"author"`
	Views       int              `json:"views"`
}

// ArchiveItemResponse 归档视图里的文章条目
type ArchiveItemResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	CreatedTime string `json:"created_time"`
}

func NewCategoryResponse(c models.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name}
}

func NewTagResponses(tags []models.Tag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, TagResponse{ID: t.ID, Name: t.Name})
	}
	return out
}

func NewPostListResponse(p models.Post) PostListResponse {
	return PostListResponse{
		ID:           p.ID,
		Title:        p.Title,
		CreatedTime:  p.CreatedAt.Format(TimeLayout),
		Excerpt:      p.Excerpt,
		Category:     NewCategoryResponse(p.Category),
		Author:       AuthorResponse{ID: p.Author.ID, Username: p.Author.Username},
		Views:        p.Views,
		LikeCount:    p.LikeCount,
		CommentCount: p.CommentCount,
		Tags:         NewTagResponses(p.Tags),
	}
}

func NewPostListResponses(posts []models.Post) []PostListResponse {
	out := make([]PostListResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, NewPostListResponse(p))
	}
	return out
}

func NewPostRetrieveResponse(p models.Post, bodyHTML, toc string) PostRetrieveResponse {
	return PostRetrieveResponse{
		ID:           p.ID,
		Title:        p.Title,
		Body:         p.Body,
		CreatedTime:  p.CreatedAt.Format(TimeLayout),
		ModifiedTime: p.UpdatedAt.Format(TimeLayout),
		Excerpt:      p.Excerpt,
		Views:        p.Views,
		Category:     NewCategoryResponse(p.Category),
		Author:       AuthorResponse{ID: p.Author.ID, Username: p.Author.Username},
		Tags:         NewTagResponses(p.Tags),
		TOC:          toc,
		BodyHTML:     bodyHTML,
		LikeCount:    p.LikeCount,
		CommentCount: p.CommentCount,
	}
}
