package models

import (
	"time"
)

type Post struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Body         string    `gorm:"type:text;not null" json:"body"`
	Excerpt      string    `gorm:"size:200" json:"excerpt"` // 为空时保存前自动从正文截取
	CategoryID   uint      `gorm:"not null;index" json:"category_id"`
	Category     Category  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category"`
	AuthorID     uint      `gorm:"not null;index" json:"author_id"`
	Author       User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Tags         []Tag     `gorm:"many2many:post_tags;" json:"tags"`
	Views        int       `gorm:"default:0" json:"views"`
	LikeCount    int       `gorm:"default:0" json:"like_count"`
	CommentCount int       `gorm:"default:0" json:"comment_count"`
	CreatedAt    time.Time `json:"created_time"`
	UpdatedAt    time.Time `json:"modified_time"`
}
