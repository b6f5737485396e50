package models

import (
	"time"
)

type Comment struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:50;not null" json:"name"`
	Email        string    `gorm:"not null" json:"email"`
	URL          string    `json:"url"` // Optional
	Content      string    `gorm:"type:text;not null" json:"content"`
	PostID       uint      `gorm:"not null;index" json:"post_id"`
	Post         Post      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ParentID     *uint     `gorm:"index" json:"parent_id"` // Nullable for top-level comments
	Parent       *Comment  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	LikeCount    int       `gorm:"default:0" json:"like_count"`
	DislikeCount int       `gorm:"default:0" json:"dislike_count"`
	CreatedAt    time.Time `json:"created_time"`
}
