package models

import (
	"time"
)

// TreeHole 树洞：匿名的自关联短内容，结构上与评论同构
type TreeHole struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	ParentID  *uint     `gorm:"index" json:"parent_id"`
	Parent    *TreeHole `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt time.Time `json:"created_time"`
	UpdatedAt time.Time `json:"modified_time"`
}
