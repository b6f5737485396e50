package models

import (
	"time"
)

type About struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `json:"created_time"`
	UpdatedAt time.Time `json:"modified_time"`
}
