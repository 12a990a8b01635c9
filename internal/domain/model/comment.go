package model

import (
	"time"

	"gorm.io/gorm"
)

// 商品レビュー（評価は1〜5）
type Comment struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID     string    `gorm:"type:varchar(36);not null;index" json:"userId"`
	ProductID  string    `gorm:"type:varchar(36);not null;index" json:"productId"`
	Rating     int       `gorm:"not null" json:"rating"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CreateTime time.Time `gorm:"not null;index" json:"createTime"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	if c.CreateTime.IsZero() {
		c.CreateTime = time.Now()
	}
	return nil
}
