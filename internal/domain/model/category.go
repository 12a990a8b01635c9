package model

import (
	"time"

	"gorm.io/gorm"
)

// Countは商品登録/削除で増減するカウンタ
type Category struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Value     string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"value"`
	Label     string    `gorm:"type:varchar(255);not null" json:"label"`
	Image     string    `gorm:"type:varchar(512)" json:"image"`
	Count     int64     `gorm:"not null;default:0" json:"count"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}
