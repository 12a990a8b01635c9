package model

import (
	"time"

	"gorm.io/gorm"
)

// 在庫変動の履歴（注文・キャンセル・管理画面での編集）
type InventoryAdjustment struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProductID string    `gorm:"type:varchar(36);not null;index" json:"productId"`
	Delta     int64     `gorm:"not null" json:"delta"`
	Reason    string    `gorm:"type:varchar(255);not null" json:"reason"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
}

func (a *InventoryAdjustment) BeforeCreate(tx *gorm.DB) error {
	ensureID(&a.ID)
	return nil
}
