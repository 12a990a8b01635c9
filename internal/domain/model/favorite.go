package model

import (
	"time"

	"gorm.io/gorm"
)

type Favorite struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_favorite_user_product" json:"userId"`
	ProductID string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_favorite_user_product" json:"productId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	ensureID(&f.ID)
	return nil
}
