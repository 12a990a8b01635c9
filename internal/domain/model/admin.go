package model

import (
	"time"

	"gorm.io/gorm"
)

// 管理画面のアカウント（admin/merchant）
type Admin struct {
	ID            string        `gorm:"type:varchar(36);primaryKey" json:"id"`
	Username      string        `gorm:"type:varchar(64);uniqueIndex;not null" json:"username"`
	Password      string        `gorm:"not null" json:"-"`
	Role          Role          `gorm:"type:varchar(20);not null" json:"role"`
	Status        AccountStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	LastLoginTime *time.Time    `json:"lastLoginTime"`
	Email         string        `gorm:"type:varchar(255)" json:"email"`
	Phone         string        `gorm:"type:varchar(30)" json:"phone"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	ensureID(&a.ID)
	return nil
}

func (a Admin) IsDisabled() bool {
	return a.Status == AccountStatusDisabled
}
