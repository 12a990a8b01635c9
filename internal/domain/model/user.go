package model

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleUser     Role = "user"
	RoleAdmin    Role = "admin"
	RoleMerchant Role = "merchant"
)

// 管理画面に入れるロールか
func (r Role) IsBackOffice() bool {
	return r == RoleAdmin || r == RoleMerchant
}

type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "active"
	AccountStatusDisabled AccountStatus = "disabled"
)

func (s AccountStatus) IsValid() bool {
	return s == AccountStatusActive || s == AccountStatusDisabled
}

// 購入者アカウント
type User struct {
	ID            string        `gorm:"type:varchar(36);primaryKey" json:"id"`
	Username      string        `gorm:"type:varchar(64);uniqueIndex;not null" json:"username"`
	Password      string        `gorm:"not null" json:"-"`
	Phone         string        `gorm:"type:varchar(30)" json:"phone"`
	Status        AccountStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	LastLoginTime *time.Time    `json:"lastLoginTime"`
	CreatedAt     time.Time     `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	ensureID(&u.ID)
	return nil
}
