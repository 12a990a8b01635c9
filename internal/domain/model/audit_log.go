package model

import (
	"time"

	"gorm.io/gorm"
)

type AuditAction string

const (
	AuditActionUpdateOrderStatus AuditAction = "UPDATE_ORDER_STATUS"
	AuditActionDeleteOrder       AuditAction = "DELETE_ORDER"
	AuditActionDeleteProduct     AuditAction = "DELETE_PRODUCT"
	AuditActionDeleteCategory    AuditAction = "DELETE_CATEGORY"
	AuditActionUpdateAdmin       AuditAction = "UPDATE_ADMIN"
	AuditActionResetPassword     AuditAction = "RESET_PASSWORD"
	AuditActionDeleteAdmin       AuditAction = "DELETE_ADMIN"
)

// 何に対する操作か
type AuditResourceType string

const (
	AuditResourceProduct  AuditResourceType = "product"
	AuditResourceOrder    AuditResourceType = "order"
	AuditResourceCategory AuditResourceType = "category"
	AuditResourceAdmin    AuditResourceType = "admin"
)

// 監査ログ（管理者操作ログ）。
// 「誰が」「何を」「どの対象に」「どう変えたか」を残す。
type AuditLog struct {
	ID string `gorm:"type:varchar(36);primaryKey" json:"id"`

	//操作した管理者
	ActorAdminID string `gorm:"type:varchar(36);not null;index" json:"actorAdminId"`

	Action       AuditAction       `gorm:"type:varchar(50);not null;index" json:"action"`
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resourceType"`
	ResourceID   string            `gorm:"type:varchar(36);not null;index" json:"resourceId"`

	//JSON文字列で保存する。
	BeforeJSON string `gorm:"type:text" json:"beforeJson"`
	AfterJSON  string `gorm:"type:text" json:"afterJson"`

	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
}

func (l *AuditLog) BeforeCreate(tx *gorm.DB) error {
	ensureID(&l.ID)
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	return nil
}
