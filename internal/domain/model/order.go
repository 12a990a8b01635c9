package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipping  OrderStatus = "shipping"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipping, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// 売上集計の対象
var QualifyingStatuses = []OrderStatus{OrderStatusPaid, OrderStatusShipping, OrderStatusCompleted}

// 削除できるのは終端状態だけ
func (s OrderStatus) IsDeletable() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

type Order struct {
	ID          string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	OrderNo     string          `gorm:"type:varchar(64);uniqueIndex;not null" json:"orderNo"`
	UserID      string          `gorm:"type:varchar(36);not null;index" json:"userId"`
	Status      OrderStatus     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalAmount"`
	Address     Address         `gorm:"type:text;serializer:json;not null" json:"address"`
	CreateTime  time.Time       `gorm:"not null;index" json:"createTime"`
	UpdateTime  time.Time       `gorm:"autoUpdateTime" json:"updateTime"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	ensureID(&o.ID)
	if o.CreateTime.IsZero() {
		o.CreateTime = time.Now()
	}
	return nil
}
