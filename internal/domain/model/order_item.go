package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Priceは注文時点の単価（以後変えない）
type OrderItem struct {
	ID        string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	OrderID   string          `gorm:"type:varchar(36);not null;index" json:"orderId"`
	ProductID string          `gorm:"type:varchar(36);not null;index" json:"productId"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt time.Time       `json:"createdAt"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	ensureID(&i.ID)
	return nil
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}
