package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 商品スペック（産地、重量など）
type Specification struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Product struct {
	ID             string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name           string          `gorm:"type:varchar(255);not null" json:"name"`
	Price          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Description    string          `gorm:"type:text" json:"description"`
	Image          string          `gorm:"type:varchar(512);not null" json:"image"`
	Images         []string        `gorm:"type:text;serializer:json" json:"images"`
	Stock          int64           `gorm:"not null;default:0" json:"stock"`
	Tags           []string        `gorm:"type:text;serializer:json" json:"tags"`
	Specifications []Specification `gorm:"type:text;serializer:json" json:"specifications"`
	CategoryID     string          `gorm:"type:varchar(36);not null;index" json:"categoryId"`
	CreatedBy      string          `gorm:"type:varchar(36);index" json:"createdBy"`
	CreatedAt      time.Time       `gorm:"index" json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	return nil
}

// 画像一覧が空ならメイン画像だけ
func (p Product) Gallery() []string {
	if len(p.Images) > 0 {
		return p.Images
	}
	return []string{p.Image}
}
