package repository

import (
	"context"

	"farmmall/internal/domain/model"
)

// 明細＋商品名・画像
type OrderItemLine struct {
	model.OrderItem
	Name  string
	Image string
}

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID string) ([]OrderItemLine, error)
	ListByOrderIDs(ctx context.Context, orderIDs []string) (map[string][]OrderItemLine, error)
}
