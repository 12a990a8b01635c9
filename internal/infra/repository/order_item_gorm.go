package repository

import (
	"context"

	"farmmall/internal/domain/model"
	repo "farmmall/internal/repository"

	"gorm.io/gorm"
)

type OrderItemGormRepository struct {
	db *gorm.DB
}

func NewOrderItemGormRepository(db *gorm.DB) *OrderItemGormRepository {
	return &OrderItemGormRepository{db: db}
}

// 明細を一括作成
func (r *OrderItemGormRepository) CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].OrderID = orderID
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *OrderItemGormRepository) ListByOrderID(ctx context.Context, orderID string) ([]repo.OrderItemLine, error) {
	byOrder, err := r.ListByOrderIDs(ctx, []string{orderID})
	if err != nil {
		return nil, err
	}
	if lines, ok := byOrder[orderID]; ok {
		return lines, nil
	}
	return []repo.OrderItemLine{}, nil
}

// 商品が消えていても明細は出す
func (r *OrderItemGormRepository) ListByOrderIDs(ctx context.Context, orderIDs []string) (map[string][]repo.OrderItemLine, error) {
	out := make(map[string][]repo.OrderItemLine, len(orderIDs))
	if len(orderIDs) == 0 {
		return out, nil
	}

	var lines []repo.OrderItemLine
	err := r.db.WithContext(ctx).
		Table("order_items").
		Select("order_items.*, products.name, products.image").
		Joins("LEFT JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id IN ?", orderIDs).
		Order("order_items.created_at asc").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	for _, l := range lines {
		out[l.OrderID] = append(out[l.OrderID], l)
	}
	return out, nil
}
