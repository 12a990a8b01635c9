package repository

import (
	"context"
	"time"

	"farmmall/internal/domain/model"
	repo "farmmall/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AnalyticsGormRepository struct {
	db *gorm.DB
}

func NewAnalyticsGormRepository(db *gorm.DB) *AnalyticsGormRepository {
	return &AnalyticsGormRepository{db: db}
}

func (r *AnalyticsGormRepository) qualifying(ctx context.Context, statuses []model.OrderStatus, since *time.Time) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.Order{}).Where("status IN ?", statuses)
	if since != nil {
		q = q.Where("create_time >= ?", *since)
	}
	return q
}

// 売上合計（0件なら0）
func (r *AnalyticsGormRepository) SumOrderAmount(ctx context.Context, statuses []model.OrderStatus, since *time.Time) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.qualifying(ctx, statuses, since).
		Select("SUM(total_amount)").
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal.Round(2), nil
}

func (r *AnalyticsGormRepository) CountOrders(ctx context.Context, statuses []model.OrderStatus, since *time.Time) (int64, error) {
	var n int64
	if err := r.qualifying(ctx, statuses, since).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *AnalyticsGormRepository) ListOrdersSince(ctx context.Context, statuses []model.OrderStatus, since time.Time) ([]model.Order, error) {
	var orders []model.Order
	err := r.qualifying(ctx, statuses, &since).
		Order("create_time asc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// 販売数の多い順
func (r *AnalyticsGormRepository) HotProducts(ctx context.Context, statuses []model.OrderStatus, limit int) ([]repo.HotProductRow, error) {
	var rows []repo.HotProductRow
	err := r.db.WithContext(ctx).
		Table("order_items").
		Select("order_items.product_id, products.name, SUM(order_items.quantity) AS total_sales, SUM(order_items.price * order_items.quantity) AS total_amount").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("orders.status IN ?", statuses).
		Group("order_items.product_id, products.name").
		Order("total_sales desc").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].TotalAmount = rows[i].TotalAmount.Round(2)
	}
	return rows, nil
}
