package repository

import (
	"context"
	"time"

	"farmmall/internal/domain/model"
	"github.com/shopspring/decimal"
)

type HotProductRow struct {
	ProductID   string
	Name        string
	TotalSales  int64
	TotalAmount decimal.Decimal
}

// 集計専用（読み取りのみ）
type AnalyticsRepository interface {
	// since が nil なら全期間
	SumOrderAmount(ctx context.Context, statuses []model.OrderStatus, since *time.Time) (decimal.Decimal, error)
	CountOrders(ctx context.Context, statuses []model.OrderStatus, since *time.Time) (int64, error)
	ListOrdersSince(ctx context.Context, statuses []model.OrderStatus, since time.Time) ([]model.Order, error)
	HotProducts(ctx context.Context, statuses []model.OrderStatus, limit int) ([]HotProductRow, error)
}
