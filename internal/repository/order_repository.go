package repository

import (
	"context"

	"farmmall/internal/domain/model"
)

type OrderListFilter struct {
	Page
	UserID string
	Status model.OrderStatus
}

type AdminOrderListFilter struct {
	Page
	// orderNo または username の部分一致
	Search string
	Status model.OrderStatus
}

// 一覧表示用（ユーザー名付き）
type OrderWithUser struct {
	model.Order
	Username string
	Phone    string
}

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, orderID string) (model.Order, error)
	ListByUser(ctx context.Context, f OrderListFilter) ([]model.Order, int64, error)
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]OrderWithUser, int64, error)
	FindWithUser(ctx context.Context, orderID string) (OrderWithUser, error)

	// 現在値が from のときだけ to にする（更新できたか返す）
	UpdateStatusIf(ctx context.Context, orderID string, from model.OrderStatus, to model.OrderStatus) (bool, error)
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error

	// 明細も一緒に消す
	Delete(ctx context.Context, orderID string) error
}
