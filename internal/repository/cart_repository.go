package repository

import (
	"context"

	"farmmall/internal/domain/model"
	"github.com/shopspring/decimal"
)

// カート行＋商品情報
type CartLine struct {
	model.Cart
	Name  string
	Price decimal.Decimal
	Image string
	Stock int64
}

type CartRepository interface {
	ListByUserID(ctx context.Context, userID string) ([]CartLine, error)
	FindByUserAndProduct(ctx context.Context, userID string, productID string) (model.Cart, error)
	// 他人の行は ErrNotFound
	FindByIDForUser(ctx context.Context, id string, userID string) (model.Cart, error)
	Create(ctx context.Context, c *model.Cart) error
	UpdateQuantity(ctx context.Context, id string, qty int64) error
	DeleteForUser(ctx context.Context, id string, userID string) error
	SetSelected(ctx context.Context, userID string, ids []string, selected bool) error
	SetAllSelected(ctx context.Context, userID string, selected bool) error

	// 注文した商品の行を消す
	DeleteByUserAndProducts(ctx context.Context, userID string, productIDs []string) error
}
