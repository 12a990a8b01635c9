package repository

import (
	"context"

	"farmmall/internal/domain/model"
	"github.com/shopspring/decimal"
)

type FavoriteLine struct {
	model.Favorite
	Name  string
	Price decimal.Decimal
	Image string
}

type FavoriteRepository interface {
	ListByUser(ctx context.Context, userID string, p Page) ([]FavoriteLine, int64, error)
	Exists(ctx context.Context, userID string, productID string) (bool, error)
	Create(ctx context.Context, f *model.Favorite) error
	DeleteForUser(ctx context.Context, id string, userID string) error
	DeleteByProductForUser(ctx context.Context, productID string, userID string) error

	// 指定商品のうちお気に入り済みのID集合
	FavoritedProductIDs(ctx context.Context, userID string, productIDs []string) (map[string]bool, error)
}
