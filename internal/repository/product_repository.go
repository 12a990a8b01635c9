package repository

import (
	"context"

	"farmmall/internal/domain/model"
)

// ストア側の一覧条件
type ProductListQuery struct {
	Page
	CategoryValue string
	Search        string
}

// 管理画面の一覧条件（OwnerIDがあれば作成者で絞る）
type AdminProductListQuery struct {
	Page
	Search     string
	CategoryID string
	OwnerID    *string
}

type ProductRepository interface {
	ListPublic(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	SearchByName(ctx context.Context, keyword string, limit int) ([]model.Product, error)
	ListNewestByCategory(ctx context.Context, categoryID string, limit int) ([]model.Product, error)
	ListAdmin(ctx context.Context, q AdminProductListQuery) ([]model.Product, int64, error)

	FindByID(ctx context.Context, id string) (model.Product, error)
	// 所有者で絞る（nilなら絞らない）
	FindScoped(ctx context.Context, id string, ownerID *string) (model.Product, error)
	FindScopedByIDs(ctx context.Context, ids []string, ownerID *string) ([]model.Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.Product, error)

	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, p model.Product) error
	DeleteByIDs(ctx context.Context, ids []string) error

	CountByCategory(ctx context.Context, categoryID string) (int64, error)
	CountByCategories(ctx context.Context, categoryIDs []string) (map[string]int64, error)
}
