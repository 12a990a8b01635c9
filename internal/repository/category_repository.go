package repository

import (
	"context"

	"farmmall/internal/domain/model"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	ListNewest(ctx context.Context) ([]model.Category, error)
	// count の多い順
	ListTop(ctx context.Context, limit int) ([]model.Category, error)
	FindByID(ctx context.Context, id string) (model.Category, error)
	FindByValue(ctx context.Context, value string) (model.Category, error)
	Create(ctx context.Context, c *model.Category) error
	UpdateLabelImage(ctx context.Context, id string, label string, image string) error
	Delete(ctx context.Context, id string) error

	// 商品数カウンタを delta だけ動かす
	AdjustCount(ctx context.Context, id string, delta int64) error
}
