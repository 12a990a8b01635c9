package repository

import (
	"context"

	"farmmall/internal/domain/model"
	repo "farmmall/internal/repository"

	"gorm.io/gorm"
)

type FavoriteGormRepository struct {
	db *gorm.DB
}

func NewFavoriteGormRepository(db *gorm.DB) *FavoriteGormRepository {
	return &FavoriteGormRepository{db: db}
}

func (r *FavoriteGormRepository) ListByUser(ctx context.Context, userID string, p repo.Page) ([]repo.FavoriteLine, int64, error) {
	q := r.db.WithContext(ctx).
		Table("favorites").
		Joins("JOIN products ON products.id = favorites.product_id AND products.deleted_at IS NULL").
		Where("favorites.user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return []repo.FavoriteLine{}, 0, err
	}

	var lines []repo.FavoriteLine
	err := q.Select("favorites.*, products.name, products.price, products.image").
		Order("favorites.created_at desc").
		Offset(p.Offset()).
		Limit(pageSize(p)).
		Scan(&lines).Error
	if err != nil {
		return []repo.FavoriteLine{}, 0, err
	}
	return lines, total, nil
}

func (r *FavoriteGormRepository) Exists(ctx context.Context, userID string, productID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Favorite{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *FavoriteGormRepository) Create(ctx context.Context, f *model.Favorite) error {
	return translate(r.db.WithContext(ctx).Create(f).Error)
}

func (r *FavoriteGormRepository) DeleteForUser(ctx context.Context, id string, userID string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Favorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *FavoriteGormRepository) DeleteByProductForUser(ctx context.Context, productID string, userID string) error {
	res := r.db.WithContext(ctx).Where("product_id = ? AND user_id = ?", productID, userID).Delete(&model.Favorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *FavoriteGormRepository) FavoritedProductIDs(ctx context.Context, userID string, productIDs []string) (map[string]bool, error) {
	out := make(map[string]bool, len(productIDs))
	if userID == "" || len(productIDs) == 0 {
		return out, nil
	}

	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.Favorite{}).
		Where("user_id = ? AND product_id IN ?", userID, productIDs).
		Pluck("product_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}
