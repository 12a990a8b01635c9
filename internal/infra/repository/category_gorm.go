package repository

import (
	"context"

	"farmmall/internal/domain/model"
	repo "farmmall/internal/repository"

	"gorm.io/gorm"
)

type CategoryGormRepository struct {
	db *gorm.DB
}

// DI
func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{db: db}
}

func (r *CategoryGormRepository) List(ctx context.Context) ([]model.Category, error) {
	var cs []model.Category
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&cs).Error; err != nil {
		return nil, err
	}
	return cs, nil
}

// 管理画面は新しい順
func (r *CategoryGormRepository) ListNewest(ctx context.Context) ([]model.Category, error) {
	var cs []model.Category
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&cs).Error; err != nil {
		return nil, err
	}
	return cs, nil
}

func (r *CategoryGormRepository) ListTop(ctx context.Context, limit int) ([]model.Category, error) {
	var cs []model.Category
	err := r.db.WithContext(ctx).
		Order("count desc").
		Order("created_at asc").
		Limit(limit).
		Find(&cs).Error
	if err != nil {
		return nil, err
	}
	return cs, nil
}

func (r *CategoryGormRepository) FindByID(ctx context.Context, id string) (model.Category, error) {
	var c model.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return model.Category{}, translate(err)
	}
	return c, nil
}

func (r *CategoryGormRepository) FindByValue(ctx context.Context, value string) (model.Category, error) {
	var c model.Category
	if err := r.db.WithContext(ctx).Where("value = ?", value).First(&c).Error; err != nil {
		return model.Category{}, translate(err)
	}
	return c, nil
}

func (r *CategoryGormRepository) Create(ctx context.Context, c *model.Category) error {
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

func (r *CategoryGormRepository) UpdateLabelImage(ctx context.Context, id string, label string, image string) error {
	res := r.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", id).Updates(map[string]interface{}{
		"label": label,
		"image": image,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CategoryGormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Category{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// countは0未満にしない
func (r *CategoryGormRepository) AdjustCount(ctx context.Context, id string, delta int64) error {
	q := r.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", id)
	if delta < 0 {
		q = q.Where("count >= ?", -delta)
	}
	res := q.Update("count", gorm.Expr("count + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 && delta < 0 {
		// 足りない分は0に丸める
		return r.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", id).Update("count", 0).Error
	}
	return nil
}
