package repository

import (
	"context"

	"farmmall/internal/domain/model"
	repo "farmmall/internal/repository"

	"gorm.io/gorm"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// カート一覧（削除済み商品の行は出さない）
func (r *CartGormRepository) ListByUserID(ctx context.Context, userID string) ([]repo.CartLine, error) {
	var lines []repo.CartLine
	err := r.db.WithContext(ctx).
		Table("carts").
		Select("carts.*, products.name, products.price, products.image, products.stock").
		Joins("JOIN products ON products.id = carts.product_id AND products.deleted_at IS NULL").
		Where("carts.user_id = ?", userID).
		Order("carts.created_at desc").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *CartGormRepository) FindByUserAndProduct(ctx context.Context, userID string, productID string) (model.Cart, error) {
	var c model.Cart
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&c).Error
	if err != nil {
		return model.Cart{}, translate(err)
	}
	return c, nil
}

func (r *CartGormRepository) FindByIDForUser(ctx context.Context, id string, userID string) (model.Cart, error) {
	var c model.Cart
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&c).Error
	if err != nil {
		return model.Cart{}, translate(err)
	}
	return c, nil
}

func (r *CartGormRepository) Create(ctx context.Context, c *model.Cart) error {
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

func (r *CartGormRepository) UpdateQuantity(ctx context.Context, id string, qty int64) error {
	res := r.db.WithContext(ctx).Model(&model.Cart{}).Where("id = ?", id).Update("quantity", qty)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CartGormRepository) DeleteForUser(ctx context.Context, id string, userID string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Cart{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CartGormRepository) SetSelected(ctx context.Context, userID string, ids []string, selected bool) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.Cart{}).
		Where("user_id = ? AND id IN ?", userID, ids).
		Update("selected", selected).Error
}

func (r *CartGormRepository) SetAllSelected(ctx context.Context, userID string, selected bool) error {
	return r.db.WithContext(ctx).
		Model(&model.Cart{}).
		Where("user_id = ?", userID).
		Update("selected", selected).Error
}

// 注文済みの商品をカートから外す
func (r *CartGormRepository) DeleteByUserAndProducts(ctx context.Context, userID string, productIDs []string) error {
	if len(productIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id IN ?", userID, productIDs).
		Delete(&model.Cart{}).Error
}
