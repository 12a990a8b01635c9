package repository

import (
	"context"
	"strings"

	"farmmall/internal/domain/model"
	repo "farmmall/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// ストアの商品一覧（カテゴリ/名前で絞る、新しい順）
func (r *ProductGormRepository) ListPublic(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Product{})

	if v := strings.TrimSpace(q.CategoryValue); v != "" {
		tx = tx.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.value = ?", v)
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		tx = tx.Where("LOWER(products.name) LIKE ?", likePattern(strings.ToLower(s)))
	}

	//total（件数）
	if err := tx.Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	err := tx.Order("products.created_at desc").
		Offset(q.Offset()).
		Limit(pageSize(q.Page)).
		Find(&products).Error
	if err != nil {
		return []model.Product{}, 0, err
	}
	return products, total, nil
}

func (r *ProductGormRepository) SearchByName(ctx context.Context, keyword string, limit int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", likePattern(strings.ToLower(strings.TrimSpace(keyword)))).
		Order("created_at desc").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductGormRepository) ListNewestByCategory(ctx context.Context, categoryID string, limit int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("created_at desc").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// 管理画面の一覧（name/descriptionで検索、作成者で絞る）
func (r *ProductGormRepository) ListAdmin(ctx context.Context, q repo.AdminProductListQuery) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Product{})
	tx = scopeOwner(tx, q.OwnerID)

	if s := strings.TrimSpace(q.Search); s != "" {
		like := likePattern(strings.ToLower(s))
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if q.CategoryID != "" {
		tx = tx.Where("category_id = ?", q.CategoryID)
	}

	if err := tx.Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	err := tx.Order("created_at desc").
		Offset(q.Offset()).
		Limit(pageSize(q.Page)).
		Find(&products).Error
	if err != nil {
		return []model.Product{}, 0, err
	}
	return products, total, nil
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id string) (model.Product, error) {
	return r.FindScoped(ctx, id, nil)
}

func (r *ProductGormRepository) FindScoped(ctx context.Context, id string, ownerID *string) (model.Product, error) {
	var p model.Product
	err := scopeOwner(r.db.WithContext(ctx), ownerID).Where("id = ?", id).First(&p).Error
	if err != nil {
		return model.Product{}, translate(err)
	}
	return p, nil
}

func (r *ProductGormRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	return r.FindScopedByIDs(ctx, ids, nil)
}

func (r *ProductGormRepository) FindScopedByIDs(ctx context.Context, ids []string, ownerID *string) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}
	var products []model.Product
	if err := scopeOwner(r.db.WithContext(ctx), ownerID).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// 商品の作成
func (r *ProductGormRepository) Create(ctx context.Context, p *model.Product) error {
	return translate(r.db.WithContext(ctx).Create(p).Error)
}

// 商品の更新（作成者は変えない）
func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", p.ID).
		Select("name", "price", "description", "image", "images", "stock", "tags", "specifications", "category_id", "updated_at").
		Updates(&p)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 商品削除（ソフトデリート）
func (r *ProductGormRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ProductGormRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Product{}).Where("category_id = ?", categoryID).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *ProductGormRepository) CountByCategories(ctx context.Context, categoryIDs []string) (map[string]int64, error) {
	out := make(map[string]int64, len(categoryIDs))
	if len(categoryIDs) == 0 {
		return out, nil
	}

	type row struct {
		CategoryID string
		N          int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Select("category_id, COUNT(*) AS n").
		Where("category_id IN ?", categoryIDs).
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, rw := range rows {
		out[rw.CategoryID] = rw.N
	}
	return out, nil
}

// merchantは自分が作った商品だけ
func scopeOwner(tx *gorm.DB, ownerID *string) *gorm.DB {
	if ownerID == nil {
		return tx
	}
	return tx.Where("created_by = ?", *ownerID)
}
