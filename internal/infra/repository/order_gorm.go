package repository

import (
	"context"
	"strings"

	"farmmall/internal/domain/model"
	repo "farmmall/internal/repository"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) Create(ctx context.Context, order *model.Order) error {
	return translate(r.db.WithContext(ctx).Create(order).Error)
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	var o model.Order
	if err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error; err != nil {
		return model.Order{}, translate(err)
	}
	return o, nil
}

func (r *OrderGormRepository) ListByUser(ctx context.Context, f repo.OrderListFilter) ([]model.Order, int64, error) {
	var total int64
	q := r.db.WithContext(ctx).Model(&model.Order{}).Where("user_id = ?", f.UserID)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if err := q.Count(&total).Error; err != nil {
		return []model.Order{}, 0, err
	}

	var items []model.Order
	err := q.Order("create_time desc").
		Limit(pageSize(f.Page)).
		Offset(f.Offset()).
		Find(&items).Error
	if err != nil {
		return []model.Order{}, 0, err
	}
	return items, total, nil
}

// 注文番号かユーザー名で検索
func (r *OrderGormRepository) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]repo.OrderWithUser, int64, error) {
	q := r.withUser(ctx)
	if s := strings.TrimSpace(f.Search); s != "" {
		like := likePattern(strings.ToLower(s))
		q = q.Where("LOWER(orders.order_no) LIKE ? OR LOWER(users.username) LIKE ?", like, like)
	}
	if f.Status != "" {
		q = q.Where("orders.status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return []repo.OrderWithUser{}, 0, err
	}

	var rows []repo.OrderWithUser
	err := q.Select("orders.*, users.username, users.phone").
		Order("orders.create_time desc").
		Limit(pageSize(f.Page)).
		Offset(f.Offset()).
		Scan(&rows).Error
	if err != nil {
		return []repo.OrderWithUser{}, 0, err
	}
	return rows, total, nil
}

func (r *OrderGormRepository) FindWithUser(ctx context.Context, orderID string) (repo.OrderWithUser, error) {
	var rows []repo.OrderWithUser
	err := r.withUser(ctx).
		Select("orders.*, users.username, users.phone").
		Where("orders.id = ?", orderID).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return repo.OrderWithUser{}, err
	}
	if len(rows) == 0 {
		return repo.OrderWithUser{}, repo.ErrNotFound
	}
	return rows[0], nil
}

func (r *OrderGormRepository) withUser(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("orders").
		Joins("LEFT JOIN users ON users.id = orders.user_id")
}

// 楽観的に状態遷移（fromでなければ更新しない）
func (r *OrderGormRepository) UpdateStatusIf(ctx context.Context, orderID string, from model.OrderStatus, to model.OrderStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	res := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 明細→注文の順で消す
func (r *OrderGormRepository) Delete(ctx context.Context, orderID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).Delete(&model.OrderItem{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", orderID).Delete(&model.Order{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}
		return nil
	})
}
